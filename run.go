package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"sidplay/emu"
	"sidplay/emu/log"
	"sidplay/sid"
)

// command is a playback control request, typed on the keyboard.
type command byte

const (
	cmdNone command = iota
	cmdNext
	cmdPrev
	cmdPause
	cmdQuit
)

func keyCommand(key byte) command {
	switch key {
	case 'n', 'N', '+':
		return cmdNext
	case 'p', 'P', '-':
		return cmdPrev
	case ' ':
		return cmdPause
	case 'q', 'Q', 0x03, 0x1B:
		return cmdQuit
	}
	return cmdNone
}

// readKeys forwards the commands typed on r to cmds, until r fails or ctx is
// done.
func readKeys(ctx context.Context, r io.Reader, cmds chan<- command) {
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		for _, key := range buf[:n] {
			cmd := keyCommand(key)
			if cmd == cmdNone {
				continue
			}
			select {
			case cmds <- cmd:
			case <-ctx.Done():
				return
			}
		}
	}
}

// songIndex converts a 1-based song number given on the command line into a
// 0-based index. 0 selects the configured default.
func songIndex(song, cfgDefault int) int {
	if song > 0 {
		return song - 1
	}
	return cfgDefault
}

// tickPeriod returns the time between two play routine calls. The command
// line rate has precedence over the configured one, which has precedence over
// the rate of the current song.
func tickPeriod(rate, cfgRate int, p *emu.Player) time.Duration {
	switch {
	case rate > 0:
	case cfgRate > 0:
		rate = cfgRate
	default:
		rate = max(p.TickRate(), 1)
	}
	return max(time.Second/time.Duration(rate), time.Nanosecond)
}

// crlfWriter translates line feeds for terminals in raw mode.
type crlfWriter struct{ w io.Writer }

func (cw crlfWriter) Write(p []byte) (int, error) {
	if _, err := cw.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// sendLatest replaces any pending value of ch with d. ch must have a capacity
// of 1 and a single sender.
func sendLatest(ch chan time.Duration, d time.Duration) {
	select {
	case <-ch:
	default:
	}
	ch <- d
}

// playMain plays a sid file in real time: a ticker goroutine notifies the
// player, the processing loop runs the play routine and handles keyboard
// commands.
func playMain(args Play, cfg emu.Config, out *bufio.Writer) error {
	buf, err := os.ReadFile(args.SidPath)
	if err != nil {
		return err
	}

	p := emu.NewPlayer(cfg.CPU.Limits(), nil)
	if args.Trace != nil {
		defer args.Trace.Close()
		p.CPU.SetTraceOutput(args.Trace)
	}

	var (
		w      io.Writer = out
		errout io.Writer = os.Stderr
	)
	stdin := int(os.Stdin.Fd())
	interactive := term.IsTerminal(stdin)
	if interactive {
		state, err := term.MakeRaw(stdin)
		if err != nil {
			return fmt.Errorf("failed to set terminal raw mode: %w", err)
		}
		defer term.Restore(stdin, state)
		w = crlfWriter{out}
		errout = crlfWriter{os.Stderr}
	}

	var jw *sid.JSONWriter
	if args.JSON {
		jw = sid.NewJSONWriter(w, p)
		p.Chip.SetSink(jw)
	}

	if err := p.Load(buf, songIndex(args.Song, cfg.Playback.DefaultSong)); err != nil {
		return err
	}
	p.Header().PrintInfos(errout)
	if err := p.Play(true); err != nil {
		return err
	}

	var tw *sid.TextWriter
	if args.Regs {
		tw = sid.NewTextWriter(w)
		if err := tw.WriteHeader(); err != nil {
			return err
		}
	}

	status := func() {
		fmt.Fprintf(errout, "song %d/%d, %s\n", p.CurrentSong()+1, p.NumSongs(), p.State())
	}
	status()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	period := tickPeriod(args.Rate, cfg.Playback.TickRate, p)
	wake := make(chan struct{}, 1)
	periods := make(chan time.Duration, 1)
	cmds := make(chan command)
	if interactive {
		// Not part of g: a read on stdin can't be interrupted, so the
		// goroutine stays blocked after quit until the process exits.
		go readKeys(ctx, os.Stdin, cmds)
	}

	g.Go(func() error {
		t := time.NewTicker(period)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case d := <-periods:
				t.Reset(d)
			case <-t.C:
				p.Tick()
				select {
				case wake <- struct{}{}:
				default:
				}
			}
		}
	})

	g.Go(func() error {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return nil

			case cmd := <-cmds:
				var err error
				switch cmd {
				case cmdQuit:
					return nil
				case cmdPause:
					err = p.Play(!p.IsPlaying())
				case cmdNext:
					err = p.NextSong()
				case cmdPrev:
					err = p.PrevSong()
				}
				if err != nil {
					return err
				}
				if cmd == cmdNext || cmd == cmdPrev {
					sendLatest(periods, tickPeriod(args.Rate, cfg.Playback.TickRate, p))
				}
				status()

			case <-wake:
				frame := p.Frames()
				if err := p.Pump(); err != nil {
					return err
				}
				if p.Frames() == frame {
					continue
				}
				if tw != nil {
					if err := tw.WriteFrame(frame, p.Chip); err != nil {
						return err
					}
				}
				if jw != nil && jw.Err() != nil {
					return jw.Err()
				}
				if err := out.Flush(); err != nil {
					return err
				}
				if args.Frames != 0 && p.Frames() >= args.Frames {
					return nil
				}
			}
		}
	})

	err = g.Wait()
	log.ModPlayer.InfoZ("playback ended").
		Uint64("frames", p.Frames()).
		Uint64("dropped", p.DroppedTicks()).
		End()
	return err
}
