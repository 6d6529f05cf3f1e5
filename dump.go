package main

import (
	"cmp"
	"fmt"
	"io"
	"os"

	"sidplay/emu"
	"sidplay/sid"
)

// dumpMain runs the play routine of a sid file for a number of frames, as
// fast as possible, and writes the SID register writes to w.
func dumpMain(args Dump, cfg emu.Config, w io.Writer) error {
	buf, err := os.ReadFile(args.SidPath)
	if err != nil {
		return err
	}

	p := emu.NewPlayer(cfg.CPU.Limits(), nil)
	if args.Trace != nil {
		defer args.Trace.Close()
		p.CPU.SetTraceOutput(args.Trace)
	}
	return dump(p, buf, dumpOptions{
		song:   songIndex(args.Song, cfg.Playback.DefaultSong),
		frames: cmp.Or(args.Frames, uint64(cfg.Playback.Frames)),
		json:   args.JSON,
	}, w)
}

type dumpOptions struct {
	song   int
	frames uint64
	json   bool
}

func dump(p *emu.Player, buf []byte, opts dumpOptions, w io.Writer) error {
	var jw *sid.JSONWriter
	if opts.json {
		jw = sid.NewJSONWriter(w, p)
		p.Chip.SetSink(jw)
	}

	if err := p.Load(buf, opts.song); err != nil {
		return err
	}
	if err := p.Play(true); err != nil {
		return err
	}

	var tw *sid.TextWriter
	if !opts.json {
		tw = sid.NewTextWriter(w)
		if err := tw.WriteHeader(); err != nil {
			return err
		}
	}

	for frame := range opts.frames {
		p.Tick()
		if err := p.Pump(); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		if tw != nil {
			if err := tw.WriteFrame(frame, p.Chip); err != nil {
				return err
			}
		}
	}

	if jw != nil {
		return jw.Err()
	}
	return nil
}
