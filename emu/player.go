package emu

import (
	"errors"
	"fmt"
	"sync/atomic"

	"sidplay/emu/log"
	"sidplay/hw"
	"sidplay/hw/hwio"
	"sidplay/psid"
	"sidplay/sid"
)

// DefaultSong selects the start song declared in the file header.
const DefaultSong = -1

var (
	// ErrNotLoaded is returned by operations requiring a loaded file.
	ErrNotLoaded = errors.New("no sid file loaded")

	// ErrUnresolvedEntry is returned when the play routine address is
	// neither in the header nor installed by init in an interrupt vector.
	ErrUnresolvedEntry = errors.New("unresolved play address")
)

// State is the playback state of a Player.
type State uint8

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// procPortDefault is the value of the 6510 processor port after the kernal
// boots: BASIC, kernal and I/O banked in.
const procPortDefault = 0x37

// Player runs the routines of a sid file on the emulated CPU.
//
// Tick is the only method that can be called concurrently with the others,
// everything else must be called from a single goroutine.
type Player struct {
	Mem  *hw.AddressSpace
	CPU  *hw.CPU
	Chip *sid.Chip

	hdr   *psid.Header
	song  int
	state State

	play uint16 // play routine, 0 until resolved
	irq  bool   // play routine is an interrupt handler

	frames     uint64
	frameStart uint64 // CPU cycle count when the current routine started

	pending     atomic.Bool
	dropped     atomic.Uint64
	seenDropped uint64
}

// NewPlayer returns a stopped player with nothing loaded. SID register writes
// are forwarded to sink, which may be nil.
func NewPlayer(limits hw.Limits, sink sid.Sink) *Player {
	chip := sid.NewChip(sink)
	mem := hw.NewAddressSpace(chip)
	cpu := hw.NewCPU(mem)
	cpu.Limits = limits

	return &Player{
		Mem:  mem,
		CPU:  cpu,
		Chip: chip,
	}
}

// Load parses buf as a sid file, places its program image in a cleared
// memory and runs the init routine for song, a 0-based index. DefaultSong
// selects the start song of the file, out of range indices select the first
// song. If buf is not a valid sid file, the current session is left
// untouched.
func (p *Player) Load(buf []byte, song int) error {
	hdr, err := psid.Parse(buf)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	if song == DefaultSong {
		song = hdr.StartIndex()
	}
	if song < 0 || song >= max(hdr.Songs, 1) {
		song = 0
	}

	p.Mem.Clear()
	p.Chip.Reset()
	p.Mem.Load(hdr.LoadAddr, hdr.Payload())
	p.Mem.Write8(hw.ProcPort, procPortDefault)
	p.CPU.Reset()

	p.hdr = hdr
	p.song = song
	p.play = hdr.PlayAddr
	p.irq = false
	p.frames = 0
	p.pending.Store(false)

	if err := p.initSong(); err != nil {
		// Memory is gone, there's nothing to go back to.
		p.hdr = nil
		p.state = Stopped
		p.Chip.Reset()
		return fmt.Errorf("load: %w", err)
	}

	log.ModPlayer.InfoZ("loaded").
		String("title", hdr.Title).
		String("author", hdr.Author).
		Int("song", song).
		Int("songs", hdr.Songs).
		End()
	return nil
}

func (p *Player) initSong() error {
	p.frameStart = p.CPU.Total
	if err := p.CPU.Call(p.hdr.InitAddr, uint8(p.song)); err != nil {
		return fmt.Errorf("init song %d: %w", p.song, err)
	}
	return nil
}

// Play starts or stops playback. Starting without a loaded file fails with
// ErrNotLoaded.
func (p *Player) Play(play bool) error {
	if play && p.hdr == nil {
		return ErrNotLoaded
	}
	if play {
		p.state = Playing
	} else {
		p.state = Stopped
	}
	return nil
}

func (p *Player) IsPlaying() bool { return p.state == Playing }
func (p *Player) State() State    { return p.state }

// NextSong switches to the next song, if any, by running init again. Memory
// and sound chip state are kept as the previous song left them.
func (p *Player) NextSong() error {
	if p.hdr == nil {
		return ErrNotLoaded
	}
	if p.song >= p.hdr.Songs-1 {
		return nil
	}
	p.song++
	return p.switchSong()
}

// PrevSong switches to the previous song, if any. See NextSong.
func (p *Player) PrevSong() error {
	if p.hdr == nil {
		return ErrNotLoaded
	}
	if p.song == 0 {
		return nil
	}
	p.song--
	return p.switchSong()
}

func (p *Player) switchSong() error {
	log.ModPlayer.InfoZ("song change").Int("song", p.song).End()
	p.CPU.Reset()
	return p.initSong()
}

// Header returns the header of the loaded file, or nil.
func (p *Player) Header() *psid.Header { return p.hdr }

func (p *Player) Title() string     { return p.field(func(h *psid.Header) string { return h.Title }) }
func (p *Player) Author() string    { return p.field(func(h *psid.Header) string { return h.Author }) }
func (p *Player) Copyright() string { return p.field(func(h *psid.Header) string { return h.Released }) }

func (p *Player) field(get func(*psid.Header) string) string {
	if p.hdr == nil {
		return ""
	}
	return get(p.hdr)
}

// NumSongs returns the number of songs of the loaded file, 0 if none.
func (p *Player) NumSongs() int {
	if p.hdr == nil {
		return 0
	}
	return p.hdr.Songs
}

// CurrentSong returns the 0-based index of the current song.
func (p *Player) CurrentSong() int { return p.song }

// TickRate returns how many times per second the current song expects its
// play routine to be called, 0 if nothing is loaded.
func (p *Player) TickRate() int {
	if p.hdr == nil {
		return 0
	}
	return p.hdr.TickRate(p.song)
}

// Tick notifies the player that the play routine is due. It is safe to call
// from any goroutine. Ticks are not queued: a tick arriving before the
// previous one has been consumed by Pump is dropped.
func (p *Player) Tick() {
	if p.pending.Swap(true) {
		p.dropped.Add(1)
	}
}

// DroppedTicks returns the number of ticks dropped so far.
func (p *Player) DroppedTicks() uint64 { return p.dropped.Load() }

// Pump consumes the pending tick, if any, and runs the play routine once when
// playing.
func (p *Player) Pump() error {
	if !p.pending.Swap(false) {
		return nil
	}
	if dropped := p.dropped.Load(); dropped != p.seenDropped {
		log.ModPlayer.DebugZ("dropped ticks").
			Uint64("count", dropped-p.seenDropped).
			Uint64("frame", p.frames).
			End()
		p.seenDropped = dropped
	}
	if p.state != Playing || p.hdr == nil {
		return nil
	}

	if p.play == 0 {
		if err := p.resolvePlay(); err != nil {
			return err
		}
	}

	p.frameStart = p.CPU.Total
	var err error
	if p.irq {
		err = p.CPU.CallIRQ(p.play)
	} else {
		err = p.CPU.Call(p.play, 0)
	}
	p.frames++
	if err != nil {
		return fmt.Errorf("play frame %d: %w", p.frames-1, err)
	}
	return nil
}

// resolvePlay finds the interrupt handler installed by init. It lives in the
// kernal RAM vector, unless the kernal is banked out, in which case the
// hardware vector is used directly.
func (p *Player) resolvePlay() error {
	vec := hw.KernalIRQVector
	if p.Mem.Peek8(hw.ProcPort)&0x07 == 0x05 {
		vec = hw.IRQVector
	}

	p.play = hwio.Peek16(p.Mem, vec)
	if p.play == 0 {
		return fmt.Errorf("%w: header and vector at $%04X are both 0", ErrUnresolvedEntry, vec)
	}
	p.irq = true

	log.ModPlayer.DebugZ("resolved play address").
		Hex16("vector", vec).
		Hex16("play", p.play).
		End()
	return nil
}

// Frames returns the number of play routine invocations since the file was
// loaded.
func (p *Player) Frames() uint64 { return p.frames }

// Now implements sid.Clock. It returns the current frame and the number of
// cycles since the start of the running routine.
func (p *Player) Now() (frame, cycle uint64) {
	return p.frames, p.CPU.Total - p.frameStart
}
