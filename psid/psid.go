// Package psid implements a parser for the PSID and RSID file formats, used
// for the distribution of Commodore 64 music.
package psid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"sidplay/emu/log"
)

const (
	MagicPSID = "PSID"
	MagicRSID = "RSID"

	// MinSize is the size of the smallest header a file can have (v1).
	MinSize = 0x7C
)

// ErrFormat is returned when a buffer doesn't hold a valid PSID/RSID file.
var ErrFormat = errors.New("invalid sid file")

// Header holds the metadata of a sid file and gives access to its program
// image.
type Header struct {
	Magic      string
	Version    uint16
	DataOffset int

	LoadAddr uint16 // where the program image is placed.
	InitAddr uint16 // init routine, called with the song index in A.
	PlayAddr uint16 // play routine, 0 if installed by init as an interrupt handler.

	Songs     int    // number of songs
	StartSong int    // default song, 1-based
	Speed     uint32 // bit n is set if song n+1 uses CIA timing.
	Flags     uint16 // v2+ only

	Title    string
	Author   string
	Released string

	payload []byte
}

// Open loads and parses a sid file.
func Open(path string) (*Header, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(buf)
}

// Parse decodes a PSID/RSID file. The returned header references buf.
func Parse(buf []byte) (*Header, error) {
	if len(buf) < MinSize {
		return nil, fmt.Errorf("%w: too small, needs %d bytes, got %d", ErrFormat, MinSize, len(buf))
	}

	hdr := &Header{Magic: string(buf[:4])}
	if hdr.Magic != MagicPSID && hdr.Magic != MagicRSID {
		return nil, fmt.Errorf("%w: invalid magic number %q", ErrFormat, hdr.Magic)
	}

	be := binary.BigEndian
	hdr.Version = be.Uint16(buf[0x04:])
	hdr.DataOffset = int(buf[0x07])
	hdr.LoadAddr = be.Uint16(buf[0x08:])
	hdr.InitAddr = be.Uint16(buf[0x0A:])
	hdr.PlayAddr = be.Uint16(buf[0x0C:])
	hdr.Songs = int(buf[0x0F])
	hdr.StartSong = int(buf[0x11])
	hdr.Speed = be.Uint32(buf[0x12:])
	hdr.Title = text(buf[0x16:0x36])
	hdr.Author = text(buf[0x36:0x56])
	hdr.Released = text(buf[0x56:0x76])
	if hdr.DataOffset >= 0x78 {
		hdr.Flags = be.Uint16(buf[0x76:])
	}

	// The program image starts with its own little-endian load address.
	if len(buf) < hdr.DataOffset+2 {
		return nil, fmt.Errorf("%w: data offset $%02X beyond end of file", ErrFormat, hdr.DataOffset)
	}
	if hdr.LoadAddr == 0 {
		hdr.LoadAddr = binary.LittleEndian.Uint16(buf[hdr.DataOffset:])
	}
	if hdr.LoadAddr == 0 {
		return nil, fmt.Errorf("%w: null load address", ErrFormat)
	}

	hdr.payload = buf[hdr.DataOffset+2:]
	if end := int(hdr.LoadAddr) + len(hdr.payload); end > 0x10000 {
		return nil, fmt.Errorf("%w: image $%04X-$%X overflows memory", ErrFormat, hdr.LoadAddr, end-1)
	}

	log.ModPSID.DebugZ("parsed header").
		String("magic", hdr.Magic).
		Hex16("load", hdr.LoadAddr).
		Hex16("init", hdr.InitAddr).
		Hex16("play", hdr.PlayAddr).
		Int("songs", hdr.Songs).
		Int("size", len(hdr.payload)).
		End()

	return hdr, nil
}

// text decodes a NUL-terminated Latin-1 string.
func text(b []byte) string {
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		b = b[:i]
	}
	s, _, err := transform.String(charmap.ISO8859_1.NewDecoder(), string(b))
	if err != nil {
		return string(b)
	}
	return s
}

// Payload returns the program image, to be placed at LoadAddr.
func (hdr *Header) Payload() []byte {
	return hdr.payload
}

// IsRSID reports whether the file requires a real C64 environment.
func (hdr *Header) IsRSID() bool {
	return hdr.Magic == MagicRSID
}

// StartIndex returns the 0-based index of the default song.
func (hdr *Header) StartIndex() int {
	idx := hdr.StartSong - 1
	if idx < 0 || idx >= hdr.Songs {
		return 0
	}
	return idx
}

// Clock returns the video standard the tune was written for.
func (hdr *Header) Clock() Clock {
	return Clock(hdr.Flags>>2) & 0x03
}

// SpeedIsCIA reports whether the song at 0-based index song is driven by a
// CIA timer rather than by the vertical blank interrupt. Songs above 32 share
// the setting of song 32.
func (hdr *Header) SpeedIsCIA(song int) bool {
	song = min(max(song, 0), 31)
	return hdr.Speed&(1<<song) != 0
}

// TickRate returns the number of times per second the play routine of a
// song should be called.
func (hdr *Header) TickRate(song int) int {
	if hdr.SpeedIsCIA(song) {
		// Default CIA timer value set by the kernal.
		return 60
	}
	return hdr.Clock().FrameRate()
}

// PrintInfos writes a human readable description of the header to w.
func (hdr *Header) PrintInfos(w io.Writer) {
	fmt.Fprintf(w, "Format    : %s v%d\n", hdr.Magic, hdr.Version)
	fmt.Fprintf(w, "Title     : %s\n", hdr.Title)
	fmt.Fprintf(w, "Author    : %s\n", hdr.Author)
	fmt.Fprintf(w, "Released  : %s\n", hdr.Released)
	fmt.Fprintf(w, "Load      : $%04X-$%04X\n", hdr.LoadAddr, int(hdr.LoadAddr)+len(hdr.payload)-1)
	fmt.Fprintf(w, "Init      : $%04X\n", hdr.InitAddr)
	if hdr.PlayAddr == 0 {
		fmt.Fprintf(w, "Play      : from IRQ vector\n")
	} else {
		fmt.Fprintf(w, "Play      : $%04X\n", hdr.PlayAddr)
	}
	fmt.Fprintf(w, "Songs     : %d (start %d)\n", hdr.Songs, hdr.StartIndex()+1)
	fmt.Fprintf(w, "Clock     : %s\n", hdr.Clock())
	fmt.Fprintf(w, "Speed     : $%08X\n", hdr.Speed)
}

// Clock is the video standard a tune targets.
type Clock uint8

const (
	ClockUnknown Clock = iota
	ClockPAL
	ClockNTSC
	ClockAny
)

func (c Clock) String() string {
	switch c {
	case ClockPAL:
		return "PAL"
	case ClockNTSC:
		return "NTSC"
	case ClockAny:
		return "PAL/NTSC"
	}
	return "unknown"
}

// Freq returns the CPU frequency in Hz. Unknown and Any are PAL.
func (c Clock) Freq() int {
	if c == ClockNTSC {
		return 1022727
	}
	return 985248
}

// FrameRate returns the vertical blank frequency in Hz.
func (c Clock) FrameRate() int {
	if c == ClockNTSC {
		return 60
	}
	return 50
}
