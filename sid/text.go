package sid

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// TextWriter prints one row per frame with the SID register state, in the
// style of siddump. Values unchanged since the previous row are shown as dots.
//
//	| Frame | Freq Ct ADSR PuW  | Freq Ct ADSR PuW  | Freq Ct ADSR PuW  | FCut RF MV |
//	|     0 | 1CD6 41 0F0A 0800 | .... .. .... .... | .... .. .... .... | 0000 00 0F |
type TextWriter struct {
	w     io.Writer
	buf   bytes.Buffer
	prev  [NumRegs]uint8
	first bool
}

// NewTextWriter returns a TextWriter writing to w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w, first: true}
}

const textHeader = "| Frame | Freq Ct ADSR PuW  | Freq Ct ADSR PuW  | Freq Ct ADSR PuW  | FCut RF MV |"

// WriteHeader writes the table header.
func (tw *TextWriter) WriteHeader() error {
	sep := strings.Map(func(r rune) rune {
		if r == '|' {
			return '+'
		}
		return '-'
	}, textHeader)

	_, err := fmt.Fprintf(tw.w, "%s\n%s\n", textHeader, sep)
	return err
}

// WriteFrame writes the row of frame, given the chip state at the end of
// that frame.
func (tw *TextWriter) WriteFrame(frame uint64, chip *Chip) error {
	regs := chip.Regs()
	tw.buf.Reset()
	fmt.Fprintf(&tw.buf, "| %5d |", frame)

	for i, v := range chip.Voices {
		base := voiceBase[i]
		tw.word(tw.changed(regs, base+FreqHi, base+FreqLo), v.Freq())
		tw.byte(tw.changed(regs, base+Control), v.Control())
		a, d, s, r := v.Envelope()
		tw.word(tw.changed(regs, base+AD, base+SR), uint16(a)<<12|uint16(d)<<8|uint16(s)<<4|uint16(r))
		tw.word(tw.changed(regs, base+PWHi, base+PWLo), v.PulseWidth())
		tw.buf.WriteString(" |")
	}
	tw.word(tw.changed(regs, FCHi, FCLo), chip.Filter.Cutoff())
	tw.byte(tw.changed(regs, ResFilt), chip.Filter.ResFilt())
	tw.byte(tw.changed(regs, ModeVol), chip.Filter.ModeVol())
	tw.buf.WriteString(" |\n")

	tw.prev = regs
	tw.first = false
	_, err := tw.w.Write(tw.buf.Bytes())
	return err
}

func (tw *TextWriter) changed(regs [NumRegs]uint8, rr ...uint8) bool {
	if tw.first {
		return true
	}
	for _, r := range rr {
		if regs[r] != tw.prev[r] {
			return true
		}
	}
	return false
}

func (tw *TextWriter) word(changed bool, val uint16) {
	if !changed {
		tw.buf.WriteString(" ....")
		return
	}
	fmt.Fprintf(&tw.buf, " %04X", val)
}

func (tw *TextWriter) byte(changed bool, val uint8) {
	if !changed {
		tw.buf.WriteString(" ..")
		return
	}
	fmt.Fprintf(&tw.buf, " %02X", val)
}
