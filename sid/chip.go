// Package sid models the MOS 6581 SID register file, as seen from the CPU,
// and forwards register writes to a downstream sink.
package sid

import "sidplay/emu/log"

// NumRegs is the number of register offsets decoded by the chip.
const NumRegs = 32

// Register offsets.
const (
	FreqLo  = 0x00 // voice relative
	FreqHi  = 0x01 // voice relative
	PWLo    = 0x02 // voice relative
	PWHi    = 0x03 // voice relative
	Control = 0x04 // voice relative
	AD      = 0x05 // voice relative
	SR      = 0x06 // voice relative

	FCLo    = 0x15
	FCHi    = 0x16
	ResFilt = 0x17
	ModeVol = 0x18

	// NumWritable is the number of write-only registers, from $00 to $18.
	NumWritable = 0x19
)

// Control register bits.
const (
	Gate     = 0x01
	Sync     = 0x02
	RingMod  = 0x04
	Test     = 0x08
	Triangle = 0x10
	Sawtooth = 0x20
	Pulse    = 0x40
	Noise    = 0x80
)

var voiceBase = [3]uint8{0x00, 0x07, 0x0E}

// A Sink receives SID register writes, for example the transport to a real
// chip, a recorder or a trace writer.
type Sink interface {
	WriteReg(reg, val uint8)
}

// Chip is the state of one SID. It owns the register shadows, voices and
// filter are views over them, so all writes, whoever performs them, end up in
// the same place and reach the sink.
type Chip struct {
	Voices [3]Voice
	Filter Filter

	regs [NumRegs]uint8
	sink Sink
}

// NewChip returns a chip forwarding register writes to sink, which may be nil.
func NewChip(sink Sink) *Chip {
	c := &Chip{sink: sink}
	for i := range c.Voices {
		c.Voices[i] = Voice{chip: c, base: voiceBase[i]}
	}
	c.Filter = Filter{chip: c}
	return c
}

// SetSink replaces the sink receiving register writes.
func (c *Chip) SetSink(sink Sink) {
	c.sink = sink
}

// WriteReg writes val into register reg (taken modulo 32) and forwards it to
// the sink.
func (c *Chip) WriteReg(reg, val uint8) {
	reg &= NumRegs - 1
	c.regs[reg] = val
	if c.sink != nil {
		c.sink.WriteReg(reg, val)
	}
}

// Reg returns the last value written into register reg.
func (c *Chip) Reg(reg uint8) uint8 {
	return c.regs[reg&(NumRegs-1)]
}

// Regs returns a copy of all register shadows.
func (c *Chip) Regs() [NumRegs]uint8 {
	return c.regs
}

// Reset silences the chip by clearing all writable registers, through the
// sink.
func (c *Chip) Reset() {
	log.ModSID.DebugZ("reset").End()
	for reg := range uint8(NumWritable) {
		c.WriteReg(reg, 0)
	}
}

// Voice is a view over the registers of one of the 3 SID voices.
type Voice struct {
	chip *Chip
	base uint8
}

func (v Voice) reg(off uint8) uint8 { return v.chip.Reg(v.base + off) }

// Freq returns the 16-bit oscillator frequency.
func (v Voice) Freq() uint16 {
	return uint16(v.reg(FreqHi))<<8 | uint16(v.reg(FreqLo))
}

// PulseWidth returns the 12-bit pulse width.
func (v Voice) PulseWidth() uint16 {
	return uint16(v.reg(PWHi)&0x0F)<<8 | uint16(v.reg(PWLo))
}

// Control returns the control register.
func (v Voice) Control() uint8 { return v.reg(Control) }

// Envelope returns attack, decay, sustain and release.
func (v Voice) Envelope() (a, d, s, r uint8) {
	ad, sr := v.reg(AD), v.reg(SR)
	return ad >> 4, ad & 0x0F, sr >> 4, sr & 0x0F
}

// Filter is a view over the filter and volume registers.
type Filter struct {
	chip *Chip
}

// Cutoff returns the 11-bit filter cutoff frequency.
func (f Filter) Cutoff() uint16 {
	return uint16(f.chip.Reg(FCHi))<<3 | uint16(f.chip.Reg(FCLo)&0x07)
}

// ResFilt returns the resonance and voice routing register.
func (f Filter) ResFilt() uint8 { return f.chip.Reg(ResFilt) }

// ModeVol returns the filter mode and volume register.
func (f Filter) ModeVol() uint8 { return f.chip.Reg(ModeVol) }

var regNames = [NumRegs]string{
	"V1FreqLo", "V1FreqHi", "V1PWLo", "V1PWHi", "V1Ctrl", "V1AD", "V1SR",
	"V2FreqLo", "V2FreqHi", "V2PWLo", "V2PWHi", "V2Ctrl", "V2AD", "V2SR",
	"V3FreqLo", "V3FreqHi", "V3PWLo", "V3PWHi", "V3Ctrl", "V3AD", "V3SR",
	"FCLo", "FCHi", "ResFilt", "ModeVol",
	"PotX", "PotY", "Osc3", "Env3",
	"Unused1D", "Unused1E", "Unused1F",
}

// RegName returns the name of register reg.
func RegName(reg uint8) string {
	return regNames[reg&(NumRegs-1)]
}
