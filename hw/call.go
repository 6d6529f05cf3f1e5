package hw

import (
	"errors"
	"fmt"

	"sidplay/emu/log"
)

// ErrTimeout is returned when a routine doesn't return within the CPU
// limits.
var ErrTimeout = errors.New("routine did not return")

// Limits bounds the execution of a routine started by Call or CallIRQ. A zero
// field means no limit for that dimension.
type Limits struct {
	MaxInstructions uint64
	MaxCycles       uint64
}

// DefaultLimits are large enough for any init routine, including the ones
// that depack or precompute tables.
var DefaultLimits = Limits{
	MaxInstructions: 1_000_000,
	MaxCycles:       20_000_000,
}

// Kernal IRQ exit points. Without ROM, jumping there means the handler is done.
const (
	kernalIRQExit    = uint16(0xEA31)
	kernalIRQExitAlt = uint16(0xEA81)
)

func (c *CPU) resetFor(entry uint16, a uint8) {
	c.A = a
	c.X = 0
	c.Y = 0
	c.P = 0
	c.SP = 0xFF
	c.PC = entry
}

// Call runs the subroutine at entry with A set to a, and returns when it
// executes its final RTS. The return address pushed on the stack makes RTS
// land on $0000, which ends the call: a routine that legitimately jumps to
// $0000 ends early.
func (c *CPU) Call(entry uint16, a uint8) error {
	c.resetFor(entry, a)
	// RTS pulls $FFFF and adds one.
	c.push16(0xFFFF)
	return c.runUntilReturn(entry, false)
}

// CallIRQ runs the interrupt handler at entry until it returns with RTI, or
// jumps to the kernal IRQ exit points ($EA31, $EA81) while the kernal is
// banked in.
func (c *CPU) CallIRQ(entry uint16) error {
	c.resetFor(entry, 0)
	c.push16(0x0000)
	c.push8(uint8(c.P))
	return c.runUntilReturn(entry, true)
}

func (c *CPU) runUntilReturn(entry uint16, irq bool) error {
	log.AddContext(c)
	defer log.RemoveContext(c)

	var ninstr, ncycles uint64
	for c.PC != 0x0000 {
		if irq && c.atKernalExit() {
			break
		}
		if c.Limits.exceeded(ninstr, ncycles) {
			log.ModCPU.WarnZ("routine timed out").
				Hex16("entry", entry).
				Uint64("instructions", ninstr).
				Uint64("cycles", ncycles).
				End()
			return fmt.Errorf("routine at $%04X: %w after %d instructions", entry, ErrTimeout, ninstr)
		}
		ncycles += uint64(c.Step())
		ninstr++
	}
	return nil
}

func (l Limits) exceeded(ninstr, ncycles uint64) bool {
	if l.MaxInstructions != 0 && ninstr >= l.MaxInstructions {
		return true
	}
	return l.MaxCycles != 0 && ncycles >= l.MaxCycles
}

func (c *CPU) atKernalExit() bool {
	if c.PC != kernalIRQExit && c.PC != kernalIRQExitAlt {
		return false
	}
	// With $01&7 == 5, $E000-$FFFF is RAM and the handler really lives there.
	return c.peek8(ProcPort)&0x07 != 0x05
}
