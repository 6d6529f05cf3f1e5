package hw

import (
	"io"

	"sidplay/emu/log"
	"sidplay/hw/hwio"
)

// CPU is a MOS 6502 interpreter. It executes one instruction per Step and
// accesses memory only through its bus.
type CPU struct {
	Bus hwio.BankIO8

	// Execution limits enforced by Call and CallIRQ.
	Limits Limits

	// cpu registers
	A, X, Y, SP uint8
	PC          uint16
	P           P

	Cycles       uint32 // cycles of the current instruction, reset at decode
	Total        uint64 // cycles executed since creation
	Instructions uint64 // instructions executed since creation
	IllegalOps   uint64 // undocumented opcodes executed since creation

	// Non-nil when execution tracing is enabled.
	tracer *tracer
}

// NewCPU creates a new CPU attached to bus.
func NewCPU(bus hwio.BankIO8) *CPU {
	return &CPU{
		Bus: bus,
		SP:  0xFF,
	}
}

// Reset puts the CPU in its canonical state: A, X, Y and P are cleared, the
// stack is emptied and PC is loaded from the reset vector.
func (c *CPU) Reset() {
	c.A = 0x00
	c.X = 0x00
	c.Y = 0x00
	c.SP = 0xFF
	c.P = 0x00

	// Directly read from the bus to avoid side effects.
	c.PC = hwio.Peek16(c.Bus, ResetVector)
}

// Step executes one instruction and returns the number of cycles it took.
func (c *CPU) Step() uint32 {
	c.traceOp()

	opcode := c.Read8(c.PC)
	c.PC++
	in := Decode(opcode)

	c.Cycles = 0
	c.exec(in)

	c.Total += uint64(c.Cycles)
	c.Instructions++
	return c.Cycles
}

func (c *CPU) Read8(addr uint16) uint8 {
	return c.Bus.Read8(addr, false)
}

func (c *CPU) Write8(addr uint16, val uint8) {
	c.Bus.Write8(addr, val)
}

func (c *CPU) Read16(addr uint16) uint16 {
	return hwio.Read16(c.Bus, addr)
}

func (c *CPU) peek8(addr uint16) uint8 {
	return c.Bus.Read8(addr, true)
}

/* stack operations */

func (c *CPU) push8(val uint8) {
	top := uint16(c.SP) + 0x0100
	c.Write8(top, val)
	c.SP -= 1
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val & 0xff))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	top := uint16(c.SP) + 0x0100
	return c.Read8(top)
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

/* tracing / logging */

// SetTraceOutput enables the execution trace, one line per instruction, or
// disables it if w is nil.
func (c *CPU) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w, d: c}
}

func (c *CPU) traceOp() {
	if c.tracer != nil {
		c.tracer.write(cpuState{
			A:     c.A,
			X:     c.X,
			Y:     c.Y,
			P:     c.P,
			SP:    c.SP,
			PC:    c.PC,
			Clock: c.Total,
		})
	}
}

// AddLogContext tags log entries with the current PC.
func (c *CPU) AddLogContext(z *log.EntryZ) {
	z.Hex16("pc", c.PC)
}
