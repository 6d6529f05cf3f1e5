package hw

// Base cycle cost of reading an operand, per addressing mode. abx, aby and
// izy take one more cycle when indexing crosses a page.
var fetchCycles = [...]uint32{
	Imp: 2, Imm: 2, Abs: 4, Abx: 4, Aby: 4, Zpg: 3, Zpx: 4, Zpy: 4,
	Ind: 5, Izx: 6, Izy: 5, Acc: 2, Rel: 2,
}

// Cycle cost of store instructions, per addressing mode.
var storeCycles = [...]uint32{
	Imp: 2, Imm: 2, Abs: 4, Abx: 5, Aby: 5, Zpg: 3, Zpx: 4, Zpy: 4,
	Ind: 5, Izx: 6, Izy: 6, Acc: 2, Rel: 2,
}

// effective computes the effective address of an instruction whose operand
// bytes start at pc, without moving PC. For relative mode it returns the
// branch target. crossed is set when indexing moved abx, aby or izy to
// another page.
func (c *CPU) effective(mode Mode, pc uint16, peek bool) (addr uint16, crossed bool) {
	rd := c.Read8
	if peek {
		rd = c.peek8
	}
	word := func(a uint16) uint16 {
		return uint16(rd(a+1))<<8 | uint16(rd(a))
	}
	// 16-bit pointer stored in zero page, wrapping within it.
	zpword := func(zp uint8) uint16 {
		return uint16(rd(uint16(zp+1)))<<8 | uint16(rd(uint16(zp)))
	}

	switch mode {
	case Imm:
		addr = pc
	case Zpg:
		addr = uint16(rd(pc))
	case Zpx:
		addr = uint16(rd(pc) + c.X)
	case Zpy:
		addr = uint16(rd(pc) + c.Y)
	case Abs:
		addr = word(pc)
	case Abx:
		base := word(pc)
		addr = base + uint16(c.X)
		crossed = pagecrossed(base, addr)
	case Aby:
		base := word(pc)
		addr = base + uint16(c.Y)
		crossed = pagecrossed(base, addr)
	case Ind:
		// The high byte of the pointer is not incremented when its low
		// byte is $FF: JMP ($10FF) reads $10FF and $1000.
		ptr := word(pc)
		lo := rd(ptr)
		hi := rd(ptr&0xFF00 | uint16(uint8(ptr)+1))
		addr = uint16(hi)<<8 | uint16(lo)
	case Izx:
		addr = zpword(rd(pc) + c.X)
	case Izy:
		base := zpword(rd(pc))
		addr = base + uint16(c.Y)
		crossed = pagecrossed(base, addr)
	case Rel:
		off := int8(rd(pc))
		addr = pc + 1 + uint16(off)
	}
	return addr, crossed
}

// operand consumes the operand bytes of mode and returns the effective
// address.
func (c *CPU) operand(mode Mode) (addr uint16, crossed bool) {
	addr, crossed = c.effective(mode, c.PC, false)
	c.PC += uint16(mode.OperandSize())
	return addr, crossed
}

// fetchOperand consumes the operand bytes of mode and returns the value it
// designates: the accumulator for Acc, nothing for Imp.
func (c *CPU) fetchOperand(mode Mode) uint8 {
	switch mode {
	case Imp:
		c.Cycles += fetchCycles[Imp]
		return 0
	case Acc:
		c.Cycles += fetchCycles[Acc]
		return c.A
	}

	addr, crossed := c.operand(mode)
	c.Cycles += fetchCycles[mode] + b2u32(crossed)
	return c.Read8(addr)
}

// storeResult writes the result of a read-modify-write instruction back to
// the location fetchOperand just read. The effective address is derived
// again from the operand bytes preceding PC, none are consumed.
func (c *CPU) storeResult(mode Mode, val uint8) {
	if mode == Acc {
		c.A = val
		return
	}

	pc := c.PC - uint16(mode.OperandSize())
	addr, crossed := c.effective(mode, pc, true)
	c.Cycles += 2
	if mode == Abx && !crossed {
		// abs,X read-modify-write always takes 7 cycles.
		c.Cycles++
	}
	c.Write8(addr, val)
}

// storeFresh consumes the operand bytes of mode and writes val to the
// effective address, without reading it first.
func (c *CPU) storeFresh(mode Mode, val uint8) {
	c.Cycles += storeCycles[mode]
	if mode == Acc {
		c.A = val
		return
	}

	addr, _ := c.operand(mode)
	c.Write8(addr, val)
}

// branch consumes the displacement byte and jumps if cond is true. A taken
// branch costs 1 more cycle, 2 if it lands on another page.
func (c *CPU) branch(cond bool) {
	target, _ := c.operand(Rel)
	c.Cycles += fetchCycles[Rel]
	if !cond {
		return
	}

	c.Cycles++
	if pagecrossed(c.PC, target) {
		c.Cycles++
	}
	c.PC = target
}
