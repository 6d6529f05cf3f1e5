package hw

import "sidplay/emu/log"

// exec runs the semantics of a decoded instruction. The opcode byte has
// already been consumed.
func (c *CPU) exec(in Instr) {
	switch in.Mnemonic {
	case ILL:
		c.IllegalOps++
		log.ModCPU.DebugZ("illegal opcode").
			Hex8("opcode", in.Opcode).
			End()
		c.Cycles += 2

	// load/store
	case LDA:
		c.A = c.fetchOperand(in.Mode)
		c.P.checkNZ(c.A)
	case LDX:
		c.X = c.fetchOperand(in.Mode)
		c.P.checkNZ(c.X)
	case LDY:
		c.Y = c.fetchOperand(in.Mode)
		c.P.checkNZ(c.Y)
	case STA:
		c.storeFresh(in.Mode, c.A)
	case STX:
		c.storeFresh(in.Mode, c.X)
	case STY:
		c.storeFresh(in.Mode, c.Y)

	// arithmetic/logic
	case ADC:
		c.add(c.fetchOperand(in.Mode))
	case SBC:
		c.add(^c.fetchOperand(in.Mode))
	case AND:
		c.A &= c.fetchOperand(in.Mode)
		c.P.checkNZ(c.A)
	case ORA:
		c.A |= c.fetchOperand(in.Mode)
		c.P.checkNZ(c.A)
	case EOR:
		c.A ^= c.fetchOperand(in.Mode)
		c.P.checkNZ(c.A)
	case CMP:
		c.compare(c.A, c.fetchOperand(in.Mode))
	case CPX:
		c.compare(c.X, c.fetchOperand(in.Mode))
	case CPY:
		c.compare(c.Y, c.fetchOperand(in.Mode))
	case BIT:
		val := c.fetchOperand(in.Mode)
		c.P.checkZ(c.A & val)
		c.P.checkN(val)
		c.P = c.P.SetOverflow(val&0x40 != 0)

	// read-modify-write
	case ASL:
		val := c.fetchOperand(in.Mode)
		c.P = c.P.SetCarry(val&0x80 != 0)
		val <<= 1
		c.P.checkNZ(val)
		c.storeResult(in.Mode, val)
	case LSR:
		val := c.fetchOperand(in.Mode)
		c.P = c.P.SetCarry(val&0x01 != 0)
		val >>= 1
		c.P.checkNZ(val)
		c.storeResult(in.Mode, val)
	case ROL:
		val := c.fetchOperand(in.Mode)
		carry := b2u8(c.P.Carry())
		c.P = c.P.SetCarry(val&0x80 != 0)
		val = val<<1 | carry
		c.P.checkNZ(val)
		c.storeResult(in.Mode, val)
	case ROR:
		val := c.fetchOperand(in.Mode)
		carry := b2u8(c.P.Carry())
		c.P = c.P.SetCarry(val&0x01 != 0)
		val = val>>1 | carry<<7
		c.P.checkNZ(val)
		c.storeResult(in.Mode, val)
	case INC:
		val := c.fetchOperand(in.Mode) + 1
		c.P.checkNZ(val)
		c.storeResult(in.Mode, val)
	case DEC:
		val := c.fetchOperand(in.Mode) - 1
		c.P.checkNZ(val)
		c.storeResult(in.Mode, val)

	// register increments and transfers
	case INX:
		c.X++
		c.implied(c.X)
	case INY:
		c.Y++
		c.implied(c.Y)
	case DEX:
		c.X--
		c.implied(c.X)
	case DEY:
		c.Y--
		c.implied(c.Y)
	case TAX:
		c.X = c.A
		c.implied(c.X)
	case TAY:
		c.Y = c.A
		c.implied(c.Y)
	case TXA:
		c.A = c.X
		c.implied(c.A)
	case TYA:
		c.A = c.Y
		c.implied(c.A)
	case TSX:
		c.X = c.SP
		c.implied(c.X)
	case TXS:
		c.SP = c.X
		c.Cycles += 2

	// flags
	case CLC:
		c.setFlag(Carry, false)
	case SEC:
		c.setFlag(Carry, true)
	case CLD:
		c.setFlag(Decimal, false)
	case SED:
		c.setFlag(Decimal, true)
	case CLI:
		c.setFlag(Interrupt, false)
	case SEI:
		c.setFlag(Interrupt, true)
	case CLV:
		c.setFlag(Overflow, false)

	// stack
	case PHA:
		c.push8(c.A)
		c.Cycles += 3
	case PHP:
		c.push8(uint8(c.P | Break | Reserved))
		c.Cycles += 3
	case PLA:
		c.A = c.pull8()
		c.P.checkNZ(c.A)
		c.Cycles += 4
	case PLP:
		c.P = P(c.pull8()) &^ (Break | Reserved)
		c.Cycles += 4

	// control flow
	case BCC:
		c.branch(!c.P.Carry())
	case BCS:
		c.branch(c.P.Carry())
	case BNE:
		c.branch(!c.P.Zero())
	case BEQ:
		c.branch(c.P.Zero())
	case BPL:
		c.branch(!c.P.Negative())
	case BMI:
		c.branch(c.P.Negative())
	case BVC:
		c.branch(!c.P.Overflow())
	case BVS:
		c.branch(c.P.Overflow())
	case JMP:
		c.PC, _ = c.operand(in.Mode)
		if in.Mode == Ind {
			c.Cycles += 5
		} else {
			c.Cycles += 3
		}
	case JSR:
		addr, _ := c.operand(Abs)
		c.push16(c.PC - 1)
		c.PC = addr
		c.Cycles += 6
	case RTS:
		c.PC = c.pull16() + 1
		c.Cycles += 6
	case RTI:
		c.P = P(c.pull8()) &^ (Break | Reserved)
		c.PC = c.pull16()
		c.Cycles += 6
	case BRK:
		// BRK is followed by a padding byte, skipped on return.
		c.push16(c.PC + 1)
		c.push8(uint8(c.P | Break | Reserved))
		c.P = c.P.SetIntDisable(true)
		c.PC = c.Read16(IRQVector)
		c.Cycles += 7
	case NOP:
		c.Cycles += 2
	}
}

// add performs a binary addition with carry, SBC adds the complement. The
// decimal flag is ignored.
func (c *CPU) add(val uint8) {
	res := uint16(c.A) + uint16(val) + uint16(b2u8(c.P.Carry()))
	c.P.checkCNV(res)
	c.A = uint8(res)
}

func (c *CPU) compare(reg, val uint8) {
	c.P = c.P.SetCarry(reg >= val)
	c.P.checkNZ(reg - val)
}

func (c *CPU) implied(val uint8) {
	c.P.checkNZ(val)
	c.Cycles += 2
}

func (c *CPU) setFlag(flag P, v bool) {
	c.P = c.P.set(flag, v)
	c.Cycles += 2
}
