package hw

// P is the processor status register.
type P uint8

const (
	Carry = 1 << iota
	Zero
	Interrupt
	Decimal
	Break
	Reserved
	Overflow
	Negative
)

func (p P) Carry() bool      { return p&Carry != 0 }
func (p P) Zero() bool       { return p&Zero != 0 }
func (p P) IntDisable() bool { return p&Interrupt != 0 }
func (p P) Decimal() bool    { return p&Decimal != 0 }
func (p P) Break() bool      { return p&Break != 0 }
func (p P) Unused() bool     { return p&Reserved != 0 }
func (p P) Overflow() bool   { return p&Overflow != 0 }
func (p P) Negative() bool   { return p&Negative != 0 }

func (p P) SetCarry(v bool) P      { return p.set(Carry, v) }
func (p P) SetZero(v bool) P       { return p.set(Zero, v) }
func (p P) SetIntDisable(v bool) P { return p.set(Interrupt, v) }
func (p P) SetDecimal(v bool) P    { return p.set(Decimal, v) }
func (p P) SetBreak(v bool) P      { return p.set(Break, v) }
func (p P) SetUnused(v bool) P     { return p.set(Reserved, v) }
func (p P) SetOverflow(v bool) P   { return p.set(Overflow, v) }
func (p P) SetNegative(v bool) P   { return p.set(Negative, v) }

func (p P) set(mask P, v bool) P {
	if v {
		return p | mask
	}
	return p &^ mask
}

// sets N if bit 7 of v is set and Z if v == 0, clears them otherwise.
func (p *P) checkNZ(v uint8) {
	p.checkN(v)
	p.checkZ(v)
}

func (p *P) checkN(v uint8) {
	*p = p.SetNegative(v&0x80 != 0)
}

func (p *P) checkZ(v uint8) {
	*p = p.SetZero(v == 0)
}

// checkCNV sets C, Z and N from the 9-bit result of an addition or
// subtraction. V is approximated as C xor N.
func (p *P) checkCNV(res uint16) {
	c := res&0x100 != 0
	n := res&0x80 != 0
	*p = p.SetCarry(c)
	p.checkNZ(uint8(res))
	*p = p.SetOverflow(c != n)
}

func (p P) String() string {
	const bits = "nvubdizcNVUBDIZC"

	s := make([]byte, 8)
	for i := 0; i < 8; i++ {
		ibit := (uint8(p) & (1 << (7 - i))) >> (7 - i)
		s[i] = bits[i+int(8*ibit)]
	}
	return string(s)
}
