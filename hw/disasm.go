package hw

import "fmt"

// Disasm disassembles the instruction at pc. It has no side effects.
func (c *CPU) Disasm(pc uint16) DisasmOp {
	in := Decode(c.peek8(pc))
	op := DisasmOp{
		PC:     pc,
		Opcode: in.Mnemonic.String(),
		Buf:    make([]byte, in.Size()),
	}
	for i := range op.Buf {
		op.Buf[i] = c.peek8(pc + uint16(i))
	}

	var oper8 uint8
	var oper16 uint16
	if len(op.Buf) > 1 {
		oper8 = op.Buf[1]
		oper16 = uint16(oper8)
	}
	if len(op.Buf) > 2 {
		oper16 |= uint16(op.Buf[2]) << 8
	}

	switch in.Mode {
	case Imp:
	case Acc:
		op.Oper = "A"
	case Imm:
		op.Oper = fmt.Sprintf("#$%02X", oper8)
	case Zpg:
		op.Oper = fmt.Sprintf("$%02X", oper8)
	case Zpx:
		op.Oper = fmt.Sprintf("$%02X,X", oper8)
	case Zpy:
		op.Oper = fmt.Sprintf("$%02X,Y", oper8)
	case Abs:
		op.Oper = formatAddr(oper16)
	case Abx:
		op.Oper = formatAddr(oper16) + ",X"
	case Aby:
		op.Oper = formatAddr(oper16) + ",Y"
	case Ind:
		op.Oper = "(" + formatAddr(oper16) + ")"
	case Izx:
		op.Oper = fmt.Sprintf("($%02X,X)", oper8)
	case Izy:
		op.Oper = fmt.Sprintf("($%02X),Y", oper8)
	case Rel:
		op.Oper = fmt.Sprintf("$%04X", pc+2+uint16(int8(oper8)))
	}
	return op
}

var addressLabels = map[uint16]string{
	0xD400: "V1FreqLo_D400",
	0xD401: "V1FreqHi_D401",
	0xD404: "V1Ctrl_D404",
	0xD407: "V2FreqLo_D407",
	0xD408: "V2FreqHi_D408",
	0xD40B: "V2Ctrl_D40B",
	0xD40E: "V3FreqLo_D40E",
	0xD40F: "V3FreqHi_D40F",
	0xD412: "V3Ctrl_D412",
	0xD415: "FcLo_D415",
	0xD416: "FcHi_D416",
	0xD417: "ResFilt_D417",
	0xD418: "ModeVol_D418",
	0xDC0D: "Cia1ICR_DC0D",
	0xDD0D: "Cia2ICR_DD0D",
	0x0314: "IRQLo_0314",
	0x0315: "IRQHi_0315",
}

func formatAddr(addr uint16) string {
	if label, ok := addressLabels[addr]; ok {
		return label
	}
	return fmt.Sprintf("$%04X", addr)
}
