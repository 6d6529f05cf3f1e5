package hw

// Mnemonic identifies an instruction, regardless of its addressing mode.
type Mnemonic uint8

const (
	ILL Mnemonic = iota // not a documented 6502 instruction
	ADC
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

var mnemonicNames = [...]string{
	"ILL", "ADC", "AND", "ASL", "BCC", "BCS", "BEQ", "BIT", "BMI", "BNE",
	"BPL", "BRK", "BVC", "BVS", "CLC", "CLD", "CLI", "CLV", "CMP", "CPX",
	"CPY", "DEC", "DEX", "DEY", "EOR", "INC", "INX", "INY", "JMP", "JSR",
	"LDA", "LDX", "LDY", "LSR", "NOP", "ORA", "PHA", "PHP", "PLA", "PLP",
	"ROL", "ROR", "RTI", "RTS", "SBC", "SEC", "SED", "SEI", "STA", "STX",
	"STY", "TAX", "TAY", "TSX", "TXA", "TXS", "TYA",
}

func (m Mnemonic) String() string {
	if int(m) < len(mnemonicNames) {
		return mnemonicNames[m]
	}
	return "Mnemonic(?)"
}

// Mode is an addressing mode.
type Mode uint8

const (
	Imp Mode = iota // implied
	Imm             // immediate
	Abs             // absolute
	Abx             // absolute,X
	Aby             // absolute,Y
	Zpg             // zero page
	Zpx             // zero page,X
	Zpy             // zero page,Y
	Ind             // indirect
	Izx             // (indirect,X)
	Izy             // (indirect),Y
	Acc             // accumulator
	Rel             // relative
)

var modeNames = [...]string{"imp", "imm", "abs", "abx", "aby", "zpg", "zpx", "zpy", "ind", "izx", "izy", "acc", "rel"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Mode(?)"
}

// OperandSize returns the number of operand bytes following the opcode.
func (m Mode) OperandSize() int {
	switch m {
	case Imp, Acc:
		return 0
	case Abs, Abx, Aby, Ind:
		return 2
	default:
		return 1
	}
}

// Instr is a decoded opcode.
type Instr struct {
	Opcode   uint8
	Mnemonic Mnemonic
	Mode     Mode
}

// Illegal reports whether the opcode is undocumented. Illegal instructions
// execute as 2-cycle no-ops.
func (in Instr) Illegal() bool { return in.Mnemonic == ILL }

// Size returns the instruction length in bytes.
func (in Instr) Size() int { return 1 + in.Mode.OperandSize() }

func (in Instr) String() string {
	return in.Mnemonic.String() + " " + in.Mode.String()
}

// Decode returns the instruction encoded by opcode.
func Decode(opcode uint8) Instr {
	return Instr{Opcode: opcode, Mnemonic: mnemonics[opcode], Mode: modes[opcode]}
}

// Decoding tables. Unassigned entries are left to their zero values, ILL and
// Imp.
var (
	mnemonics [256]Mnemonic
	modes     [256]Mode
)

func init() {
	for _, def := range opcodeDefs {
		mnemonics[def.op] = def.mn
		modes[def.op] = def.mode
	}
}

var opcodeDefs = [...]struct {
	op   uint8
	mn   Mnemonic
	mode Mode
}{
	{0x69, ADC, Imm}, {0x65, ADC, Zpg}, {0x75, ADC, Zpx}, {0x6D, ADC, Abs},
	{0x7D, ADC, Abx}, {0x79, ADC, Aby}, {0x61, ADC, Izx}, {0x71, ADC, Izy},

	{0x29, AND, Imm}, {0x25, AND, Zpg}, {0x35, AND, Zpx}, {0x2D, AND, Abs},
	{0x3D, AND, Abx}, {0x39, AND, Aby}, {0x21, AND, Izx}, {0x31, AND, Izy},

	{0x0A, ASL, Acc}, {0x06, ASL, Zpg}, {0x16, ASL, Zpx}, {0x0E, ASL, Abs}, {0x1E, ASL, Abx},

	{0x90, BCC, Rel}, {0xB0, BCS, Rel}, {0xF0, BEQ, Rel}, {0x30, BMI, Rel},
	{0xD0, BNE, Rel}, {0x10, BPL, Rel}, {0x50, BVC, Rel}, {0x70, BVS, Rel},

	{0x24, BIT, Zpg}, {0x2C, BIT, Abs},

	{0x00, BRK, Imp},

	{0x18, CLC, Imp}, {0xD8, CLD, Imp}, {0x58, CLI, Imp}, {0xB8, CLV, Imp},

	{0xC9, CMP, Imm}, {0xC5, CMP, Zpg}, {0xD5, CMP, Zpx}, {0xCD, CMP, Abs},
	{0xDD, CMP, Abx}, {0xD9, CMP, Aby}, {0xC1, CMP, Izx}, {0xD1, CMP, Izy},

	{0xE0, CPX, Imm}, {0xE4, CPX, Zpg}, {0xEC, CPX, Abs},
	{0xC0, CPY, Imm}, {0xC4, CPY, Zpg}, {0xCC, CPY, Abs},

	{0xC6, DEC, Zpg}, {0xD6, DEC, Zpx}, {0xCE, DEC, Abs}, {0xDE, DEC, Abx},
	{0xCA, DEX, Imp}, {0x88, DEY, Imp},

	{0x49, EOR, Imm}, {0x45, EOR, Zpg}, {0x55, EOR, Zpx}, {0x4D, EOR, Abs},
	{0x5D, EOR, Abx}, {0x59, EOR, Aby}, {0x41, EOR, Izx}, {0x51, EOR, Izy},

	{0xE6, INC, Zpg}, {0xF6, INC, Zpx}, {0xEE, INC, Abs}, {0xFE, INC, Abx},
	{0xE8, INX, Imp}, {0xC8, INY, Imp},

	{0x4C, JMP, Abs}, {0x6C, JMP, Ind},
	{0x20, JSR, Abs},

	{0xA9, LDA, Imm}, {0xA5, LDA, Zpg}, {0xB5, LDA, Zpx}, {0xAD, LDA, Abs},
	{0xBD, LDA, Abx}, {0xB9, LDA, Aby}, {0xA1, LDA, Izx}, {0xB1, LDA, Izy},

	{0xA2, LDX, Imm}, {0xA6, LDX, Zpg}, {0xB6, LDX, Zpy}, {0xAE, LDX, Abs}, {0xBE, LDX, Aby},
	{0xA0, LDY, Imm}, {0xA4, LDY, Zpg}, {0xB4, LDY, Zpx}, {0xAC, LDY, Abs}, {0xBC, LDY, Abx},

	{0x4A, LSR, Acc}, {0x46, LSR, Zpg}, {0x56, LSR, Zpx}, {0x4E, LSR, Abs}, {0x5E, LSR, Abx},

	{0xEA, NOP, Imp},

	{0x09, ORA, Imm}, {0x05, ORA, Zpg}, {0x15, ORA, Zpx}, {0x0D, ORA, Abs},
	{0x1D, ORA, Abx}, {0x19, ORA, Aby}, {0x01, ORA, Izx}, {0x11, ORA, Izy},

	{0x48, PHA, Imp}, {0x08, PHP, Imp}, {0x68, PLA, Imp}, {0x28, PLP, Imp},

	{0x2A, ROL, Acc}, {0x26, ROL, Zpg}, {0x36, ROL, Zpx}, {0x2E, ROL, Abs}, {0x3E, ROL, Abx},
	{0x6A, ROR, Acc}, {0x66, ROR, Zpg}, {0x76, ROR, Zpx}, {0x6E, ROR, Abs}, {0x7E, ROR, Abx},

	{0x40, RTI, Imp}, {0x60, RTS, Imp},

	{0xE9, SBC, Imm}, {0xE5, SBC, Zpg}, {0xF5, SBC, Zpx}, {0xED, SBC, Abs},
	{0xFD, SBC, Abx}, {0xF9, SBC, Aby}, {0xE1, SBC, Izx}, {0xF1, SBC, Izy},

	{0x38, SEC, Imp}, {0xF8, SED, Imp}, {0x78, SEI, Imp},

	{0x85, STA, Zpg}, {0x95, STA, Zpx}, {0x8D, STA, Abs}, {0x9D, STA, Abx},
	{0x99, STA, Aby}, {0x81, STA, Izx}, {0x91, STA, Izy},
	{0x86, STX, Zpg}, {0x96, STX, Zpy}, {0x8E, STX, Abs},
	{0x84, STY, Zpg}, {0x94, STY, Zpx}, {0x8C, STY, Abs},

	{0xAA, TAX, Imp}, {0xA8, TAY, Imp}, {0xBA, TSX, Imp},
	{0x8A, TXA, Imp}, {0x9A, TXS, Imp}, {0x98, TYA, Imp},
}
