package hw

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var allModes = []Mode{Imp, Imm, Abs, Abx, Aby, Zpg, Zpx, Zpy, Ind, Izx, Izy, Acc, Rel}

func TestOperandAdvancesPC(t *testing.T) {
	properties := gopter.NewProperties(testParameters())

	genMode := gen.IntRange(0, len(allModes)-1).Map(func(i int) Mode { return allModes[i] })

	properties.Property("fetchOperand consumes the mode operand bytes", prop.ForAll(
		func(mode Mode, pc uint16, x, y uint8, code []uint8) bool {
			as := NewAddressSpace(nil)
			for i, b := range code {
				as.Write8(pc+uint16(i), b)
			}
			cpu := NewCPU(as)
			cpu.PC, cpu.X, cpu.Y = pc, x, y

			switch mode {
			case Ind, Rel:
				// only reachable through JMP and branches.
				cpu.operand(mode)
			default:
				cpu.fetchOperand(mode)
			}
			return cpu.PC == pc+uint16(mode.OperandSize())
		},
		genMode, gen.UInt16(), gen.UInt8(), gen.UInt8(), gen.SliceOfN(2, gen.UInt8()),
	))

	properties.Property("storeResult consumes nothing", prop.ForAll(
		func(mode Mode, pc uint16, x, val uint8) bool {
			as := NewAddressSpace(nil)
			cpu := NewCPU(as)
			cpu.PC, cpu.X = pc, x
			cpu.storeResult(mode, val)
			return cpu.PC == pc
		},
		gen.OneConstOf(Zpg, Zpx, Abs, Abx, Acc), gen.UInt16(), gen.UInt8(), gen.UInt8(),
	))

	properties.TestingRun(t)
}

func TestFetchOperand(t *testing.T) {
	tests := []struct {
		name    string
		dump    string
		mode    Mode
		a, x, y uint8
		want    uint8
		cycles  uint32
	}{
		{"imm", "0600: 10", Imm, 0, 0, 0, 0x10, 2},
		{"zpg", "0600: 10\n0010: 5a", Zpg, 0, 0, 0, 0x5a, 3},
		{"zpx/wrap", "0600: 10\n0000: 77", Zpx, 0, 0xF0, 0, 0x77, 4},
		{"zpy", "0600: 10\n0012: 66", Zpy, 0, 0, 0x02, 0x66, 4},
		{"abs", "0600: 34 12\n1234: 99", Abs, 0, 0, 0, 0x99, 4},
		{"abx", "0600: 34 12\n1237: 42", Abx, 0, 0x03, 0, 0x42, 4},
		{"abx/cross", "0600: f8 20\n2100: a5", Abx, 0, 0x08, 0, 0xa5, 5},
		{"aby/cross", "0600: f8 20\n2100: a5", Aby, 0, 0, 0x08, 0xa5, 5},
		{"izx/wrap", "0600: 10\n00ff: 34\n0000: 12\n1234: 99", Izx, 0, 0xEF, 0, 0x99, 6},
		{"izy", "0600: 10\n0010: 00 20\n2007: 3c", Izy, 0, 0, 0x07, 0x3c, 5},
		{"izy/cross", "0600: 10\n0010: f8 20\n2107: 3c", Izy, 0, 0, 0x0F, 0x3c, 6},
		{"acc", "0600: ea", Acc, 0xEE, 0, 0, 0xEE, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu, _ := loadCPUWith(t, tt.dump)
			cpu.PC = 0x0600
			cpu.A, cpu.X, cpu.Y = tt.a, tt.x, tt.y

			if got := cpu.fetchOperand(tt.mode); got != tt.want {
				t.Errorf("fetchOperand(%s) = $%02X, want $%02X", tt.mode, got, tt.want)
			}
			if cpu.Cycles != tt.cycles {
				t.Errorf("fetchOperand(%s) took %d cycles, want %d", tt.mode, cpu.Cycles, tt.cycles)
			}
		})
	}
}

func TestStoreCycles(t *testing.T) {
	tests := []struct {
		name   string
		dump   string
		ninstr int
		x      uint8
		cycles uint64
		mem    string
	}{
		// STA $10
		{"sta zpg", "0600: 85 10", 1, 0, 3, "0010: 5a"},
		// STA $1234,X
		{"sta abx", "0600: 9d 34 12", 1, 1, 5, "1235: 5a"},
		// STA ($10,X)
		{"sta izx", "0600: 81 10\n0010: 00 30", 1, 0, 6, "3000: 5a"},
		// INC $10
		{"inc zpg", "0600: e6 10\n0010: 41", 1, 0, 5, "0010: 42"},
		// INC $10,X
		{"inc zpx", "0600: f6 10\n0011: 41", 1, 1, 6, "0011: 42"},
		// INC $1234
		{"inc abs", "0600: ee 34 12\n1234: 41", 1, 0, 6, "1234: 42"},
		// INC $1234,X
		{"inc abx", "0600: fe 34 12\n1235: 41", 1, 1, 7, "1235: 42"},
		// INC $12FF,X
		{"inc abx/cross", "0600: fe ff 12\n1300: 41", 1, 1, 7, "1300: 42"},
		// ASL A
		{"asl acc", "0600: 0a", 1, 0, 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu, _ := loadCPUWith(t, tt.dump)
			cpu.PC = 0x0600
			cpu.A = 0x5a
			cpu.X = tt.x
			runAndCheckState(t, cpu, tt.ninstr,
				"cycles", tt.cycles,
				"mem", tt.mem,
			)
		})
	}
}

func TestBranchCycles(t *testing.T) {
	t.Run("not taken", func(t *testing.T) {
		// BNE *-4
		cpu, _ := loadCPUWith(t, `0680: d0 fa`)
		cpu.PC = 0x0680
		cpu.P = Zero
		runAndCheckState(t, cpu, 1,
			"PC", uint16(0x0682),
			"cycles", uint64(2),
		)
	})
	t.Run("taken backward, same page", func(t *testing.T) {
		// BNE *-4
		cpu, _ := loadCPUWith(t, `0680: d0 fa`)
		cpu.PC = 0x0680
		runAndCheckState(t, cpu, 1,
			"PC", uint16(0x067C),
			"cycles", uint64(3),
		)
	})
	t.Run("taken backward, page cross", func(t *testing.T) {
		// BNE *-4
		cpu, _ := loadCPUWith(t, `0601: d0 fa`)
		cpu.PC = 0x0601
		runAndCheckState(t, cpu, 1,
			"PC", uint16(0x05FD),
			"cycles", uint64(4),
		)
	})
	t.Run("taken forward, page cross", func(t *testing.T) {
		// BEQ *+$12
		cpu, _ := loadCPUWith(t, `06f0: f0 10`)
		cpu.PC = 0x06F0
		cpu.P = Zero
		runAndCheckState(t, cpu, 1,
			"PC", uint16(0x0702),
			"cycles", uint64(4),
		)
	})
}

func TestJMPIndirectPageWrap(t *testing.T) {
	// JMP ($10FF)
	dump := `
0600: 6c ff 10
10ff: 34
1000: 12
1100: 56`
	cpu, _ := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	runAndCheckState(t, cpu, 1,
		"PC", uint16(0x1234),
		"cycles", uint64(5),
	)
}
