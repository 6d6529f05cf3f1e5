package hwio_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"sidplay/hw/hwio"
)

type write struct {
	addr uint16
	val  uint8
}

func TestMemWriteWindow(t *testing.T) {
	var got []write
	m := &hwio.Mem{Name: "test"}
	m.MapWrite("dev", 0xFC00, 0xD400, func(addr uint16, val uint8) {
		got = append(got, write{addr, val})
	})

	m.Write8(0xD3FF, 0x01)
	m.Write8(0xD400, 0x02)
	m.Write8(0xD7FF, 0x03)
	m.Write8(0xD800, 0x04)

	want := []write{{0xD400, 0x02}, {0xD7FF, 0x03}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(write{})); diff != "" {
		t.Errorf("forwarded writes mismatch (-want +got):\n%s", diff)
	}

	// All writes are shadowed, intercepted or not.
	for _, w := range []write{{0xD3FF, 0x01}, {0xD400, 0x02}, {0xD7FF, 0x03}, {0xD800, 0x04}} {
		if v := m.Read8(w.addr, false); v != w.val {
			t.Errorf("Read8(%04X) = %02X, want %02X", w.addr, v, w.val)
		}
	}
}

func TestMemFirstWindowWins(t *testing.T) {
	var first, second int
	m := &hwio.Mem{}
	m.MapWrite("first", 0xFF00, 0x1000, func(uint16, uint8) { first++ })
	m.MapWrite("second", 0xF000, 0x1000, func(uint16, uint8) { second++ })

	m.Write8(0x1000, 0)
	m.Write8(0x1100, 0)

	if first != 1 || second != 1 {
		t.Errorf("first=%d second=%d, want 1 and 1", first, second)
	}
}

func TestMemClearOnRead(t *testing.T) {
	m := &hwio.Mem{}
	m.ClearOnRead(0xDD0D)

	m.Write8(0xDD0D, 0x81)
	if v := m.Read8(0xDD0D, true); v != 0x81 {
		t.Errorf("peek = %02X, want 81", v)
	}
	if v := m.Read8(0xDD0D, false); v != 0 {
		t.Errorf("read = %02X, want 00", v)
	}
	if v := m.Peek8(0xDD0D); v != 0 {
		t.Errorf("after read, peek = %02X, want 00", v)
	}
}

func TestMemLoadClips(t *testing.T) {
	m := &hwio.Mem{}
	n := m.Load(0xFFFE, []byte{1, 2, 3, 4})
	if n != 2 {
		t.Fatalf("Load copied %d bytes, want 2", n)
	}
	if m.Data[0xFFFE] != 1 || m.Data[0xFFFF] != 2 || m.Data[0] != 0 {
		t.Errorf("unexpected memory content: %02X %02X %02X", m.Data[0xFFFE], m.Data[0xFFFF], m.Data[0])
	}

	m.Clear()
	if m.Data[0xFFFE] != 0 {
		t.Errorf("Clear left %02X", m.Data[0xFFFE])
	}
}

func TestRead16(t *testing.T) {
	m := &hwio.Mem{}
	m.Data[0xFFFC] = 0x34
	m.Data[0xFFFD] = 0x12
	if got := hwio.Read16(m, 0xFFFC); got != 0x1234 {
		t.Errorf("Read16 = %04X, want 1234", got)
	}
	if got := hwio.Peek16(m, 0xFFFC); got != 0x1234 {
		t.Errorf("Peek16 = %04X, want 1234", got)
	}
}
