package hwio

import "sidplay/emu/log"

// window is an address range whose writes are forwarded to a callback. An
// address belongs to the window when addr&mask == match.
type window struct {
	name  string
	mask  uint16
	match uint16
	wcb   func(addr uint16, val uint8)
}

// Mem is a flat, fully populated 64KiB memory. Every byte is backed by RAM;
// write windows and clear-on-read registers only add side effects on top of
// it, so intercepted addresses always keep a shadow copy of the last value
// written.
type Mem struct {
	Name string
	Data [0x10000]uint8

	windows     []window
	clearOnRead []uint16
}

// MapWrite installs a write window. A write to addr is stored, then passed
// to wcb if addr&mask == match. Windows are checked in installation order and
// only the first match is notified.
func (m *Mem) MapWrite(name string, mask, match uint16, wcb func(addr uint16, val uint8)) {
	log.ModHwIo.DebugZ("mapping write window").
		String("mem", m.Name).
		String("window", name).
		Hex16("mask", mask).
		Hex16("match", match).
		End()

	m.windows = append(m.windows, window{name: name, mask: mask, match: match, wcb: wcb})
}

// ClearOnRead marks addr as a self-clearing register: a (non-peek) read
// resets the stored byte to 0 before returning it.
func (m *Mem) ClearOnRead(addr uint16) {
	m.clearOnRead = append(m.clearOnRead, addr)
}

func (m *Mem) Read8(addr uint16, peek bool) uint8 {
	if !peek {
		for _, a := range m.clearOnRead {
			if a == addr {
				m.Data[addr] = 0
				break
			}
		}
	}
	return m.Data[addr]
}

func (m *Mem) Peek8(addr uint16) uint8 {
	return m.Data[addr]
}

func (m *Mem) Write8(addr uint16, val uint8) {
	for i := range m.windows {
		w := &m.windows[i]
		if addr&w.mask == w.match {
			w.wcb(addr, val)
			break
		}
	}
	m.Data[addr] = val
}

// Clear zeroes the whole memory, without notifying write windows.
func (m *Mem) Clear() {
	clear(m.Data[:])
}

// Load copies buf at addr, bypassing write windows. The copy stops at the end
// of the address space; Load returns the number of bytes copied.
func (m *Mem) Load(addr uint16, buf []byte) int {
	n := copy(m.Data[addr:], buf)
	log.ModMem.DebugZ("loaded image").
		String("mem", m.Name).
		Hex16("addr", addr).
		Int("len", n).
		End()
	return n
}
