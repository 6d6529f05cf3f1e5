package hw

import "sidplay/hw/hwio"

// Locations reserved for vector pointers.
const (
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

// C64 memory map locations the player relies on.
const (
	SIDBase  = uint16(0xD400) // first SID register
	SIDMask  = uint16(0xFC00) // SID registers are mirrored over 1KiB
	SIDRegs  = 32             // register offsets are taken modulo 32
	CIA2ICR  = uint16(0xDD0D) // CIA #2 interrupt control, cleared on read
	ProcPort = uint16(0x0001) // 6510 processor port (memory banking)

	KernalIRQVector = uint16(0x0314) // RAM vector of the kernal IRQ handler
)

// A Device receives the writes performed in the SID register window.
type Device interface {
	WriteReg(reg, val uint8)
}

// AddressSpace is the 64KiB memory seen by the CPU. Writes in the SID window
// are stored and forwarded to the device, reads of CIA2ICR always observe 0.
type AddressSpace struct {
	hwio.Mem

	dev Device
}

// NewAddressSpace returns a zeroed address space forwarding SID writes to
// dev. dev may be nil, in which case SID writes are only shadowed.
func NewAddressSpace(dev Device) *AddressSpace {
	as := &AddressSpace{dev: dev}
	as.Name = "c64"
	as.MapWrite("sid", SIDMask, SIDBase, as.writeSID)
	as.ClearOnRead(CIA2ICR)
	return as
}

func (as *AddressSpace) writeSID(addr uint16, val uint8) {
	if as.dev != nil {
		as.dev.WriteReg(uint8(addr&(SIDRegs-1)), val)
	}
}
