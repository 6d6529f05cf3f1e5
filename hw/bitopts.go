package hw

func b2u8(x bool) uint8 {
	if x {
		return 1
	}
	return 0
}

func b2u32(x bool) uint32 { return uint32(b2u8(x)) }

// pagecrossed reports whether a and b lie in different 256-byte pages.
func pagecrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}
