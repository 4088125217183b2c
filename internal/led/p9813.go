package led

// frame returns the 32-bit P9813 data word for one LED: a flag byte carrying
// the inverted top two bits of each channel, followed by blue, green, red.
func frame(c Color) [4]byte {
	flag := byte(0xC0)
	flag |= (^c.B >> 6 & 0x03) << 4
	flag |= (^c.G >> 6 & 0x03) << 2
	flag |= ^c.R >> 6 & 0x03
	return [4]byte{flag, c.B, c.G, c.R}
}

// bits expands a color update into the MSB-first bit stream clocked out to
// the chain: 32 zero bits, one frame, 32 zero bits.
func bits(c Color) []bool {
	out := make([]bool, 0, 96)
	for i := 0; i < 32; i++ {
		out = append(out, false)
	}
	for _, b := range frame(c) {
		for i := 7; i >= 0; i-- {
			out = append(out, b&(1<<i) != 0)
		}
	}
	for i := 0; i < 32; i++ {
		out = append(out, false)
	}
	return out
}
