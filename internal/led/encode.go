package led

import "github.com/coreman2200/funtimes-neomatrix/internal/pixel"

// wsBits expands one byte into 24 SPI bits, three per data bit: 110 for a
// one and 100 for a zero, MSB first.
var wsBits = func() (t [256][3]byte) {
	for v := 0; v < 256; v++ {
		var out uint32
		for i := 7; i >= 0; i-- {
			if (v>>i)&1 == 1 {
				out = out<<3 | 0b110
			} else {
				out = out<<3 | 0b100
			}
		}
		t[v] = [3]byte{byte(out >> 16), byte(out >> 8), byte(out)}
	}
	return t
}()

// EncodeWS2812 expands an RGB frame into the 3x SPI bit stream, reordering
// channels per order. dst is reused when large enough.
func EncodeWS2812(rgb []byte, order string, dst []byte) []byte {
	n := len(rgb) / 3
	if cap(dst) < n*9 {
		dst = make([]byte, n*9)
	}
	dst = dst[:n*9]
	var ch [3]byte
	for i := 0; i < n; i++ {
		pixel.RGB(rgb[i*3], rgb[i*3+1], rgb[i*3+2]).Order(order, ch[:])
		for k, v := range ch {
			copy(dst[i*9+k*3:], wsBits[v][:])
		}
	}
	return dst
}
