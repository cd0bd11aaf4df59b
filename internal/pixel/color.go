package pixel

import "image/color"

// Color is one LED: three 8-bit channels, no alpha.
type Color struct{ R, G, B uint8 }

var (
	Black = Color{}
	White = Color{R: 255, G: 255, B: 255}
)

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// Sat clamps v into a channel value.
func Sat(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// AddSat adds d to a channel, saturating at 0 and 255.
func AddSat(c uint8, d int) uint8 { return Sat(int(c) + d) }

func (c Color) IsBlack() bool { return c == Black }

// Packed returns 0x00RRGGBB.
func (c Color) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func FromPacked(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Scale multiplies every channel by s in [0,1].
func (c Color) Scale(s float64) Color {
	if s >= 1 {
		return c
	}
	if s <= 0 {
		return Black
	}
	return Color{
		R: uint8(float64(c.R) * s),
		G: uint8(float64(c.G) * s),
		B: uint8(float64(c.B) * s),
	}
}

// NRGBA converts to an opaque image color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) { return c.NRGBA().RGBA() }

// Order maps an RGB triple onto the wire channel order of a strip ("GRB", "RGB", ...).
// Unknown letters fall back to green.
func (c Color) Order(order string, dst []byte) {
	if len(order) != 3 {
		order = "GRB"
	}
	for i := 0; i < 3; i++ {
		switch order[i] {
		case 'R', 'r':
			dst[i] = c.R
		case 'B', 'b':
			dst[i] = c.B
		default:
			dst[i] = c.G
		}
	}
}
