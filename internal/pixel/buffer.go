package pixel

import "image"

const (
	Width  = 8
	Height = 8
	Count  = Width * Height
)

// Index returns the row-major buffer index of (row, col).
func Index(row, col int) int { return row*Width + col }

// RowCol splits a buffer index.
func RowCol(i int) (row, col int) { return i / Width, i % Width }

func InBounds(i int) bool { return i >= 0 && i < Count }

// Buffer is the frame of one animation. The array type pins its length at Count.
type Buffer [Count]Color

// Clear sets every pixel to black.
func (b *Buffer) Clear() {
	for i := range b {
		b[i] = Black
	}
}

// Paint sets every pixel in s to c and leaves the rest untouched.
func (b *Buffer) Paint(s Set, c Color) {
	for _, i := range s {
		b[i] = c
	}
}

// Lit counts non-black pixels.
func (b *Buffer) Lit() int {
	n := 0
	for _, c := range b {
		if !c.IsBlack() {
			n++
		}
	}
	return n
}

// LitIndices lists non-black pixel indices in ascending order.
func (b *Buffer) LitIndices() []int {
	var out []int
	for i, c := range b {
		if !c.IsBlack() {
			out = append(out, i)
		}
	}
	return out
}

// RGB appends the frame as R,G,B triples in buffer order.
func (b *Buffer) RGB(dst []byte) []byte {
	for _, c := range b {
		dst = append(dst, c.R, c.G, c.B)
	}
	return dst
}

// Image renders the frame as a Width x Height image.
func (b *Buffer) Image() *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	for i, c := range b {
		row, col := RowCol(i)
		im.SetNRGBA(col, row, c.NRGBA())
	}
	return im
}
