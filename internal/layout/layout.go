// Package layout maps logical matrix coordinates onto the LED strip order.
package layout

import "github.com/coreman2200/funtimes-neomatrix/internal/pixel"

// Wiring describes how the strip snakes through the matrix.
type Wiring struct {
	// Serpentine reverses every odd row.
	Serpentine bool
	FlipX      bool
	FlipY      bool
	// Transpose swaps rows and columns (strip runs down columns).
	Transpose bool
}

// Layout is a fixed 8x8 matrix with a wiring order.
type Layout struct {
	Order Wiring
}

// Index maps row, col -> strip position (0..Count-1).
func (l Layout) Index(row, col int) int {
	if l.Order.FlipX {
		col = pixel.Width - 1 - col
	}
	if l.Order.FlipY {
		row = pixel.Height - 1 - row
	}
	if l.Order.Transpose {
		row, col = col, row
	}
	if l.Order.Serpentine && row%2 == 1 {
		col = pixel.Width - 1 - col
	}
	return row*pixel.Width + col
}

func (l Layout) Count() int { return pixel.Count }

// Map returns the strip position of every buffer index.
func (l Layout) Map() [pixel.Count]int {
	var m [pixel.Count]int
	for i := range m {
		r, c := pixel.RowCol(i)
		m[i] = l.Index(r, c)
	}
	return m
}

// RGB serialises b in strip order, 3 bytes per pixel, into dst (len >= Count*3).
func (l Layout) RGB(b pixel.Buffer, dst []byte) []byte {
	if cap(dst) < pixel.Count*3 {
		dst = make([]byte, pixel.Count*3)
	}
	dst = dst[:pixel.Count*3]
	m := l.Map()
	for i, c := range b {
		p := m[i] * 3
		dst[p], dst[p+1], dst[p+2] = c.R, c.G, c.B
	}
	return dst
}
