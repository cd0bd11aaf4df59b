package anim

import "github.com/coreman2200/funtimes-neomatrix/internal/pixel"

var spiralPalette = pixel.Palette{
	pixel.RGB(130, 0, 50),  // red
	pixel.RGB(200, 140, 0), // orange
	pixel.RGB(0, 255, 100), // green
	pixel.RGB(0, 100, 100), // cyan
	pixel.RGB(0, 0, 255),   // blue
	pixel.RGB(255, 0, 255), // magenta
}

// Spiral sweeps a single pixel up and down each column in turn, moving one
// column right every time the row hits an edge.
type Spiral struct {
	buf      pixel.Buffer
	row, col int
	down     bool // true: row increasing
	color    Cycle
}

func NewSpiral() *Spiral {
	return &Spiral{
		down:  true,
		color: Cycle{Step: 1, Limit: 12, Size: len(spiralPalette)},
	}
}

func (s *Spiral) Name() string { return "spiral" }

func (s *Spiral) Pixels() pixel.Buffer { return s.buf }

// Position returns the lit pixel's row and column.
func (s *Spiral) Position() (row, col int) { return s.row, s.col }

// Descending reports whether the row is currently increasing.
func (s *Spiral) Descending() bool { return s.down }

func (s *Spiral) ColorIndex() int { return s.color.Sel }

func (s *Spiral) Advance() {
	if s.down {
		s.row++
	} else {
		s.row--
	}
	switch s.row {
	case pixel.Height - 1:
		s.down = false
		s.col = (s.col + 1) % pixel.Width
	case 0:
		s.down = true
		s.col = (s.col + 1) % pixel.Width
	}

	s.color, _ = s.color.Advance()

	s.buf.Clear()
	s.buf[pixel.Index(s.row, s.col)] = spiralPalette.At(s.color.Sel)
}
