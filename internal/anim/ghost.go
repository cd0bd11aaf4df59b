package anim

import "github.com/coreman2200/funtimes-neomatrix/internal/pixel"

var (
	ghostBody = pixel.NewSet(1, 2, 3, 4, 5, 6, 8, 9, 12, 13, 14, 16, 20, 21, 22, 24, 28, 29, 30,
		32, 33, 34, 35, 36, 37, 38, 40, 41, 44, 45, 46, 48, 52, 53, 54, 60, 61, 62)
	ghostPupils = pixel.NewSet(18, 19, 26, 27, 50, 51, 58, 59)
	ghostEyes   = pixel.NewSet(10, 11, 17, 25, 42, 43, 49, 57)
	ghostLegs   = pixel.NewSet(15, 31, 47, 63)

	ghostPalette = pixel.Palette{
		pixel.RGB(255, 0, 0),   // red
		pixel.RGB(0, 50, 50),   // cyan
		pixel.RGB(255, 140, 0), // orange
		pixel.RGB(255, 0, 255), // pink
	}
	ghostPupil = pixel.RGB(0, 0, 255)
	ghostEye   = pixel.White
)

const ghostShiftEvery = 10

// Ghost draws a color-changing ghost whose legs step one row up and back.
type Ghost struct {
	buf    pixel.Buffer
	legs   pixel.Set
	raised bool
	shift  int
	color  Cycle
}

func NewGhost() *Ghost {
	return &Ghost{
		legs:  ghostLegs,
		color: Cycle{Step: 5, Limit: 100, Size: len(ghostPalette)},
	}
}

func (g *Ghost) Name() string { return "ghost" }

func (g *Ghost) Pixels() pixel.Buffer { return g.buf }

// Legs returns a copy of the current leg indices.
func (g *Ghost) Legs() pixel.Set { return append(pixel.Set(nil), g.legs...) }

func (g *Ghost) ColorIndex() int { return g.color.Sel }

func (g *Ghost) Advance() {
	g.shift++
	if g.shift >= ghostShiftEvery {
		g.shift = 0
		g.raised = !g.raised
		d := pixel.Width
		if g.raised {
			d = -pixel.Width
		}
		if legs, ok := g.legs.Shift(d); ok {
			g.legs = legs
		}
	}

	g.color, _ = g.color.Advance()

	c := ghostPalette.At(g.color.Sel)
	g.buf.Clear()
	g.buf.Paint(ghostBody, c)
	g.buf.Paint(g.legs, c)
	g.buf.Paint(ghostPupils, ghostPupil)
	g.buf.Paint(ghostEyes, ghostEye)
}
