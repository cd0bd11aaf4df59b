// Package term renders the matrix in a terminal and maps keys to
// orientations.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/coreman2200/funtimes-neomatrix/internal/orient"
	"github.com/coreman2200/funtimes-neomatrix/internal/pixel"
)

// Screen is the subset of tcell.Screen the preview draws with.
type Screen interface {
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	Show()
}

// Preview is a frame sink drawing each LED as two cells at (X, Y).
type Preview struct {
	Screen Screen
	X, Y   int
	// Status, if set, is printed under the matrix.
	Status func() string
}

var offStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)

// Style is the cell style for one LED.
func Style(c pixel.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func (p *Preview) Write(b pixel.Buffer) error {
	for i, c := range b {
		row, col := pixel.RowCol(i)
		x, y := p.X+col*2, p.Y+row
		if c.IsBlack() {
			p.Screen.SetContent(x, y, '·', nil, offStyle)
			p.Screen.SetContent(x+1, y, ' ', nil, offStyle)
			continue
		}
		st := Style(c)
		p.Screen.SetContent(x, y, '█', nil, st)
		p.Screen.SetContent(x+1, y, '█', nil, st)
	}
	if p.Status != nil {
		p.drawText(p.X, p.Y+pixel.Height+1, p.Status())
	}
	p.Screen.Show()
	return nil
}

// statusWidth covers the longest status line; shorter ones are padded.
const statusWidth = 48

func (p *Preview) drawText(x, y int, s string) {
	i := 0
	for _, r := range s {
		if i >= statusWidth {
			break
		}
		p.Screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
		i++
	}
	for ; i < statusWidth; i++ {
		p.Screen.SetContent(x+i, y, ' ', nil, tcell.StyleDefault)
	}
}

// KeyOrientation maps arrows to the edge held up and u/d/0 to readings
// that never select a mode.
func KeyOrientation(k tcell.Key, r rune) (orient.Orientation, bool) {
	switch k {
	case tcell.KeyUp:
		return orient.LandscapeUp, true
	case tcell.KeyDown:
		return orient.LandscapeDown, true
	case tcell.KeyRight:
		return orient.PortraitUp, true
	case tcell.KeyLeft:
		return orient.PortraitDown, true
	case tcell.KeyRune:
		switch r {
		case 'u':
			return orient.FaceUp, true
		case 'd':
			return orient.FaceDown, true
		case '0':
			return orient.Unknown, true
		}
	}
	return orient.Unknown, false
}
