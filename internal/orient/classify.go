package orient

import "fmt"

// Mode indexes the displayed animation.
type Mode int

const (
	ModeSpiral Mode = iota
	ModeFirework
	ModeHeart
	ModeGhost

	NumModes = 4
)

func (m Mode) Valid() bool { return m >= 0 && m < NumModes }

func (m Mode) String() string {
	switch m {
	case ModeSpiral:
		return "spiral"
	case ModeFirework:
		return "firework"
	case ModeHeart:
		return "heart"
	case ModeGhost:
		return "ghost"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Classify maps o to a mode. Indeterminate readings keep prev.
func Classify(o Orientation, prev Mode) Mode {
	switch o {
	case LandscapeUp:
		return ModeSpiral
	case PortraitUp:
		return ModeFirework
	case PortraitDown:
		return ModeHeart
	case LandscapeDown:
		return ModeGhost
	}
	return prev
}

// Classifier carries the last good mode between samples.
type Classifier struct {
	mode Mode
}

func NewClassifier(initial Mode) *Classifier { return &Classifier{mode: initial} }

// Update classifies o against the held mode and reports whether it changed.
func (c *Classifier) Update(o Orientation) (Mode, bool) {
	m := Classify(o, c.mode)
	changed := m != c.mode
	c.mode = m
	return m, changed
}

func (c *Classifier) Mode() Mode { return c.mode }
