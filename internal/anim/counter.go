package anim

import "github.com/coreman2200/funtimes-neomatrix/internal/pixel"

// Bounce is a triangular-wave counter. Once inside [Lo, Hi] it never leaves;
// a value that starts below Lo climbs into the band.
type Bounce struct {
	Value      uint8
	Descending bool
	Lo, Hi     uint8
	Step       uint8
}

// Advance returns the next state: the direction flips at the bounds before the step is applied.
func (b Bounce) Advance() Bounce {
	if b.Value <= b.Lo {
		b.Descending = false
	} else if b.Value >= b.Hi {
		b.Descending = true
	}
	if b.Descending {
		b.Value = pixel.AddSat(b.Value, -int(b.Step))
	} else {
		b.Value = pixel.AddSat(b.Value, int(b.Step))
	}
	return b
}

// InBand reports whether Value is within [Lo, Hi].
func (b Bounce) InBand() bool { return b.Value >= b.Lo && b.Value <= b.Hi }

// Cycle steps a selector round-robin through Size slots: Count grows by Step
// every tick and the selector advances when it reaches Limit.
type Cycle struct {
	Count, Step, Limit int
	Sel, Size          int
}

// Advance returns the next state and whether the selector moved.
func (c Cycle) Advance() (Cycle, bool) {
	c.Count += c.Step
	if c.Count < c.Limit {
		return c, false
	}
	c.Count = 0
	c.Sel = (c.Sel + 1) % c.Size
	return c, true
}

// Period is the number of ticks between selector moves.
func (c Cycle) Period() int { return (c.Limit + c.Step - 1) / c.Step }
