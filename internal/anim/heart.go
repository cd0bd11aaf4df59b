package anim

import "github.com/coreman2200/funtimes-neomatrix/internal/pixel"

const (
	heartLo   = 10
	heartHi   = 200
	heartStep = 5
	// heartTint is added to a counter to build a channel; heartHi+heartTint must fit a byte.
	heartTint = 10
)

// Fails to compile if the brightest derived channel would overflow.
const _ uint8 = heartHi + heartTint

var (
	heartInner = pixel.NewSet(18, 21, 25, 26, 27, 28, 29, 30, 34, 35, 36, 37, 43, 44)
	heartOuter = pixel.NewSet(9, 10, 13, 14, 16, 17, 19, 20, 22, 23, 24, 31, 32, 33,
		38, 39, 41, 42, 45, 46, 50, 51, 52, 53, 59, 60)
)

// Heart pulses a filled heart and its outline with two independent bouncing counters.
type Heart struct {
	buf          pixel.Buffer
	inner, outer Bounce
}

func NewHeart() *Heart {
	return &Heart{
		inner: Bounce{Value: 0, Descending: false, Lo: heartLo, Hi: heartHi, Step: heartStep},
		outer: Bounce{Value: heartHi, Descending: true, Lo: heartLo, Hi: heartHi, Step: heartStep},
	}
}

func (h *Heart) Name() string { return "heart" }

func (h *Heart) Pixels() pixel.Buffer { return h.buf }

// Counters exposes the inner and outline counters.
func (h *Heart) Counters() (inner, outer Bounce) { return h.inner, h.outer }

// InnerColor is the fill color for the current inner counter.
func (h *Heart) InnerColor() pixel.Color {
	return pixel.RGB(pixel.AddSat(h.inner.Value, heartTint), 0, 0)
}

// OuterColor is the outline color for the current outline counter.
func (h *Heart) OuterColor() pixel.Color {
	return pixel.RGB(h.outer.Value, 0, pixel.AddSat(h.outer.Value, heartTint))
}

func (h *Heart) Advance() {
	h.inner = h.inner.Advance()
	h.outer = h.outer.Advance()

	h.buf.Clear()
	h.buf.Paint(heartOuter, h.OuterColor())
	h.buf.Paint(heartInner, h.InnerColor())
}
