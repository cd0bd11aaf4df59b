package anim

import "github.com/coreman2200/funtimes-neomatrix/internal/pixel"

const (
	launchStart  = 3
	launchTop    = 35
	fireworkPace = 3
	// BurstStages counts the launch stage plus the three rings.
	BurstStages = 4
)

var (
	fireworkRings = [...]pixel.Set{
		pixel.NewSet(26, 27, 28, 34, 35, 36, 42, 43, 44),
		pixel.NewSet(17, 19, 21, 33, 37, 49, 51, 53),
		pixel.NewSet(8, 11, 14, 32, 38, 56, 59, 62),
	}

	fireworkPalette = pixel.Palette{
		pixel.White,
		pixel.RGB(0, 100, 100), // cyan
		pixel.RGB(255, 0, 255), // magenta
		pixel.RGB(100, 0, 50),  // red
		pixel.RGB(255, 140, 0), // orange
		pixel.RGB(0, 255, 0),   // green
		pixel.RGB(0, 0, 255),   // blue
	}
)

// Firework launches a pixel up column 3 and bursts it into three growing rings.
//
// Stage 0 is the launch; stages 1-3 are the rings. Every third tick is a step:
// during launch a step draws the rocket and moves it one row, and the step that
// draws the top row switches to stage 1. During the burst a step moves to the
// next stage, and wrapping to 0 starts a new launch.
type Firework struct {
	buf       pixel.Buffer
	launching bool
	pos       int
	stage     int
	pace      int
	color     Cycle
}

func NewFirework() *Firework {
	return &Firework{
		launching: true,
		pos:       launchStart,
		color:     Cycle{Step: 1, Limit: 42, Size: len(fireworkPalette)},
	}
}

func (f *Firework) Name() string { return "firework" }

func (f *Firework) Pixels() pixel.Buffer { return f.buf }

// Launching reports whether the rocket is still rising.
func (f *Firework) Launching() bool { return f.launching }

// Stage is the frame selector in [0, BurstStages).
func (f *Firework) Stage() int { return f.stage }

// LaunchPos is the index the next launch step will draw.
func (f *Firework) LaunchPos() int { return f.pos }

func (f *Firework) ColorIndex() int { return f.color.Sel }

func (f *Firework) Advance() {
	f.color, _ = f.color.Advance()

	f.pace++
	step := f.pace >= fireworkPace
	if step {
		f.pace = 0
	}

	if f.launching {
		if !step {
			return
		}
		f.buf.Clear()
		f.buf[f.pos] = fireworkPalette.At(f.color.Sel)
		if f.pos == launchTop {
			f.launching = false
			f.stage = 1
			f.pos = launchStart
		} else {
			f.pos += pixel.Width
		}
		return
	}

	if step {
		f.stage = (f.stage + 1) % BurstStages
		if f.stage == 0 {
			f.launching = true
		}
	}
	f.renderStage()
}

// renderStage draws the burst from scratch; ring 2 keeps ring 1 underneath it.
func (f *Firework) renderStage() {
	c := fireworkPalette.At(f.color.Sel)
	f.buf.Clear()
	switch f.stage {
	case 1:
		f.buf.Paint(fireworkRings[0], c)
	case 2:
		f.buf.Paint(fireworkRings[0], c)
		f.buf.Paint(fireworkRings[1], c)
	case 3:
		f.buf.Paint(fireworkRings[2], c)
	}
}
