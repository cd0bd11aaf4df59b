package sequence

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/coreman2200/funtimes-neomatrix/internal/orient"
)

var ErrEmptyProgram = errors.New("program has no steps")

// NewPlayer constructs a Player with provided hooks.
func NewPlayer(h Hooks) *Player {
	return &Player{State: Idle, hooks: h}
}

// Validate checks durations and tilt windows.
func (prog Program) Validate() error {
	if len(prog.Steps) == 0 {
		return ErrEmptyProgram
	}
	for i, s := range prog.Steps {
		if s.DurationS <= 0 {
			return fmt.Errorf("step %d: duration must be positive", i)
		}
		if s.TiltS < 0 || s.TiltS > s.DurationS {
			return fmt.Errorf("step %d: tilt %.2fs outside [0, %.2fs]", i, s.TiltS, s.DurationS)
		}
	}
	return nil
}

// Duration is the length of one pass through the program.
func (prog Program) Duration() float64 {
	total := 0.0
	for _, s := range prog.Steps {
		total += s.DurationS
	}
	return total
}

// Load replaces the current program. Resets time and state to Idle.
func (p *Player) Load(prog Program) error {
	if err := prog.Validate(); err != nil {
		return err
	}
	p.prog = prog
	p.nowS = 0
	p.idx = 0
	p.State = Idle
	p.g[0], p.g[1], p.g[2] = orient.Gravity(prog.Steps[0].Orientation)
	return nil
}

// Start moves to Running and reports the first step.
func (p *Player) Start() {
	if p.State == Running || len(p.prog.Steps) == 0 {
		return
	}
	p.State = Running
	p.enter()
}

// Pause pauses playback.
func (p *Player) Pause() { p.State = Paused }

// Resume resumes playback.
func (p *Player) Resume() {
	if p.State == Paused {
		p.State = Running
	}
}

// Stop stops and resets to start.
func (p *Player) Stop() {
	p.State = Idle
	p.nowS = 0
	p.idx = 0
}

// Seek jumps to absolute program time t, clamped into [0, total).
func (p *Player) Seek(t float64) {
	if len(p.prog.Steps) == 0 {
		return
	}
	if t < 0 {
		t = 0
	}
	total := p.prog.Duration()
	if t >= total {
		t = math.Nextafter(total, -1)
	}
	acc := 0.0
	idx := 0
	for i, s := range p.prog.Steps {
		if t < acc+s.DurationS {
			idx = i
			break
		}
		acc += s.DurationS
	}
	p.idx = idx
	p.nowS = t
	p.enter()
	p.update()
}

// Now is the position within the program in seconds.
func (p *Player) Now() float64 { return p.nowS }

// Step is the current step.
func (p *Player) Step() Step {
	if len(p.prog.Steps) == 0 {
		return Step{}
	}
	return p.prog.Steps[p.idx]
}

// Gravity is the most recent simulated reading.
func (p *Player) Gravity() (x, y, z float64) { return p.g[0], p.g[1], p.g[2] }

// Tick advances the sequencer by dt seconds and emits hooks.
func (p *Player) Tick(dt float64) {
	if p.State != Running || len(p.prog.Steps) == 0 || dt <= 0 {
		return
	}
	p.nowS += dt
	for p.State == Running {
		step, localT := p.current()
		if localT < step.DurationS {
			break
		}
		p.advance()
	}
	if p.State == Running {
		p.update()
	}
}

func (p *Player) update() {
	step, localT := p.current()
	x, y, z := orient.Gravity(step.Orientation)
	if next := p.nextIndex(); step.TiltS > 0 && next != -1 {
		alpha := Ramp(step.DurationS-step.TiltS, step.DurationS, step.Ease).Eval(localT)
		nx, ny, nz := orient.Gravity(p.prog.Steps[next].Orientation)
		x += (nx - x) * alpha
		y += (ny - y) * alpha
		z += (nz - z) * alpha
	}
	p.g = [3]float64{x, y, z}
	if p.hooks.SetGravity != nil {
		p.hooks.SetGravity(x, y, z)
	}
}

func (p *Player) enter() {
	step := p.prog.Steps[p.idx]
	p.g[0], p.g[1], p.g[2] = orient.Gravity(step.Orientation)
	if p.hooks.SetOrientation != nil {
		p.hooks.SetOrientation(step.Orientation)
	}
}

func (p *Player) current() (Step, float64) {
	acc := 0.0
	for i := 0; i < p.idx; i++ {
		acc += p.prog.Steps[i].DurationS
	}
	return p.prog.Steps[p.idx], p.nowS - acc
}

func (p *Player) nextIndex() int {
	ni := p.idx + 1
	if ni >= len(p.prog.Steps) {
		if p.prog.Loop {
			return 0
		}
		return -1
	}
	return ni
}

func (p *Player) advance() {
	next := p.nextIndex()
	if next == -1 {
		p.State = Idle
		if p.hooks.Done != nil {
			p.hooks.Done()
		}
		return
	}
	if next == 0 {
		p.nowS -= p.prog.Duration()
	}
	p.idx = next
	p.enter()
}

// SafePlayer serialises access to a Player shared between goroutines.
type SafePlayer struct {
	mu sync.Mutex
	P  *Player
}

func NewSafePlayer(h Hooks) *SafePlayer {
	return &SafePlayer{P: NewPlayer(h)}
}

func (s *SafePlayer) With(f func(p *Player)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.P)
}
