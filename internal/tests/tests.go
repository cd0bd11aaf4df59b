// Package tests drives hardware test patterns used to check LED wiring.
package tests

import (
	"fmt"
	"sync"

	"github.com/coreman2200/funtimes-neomatrix/internal/layout"
	"github.com/coreman2200/funtimes-neomatrix/internal/pixel"
	"github.com/coreman2200/funtimes-neomatrix/internal/scheduler"
)

type Kind string

const (
	None       Kind = ""
	IndexSweep Kind = "index_sweep"
	RGBTest    Kind = "rgb_channels"
	RowSweep   Kind = "row_sweep"
)

// ParseKind accepts the Kind string forms.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case IndexSweep, RGBTest, RowSweep:
		return k, nil
	}
	return None, fmt.Errorf("unknown test %q", s)
}

type Plan struct{ Kind Kind }

type Runner struct {
	plan Plan
	step int
}

func NewRunner(plan Plan) *Runner { return &Runner{plan: plan} }
func (r *Runner) Kind() Kind      { return r.plan.Kind }

// Step fills b with the next pattern frame; returns false when complete.
// IndexSweep walks strip positions, so l decides which cell lights.
func (r *Runner) Step(l layout.Layout, b *pixel.Buffer) bool {
	b.Clear()
	switch r.plan.Kind {
	case IndexSweep:
		if r.step >= l.Count() {
			return false
		}
		for i, p := range l.Map() {
			if p == r.step {
				b[i] = pixel.White
			}
		}
	case RGBTest:
		if r.step >= 3 {
			return false
		}
		c := [3]pixel.Color{{R: 255}, {G: 255}, {B: 255}}[r.step]
		for i := range b {
			b[i] = c
		}
	case RowSweep:
		if r.step >= pixel.Height {
			return false
		}
		for col := 0; col < pixel.Width; col++ {
			b[pixel.Index(r.step, col)] = pixel.RGB(0, 255, 255)
		}
	default:
		return false
	}
	r.step++
	return true
}

// Overlay is a sink that replaces animation frames with a test pattern
// while one runs.
type Overlay struct {
	Next   scheduler.Sink
	Layout layout.Layout
	// OnDone fires once a pattern has shown its last frame.
	OnDone func(Kind)

	mu  sync.Mutex
	run *Runner
}

// Start begins a pattern, replacing any running one.
func (o *Overlay) Start(k Kind) error {
	if _, err := ParseKind(string(k)); err != nil {
		return err
	}
	o.mu.Lock()
	o.run = NewRunner(Plan{Kind: k})
	o.mu.Unlock()
	return nil
}

// Active reports the running pattern, or None.
func (o *Overlay) Active() Kind {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.run == nil {
		return None
	}
	return o.run.Kind()
}

func (o *Overlay) Write(b pixel.Buffer) error {
	o.mu.Lock()
	var done Kind
	if o.run != nil {
		var t pixel.Buffer
		if o.run.Step(o.Layout, &t) {
			o.mu.Unlock()
			return o.Next.Write(t)
		}
		done = o.run.Kind()
		o.run = nil
	}
	o.mu.Unlock()
	if done != None && o.OnDone != nil {
		o.OnDone(done)
	}
	return o.Next.Write(b)
}
