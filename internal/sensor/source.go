// Package sensor supplies device orientation samples to the frame loop.
package sensor

import (
	"context"
	"sync"

	"github.com/coreman2200/funtimes-neomatrix/internal/orient"
)

// Source yields one orientation sample per call.
type Source interface {
	Orientation(ctx context.Context) (orient.Orientation, error)
}

// Accelerometer reports gravity in g along the device axes.
type Accelerometer interface {
	Acceleration() (x, y, z float64, err error)
}

// Fixed always reports the same orientation.
type Fixed orient.Orientation

func (f Fixed) Orientation(context.Context) (orient.Orientation, error) {
	return orient.Orientation(f), nil
}

// Func adapts a function to Source.
type Func func(ctx context.Context) (orient.Orientation, error)

func (f Func) Orientation(ctx context.Context) (orient.Orientation, error) { return f(ctx) }

// Tracked classifies accelerometer readings.
type Tracked struct {
	Accel   Accelerometer
	Tracker *orient.Tracker
}

func NewTracked(a Accelerometer, threshold float64) *Tracked {
	return &Tracked{Accel: a, Tracker: orient.NewTracker(threshold)}
}

func (t *Tracked) Orientation(ctx context.Context) (orient.Orientation, error) {
	if err := ctx.Err(); err != nil {
		return orient.Unknown, err
	}
	x, y, z, err := t.Accel.Acceleration()
	if err != nil {
		return orient.Unknown, err
	}
	return t.Tracker.Update(x, y, z), nil
}

// Override passes Base through unless an orientation has been forced.
type Override struct {
	Base Source

	mu     sync.Mutex
	forced orient.Orientation
	set    bool
}

// Force pins every sample to o until Release.
func (s *Override) Force(o orient.Orientation) {
	s.mu.Lock()
	s.forced, s.set = o, true
	s.mu.Unlock()
}

func (s *Override) Release() {
	s.mu.Lock()
	s.set = false
	s.mu.Unlock()
}

// Forced reports the pinned orientation, if any.
func (s *Override) Forced() (orient.Orientation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forced, s.set
}

func (s *Override) Orientation(ctx context.Context) (orient.Orientation, error) {
	if o, ok := s.Forced(); ok {
		return o, nil
	}
	if s.Base == nil {
		return orient.Unknown, nil
	}
	return s.Base.Orientation(ctx)
}
