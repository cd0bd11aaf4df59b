// Package scheduler drives the animations from the orientation samples and
// hands the selected frame to the output sink.
package scheduler

import (
	"errors"
	"fmt"

	"github.com/coreman2200/funtimes-neomatrix/internal/anim"
	"github.com/coreman2200/funtimes-neomatrix/internal/orient"
	"github.com/coreman2200/funtimes-neomatrix/internal/pixel"
)

// DefaultEvery is the number of sampling cycles per displayed frame.
const DefaultEvery = 5

var (
	ErrNoEngines  = errors.New("scheduler: no engines")
	ErrBadCadence = errors.New("scheduler: cadence must be positive")
)

// Sink receives exactly one full frame per call.
type Sink interface {
	Write(pixel.Buffer) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(pixel.Buffer) error

func (f SinkFunc) Write(b pixel.Buffer) error { return f(b) }

// Tee writes each frame to every sink and joins their errors.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(b pixel.Buffer) error {
		var errs []error
		for _, s := range sinks {
			if s == nil {
				continue
			}
			if err := s.Write(b); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// Scheduler owns the engines, the mode classifier and the frame cadence.
// Engines are indexed by orient.Mode. It is not safe for concurrent use.
type Scheduler struct {
	Engines []anim.Engine
	Sink    Sink
	Every   int

	// OnModeChange, if set, is called when a sample moves the mode.
	OnModeChange func(from, to orient.Mode)

	classifier *orient.Classifier
	cycle      int

	Last struct {
		Orientation orient.Orientation
		Mode        orient.Mode
		Frame       uint64
		Samples     uint64
	}
}

// New builds a scheduler that renders on the first sample and every `every`
// samples after that.
func New(sink Sink, every int, engines ...anim.Engine) (*Scheduler, error) {
	if len(engines) == 0 {
		return nil, ErrNoEngines
	}
	if every <= 0 {
		return nil, ErrBadCadence
	}
	for i, e := range engines {
		if e == nil {
			return nil, fmt.Errorf("scheduler: engine %d is nil", i)
		}
	}
	return &Scheduler{
		Engines:    engines,
		Sink:       sink,
		Every:      every,
		classifier: orient.NewClassifier(orient.ModeSpiral),
		cycle:      every - 1,
	}, nil
}

// Mode is the currently selected mode.
func (s *Scheduler) Mode() orient.Mode { return s.classifier.Mode() }

// Sample runs one sampling cycle: classify o, and on every Every-th cycle
// advance all engines and write the selected frame. It reports whether a
// frame was written.
func (s *Scheduler) Sample(o orient.Orientation) (bool, error) {
	s.Last.Samples++
	s.Last.Orientation = o

	from := s.classifier.Mode()
	to, changed := s.classifier.Update(o)
	s.Last.Mode = to
	if changed && s.OnModeChange != nil {
		s.OnModeChange(from, to)
	}

	s.cycle++
	if s.cycle < s.Every {
		return false, nil
	}
	s.cycle = 0
	return true, s.Render()
}

// Render advances every engine, hidden ones included, and writes the frame
// for the current mode.
func (s *Scheduler) Render() error {
	for _, e := range s.Engines {
		e.Advance()
	}
	buf := s.Select(s.classifier.Mode())
	s.Last.Frame++
	if s.Sink == nil {
		return nil
	}
	if err := s.Sink.Write(buf); err != nil {
		return fmt.Errorf("frame %d: %w", s.Last.Frame, err)
	}
	return nil
}

// Select returns the frame of the engine for m, or black when m has no engine.
func (s *Scheduler) Select(m orient.Mode) pixel.Buffer {
	if m < 0 || int(m) >= len(s.Engines) {
		return pixel.Buffer{}
	}
	return s.Engines[m].Pixels()
}
