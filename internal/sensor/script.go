package sensor

import (
	"time"

	"github.com/coreman2200/funtimes-neomatrix/internal/sequence"
)

// Script replays a sequence program as accelerometer readings. Every
// reading advances the program by Step.
type Script struct {
	Step time.Duration

	sp *sequence.SafePlayer
}

func NewScript(prog sequence.Program, step time.Duration, h sequence.Hooks) (*Script, error) {
	sp := sequence.NewSafePlayer(h)
	var err error
	sp.With(func(p *sequence.Player) {
		if err = p.Load(prog); err == nil {
			p.Start()
		}
	})
	if err != nil {
		return nil, err
	}
	return &Script{Step: step, sp: sp}, nil
}

func (s *Script) Acceleration() (x, y, z float64, err error) {
	s.sp.With(func(p *sequence.Player) {
		p.Tick(s.Step.Seconds())
		x, y, z = p.Gravity()
	})
	return x, y, z, nil
}

// Player runs f with the underlying player locked.
func (s *Script) Player(f func(p *sequence.Player)) { s.sp.With(f) }

// Done reports whether a non-looping program has finished.
func (s *Script) Done() bool {
	done := false
	s.sp.With(func(p *sequence.Player) { done = p.State == sequence.Idle })
	return done
}
