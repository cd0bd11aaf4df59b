package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-neomatrix/internal/orient"
	"github.com/coreman2200/funtimes-neomatrix/internal/scheduler"
	"github.com/coreman2200/funtimes-neomatrix/internal/sensor"
)

// Conductor samples the orientation source at a fixed interval and feeds
// the scheduler.
type Conductor struct {
	Sched    *scheduler.Scheduler
	Src      sensor.Source
	Interval time.Duration
	// Warmup delays the first sample while the sensor settles.
	Warmup time.Duration
	// OnSample, if set, sees every classified sample.
	OnSample func(o orient.Orientation, m orient.Mode)
}

func NewConductor(c *Core, interval, warmup time.Duration) *Conductor {
	return &Conductor{
		Sched:    c.Sched,
		Src:      c.Source,
		Interval: interval,
		Warmup:   warmup,
		OnSample: c.State.SetStatus,
	}
}

// Step runs one sampling cycle. Source errors read as Unknown and write
// errors are logged; neither stops the animation clock.
func (c *Conductor) Step(ctx context.Context) {
	o, err := c.Src.Orientation(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Warn().Err(err).Msg("orientation read failed")
		o = orient.Unknown
	}
	if _, err := c.Sched.Sample(o); err != nil {
		log.Warn().Err(err).Msg("frame write failed")
	}
	if c.OnSample != nil {
		c.OnSample(o, c.Sched.Mode())
	}
}

// Run samples until ctx is done.
func (c *Conductor) Run(ctx context.Context) error {
	if c.Warmup > 0 {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.Warmup):
		}
	}
	interval := c.Interval
	if interval <= 0 {
		interval = 5 * time.Millisecond
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()
	log.Info().Dur("interval", interval).Int("cadence", c.Sched.Every).Msg("conductor running")
	for {
		c.Step(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
	}
}
