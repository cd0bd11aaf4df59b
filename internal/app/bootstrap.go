// Package app wires configuration, drivers, sensors and the scheduler.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-neomatrix/internal/anim"
	"github.com/coreman2200/funtimes-neomatrix/internal/config"
	diag "github.com/coreman2200/funtimes-neomatrix/internal/diagnostics"
	"github.com/coreman2200/funtimes-neomatrix/internal/led"
	"github.com/coreman2200/funtimes-neomatrix/internal/orient"
	"github.com/coreman2200/funtimes-neomatrix/internal/scheduler"
	"github.com/coreman2200/funtimes-neomatrix/internal/sensor"
	"github.com/coreman2200/funtimes-neomatrix/internal/sequence"
	"github.com/coreman2200/funtimes-neomatrix/internal/tests"
	"github.com/coreman2200/funtimes-neomatrix/internal/ws"
)

// Core is a fully wired matrix: engines, scheduler, outputs and sources.
type Core struct {
	Sched  *scheduler.Scheduler
	Source sensor.Source
	Remote *sensor.Override
	State  *ws.State
	Tests  *tests.Overlay
	Output *led.Output
	Driver string

	closers []io.Closer
}

// OpenDriver builds the configured driver. Hardware that fails to open
// falls back to Sim; the returned name is the driver actually in use.
func OpenDriver(cfg *config.Config) (led.Driver, string) {
	var (
		drv led.Driver
		err error
	)
	switch cfg.Driver {
	case "sim":
		return led.NewSim(), "sim"
	case "spi":
		drv, err = led.NewSPI(cfg.SPI.Dev, cfg.ColorOrder, cfg.SPI.SpeedHz, cfg.SPI.ResetUs)
	case "pwm":
		drv, err = led.NewPWM(cfg.GPIO, cfg.ColorOrder, cfg.Brightness)
	case "nrz":
		drv, err = led.OpenNRZ(cfg.NRZ.Port, physic.Frequency(cfg.NRZ.FreqKHz)*physic.KiloHertz)
	case "serial":
		drv, err = led.OpenSerial(cfg.Serial.Port, cfg.Serial.PortOptions)
	default:
		err = fmt.Errorf("unknown driver %q", cfg.Driver)
	}
	if err != nil {
		log.Warn().Err(err).Str("driver", cfg.Driver).Msg("driver init failed; falling back to SIM")
		return led.NewSim(), "sim"
	}
	return drv, cfg.Driver
}

// LoadProgram reads an orientation script (JSON).
func LoadProgram(path string) (sequence.Program, error) {
	var prog sequence.Program
	b, err := os.ReadFile(path)
	if err != nil {
		return prog, err
	}
	if err := json.Unmarshal(b, &prog); err != nil {
		return prog, fmt.Errorf("parse %s: %w", path, err)
	}
	return prog, prog.Validate()
}

// OpenSource builds the configured orientation source. The result is
// always wrapped by remote so /control can take over.
func OpenSource(cfg *config.Config, remote *sensor.Override) (io.Closer, error) {
	s := cfg.Sensor
	switch s.Kind {
	case "remote":
		remote.Base = sensor.Fixed(orient.Unknown)
	case "fixed":
		o, err := orient.Parse(s.Fixed)
		if err != nil {
			return nil, err
		}
		remote.Base = sensor.Fixed(o)
	case "script":
		prog, err := LoadProgram(s.Script)
		if err != nil {
			return nil, fmt.Errorf("script: %w", err)
		}
		sc, err := sensor.NewScript(prog, time.Duration(cfg.SampleMs)*time.Millisecond, sequence.Hooks{
			SetOrientation: func(o orient.Orientation) {
				log.Debug().Stringer("orientation", o).Msg("script step")
			},
			Done: func() { log.Info().Msg("script finished") },
		})
		if err != nil {
			return nil, fmt.Errorf("script: %w", err)
		}
		remote.Base = sensor.NewTracked(sc, s.Threshold)
	case "lis3dh":
		bus, err := i2creg.Open(s.I2CBus)
		if err != nil {
			return nil, fmt.Errorf("i2c %q: %w", s.I2CBus, err)
		}
		rng, err := sensor.ParseRange(s.RangeG)
		if err != nil {
			_ = bus.Close()
			return nil, err
		}
		acc, err := sensor.NewLIS3DH(bus, &sensor.LIS3DHOpts{Addr: s.Address, Range: rng})
		if err != nil {
			_ = bus.Close()
			return nil, err
		}
		log.Info().Stringer("sensor", acc).Msg("accelerometer ready")
		remote.Base = sensor.NewTracked(acc, s.Threshold)
		return bus, nil
	default:
		return nil, fmt.Errorf("unknown sensor %q", s.Kind)
	}
	return nil, nil
}

// InitCore builds everything cfg describes. extra sinks see every frame
// after the hardware output.
func InitCore(cfg *config.Config, extra ...scheduler.Sink) (*Core, error) {
	c := &Core{Remote: &sensor.Override{}}
	c.Source = c.Remote

	drv, name := OpenDriver(cfg)
	c.Driver = name
	c.Output = led.NewOutput(drv, cfg.Layout.Layout(), cfg.Brightness)
	c.Output.Power = cfg.Power
	c.closers = append(c.closers, c.Output)

	c.State = ws.NewState(cfg.Cadence, c.Remote)
	c.State.CurrentDriver = name
	c.State.Config = cfg
	if name != cfg.Driver {
		c.State.PushDiag(diag.New(diag.Warn, diag.DriverFallback, "hardware driver unavailable").
			With("requested", cfg.Driver))
	}

	closer, err := OpenSource(cfg, c.Remote)
	if err != nil {
		log.Warn().Err(err).Str("sensor", cfg.Sensor.Kind).Msg("sensor init failed; orientation stays unknown")
		c.Remote.Base = sensor.Fixed(orient.Unknown)
	} else if closer != nil {
		c.closers = append(c.closers, closer)
	}
	if f := cfg.Sensor.Forced; f != "" {
		if o, err := orient.Parse(f); err != nil {
			log.Warn().Err(err).Msg("ignoring saved forced orientation")
		} else {
			c.Remote.Force(o)
		}
	}

	sinks := append([]scheduler.Sink{c.Output, c.State}, extra...)
	c.Tests = &tests.Overlay{
		Next:   scheduler.Tee(sinks...),
		Layout: cfg.Layout.Layout(),
		OnDone: func(k tests.Kind) {
			c.State.PushDiag(diag.New(diag.Info, diag.TestFinished, "Test complete").With("test", string(k)))
		},
	}
	c.State.Tests = c.Tests

	c.Sched, err = scheduler.New(c.Tests, cfg.Cadence, anim.Default()...)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Sched.OnModeChange = func(from, to orient.Mode) {
		log.Info().Stringer("from", from).Stringer("to", to).Msg("mode change")
		c.State.ModeChanged(from, to)
	}
	return c, nil
}

// Close releases drivers and buses.
func (c *Core) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
