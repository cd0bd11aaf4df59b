package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-neomatrix/internal/anim"
	"github.com/coreman2200/funtimes-neomatrix/internal/app"
	"github.com/coreman2200/funtimes-neomatrix/internal/orient"
	"github.com/coreman2200/funtimes-neomatrix/internal/pixel"
	"github.com/coreman2200/funtimes-neomatrix/internal/scheduler"
	"github.com/coreman2200/funtimes-neomatrix/internal/sensor"
	"github.com/coreman2200/funtimes-neomatrix/internal/sequence"
)

func main() {
	var (
		programPath = flag.String("program", "", "path to an orientation script (orient.v1 JSON)")
		sampleMs    = flag.Int("sample-ms", 5, "simulated sampling interval (ms)")
		cadence     = flag.Int("cadence", scheduler.DefaultEvery, "samples per displayed frame")
		threshold   = flag.Float64("threshold", orient.DefaultThreshold, "tracker threshold in g")
		maxSamples  = flag.Int("max-samples", 100000, "stop after this many samples")
		frames      = flag.Bool("frames", false, "log every rendered frame")
	)
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	if *programPath == "" {
		log.Fatal().Msg("provide -program path to an orientation script")
	}
	prog, err := app.LoadProgram(*programPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load program")
	}
	if prog.Loop {
		log.Warn().Int("max_samples", *maxSamples).Msg("looping program; bounded by -max-samples")
	}

	step := time.Duration(*sampleMs) * time.Millisecond
	var clock float64
	script, err := sensor.NewScript(prog, step, sequence.Hooks{
		SetOrientation: func(o orient.Orientation) {
			log.Info().Float64("t", clock).Stringer("orientation", o).Msg("step")
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("script")
	}
	src := sensor.NewTracked(script, *threshold)

	reg := anim.NewRegistry()
	for _, e := range anim.Default() {
		if err := reg.Register(e); err != nil {
			log.Fatal().Err(err).Msg("register")
		}
	}
	sink := scheduler.SinkFunc(func(b pixel.Buffer) error {
		if *frames {
			log.Debug().Float64("t", clock).Int("lit", b.Lit()).Ints("pixels", b.LitIndices()).Msg("frame")
		}
		return nil
	})
	sched, err := scheduler.New(sink, *cadence, reg.Engines()...)
	if err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}
	sched.OnModeChange = func(from, to orient.Mode) {
		log.Info().Float64("t", clock).Stringer("from", from).Stringer("to", to).Msg("mode change")
	}
	log.Info().Strs("engines", reg.List()).Int("cadence", *cadence).Msg("playing")

	ctx := context.Background()
	for i := 0; i < *maxSamples && !script.Done(); i++ {
		clock += step.Seconds()
		o, err := src.Orientation(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("sample")
		}
		if _, err := sched.Sample(o); err != nil {
			log.Fatal().Err(err).Msg("render")
		}
	}
	log.Info().
		Float64("t", clock).
		Uint64("samples", sched.Last.Samples).
		Uint64("frames", sched.Last.Frame).
		Stringer("mode", sched.Mode()).
		Msg("done")
}
