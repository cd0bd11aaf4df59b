package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-neomatrix/internal/app"
	"github.com/coreman2200/funtimes-neomatrix/internal/config"
	"github.com/coreman2200/funtimes-neomatrix/internal/pixel"
	"github.com/coreman2200/funtimes-neomatrix/internal/term"
	"github.com/coreman2200/funtimes-neomatrix/internal/tests"
)

func main() {
	var (
		sampleMs = flag.Int("sample-ms", 20, "sampling interval (ms)")
		cadence  = flag.Int("cadence", 5, "samples per displayed frame")
		script   = flag.String("script", "", "play an orientation script instead of the keyboard")
		logPath  = flag.String("log", "", "write logs to this file (the terminal is busy)")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.Disabled)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Default()
	cfg.SampleMs = *sampleMs
	cfg.Cadence = *cadence
	cfg.Sensor.Kind = "remote"
	if *script != "" {
		cfg.Sensor.Kind = "script"
		cfg.Sensor.Script = *script
	}
	if err := cfg.Normalize(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer screen.Fini()

	preview := &term.Preview{Screen: screen, X: 2, Y: 1}
	core, err := app.InitCore(&cfg, preview)
	if err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer core.Close()
	preview.Status = func() string {
		st := core.State.Status()
		return fmt.Sprintf("%-8s %-14s frame %d", st.Mode, st.Orientation, st.FrameID)
	}
	help := "arrows: edge up   u/d/0: flat or unknown   t: test   q: quit"
	for i, r := range help {
		screen.SetContent(2+i, preview.Y+pixel.Height+3, r, nil, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cond := app.NewConductor(core, time.Duration(cfg.SampleMs)*time.Millisecond, 0)
	go func() { _ = cond.Run(ctx) }()

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				return
			}
			if ev.Key() == tcell.KeyRune && ev.Rune() == 't' {
				_ = core.Tests.Start(tests.IndexSweep)
				continue
			}
			if o, ok := term.KeyOrientation(ev.Key(), ev.Rune()); ok {
				core.Remote.Force(o)
			}
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			return
		}
	}
}
