package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-neomatrix/internal/app"
	"github.com/coreman2200/funtimes-neomatrix/internal/config"
)

func main() {
	// ---- Flags (config.yaml overrides where set) ----
	var (
		driver     = flag.String("driver", "sim", "driver: sim | spi | pwm | nrz | serial")
		colorOrder = flag.String("color", "GRB", "LED color order (e.g. GRB, RGB)")
		brightness = flag.Float64("brightness", 1, "sink brightness 0..1")
		sampleMs   = flag.Int("sample-ms", 5, "orientation sampling interval (ms)")
		cadence    = flag.Int("cadence", 5, "samples per displayed frame")
		sensorKind = flag.String("sensor", "lis3dh", "orientation source: lis3dh | script | remote | fixed")
		script     = flag.String("script", "", "orientation script JSON for -sensor script")
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
		level      = flag.String("log-level", "info", "zerolog level")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(*level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// ---- Effective config: flags, then config.yaml ----
	cfg := config.Default()
	cfg.Driver = *driver
	cfg.ColorOrder = *colorOrder
	cfg.Brightness = *brightness
	cfg.SampleMs = *sampleMs
	cfg.Cadence = *cadence
	cfg.Sensor.Kind = *sensorKind
	cfg.Sensor.Script = *script
	cfg.HTTP.Addr = *addr
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		if err := cfg.Normalize(); err != nil {
			log.Fatal().Err(err).Msg("invalid flags")
		}
	} else {
		cfg = *c
	}
	if *simOnly {
		cfg.Driver = "sim"
	}

	if _, err := host.Init(); err != nil {
		log.Warn().Err(err).Msg("periph host init failed; hardware drivers unavailable")
	}

	core, err := app.InitCore(&cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}
	core.State.ConfigPath = *configPath

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	core.State.Routes(mux)
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Str("driver", core.Driver).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server crashed")
			stop()
		}
	}()

	cond := app.NewConductor(core,
		time.Duration(cfg.SampleMs)*time.Millisecond,
		time.Duration(cfg.Sensor.WarmupMs)*time.Millisecond)
	_ = cond.Run(ctx)

	log.Info().Msg("shutting down")
	_ = srv.Close()
	if err := core.Close(); err != nil {
		log.Warn().Err(err).Msg("close")
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}
