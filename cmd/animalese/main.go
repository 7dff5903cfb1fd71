// SPDX-License-Identifier: EPL-2.0

// Command animalese renders a speech recording in an Animalese voice.
//
//	animalese -in speech.mp3 -out critter.wav -pitch 9
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/nats-io/nats.go"

	"github.com/ik5/animalese/formats"
	"github.com/ik5/animalese/internal/config"
	"github.com/ik5/animalese/internal/pipeline"
	"github.com/ik5/animalese/store"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

type options struct {
	in, out, config string
	store           bool
	pitch           float64
	vibratoRate     float64
	vibratoDepth    float64
	distortion      float64
	speed           float64
}

func parseFlags(args []string, stderr io.Writer) (*options, map[string]bool, error) {
	fs := flag.NewFlagSet("animalese", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.in, "in", "", "input audio file (wav, mp3, ogg, aiff)")
	fs.StringVar(&o.out, "out", "", "output WAV file (default: <in>.animalese.wav)")
	fs.StringVar(&o.config, "config", "", "TOML or YAML configuration file")
	fs.BoolVar(&o.store, "store", false, "upload the clip to the NATS object store")
	fs.Float64Var(&o.pitch, "pitch", 0, "pitch shift in semitones")
	fs.Float64Var(&o.vibratoRate, "vibrato-rate", 0, "vibrato rate in Hz")
	fs.Float64Var(&o.vibratoDepth, "vibrato-depth", 0, "vibrato depth in [0, 1]")
	fs.Float64Var(&o.distortion, "distortion", 0, "pre-clip gain")
	fs.Float64Var(&o.speed, "speed", 0, "playback speed (validated, not applied)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set, nil
}

func loadConfig(o *options, set map[string]bool) (*config.Config, error) {
	cfg := config.Default()
	if o.config != "" {
		var err error
		if cfg, err = config.Load(o.config); err != nil {
			return nil, err
		}
	}

	// flags win over the file
	if set["pitch"] {
		cfg.Effect.PitchShift = o.pitch
	}
	if set["vibrato-rate"] {
		cfg.Effect.VibratoRate = o.vibratoRate
	}
	if set["vibrato-depth"] {
		cfg.Effect.VibratoDepth = o.vibratoDepth
	}
	if set["distortion"] {
		cfg.Effect.Distortion = o.distortion
	}
	if set["speed"] {
		cfg.Effect.Speed = o.speed
	}
	if o.store {
		cfg.NATS.Enabled = true
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultOut(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".animalese.wav"
}

func run(args []string, stderr io.Writer) int {
	o, set, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if o.in == "" {
		fmt.Fprintln(stderr, "animalese: -in is required")
		return 2
	}
	if o.out == "" {
		o.out = defaultOut(o.in)
	}

	cfg, err := loadConfig(o, set)
	if err != nil {
		fmt.Fprintf(stderr, "animalese: %v\n", err)
		return 1
	}

	logger := newLogger(stderr, cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := &pipeline.Pipeline{
		Registry: formats.NewRegistry(),
		Params:   cfg.Effect,
		Logger:   logger,
	}

	if cfg.NATS.Enabled {
		nc, err := nats.Connect(cfg.NATS.URL, nats.Name("animalese"))
		if err != nil {
			logger.Error("failed to connect to NATS", "url", cfg.NATS.URL, "err", err)
			return 1
		}
		defer nc.Close()

		js, err := nc.JetStream()
		if err != nil {
			logger.Error("failed to open JetStream", "err", err)
			return 1
		}
		clips, err := store.New(js, cfg.NATS.Bucket)
		if err != nil {
			logger.Error("failed to open clip store", "bucket", cfg.NATS.Bucket, "err", err)
			return 1
		}
		p.Store = clips
	}

	f, err := os.Open(o.in)
	if err != nil {
		logger.Error("failed to open input", "err", err)
		return 1
	}
	defer f.Close()

	res, err := p.Run(ctx, pipeline.Job{
		Format: formats.FormatOf(o.in),
		Input:  f,
	})
	if err != nil {
		return 1
	}

	if err := os.WriteFile(o.out, res.WAV, 0o644); err != nil {
		logger.Error("failed to write output", "path", o.out, "err", err)
		return 1
	}

	logger.Info("wrote clip", "path", o.out, "key", res.Key, "bytes", len(res.WAV))
	return 0
}

func newLogger(w io.Writer, c config.LogConfig) *slog.Logger {
	var lvl slog.Level
	switch c.Level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if c.Format == config.FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
