// SPDX-License-Identifier: EPL-2.0

// Package pipeline runs encoded speech through decode, the voice effect,
// analysis, WAV encoding and, optionally, the clip store.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/animalese"
	"github.com/ik5/animalese/analysis"
	"github.com/ik5/animalese/audio"
	"github.com/ik5/animalese/formats/wav"
	"github.com/ik5/animalese/internal/observe"
	"github.com/ik5/animalese/store"
	"github.com/ik5/animalese/utils"
	"github.com/ik5/animalese/voice"
)

// ClipStore persists rendered clips. *store.NatsStore satisfies it.
type ClipStore interface {
	Put(ctx context.Context, c store.Clip) (string, error)
}

// Job is one clip to render.
type Job struct {
	// Name identifies the job in logs and becomes the store key when set.
	Name string
	// Format is a registry key such as "wav" or ".mp3".
	Format string
	Input  io.Reader
}

// Result is a rendered clip.
type Result struct {
	Name   string
	Key    string // empty when no store is configured
	WAV    []byte
	Report analysis.Report
}

// Pipeline holds the shared settings for every run. A zero Logger falls
// back to slog.Default and a zero Metrics to observe.DefaultMetrics.
type Pipeline struct {
	Registry *audio.Registry
	Params   voice.Params
	Store    ClipStore
	Metrics  *observe.Metrics
	Logger   *slog.Logger
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func (p *Pipeline) metrics() *observe.Metrics {
	if p.Metrics != nil {
		return p.Metrics
	}
	return observe.DefaultMetrics()
}

// Run renders one job.
func (p *Pipeline) Run(ctx context.Context, job Job) (Result, error) {
	start := time.Now()
	log := p.logger().With("job", job.Name, "format", job.Format)

	res, err := p.run(ctx, job, log)

	status := observe.StatusOK
	if err != nil {
		status = observe.StatusError
	}
	p.metrics().RecordRender(ctx, job.Format, status, time.Since(start), res.Report.Duration)

	if err != nil {
		log.Error("render failed", "err", err)
		return Result{}, err
	}

	log.Info("render complete",
		"key", res.Key,
		"samples", res.Report.Samples,
		"duration", res.Report.Duration,
		"dominant_hz", res.Report.DominantFrequency,
		"took", time.Since(start),
	)
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, job Job, log *slog.Logger) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("decode: %w", err)
	}

	src, err := p.Registry.Decode(job.Format, job.Input)
	if err != nil {
		return Result{}, fmt.Errorf("decode: %w", err)
	}
	defer src.Close()

	log.Debug("decoded", "sample_rate", src.SampleRate(), "channels", src.Channels())

	out, err := animalese.Render(src, p.Params)
	if err != nil {
		return Result{}, err
	}

	rep, err := analysis.Analyze(out)
	if err != nil {
		return Result{}, fmt.Errorf("analyze: %w", err)
	}

	data, err := wav.EncodeBytes(out.SampleRate, utils.PCM16(out.Samples))
	if err != nil {
		return Result{}, fmt.Errorf("encode: %w", err)
	}

	res := Result{Name: job.Name, WAV: data, Report: rep}
	if p.Store == nil {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("store: %w", err)
	}
	res.Key, err = p.Store.Put(ctx, store.Clip{Key: job.Name, SampleRate: out.SampleRate, WAV: data})
	if err != nil {
		return Result{}, fmt.Errorf("store: %w", err)
	}
	p.metrics().RecordStored(ctx, len(data))

	return res, nil
}

// RunAll renders jobs with at most workers running at once and returns the
// results in job order. The first failure cancels the jobs not yet started.
func (p *Pipeline) RunAll(ctx context.Context, jobs []Job, workers int) ([]Result, error) {
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))

	for i, job := range jobs {
		g.Go(func() error {
			res, err := p.Run(ctx, job)
			if err != nil {
				return fmt.Errorf("job %q: %w", job.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
