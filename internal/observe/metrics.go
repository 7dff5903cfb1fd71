// SPDX-License-Identifier: EPL-2.0

// Package observe provides OpenTelemetry metric instruments for the render
// pipeline.
//
// A package-level default [Metrics] instance ([DefaultMetrics]) is backed by
// the global meter provider; tests should use [NewMetrics] with their own
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all metrics.
const meterName = "github.com/ik5/animalese"

// Render outcomes used as the "status" attribute.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds all metric instruments. The OTel types handle their own
// synchronisation, so a Metrics is safe for concurrent use.
type Metrics struct {
	// RenderDuration tracks wall time of one pipeline run. Use with
	//   attribute.String("format", ...), attribute.String("status", ...)
	RenderDuration metric.Float64Histogram

	// Renders counts pipeline runs by format and status.
	Renders metric.Int64Counter

	// AudioSeconds accumulates the duration of successfully rendered audio.
	AudioSeconds metric.Float64Counter

	// StoredBytes counts WAV bytes written to the clip store.
	StoredBytes metric.Int64Counter
}

// latencyBuckets are histogram boundaries in seconds. Short clips render in
// milliseconds; long recordings take seconds.
var latencyBuckets = []float64{
	0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
}

// NewMetrics creates every instrument from mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.RenderDuration, err = m.Float64Histogram("animalese.render.duration",
		metric.WithDescription("Latency of one decode, transform and encode run."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Renders, err = m.Int64Counter("animalese.renders",
		metric.WithDescription("Total render runs by input format and status."),
	); err != nil {
		return nil, err
	}
	if met.AudioSeconds, err = m.Float64Counter("animalese.rendered_audio",
		metric.WithDescription("Seconds of audio produced."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if met.StoredBytes, err = m.Int64Counter("animalese.store.bytes",
		metric.WithDescription("WAV bytes uploaded to the clip store."),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Panics if instrument creation
// fails.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordRender records one pipeline run. audio is the rendered duration and
// is only counted for successful runs.
func (m *Metrics) RecordRender(ctx context.Context, format, status string, took, audio time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("format", format),
		attribute.String("status", status),
	)
	m.RenderDuration.Record(ctx, took.Seconds(), attrs)
	m.Renders.Add(ctx, 1, attrs)
	if status == StatusOK {
		m.AudioSeconds.Add(ctx, audio.Seconds())
	}
}

// RecordStored records a clip upload of n bytes.
func (m *Metrics) RecordStored(ctx context.Context, n int) {
	m.StoredBytes.Add(ctx, int64(n))
}
