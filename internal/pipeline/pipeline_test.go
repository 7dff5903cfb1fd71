// SPDX-License-Identifier: EPL-2.0

package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/ik5/animalese/audio"
	"github.com/ik5/animalese/formats"
	"github.com/ik5/animalese/formats/wav"
	"github.com/ik5/animalese/internal/audiotest"
	"github.com/ik5/animalese/internal/observe"
	"github.com/ik5/animalese/internal/pipeline"
	"github.com/ik5/animalese/store"
	"github.com/ik5/animalese/utils"
	"github.com/ik5/animalese/voice"
)

type memStore struct {
	mu    sync.Mutex
	clips map[string]store.Clip
	err   error
}

func (m *memStore) Put(_ context.Context, c store.Clip) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return "", m.err
	}
	if m.clips == nil {
		m.clips = map[string]store.Clip{}
	}
	key := c.Key
	if key == "" {
		key = "generated"
	}
	m.clips[key] = c
	return key, nil
}

func toneWAV(t *testing.T, rate, n int, freq float64) []byte {
	t.Helper()

	data, err := wav.EncodeBytes(rate, utils.PCM16(audiotest.Sine(rate, n, freq, 0.5)))
	require.NoError(t, err)
	return data
}

func newPipeline(t *testing.T, s pipeline.ClipStore) *pipeline.Pipeline {
	t.Helper()

	mp := sdkmetric.NewMeterProvider()
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := observe.NewMetrics(mp)
	require.NoError(t, err)

	return &pipeline.Pipeline{
		Registry: formats.NewRegistry(),
		Params:   voice.DefaultParams(),
		Store:    s,
		Metrics:  m,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	st := &memStore{}
	p := newPipeline(t, st)
	p.Params.VibratoDepth = 0
	p.Params.PitchShift = 12

	res, err := p.Run(context.Background(), pipeline.Job{
		Name:   "hello",
		Format: "wav",
		Input:  bytes.NewReader(toneWAV(t, 16000, 16000, 440)),
	})
	require.NoError(t, err)

	assert.Equal(t, "hello", res.Key)
	assert.Equal(t, 8000, res.Report.Samples)
	assert.Equal(t, 1.0, res.Report.Peak)
	assert.InDelta(t, 880, res.Report.DominantFrequency, 3)
	assert.Len(t, res.WAV, 44+2*8000)

	require.Contains(t, st.clips, "hello")
	assert.Equal(t, res.WAV, st.clips["hello"].WAV)
	assert.Equal(t, 16000, st.clips["hello"].SampleRate)
}

func TestRun_NoStore(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, nil)
	res, err := p.Run(context.Background(), pipeline.Job{
		Format: ".WAV",
		Input:  bytes.NewReader(toneWAV(t, 8000, 4000, 300)),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Key)
	assert.NotEmpty(t, res.WAV)
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	storeErr := errors.New("bucket offline")

	tests := []struct {
		name   string
		ctx    context.Context
		store  pipeline.ClipStore
		params func(*voice.Params)
		job    pipeline.Job
		want   error
	}{
		{
			name: "unknown format",
			ctx:  context.Background(),
			job:  pipeline.Job{Format: "flac", Input: bytes.NewReader(nil)},
			want: audio.ErrUnsupportedFormat,
		},
		{
			name: "canceled",
			ctx:  canceled,
			job:  pipeline.Job{Format: "wav", Input: bytes.NewReader(toneWAV(t, 8000, 800, 300))},
			want: context.Canceled,
		},
		{
			name:   "bad params",
			ctx:    context.Background(),
			params: func(p *voice.Params) { p.Distortion = -1 },
			job:    pipeline.Job{Format: "wav", Input: bytes.NewReader(toneWAV(t, 8000, 800, 300))},
			want:   voice.ErrInvalidParameter,
		},
		{
			name:  "store failure",
			ctx:   context.Background(),
			store: &memStore{err: storeErr},
			job:   pipeline.Job{Format: "wav", Input: bytes.NewReader(toneWAV(t, 8000, 800, 300))},
			want:  storeErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newPipeline(t, tt.store)
			if tt.params != nil {
				tt.params(&p.Params)
			}
			_, err := p.Run(tt.ctx, tt.job)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRunAll_KeepsOrder(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, &memStore{})
	p.Params.VibratoDepth = 0
	p.Params.PitchShift = 0
	p.Params.Distortion = 1

	freqs := []float64{200, 400, 800, 1600}
	jobs := make([]pipeline.Job, len(freqs))
	for i, f := range freqs {
		jobs[i] = pipeline.Job{
			Name:   string(rune('a' + i)),
			Format: "wav",
			Input:  bytes.NewReader(toneWAV(t, 16000, 8192, f)),
		}
	}

	results, err := p.RunAll(context.Background(), jobs, 2)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))

	for i, res := range results {
		assert.Equal(t, jobs[i].Name, res.Name)
		assert.InDelta(t, freqs[i], res.Report.DominantFrequency, 3)
	}
}

func TestRunAll_FirstErrorWins(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, nil)
	jobs := []pipeline.Job{
		{Name: "good", Format: "wav", Input: bytes.NewReader(toneWAV(t, 8000, 800, 300))},
		{Name: "bad", Format: "wav", Input: bytes.NewReader([]byte("not audio"))},
	}

	_, err := p.RunAll(context.Background(), jobs, 4)
	require.ErrorIs(t, err, wav.ErrNotWavFile)
	assert.Contains(t, err.Error(), `job "bad"`)
}

func TestRun_NatsStore(t *testing.T) {
	t.Parallel()

	opts := test.DefaultTestOptions
	opts.Port = -1
	opts.JetStream = true
	opts.StoreDir = t.TempDir()
	srv := test.RunServer(&opts)
	t.Cleanup(srv.Shutdown)

	nc, err := nats.Connect(srv.ClientURL())
	require.NoError(t, err)
	t.Cleanup(nc.Close)
	js, err := nc.JetStream()
	require.NoError(t, err)

	clips, err := store.New(js, "pipeline-test")
	require.NoError(t, err)

	p := newPipeline(t, clips)
	res, err := p.Run(context.Background(), pipeline.Job{
		Format: "wav",
		Input:  bytes.NewReader(toneWAV(t, 22050, 11025, 330)),
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Key)

	got, err := clips.Get(context.Background(), res.Key)
	require.NoError(t, err)
	assert.Equal(t, res.WAV, got.WAV)
	assert.Equal(t, 22050, got.SampleRate)

	src, err := wav.Decoder{}.Decode(bytes.NewReader(got.WAV))
	require.NoError(t, err)
	samples, err := audio.ReadAll(src, 0)
	require.NoError(t, err)

	var peak float64
	for _, s := range samples {
		peak = max(peak, math.Abs(float64(s)))
	}
	assert.InDelta(t, 1.0, peak, 1e-3)
}
