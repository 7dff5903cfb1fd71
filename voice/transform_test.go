// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/animalese/internal/audiotest"
)

func plainParams(t *testing.T, pitch float64) Params {
	t.Helper()

	p, err := NewParams(
		WithPitchShift(pitch),
		WithVibrato(0, 0),
		WithDistortion(1),
	)
	if err != nil {
		t.Fatalf("NewParams() error = %v", err)
	}
	return p
}

func TestTransform_IdentityPitch(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine(16000, 16000, 440, 0.5)
	out, err := Transform(Waveform{Samples: in, SampleRate: 16000}, plainParams(t, 0))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	if diff := out.Len() - len(in); diff < -1 || diff > 1 {
		t.Fatalf("Transform() len = %d, want %d ±1", out.Len(), len(in))
	}

	peak := maxAbs(in)
	for i, v := range out.Samples {
		if want := in[i] / peak; math.Abs(v-want) > 1e-12 {
			t.Fatalf("out[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestTransform_OctaveUpSine(t *testing.T) {
	t.Parallel()

	// 1 s of 440 Hz at amplitude 0.5, one octave up, every other stage neutral.
	in := audiotest.Sine(16000, 16000, 440, 0.5)
	out, err := Transform(Waveform{Samples: in, SampleRate: 16000}, plainParams(t, 12))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	if out.Len() != 8000 {
		t.Fatalf("Transform() len = %d, want 8000", out.Len())
	}
	if out.SampleRate != 16000 {
		t.Errorf("Transform() rate = %d, want 16000", out.SampleRate)
	}
	if peak := maxAbs(out.Samples); peak != 1.0 {
		t.Errorf("peak = %v, want exactly 1.0", peak)
	}

	// Away from the edges the output is the input sine at twice the speed.
	for j := 100; j < 7900; j++ {
		want := math.Sin(2 * math.Pi * 440 * float64(2*j) / 16000)
		if math.Abs(out.Samples[j]-want) > 0.02 {
			t.Fatalf("out[%d] = %v, want ≈%v", j, out.Samples[j], want)
		}
	}
}

func TestResample_OctaveUpKeepsAmplitude(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine(16000, 16000, 440, 0.5)
	pitched, err := pitchShift(in, 12)
	if err != nil {
		t.Fatalf("pitchShift() error = %v", err)
	}

	// 0.5 is under the clip level, so distortion at gain 1 must leave it alone.
	peak := maxAbs(pitched)
	if peak < 0.49 || peak > 0.51 {
		t.Errorf("pitched peak = %v, want ≈0.5", peak)
	}
	clipped := applyDistortion(pitched, 1)
	for i := range pitched {
		if clipped[i] != pitched[i] {
			t.Fatalf("distortion changed sample %d: %v -> %v", i, pitched[i], clipped[i])
		}
	}
}

func TestResampledLength_Monotonic(t *testing.T) {
	t.Parallel()

	const n = 16000

	prev := ResampledLength(n, 0)
	if prev != n {
		t.Fatalf("ResampledLength(%d, 0) = %d, want %d", n, prev, n)
	}
	for p := 0.5; p <= 24; p += 0.5 {
		got := ResampledLength(n, p)
		if got >= prev {
			t.Fatalf("ResampledLength(%d, %v) = %d, not below %d", n, p, got, prev)
		}
		prev = got
	}

	prev = n
	for p := -0.5; p >= -24; p -= 0.5 {
		got := ResampledLength(n, p)
		if got <= prev {
			t.Fatalf("ResampledLength(%d, %v) = %d, not above %d", n, p, got, prev)
		}
		prev = got
	}
}

func TestTransform_BoundedOutput(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine(22050, 11025, 220, 0.9)
	for i := range in {
		// add some harmonics so the clip stage has work to do
		in[i] += 0.3 * math.Sin(float64(i)*0.37)
	}

	cases := []Params{
		DefaultParams(),
		{PitchShift: -12, VibratoRate: 3, VibratoDepth: 1, Distortion: 5, Speed: 1},
		{PitchShift: 19.5, VibratoRate: 0, VibratoDepth: 0, Distortion: 0.5, Speed: 1},
		{PitchShift: 0, VibratoRate: 1000, VibratoDepth: 0.25, Distortion: 100, Speed: 4},
	}

	for _, p := range cases {
		out, err := Transform(Waveform{Samples: in, SampleRate: 22050}, p)
		if err != nil {
			t.Fatalf("Transform(%+v) error = %v", p, err)
		}
		if out.Len() != ResampledLength(len(in), p.PitchShift) {
			t.Errorf("Transform(%+v) len = %d, want %d", p, out.Len(), ResampledLength(len(in), p.PitchShift))
		}
		for i, v := range out.Samples {
			if v < -1 || v > 1 {
				t.Fatalf("Transform(%+v) out[%d] = %v outside [-1, 1]", p, i, v)
			}
		}
		if peak := maxAbs(out.Samples); peak != 1 {
			t.Errorf("Transform(%+v) peak = %v, want 1", p, peak)
		}
	}
}

func TestTransform_SilencePreserved(t *testing.T) {
	t.Parallel()

	out, err := Transform(Waveform{Samples: audiotest.Silence(1000), SampleRate: 8000}, DefaultParams())
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if want := ResampledLength(1000, DefaultPitchShift); out.Len() != want {
		t.Errorf("Transform() len = %d, want %d", out.Len(), want)
	}
	for i, v := range out.Samples {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0", i, v)
		}
	}
}

func TestTransform_ZeroGainIsSilent(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	p.Distortion = 0

	out, err := Transform(Waveform{Samples: audiotest.Sine(8000, 800, 300, 0.5), SampleRate: 8000}, p)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if peak := maxAbs(out.Samples); peak != 0 {
		t.Errorf("peak = %v, want 0", peak)
	}
}

func TestTransform_Deterministic(t *testing.T) {
	t.Parallel()

	in := Waveform{Samples: audiotest.Sine(24000, 12000, 523.25, 0.7), SampleRate: 24000}

	a, err := Transform(in, DefaultParams())
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	b, err := Transform(in, DefaultParams())
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	if a.Len() != b.Len() {
		t.Fatalf("lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.Samples {
		if math.Float64bits(a.Samples[i]) != math.Float64bits(b.Samples[i]) {
			t.Fatalf("sample %d differs: %v vs %v", i, a.Samples[i], b.Samples[i])
		}
	}
}

func TestTransform_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine(16000, 4000, 440, 0.99)
	orig := append([]float64(nil), in...)

	out, err := Transform(Waveform{Samples: in, SampleRate: 16000}, plainParams(t, 0))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	for i := range in {
		if in[i] != orig[i] {
			t.Fatalf("input sample %d changed: %v -> %v", i, orig[i], in[i])
		}
	}
	if &out.Samples[0] == &in[0] {
		t.Error("output aliases the input buffer")
	}
}

func TestTransform_Rejects(t *testing.T) {
	t.Parallel()

	good := audiotest.Sine(8000, 800, 440, 0.5)

	tests := []struct {
		name   string
		wave   Waveform
		params Params
		want   error
	}{
		{"empty", Waveform{SampleRate: 8000}, DefaultParams(), ErrInvalidInput},
		{"nan", Waveform{Samples: []float64{0, math.NaN()}, SampleRate: 8000}, DefaultParams(), ErrInvalidInput},
		{"inf", Waveform{Samples: []float64{math.Inf(-1)}, SampleRate: 8000}, DefaultParams(), ErrInvalidInput},
		{"negative rate", Waveform{Samples: good, SampleRate: -8000}, DefaultParams(), ErrInvalidParameter},
		{"zero rate", Waveform{Samples: good, SampleRate: 0}, DefaultParams(), ErrInvalidParameter},
		{"collapses to zero", Waveform{Samples: []float64{0.5}, SampleRate: 8000}, Params{PitchShift: 24, Distortion: 1, Speed: 1}, ErrInvalidParameter},
		{"pitch too far", Waveform{Samples: good, SampleRate: 8000}, Params{PitchShift: 60, Distortion: 1, Speed: 1}, ErrInvalidParameter},
		{"depth above one", Waveform{Samples: good, SampleRate: 8000}, Params{VibratoRate: 5, VibratoDepth: 1.5, Distortion: 1, Speed: 1}, ErrInvalidParameter},
		{"negative gain", Waveform{Samples: good, SampleRate: 8000}, Params{Distortion: -1, Speed: 1}, ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := Transform(tt.wave, tt.params)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Transform() error = %v, want %v", err, tt.want)
			}
			if out.Samples != nil {
				t.Errorf("Transform() returned %d samples alongside an error", out.Len())
			}
		})
	}
}

func TestTransform_CollapseReportsPitch(t *testing.T) {
	t.Parallel()

	_, err := Transform(Waveform{Samples: []float64{0.1, 0.2}, SampleRate: 8000}, Params{PitchShift: 36, Distortion: 1, Speed: 1})

	var pe *ParamError
	if !errors.As(err, &pe) {
		t.Fatalf("Transform() error = %v, want *ParamError", err)
	}
	if pe.Name != "pitch_shift" {
		t.Errorf("ParamError.Name = %q, want pitch_shift", pe.Name)
	}
}
