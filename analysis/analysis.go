// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"fmt"
	"math"
	"time"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/ik5/animalese/voice"
)

// MaxFrameSize caps the FFT frame used for the frequency estimate.
const MaxFrameSize = 1 << 16

// Report summarizes a waveform.
type Report struct {
	Samples    int           `json:"samples"`
	SampleRate int           `json:"sample_rate"`
	Duration   time.Duration `json:"duration"`
	Peak       float64       `json:"peak"`
	RMS        float64       `json:"rms"`
	// DominantFrequency is 0 for silence or clips shorter than two samples.
	DominantFrequency float64 `json:"dominant_frequency"`
}

// RMSDecibels is the RMS level in dBFS; silence reports -Inf.
func (r Report) RMSDecibels() float64 {
	return 20 * math.Log10(r.RMS)
}

// Analyze measures w. It fails with voice.ErrInvalidInput or
// voice.ErrInvalidParameter for waveforms Transform would also reject.
func Analyze(w voice.Waveform) (Report, error) {
	if err := w.Validate(); err != nil {
		return Report{}, err
	}

	rep := Report{
		Samples:    w.Len(),
		SampleRate: w.SampleRate,
		Duration:   w.Duration(),
	}

	var energy float64
	for _, s := range w.Samples {
		rep.Peak = max(rep.Peak, math.Abs(s))
		energy += s * s
	}
	rep.RMS = math.Sqrt(energy / float64(w.Len()))

	if rep.Peak == 0 {
		return rep, nil
	}

	freq, err := dominantFrequency(w.Samples, w.SampleRate)
	if err != nil {
		return Report{}, err
	}
	rep.DominantFrequency = freq
	return rep, nil
}

// frameSize is the largest power of two not above min(n, MaxFrameSize).
func frameSize(n int) int {
	size := 1
	for size*2 <= min(n, MaxFrameSize) {
		size *= 2
	}
	return size
}

func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

func dominantFrequency(x []float64, sampleRate int) (float64, error) {
	n := frameSize(len(x))
	if n < 4 {
		return 0, nil
	}

	windowed := make([]float64, n)
	vecmath.MulBlock(windowed, x[:n], hann(n))

	in := make([]complex128, n)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return 0, fmt.Errorf("analysis: fft plan %d: %w", n, err)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("analysis: fft: %w", err)
	}

	// non-negative bins only
	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}
	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	peak := 1
	for k := 2; k < bins; k++ {
		if power[k] > power[peak] {
			peak = k
		}
	}

	return (float64(peak) + interpolate(power, peak)) * float64(sampleRate) / float64(n), nil
}

// interpolate fits a parabola through the log power around bin k and returns
// the vertex offset in bins, within [-0.5, 0.5].
func interpolate(power []float64, k int) float64 {
	if k <= 0 || k >= len(power)-1 {
		return 0
	}

	const floor = 1e-300
	a := math.Log(max(power[k-1], floor))
	b := math.Log(max(power[k], floor))
	c := math.Log(max(power[k+1], floor))

	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	return max(-0.5, min(0.5, 0.5*(a-c)/den))
}
