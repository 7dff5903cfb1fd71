// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"fmt"
	"math"
)

// Windowed-sinc kernel settings. 16 zero crossings per side with a Kaiser
// beta of 8 keeps stopband leakage around -80 dB.
const (
	sincZeroCrossings = 16
	sincResolution    = 512 // table points per zero crossing
	kaiserBeta        = 8.0
	// downsampleCutoff places the anti-aliasing edge just under the new Nyquist.
	downsampleCutoff = 0.92
)

// ResampledLength returns the pitch stage output length for n input samples
// shifted by semitones: round(n * 2^(-semitones/12)).
func ResampledLength(n int, semitones float64) int {
	return int(math.Round(float64(n) * math.Pow(2, -semitones/12)))
}

// pitchShift resamples x so that playback at the unchanged sample rate is
// shifted by semitones. Duration changes with pitch.
func pitchShift(x []float64, semitones float64) ([]float64, error) {
	m := ResampledLength(len(x), semitones)
	if m < 1 {
		return nil, paramErr("pitch_shift", semitones,
			fmt.Sprintf("resamples %d samples to %d", len(x), m))
	}
	return resample(x, m), nil
}

// resample maps x onto m samples with band-limited (Kaiser-windowed sinc)
// interpolation. Output sample j sits at input position j*len(x)/m. When
// shrinking, the kernel is widened so content above the new Nyquist is
// removed instead of folded back.
func resample(x []float64, m int) []float64 {
	n := len(x)
	out := make([]float64, m)
	if m == n {
		copy(out, x)
		return out
	}

	fc := 1.0
	if m < n {
		fc = downsampleCutoff * float64(m) / float64(n)
	}
	kernel := newSincKernel(fc)
	halfWidth := float64(sincZeroCrossings) / fc
	step := float64(n) / float64(m)

	for j := range m {
		pos := float64(j) * step
		lo := max(int(math.Ceil(pos-halfWidth)), 0)
		hi := min(int(math.Floor(pos+halfWidth)), n-1)

		var acc float64
		for i := lo; i <= hi; i++ {
			acc += x[i] * kernel.at(pos-float64(i))
		}
		out[j] = acc
	}

	return out
}

// sincKernel is a lowpass impulse response fc*sinc(fc*t), windowed over
// sincZeroCrossings lobes and tabulated for linear lookup.
type sincKernel struct {
	fc    float64
	table []float64
}

func newSincKernel(fc float64) sincKernel {
	size := sincZeroCrossings*sincResolution + 1
	// trailing zero guards table[i+1] at the window edge
	table := make([]float64, size+1)
	i0Beta := besselI0(kaiserBeta)
	for i := range size {
		u := float64(i) / sincResolution
		r := u / sincZeroCrossings
		w := besselI0(kaiserBeta*math.Sqrt(math.Max(0, 1-r*r))) / i0Beta
		table[i] = sinc(u) * w
	}
	return sincKernel{fc: fc, table: table}
}

// at evaluates the kernel at t input samples from its center.
func (k sincKernel) at(t float64) float64 {
	u := math.Abs(t) * k.fc * sincResolution
	i := int(u)
	if i >= len(k.table)-1 {
		return 0
	}
	frac := u - float64(i)
	return k.fc * (k.table[i] + frac*(k.table[i+1]-k.table[i]))
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// besselI0 is the zeroth-order modified Bessel function of the first kind.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	x2 := (x * x) / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)
		sum += term
		if term < 1e-16*sum {
			break
		}
	}
	return sum
}
