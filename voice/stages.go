// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// ClipLevel is the hard saturation bound of the distortion stage.
const ClipLevel = 0.8

// applyVibrato multiplies x by 1 + depth*sin(2π*rate*t). The modulation is
// built with exactly len(x) points.
func applyVibrato(x []float64, sampleRate int, rate, depth float64) []float64 {
	mod := make([]float64, len(x))
	omega := 2 * math.Pi * rate
	sr := float64(sampleRate)
	for i := range mod {
		t := float64(i) / sr
		mod[i] = 1 + depth*math.Sin(omega*t)
	}

	out := make([]float64, len(x))
	vecmath.MulBlock(out, x, mod)
	return out
}

// applyDistortion scales x by gain and hard clips to ±ClipLevel.
func applyDistortion(x []float64, gain float64) []float64 {
	out := make([]float64, len(x))
	vecmath.ScaleBlock(out, x, gain)
	for i, v := range out {
		switch {
		case v > ClipLevel:
			out[i] = ClipLevel
		case v < -ClipLevel:
			out[i] = -ClipLevel
		}
	}
	return out
}

// normalizePeak divides by max |x|. Division, not multiplication by the
// reciprocal, so the peak sample lands on exactly ±1. Silence is copied as is.
func normalizePeak(x []float64) []float64 {
	out := make([]float64, len(x))
	peak := maxAbs(x)
	if peak == 0 {
		copy(out, x)
		return out
	}
	for i, v := range x {
		out[i] = v / peak
	}
	return out
}

func maxAbs(x []float64) float64 {
	var peak float64
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}
