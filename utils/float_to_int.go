// SPDX-License-Identifier: EPL-2.0

package utils

// FloatToInt16 scales a sample in [-1, 1] to 16-bit PCM. Values outside the
// range are clamped first; NaN maps to 0.
func FloatToInt16(x float64) int16 {
	switch {
	case x != x:
		return 0
	case x > 1:
		x = 1
	case x < -1:
		x = -1
	}

	// 32767 for both signs keeps the mapping symmetric and avoids overflow
	return int16(x * 32767.0)
}

// PCM16 converts a whole buffer with FloatToInt16.
func PCM16(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		out[i] = FloatToInt16(s)
	}
	return out
}

// IntToFloat32 scales an integer PCM sample of the given bit depth to
// [-1, 1). 8-bit samples are unsigned, every other depth is signed.
func IntToFloat32(v, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32(v-128) / 128.0
	case 24:
		return float32(v) / 8388608.0
	case 32:
		return float32(float64(v) / 2147483648.0)
	default:
		return float32(v) / 32768.0
	}
}
