// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"fmt"
	"math"
	"time"
)

// Waveform is a mono signal with samples nominally in [-1, 1].
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Len returns the number of samples.
func (w Waveform) Len() int { return len(w.Samples) }

// Duration returns the playback length at SampleRate.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(w.Samples)) / float64(w.SampleRate) * float64(time.Second))
}

// Validate checks the sample rate first, then that the buffer is non-empty
// and every sample is finite.
func (w Waveform) Validate() error {
	if w.SampleRate <= 0 {
		return paramErr("sample_rate", float64(w.SampleRate), "must be positive")
	}
	if len(w.Samples) == 0 {
		return fmt.Errorf("%w: empty waveform", ErrInvalidInput)
	}
	for i, s := range w.Samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: sample %d is %v", ErrInvalidInput, i, s)
		}
	}
	return nil
}
