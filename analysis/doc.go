// SPDX-License-Identifier: EPL-2.0

// Package analysis measures rendered clips.
//
// Analyze reports the peak and RMS level, the duration, and the dominant
// frequency of a voice.Waveform. The frequency estimate comes from one
// Hann-windowed FFT frame taken from the start of the clip, refined by
// parabolic interpolation between bins, so it is only meaningful for
// roughly stationary material such as test tones or sustained vowels.
//
// The pipeline logs and stores a Report next to every rendered clip, which
// makes it easy to check a pitch shift landed where it should:
//
//	rep, _ := analysis.Analyze(out)
//	fmt.Printf("%.0f Hz, %.1f dBFS\n", rep.DominantFrequency, rep.RMSDecibels())
package analysis
