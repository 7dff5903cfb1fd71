// SPDX-License-Identifier: EPL-2.0

// Package voice implements the Animalese voice effect: a fixed, stateless chain
// that turns plain synthesized speech into a squeaky, wobbling, slightly
// crunchy cartoon voice.
//
// # Pipeline
//
// Transform runs four stages, always in this order:
//
//  1. Pitch: band-limited resampling to round(N * 2^(-semitones/12)) samples.
//     Played back at the original rate, a shorter buffer sounds higher.
//  2. Vibrato: amplitude modulation x * (1 + depth*sin(2π*rate*t)).
//  3. Distortion: gain, then hard clip to [-0.8, 0.8].
//  4. Normalization: divide by the peak so max |x| is exactly 1.0.
//
// Vibrato and distortion operate on the pitch-shifted buffer, not the input.
//
// # Usage
//
//	params, err := voice.NewParams(voice.WithPitchShift(12))
//	if err != nil {
//	    // out-of-range parameter
//	}
//	out, err := voice.Transform(voice.Waveform{Samples: speech, SampleRate: 24000}, params)
//
// # Errors
//
// Every failure wraps one of two sentinels:
//   - ErrInvalidInput: empty waveform or a NaN/Inf sample
//   - ErrInvalidParameter: non-positive sample rate or a parameter outside its
//     documented range (see Params)
//
// Parameters are never clamped; only the output is bounded.
//
// # Concurrency
//
// Transform holds no state and never writes to its input, so it may be called
// from any number of goroutines, even on a shared input Waveform.
package voice
