// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer III audio with
// github.com/hajimehoshi/go-mp3.
//
// The decoder always produces interleaved stereo float32 in [-1, 1] at the
// file's own sample rate; wrap it in audio.NewMonoMixer for a single
// channel. ReadSamples only hands out whole frames, so a destination with an
// odd length leaves its last slot untouched.
//
// Encoding is not supported.
package mp3
