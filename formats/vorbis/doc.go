// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio with github.com/jfreymuth/oggvorbis.
//
// Samples are decoded directly into the caller's buffer as interleaved
// float32. Channel count and sample rate come from the stream's
// identification header. ReadSamples trims the destination to a whole number
// of frames.
//
// # Usage
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	mono := audio.NewMonoMixer(src)
//
// Encoding is not supported.
package vorbis
