// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes RIFF/WAVE audio on top of
// github.com/go-audio/wav.
//
// # Decoding
//
// Decoder accepts integer PCM at 8, 16, 24 or 32 bits, any channel count and
// any sample rate. Inputs that cannot seek are buffered in memory first.
// Samples come out as float32 in [-1, 1):
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	samples, err := audio.ReadAll(src, 0)
//
// IEEE float and compressed payloads are rejected with
// ErrUnsupportedEncoding; anything without a RIFF/WAVE header yields
// ErrNotWavFile.
//
// # Encoding
//
// Encode writes mono 16-bit PCM to an io.WriteSeeker such as an *os.File.
// EncodeBytes does the same into memory, which is what the renderer and the
// clip store use.
package wav
