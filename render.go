// SPDX-License-Identifier: EPL-2.0

package animalese

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/animalese/audio"
	"github.com/ik5/animalese/formats/wav"
	"github.com/ik5/animalese/utils"
	"github.com/ik5/animalese/voice"
)

// readBufSize is the chunk size used when draining a source.
const readBufSize = 4096

// Load folds src down to mono and collects it into a Waveform at the
// source's own sample rate. The caller keeps ownership of src and closes it.
//
// A source that ends before producing a sample yields an error matching both
// voice.ErrInvalidInput and audio.ErrNoSamples.
func Load(src audio.Source) (voice.Waveform, error) {
	mono := audio.NewMonoMixer(src)

	samples, err := audio.ReadAll(mono, readBufSize)
	if errors.Is(err, audio.ErrNoSamples) {
		return voice.Waveform{}, fmt.Errorf("%w: %w", voice.ErrInvalidInput, err)
	}
	if err != nil {
		return voice.Waveform{}, fmt.Errorf("load: %w", err)
	}

	w := voice.Waveform{
		Samples:    make([]float64, len(samples)),
		SampleRate: mono.SampleRate(),
	}
	for i, s := range samples {
		w.Samples[i] = float64(s)
	}
	return w, nil
}

// Render is the high-level entry point: it loads src and runs it through the
// voice effect chain.
//
// The processing pipeline:
//  1. Mixes the source to mono and reads it to the end
//  2. Pitch-shifts by resampling (length changes, sample rate does not)
//  3. Applies the vibrato tremolo
//  4. Boosts and hard-clips at voice.ClipLevel
//  5. Normalizes the peak to 1.0
//
// Example:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	out, err := animalese.Render(src, voice.DefaultParams())
//	if err != nil {
//	    return err
//	}
func Render(src audio.Source, params voice.Params) (voice.Waveform, error) {
	in, err := Load(src)
	if err != nil {
		return voice.Waveform{}, err
	}

	out, err := voice.Transform(in, params)
	if err != nil {
		return voice.Waveform{}, fmt.Errorf("render: %w", err)
	}
	return out, nil
}

// RenderMono16 is Render followed by 16-bit PCM conversion. It returns the
// samples and their sample rate.
func RenderMono16(src audio.Source, params voice.Params) ([]int16, int, error) {
	out, err := Render(src, params)
	if err != nil {
		return nil, 0, err
	}
	return utils.PCM16(out.Samples), out.SampleRate, nil
}

// RenderWAV renders src and writes the result to w as a mono 16-bit WAV.
func RenderWAV(w io.WriteSeeker, src audio.Source, params voice.Params) error {
	pcm, rate, err := RenderMono16(src, params)
	if err != nil {
		return err
	}
	return wav.Encode(w, rate, pcm)
}
