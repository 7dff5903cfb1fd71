// SPDX-License-Identifier: EPL-2.0

// Package animalese turns recorded speech into the squeaky, warbling voice of
// a cartoon animal.
//
// The heavy lifting lives in the voice package, which works on in-memory
// waveforms. This package glues it to the decoders in formats and the WAV
// encoder so a file can go in and a file can come out.
//
// # Quick Start
//
//	f, _ := os.Open("speech.mp3")
//	defer f.Close()
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//
//	out, _ := os.Create("critter.wav")
//	defer out.Close()
//	err = animalese.RenderWAV(out, src, voice.DefaultParams())
//
// # Supported Formats
//
// Decoding goes through formats.NewRegistry:
//   - WAV (8/16/24/32-bit PCM) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (16/24/32-bit PCM) via formats/aiff
//
// Output is always mono 16-bit PCM WAV at the input's sample rate.
//
// # Subpackages
//
//   - voice: the effect chain (pitch, vibrato, distortion, normalization)
//   - audio: Source streams, channel mixing and the decoder registry
//   - analysis: peak, loudness and dominant-frequency reports
//   - store: clip storage in a NATS JetStream object store
//
// # Errors
//
// Invalid clips match voice.ErrInvalidInput and bad knobs match
// voice.ErrInvalidParameter, whichever entry point reports them:
//
//	if errors.Is(err, voice.ErrInvalidParameter) {
//	    var pe *voice.ParamError
//	    errors.As(err, &pe)
//	    log.Printf("bad %s", pe.Name)
//	}
package animalese
