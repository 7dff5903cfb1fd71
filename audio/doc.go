// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives shared by the decoders and
// the renderer.
//
//   - Source: a stream of interleaved float32 samples
//   - Decoder and Registry: format lookup by key or file extension
//   - MonoMixer: channel fold-down
//   - ReadAll: drain a Source into memory
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders in formats/... return a Source; MonoMixer is itself a Source, so
// stages chain:
//
//	src, _ := registry.Decode("mp3", file)
//	mono := audio.NewMonoMixer(src)
//	samples, err := audio.ReadAll(mono, 0)
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0] with 0.0 as silence, independent of the
// bit depth of the encoded file.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.Get(".WAV") // keys are case-insensitive
//
// Decode on an unknown key returns an *UnsupportedFormatError listing what is
// registered.
//
// # Error Handling
//
// ReadSamples returns io.EOF when the stream ends, possibly together with the
// last samples. Always consume n before looking at err:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
