// SPDX-License-Identifier: EPL-2.0

// Package formats wires the bundled decoders into an audio.Registry.
package formats

import (
	"path/filepath"
	"strings"

	"github.com/ik5/animalese/audio"
	"github.com/ik5/animalese/formats/aiff"
	"github.com/ik5/animalese/formats/mp3"
	"github.com/ik5/animalese/formats/vorbis"
	"github.com/ik5/animalese/formats/wav"
)

// NewRegistry returns a registry holding every bundled decoder under the
// file extensions it is usually found with.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	for _, key := range []string{"wav", "wave"} {
		r.Register(key, wav.Decoder{})
	}
	r.Register("mp3", mp3.Decoder{})
	for _, key := range []string{"ogg", "oga"} {
		r.Register(key, vorbis.Decoder{})
	}
	for _, key := range []string{"aiff", "aif"} {
		r.Register(key, aiff.Decoder{})
	}
	return r
}

// FormatOf returns the lowercased extension of path without its dot.
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Lookup picks the bundled decoder for path by its extension.
func Lookup(path string) (audio.Decoder, error) {
	r := NewRegistry()
	format := FormatOf(path)
	if d, ok := r.Get(format); ok {
		return d, nil
	}
	return nil, &audio.UnsupportedFormatError{Format: format, Known: r.Formats()}
}
