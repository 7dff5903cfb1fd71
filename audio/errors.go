// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	// ErrUnsupportedFormat is matched by every *UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrNoSamples indicates a stream that ended before yielding any audio.
	ErrNoSamples = errors.New("audio stream has no samples")
)

// UnsupportedFormatError is returned by Registry.Decode for unknown keys.
type UnsupportedFormatError struct {
	Format string
	Known  []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s %q (known: %s)", ErrUnsupportedFormat, e.Format, strings.Join(e.Known, ", "))
}

func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }
