// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds how many (0, nil) reads in a row ReadAll tolerates.
const maxEmptyReads = 100

// ReadAll drains src and returns every sample it produced, interleaved as
// the source delivers them. bufSize <= 0 falls back to src.BufSize(), and to
// 4096 when the source has no preference. Reaching io.EOF is not an error.
func ReadAll(src Source, bufSize int) ([]float32, error) {
	if bufSize <= 0 {
		bufSize = src.BufSize()
	}
	if bufSize <= 0 {
		bufSize = 4096
	}
	// whole frames only, so sources that insist on it are satisfied
	if ch := src.Channels(); ch > 1 {
		bufSize = max(ch, bufSize-bufSize%ch)
	}

	buf := make([]float32, bufSize)
	out := make([]float32, 0, bufSize*4)
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
			empty = 0
		} else if err == nil {
			empty++
			if empty >= maxEmptyReads {
				return out, io.ErrNoProgress
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, fmt.Errorf("read samples: %w", err)
		}
	}

	if len(out) == 0 {
		return nil, ErrNoSamples
	}
	return out, nil
}
