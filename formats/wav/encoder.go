// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// Encode writes samples as a mono 16-bit PCM WAV at sampleRate. The encoder
// seeks back to patch the RIFF sizes once the data is written, hence the
// io.WriteSeeker.
func Encode(w io.WriteSeeker, sampleRate int, samples []int16) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wav: %w: %d", ErrInvalidSampleRate, sampleRate)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	enc := gowav.NewEncoder(w, sampleRate, 16, 1, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	// Write emits the header, so it runs even for an empty clip.
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: finalize: %w", err)
	}
	return nil
}

// EncodeBytes is Encode into memory.
func EncodeBytes(sampleRate int, samples []int16) ([]byte, error) {
	ws := &writeSeeker{buf: make([]byte, 0, 44+2*len(samples))}
	if err := Encode(ws, sampleRate, samples); err != nil {
		return nil, err
	}
	return ws.buf, nil
}

var errNegativeOffset = errors.New("wav: negative seek offset")

// writeSeeker is an in-memory io.WriteSeeker. Writes past the end grow the
// buffer; writes inside it overwrite in place.
type writeSeeker struct {
	buf []byte
	pos int
}

func (m *writeSeeker) Write(p []byte) (int, error) {
	if end := m.pos + len(p); end > len(m.buf) {
		if end > cap(m.buf) {
			grown := make([]byte, len(m.buf), max(end, 2*cap(m.buf)))
			copy(grown, m.buf)
			m.buf = grown
		}
		m.buf = m.buf[:end]
	}
	n := copy(m.buf[m.pos:], p)
	m.pos += n
	return n, nil
}

func (m *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(m.pos) + offset
	case io.SeekEnd:
		abs = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("wav: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, errNegativeOffset
	}
	m.pos = int(abs)
	return abs, nil
}
