// SPDX-License-Identifier: EPL-2.0

package audqueue

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ik5/audqueue/audio"
)

var defaultRegistry = DefaultRegistry()

// Open decodes r with the decoder registered for format in the default
// registry.
func Open(r io.Reader, format string) (audio.Source[float32], error) {
	return OpenWith(defaultRegistry, r, format)
}

// OpenWith decodes r with the decoder registered for format in reg.
func OpenWith(reg *audio.Registry, r io.Reader, format string) (audio.Source[float32], error) {
	dec, ok := reg.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", audio.ErrUnknownFormat, format)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	return src, nil
}

// OpenFile opens and decodes path, picking the decoder by extension. The
// returned source owns the file and closes it on Close.
func OpenFile(path string) (audio.Source[float32], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := Open(f, FormatOf(path))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &fileSource{src: src, file: f}, nil
}

var _ audio.Source[float32] = (*fileSource)(nil)

// fileSource closes the underlying file together with the decoder.
type fileSource struct {
	src  audio.Source[float32]
	file *os.File
}

func (s *fileSource) Next() (float32, bool)                { return s.src.Next() }
func (s *fileSource) Channels() int                        { return s.src.Channels() }
func (s *fileSource) SampleRate() int                      { return s.src.SampleRate() }
func (s *fileSource) CurrentFrameLen() (int, bool)         { return s.src.CurrentFrameLen() }
func (s *fileSource) TotalDuration() (time.Duration, bool) { return s.src.TotalDuration() }
func (s *fileSource) Remaining() (int, bool)               { return audio.Remaining(s.src) }

// Err reports the decoder's streaming error, if it keeps one.
func (s *fileSource) Err() error {
	if e, ok := s.src.(interface{ Err() error }); ok {
		return e.Err()
	}
	return nil
}

func (s *fileSource) Close() error {
	return errors.Join(s.src.Close(), s.file.Close())
}
