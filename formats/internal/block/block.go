// SPDX-License-Identifier: EPL-2.0

// Package block adapts block-oriented decoders to the pull-one-sample
// audio.Source interface.
package block

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/audqueue/audio"
)

// DefaultSize is the block size, in samples, used when none is given.
const DefaultSize = 4096

// FillFunc decodes the next block into dst and returns how many samples it
// wrote. It must write whole frames. Returning 0 with a nil error, or
// io.EOF, ends the stream.
type FillFunc func(dst []float32) (int, error)

var _ audio.Source[float32] = (*Source)(nil)

// Source serves samples from a decoder one block at a time. A decode error
// ends the stream early; Err reports it.
type Source struct {
	fill     FillFunc
	closer   func() error
	channels int
	rate     int

	buf []float32
	pos int
	n   int

	// length is the total number of samples, or negative when unknown.
	length   int64
	consumed int64

	done bool
	err  error
}

// New creates a Source over fill. size is rounded down to whole frames.
func New(channels, sampleRate, size int, fill FillFunc) *Source {
	if size <= 0 {
		size = DefaultSize
	}
	if channels > 0 {
		size -= size % channels
		if size == 0 {
			size = channels
		}
	}

	return &Source{
		fill:     fill,
		channels: channels,
		rate:     sampleRate,
		buf:      make([]float32, size),
		length:   -1,
	}
}

// WithLength records the total number of interleaved samples, enabling
// Remaining and TotalDuration.
func (s *Source) WithLength(samples int64) *Source {
	s.length = samples
	return s
}

// WithCloser sets the function Close releases the decoder with.
func (s *Source) WithCloser(fn func() error) *Source {
	s.closer = fn
	return s
}

func (s *Source) Channels() int   { return s.channels }
func (s *Source) SampleRate() int { return s.rate }

// Err returns the decode error that ended the stream, if any.
func (s *Source) Err() error { return s.err }

func (s *Source) Next() (float32, bool) {
	if s.pos >= s.n && !s.refill() {
		return 0, false
	}

	v := s.buf[s.pos]
	s.pos++
	s.consumed++
	return v, true
}

func (s *Source) refill() bool {
	for !s.done {
		n, err := s.fill(s.buf)
		n = min(max(n, 0), len(s.buf))
		s.pos, s.n = 0, n

		switch {
		case errors.Is(err, io.EOF):
			s.done = true
		case err != nil:
			s.done = true
			s.err = err
		case n == 0:
			s.done = true
		}

		if n > 0 {
			return true
		}
	}
	return false
}

// CurrentFrameLen is what is left of the decoded block. The format of a
// decoded stream never changes, so any block boundary is a safe span.
func (s *Source) CurrentFrameLen() (int, bool) {
	if left := s.n - s.pos; left > 0 {
		return left, true
	}
	if s.done {
		return 0, true
	}
	return 0, false
}

func (s *Source) Remaining() (int, bool) {
	if s.done {
		return s.n - s.pos, true
	}
	if s.length < 0 {
		return 0, false
	}
	return int(max(s.length-s.consumed, 0)), true
}

func (s *Source) TotalDuration() (time.Duration, bool) {
	if s.length < 0 || s.channels <= 0 || s.rate <= 0 {
		return 0, false
	}

	frames := s.length / int64(s.channels)
	return time.Duration(frames) * time.Second / time.Duration(s.rate), true
}

func (s *Source) Close() error {
	s.done = true
	s.pos, s.n = 0, 0

	if s.closer == nil {
		return nil
	}

	fn := s.closer
	s.closer = nil
	return fn()
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}

// Scale returns the divisor that maps a signed integer sample of the given
// bit depth to [-1, 1]. Depths outside 1..32 are treated as 16-bit.
func Scale(bitDepth int) float32 {
	if bitDepth < 1 || bitDepth > 32 {
		bitDepth = 16
	}
	return float32(uint64(1) << (bitDepth - 1))
}
