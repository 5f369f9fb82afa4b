// SPDX-License-Identifier: EPL-2.0

package source

import (
	"time"

	"github.com/ik5/audqueue/audio"
)

var _ audio.Source[int16] = (*BufferSource[int16])(nil)

// BufferSource plays back an in-memory slice of interleaved samples.
type BufferSource[S audio.Sample] struct {
	channels   int
	sampleRate int
	samples    []S
	pos        int
}

// Buffer wraps samples without copying them.
func Buffer[S audio.Sample](channels, sampleRate int, samples []S) *BufferSource[S] {
	return &BufferSource[S]{
		channels:   channels,
		sampleRate: sampleRate,
		samples:    samples,
	}
}

func (b *BufferSource[S]) Next() (S, bool) {
	if b.pos >= len(b.samples) {
		var zero S
		return zero, false
	}
	s := b.samples[b.pos]
	b.pos++
	return s, true
}

func (b *BufferSource[S]) Channels() int   { return b.channels }
func (b *BufferSource[S]) SampleRate() int { return b.sampleRate }

// The whole buffer is a single frame: format never changes within it.
func (b *BufferSource[S]) CurrentFrameLen() (int, bool) { return len(b.samples) - b.pos, true }
func (b *BufferSource[S]) Remaining() (int, bool)       { return len(b.samples) - b.pos, true }

func (b *BufferSource[S]) TotalDuration() (time.Duration, bool) {
	frames := int64(len(b.samples) / b.channels)
	return time.Duration(frames * int64(time.Second) / int64(b.sampleRate)), true
}

func (b *BufferSource[S]) Close() error { return nil }
