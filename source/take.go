// SPDX-License-Identifier: EPL-2.0

package source

import (
	"time"

	"github.com/ik5/audqueue/audio"
)

var _ audio.Source[float32] = (*Take[float32])(nil)

// Take bounds a source to a fixed number of samples.
type Take[S audio.Sample] struct {
	src       audio.Source[S]
	limit     int
	remaining int
	duration  time.Duration
}

// TakeDuration limits src to d, rounded down to whole frames at the
// channel count and sample rate src reports now.
func TakeDuration[S audio.Sample](src audio.Source[S], d time.Duration) *Take[S] {
	frames := int(int64(d) * int64(src.SampleRate()) / int64(time.Second))
	limit := frames * src.Channels()
	return &Take[S]{
		src:       src,
		limit:     limit,
		remaining: limit,
		duration:  d,
	}
}

// Reset restores the full sample budget. The inner source is not rewound,
// so this is only meaningful over generators such as Zero.
func (t *Take[S]) Reset() {
	t.remaining = t.limit
}

func (t *Take[S]) Next() (S, bool) {
	if t.remaining <= 0 {
		var zero S
		return zero, false
	}

	s, ok := t.src.Next()
	if !ok {
		t.remaining = 0
		return s, false
	}
	t.remaining--
	return s, true
}

func (t *Take[S]) Channels() int   { return t.src.Channels() }
func (t *Take[S]) SampleRate() int { return t.src.SampleRate() }

func (t *Take[S]) CurrentFrameLen() (int, bool) {
	n, ok := t.src.CurrentFrameLen()
	if !ok {
		return 0, false
	}
	return min(n, t.remaining), true
}

func (t *Take[S]) Remaining() (int, bool) {
	if n, ok := audio.Remaining(t.src); ok && n < t.remaining {
		return n, true
	}
	return t.remaining, true
}

func (t *Take[S]) TotalDuration() (time.Duration, bool) {
	if d, ok := t.src.TotalDuration(); ok && d < t.duration {
		return d, true
	}
	return t.duration, true
}

func (t *Take[S]) Close() error { return t.src.Close() }
