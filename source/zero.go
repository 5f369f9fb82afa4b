// SPDX-License-Identifier: EPL-2.0

package source

import (
	"time"

	"github.com/ik5/audqueue/audio"
)

var (
	_ audio.Source[float32] = (*ZeroSource[float32])(nil)
	_ audio.Source[float32] = (*EmptySource[float32])(nil)
)

// ZeroSource yields silence forever.
type ZeroSource[S audio.Sample] struct {
	channels   int
	sampleRate int
}

// Zero returns an infinite run of zero-valued samples. Bound it with
// TakeDuration.
func Zero[S audio.Sample](channels, sampleRate int) *ZeroSource[S] {
	return &ZeroSource[S]{channels: channels, sampleRate: sampleRate}
}

func (z *ZeroSource[S]) Next() (S, bool) {
	var zero S
	return zero, true
}

func (z *ZeroSource[S]) Channels() int                        { return z.channels }
func (z *ZeroSource[S]) SampleRate() int                      { return z.sampleRate }
func (z *ZeroSource[S]) CurrentFrameLen() (int, bool)         { return 0, false }
func (z *ZeroSource[S]) TotalDuration() (time.Duration, bool) { return 0, false }
func (z *ZeroSource[S]) Close() error                         { return nil }

// EmptySource yields nothing.
type EmptySource[S audio.Sample] struct {
	channels   int
	sampleRate int
}

func Empty[S audio.Sample](channels, sampleRate int) *EmptySource[S] {
	return &EmptySource[S]{channels: channels, sampleRate: sampleRate}
}

func (e *EmptySource[S]) Next() (S, bool) {
	var zero S
	return zero, false
}

func (e *EmptySource[S]) Channels() int                        { return e.channels }
func (e *EmptySource[S]) SampleRate() int                      { return e.sampleRate }
func (e *EmptySource[S]) CurrentFrameLen() (int, bool)         { return 0, true }
func (e *EmptySource[S]) TotalDuration() (time.Duration, bool) { return 0, true }
func (e *EmptySource[S]) Remaining() (int, bool)               { return 0, true }
func (e *EmptySource[S]) Close() error                         { return nil }
