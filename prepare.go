// SPDX-License-Identifier: EPL-2.0

package audqueue

import (
	"github.com/ik5/audqueue/audio"
	"github.com/ik5/audqueue/source"
)

// Format is a fixed output layout. Zero fields keep the source's own value.
type Format struct {
	Channels   int
	SampleRate int
}

// Prepare resamples, remixes and converts a decoded source so that it
// matches f and the queue's sample type. Stages that would not change
// anything are skipped.
func Prepare[S audio.Sample](src audio.Source[float32], f Format) audio.Source[S] {
	if f.SampleRate > 0 && src.SampleRate() != f.SampleRate {
		src = source.Resample(src, f.SampleRate)
	}
	if f.Channels > 0 && src.Channels() != f.Channels {
		src = source.Remix(src, f.Channels)
	}

	if out, ok := src.(audio.Source[S]); ok {
		return out
	}
	return source.Convert[float32, S](src)
}
