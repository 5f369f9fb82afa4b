// SPDX-License-Identifier: EPL-2.0

package output

import (
	"github.com/gopxl/beep/v2"

	"github.com/ik5/audqueue/audio"
)

var _ beep.Streamer = (*streamer[float32])(nil)

type streamer[S audio.Sample] struct {
	frames framer[S]
}

// Streamer adapts src to beep. Only the first two channels of each frame
// are played.
func Streamer[S audio.Sample](src audio.Source[S]) beep.Streamer {
	return &streamer[S]{frames: framer[S]{src: src}}
}

// Stream implements beep.Streamer.
func (s *streamer[S]) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		l, r, ok := s.frames.next()
		if !ok {
			return i, i > 0
		}
		samples[i] = [2]float64{l, r}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (s *streamer[S]) Err() error { return nil }
