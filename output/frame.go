// SPDX-License-Identifier: EPL-2.0

package output

import "github.com/ik5/audqueue/audio"

// framer reads whole frames, rechecking the channel count only where the
// source says its format may change.
type framer[S audio.Sample] struct {
	src      audio.Source[S]
	channels int
	span     int
	done     bool
}

// next reads one frame and returns its first two channels as float64.
// Mono is duplicated to both sides. It reports false once the source ends;
// a trailing partial frame is dropped.
func (f *framer[S]) next() (l, r float64, ok bool) {
	if f.done {
		return 0, 0, false
	}

	if f.span <= 0 {
		f.channels = max(f.src.Channels(), 1)
		f.span = f.channels
		if n, known := f.src.CurrentFrameLen(); known && n > 0 {
			f.span = n
		}
	}

	for c := range f.channels {
		s, more := f.src.Next()
		if !more {
			f.done = true
			return 0, 0, false
		}

		switch c {
		case 0:
			l = audio.ToFloat64(s)
			r = l
		case 1:
			r = audio.ToFloat64(s)
		}
	}
	f.span -= f.channels

	return l, r, true
}
