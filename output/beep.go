// SPDX-License-Identifier: EPL-2.0

package output

import (
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/ik5/audqueue/audio"
)

const beepBlock = 512

var _ audio.Source[float64] = (*BeepSource)(nil)

// BeepSource plays a beep.Streamer as a stereo source.
type BeepSource struct {
	s      beep.Streamer
	format beep.Format

	buf  [][2]float64
	pos  int
	n    int
	side int
	done bool
}

// FromBeep wraps s, whose samples are at format.SampleRate.
func FromBeep(s beep.Streamer, format beep.Format) *BeepSource {
	return &BeepSource{
		s:      s,
		format: format,
		buf:    make([][2]float64, beepBlock),
	}
}

func (b *BeepSource) Channels() int   { return 2 }
func (b *BeepSource) SampleRate() int { return int(b.format.SampleRate) }

// Err reports the error of the wrapped streamer.
func (b *BeepSource) Err() error { return b.s.Err() }

func (b *BeepSource) Next() (float64, bool) {
	if b.pos >= b.n {
		if b.done {
			return 0, false
		}

		n, ok := b.s.Stream(b.buf)
		b.pos, b.n = 0, n
		if !ok || n == 0 {
			b.done = true
		}
		if n == 0 {
			return 0, false
		}
	}

	v := b.buf[b.pos][b.side]
	b.side++
	if b.side == 2 {
		b.side = 0
		b.pos++
	}
	return v, true
}

func (b *BeepSource) CurrentFrameLen() (int, bool) {
	if left := b.n - b.pos; left > 0 {
		return left*2 - b.side, true
	}
	return 0, false
}

func (b *BeepSource) TotalDuration() (time.Duration, bool) {
	if l, ok := b.s.(beep.StreamSeeker); ok {
		return b.format.SampleRate.D(l.Len()), true
	}
	return 0, false
}

// Close closes the wrapped streamer if it is a beep.StreamCloser.
func (b *BeepSource) Close() error {
	b.done = true
	b.pos, b.n = 0, 0
	if c, ok := b.s.(beep.StreamCloser); ok {
		return c.Close()
	}
	return nil
}
