// SPDX-License-Identifier: EPL-2.0

package source

import (
	"time"

	"github.com/ik5/audqueue/audio"
)

var _ audio.Source[float32] = (*Remixer[float32])(nil)

// Remixer changes the channel count of a source. Down to mono it averages
// all channels; any other layout cycles the input channels (mono to stereo
// duplicates, 5.1 to stereo keeps front left/right).
type Remixer[S audio.Sample] struct {
	src      audio.Source[S]
	in       []float32
	out      []S
	outPos   int
	channels int
}

func Remix[S audio.Sample](src audio.Source[S], channels int) *Remixer[S] {
	return &Remixer[S]{
		src:      src,
		in:       make([]float32, src.Channels()),
		out:      make([]S, channels),
		outPos:   channels,
		channels: channels,
	}
}

func (m *Remixer[S]) passthrough() bool { return len(m.in) == m.channels }

func (m *Remixer[S]) Channels() int                        { return m.channels }
func (m *Remixer[S]) SampleRate() int                      { return m.src.SampleRate() }
func (m *Remixer[S]) TotalDuration() (time.Duration, bool) { return m.src.TotalDuration() }
func (m *Remixer[S]) Close() error                         { return m.src.Close() }

func (m *Remixer[S]) CurrentFrameLen() (int, bool) {
	n, ok := m.src.CurrentFrameLen()
	if !ok || m.passthrough() {
		return n, ok
	}
	return n/len(m.in)*m.channels + m.channels - m.outPos, true
}

func (m *Remixer[S]) Remaining() (int, bool) {
	n, ok := audio.Remaining(m.src)
	if !ok || m.passthrough() {
		return n, ok
	}
	return n/len(m.in)*m.channels + m.channels - m.outPos, true
}

func (m *Remixer[S]) Next() (S, bool) {
	if m.passthrough() {
		return m.src.Next()
	}

	if m.outPos == m.channels {
		if len(m.in) == 0 || !readFrame(m.src, m.in) {
			var zero S
			return zero, false
		}
		m.mix()
		m.outPos = 0
	}

	s := m.out[m.outPos]
	m.outPos++
	return s, true
}

func (m *Remixer[S]) mix() {
	if m.channels == 1 {
		var sum float32
		for _, v := range m.in {
			sum += v
		}
		m.out[0] = audio.FromFloat64[S](float64(sum / float32(len(m.in))))
		return
	}

	for c := range m.out {
		m.out[c] = audio.FromFloat64[S](float64(m.in[c%len(m.in)]))
	}
}
