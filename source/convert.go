// SPDX-License-Identifier: EPL-2.0

package source

import (
	"time"

	"github.com/ik5/audqueue/audio"
)

var _ audio.Source[int16] = (*Converter[float32, int16])(nil)

// Converter changes the sample type of a source.
type Converter[From, To audio.Sample] struct {
	src audio.Source[From]
}

// Convert adapts src to a queue of a different sample type.
func Convert[From, To audio.Sample](src audio.Source[From]) *Converter[From, To] {
	return &Converter[From, To]{src: src}
}

func (c *Converter[From, To]) Next() (To, bool) {
	s, ok := c.src.Next()
	if !ok {
		var zero To
		return zero, false
	}
	return audio.Convert[From, To](s), true
}

func (c *Converter[From, To]) Channels() int                        { return c.src.Channels() }
func (c *Converter[From, To]) SampleRate() int                      { return c.src.SampleRate() }
func (c *Converter[From, To]) CurrentFrameLen() (int, bool)         { return c.src.CurrentFrameLen() }
func (c *Converter[From, To]) TotalDuration() (time.Duration, bool) { return c.src.TotalDuration() }
func (c *Converter[From, To]) Remaining() (int, bool)               { return audio.Remaining(c.src) }
func (c *Converter[From, To]) Close() error                         { return c.src.Close() }
