package audio

import "time"

// sliceSource plays back a fixed slice of samples.
type sliceSource[S Sample] struct {
	channels   int
	sampleRate int
	samples    []S
	pos        int
}

func newSliceSource[S Sample](channels, sampleRate int, samples ...S) *sliceSource[S] {
	return &sliceSource[S]{channels: channels, sampleRate: sampleRate, samples: samples}
}

func (s *sliceSource[S]) Next() (S, bool) {
	if s.pos >= len(s.samples) {
		var zero S
		return zero, false
	}
	v := s.samples[s.pos]
	s.pos++
	return v, true
}

func (s *sliceSource[S]) Channels() int                        { return s.channels }
func (s *sliceSource[S]) SampleRate() int                      { return s.sampleRate }
func (s *sliceSource[S]) CurrentFrameLen() (int, bool)         { return 0, false }
func (s *sliceSource[S]) TotalDuration() (time.Duration, bool) { return 0, false }
func (s *sliceSource[S]) Close() error                         { return nil }
func (s *sliceSource[S]) Remaining() (int, bool)               { return len(s.samples) - s.pos, true }
