// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/ik5/audqueue/audio"
)

var _ audio.Source[int16] = (*MockSource[int16])(nil)

// MockSource is a test helper that generates audio data for testing.
// It counts how many samples were pulled and whether it was closed, so tests
// can assert on consumption without reading the output.
type MockSource[S audio.Sample] struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (interleaved)
	generated    int // Samples generated so far
	waveform     func(sample int) S

	// FrameLen is reported by CurrentFrameLen when non-negative.
	FrameLen int
	// HideRemaining makes Remaining report unknown.
	HideRemaining bool

	closed atomic.Int32
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of interleaved samples to generate; a
// negative value generates forever.
// waveform is a function that generates sample values given the sample index.
func NewMockSource[S audio.Sample](sampleRate, channels, totalSamples int, waveform func(sample int) S) *MockSource[S] {
	return &MockSource[S]{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
		FrameLen:     -1,
	}
}

// NewSliceSource plays back samples verbatim.
func NewSliceSource[S audio.Sample](sampleRate, channels int, samples ...S) *MockSource[S] {
	return NewMockSource(sampleRate, channels, len(samples), func(i int) S {
		return samples[i]
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource[S audio.Sample](sampleRate, channels, totalSamples int, value S) *MockSource[S] {
	return NewMockSource(sampleRate, channels, totalSamples, func(int) S {
		return value
	})
}

// NewSineSource creates a mock source that generates a sine wave. Every
// channel of a frame carries the same value.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource[float32] {
	return NewMockSource(sampleRate, channels, totalFrames*channels, func(i int) float32 {
		t := float64(i/channels) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewRampSource yields 1, 2, 3, ... which makes ordering easy to assert.
func NewRampSource(sampleRate, channels, totalSamples int) *MockSource[int16] {
	return NewMockSource(sampleRate, channels, totalSamples, func(i int) int16 {
		return int16(i + 1)
	})
}

func (m *MockSource[S]) SampleRate() int { return m.sampleRate }
func (m *MockSource[S]) Channels() int   { return m.channels }

func (m *MockSource[S]) Close() error {
	m.closed.Add(1)
	return nil
}

// Closed reports how many times Close was called.
func (m *MockSource[S]) Closed() int { return int(m.closed.Load()) }

// Generated reports how many samples were pulled so far.
func (m *MockSource[S]) Generated() int { return m.generated }

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource[S]) Reset() {
	m.generated = 0
}

func (m *MockSource[S]) Next() (S, bool) {
	if m.totalSamples >= 0 && m.generated >= m.totalSamples {
		var zero S
		return zero, false
	}

	s := m.waveform(m.generated)
	m.generated++
	return s, true
}

func (m *MockSource[S]) CurrentFrameLen() (int, bool) {
	if m.FrameLen < 0 {
		return 0, false
	}
	return m.FrameLen, true
}

func (m *MockSource[S]) Remaining() (int, bool) {
	if m.HideRemaining || m.totalSamples < 0 {
		return 0, false
	}
	return m.totalSamples - m.generated, true
}

func (m *MockSource[S]) TotalDuration() (time.Duration, bool) {
	if m.totalSamples < 0 {
		return 0, false
	}
	frames := m.totalSamples / m.channels
	return time.Duration(frames) * time.Second / time.Duration(m.sampleRate), true
}
