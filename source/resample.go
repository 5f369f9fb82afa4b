// SPDX-License-Identifier: EPL-2.0

package source

import (
	"time"

	"github.com/ik5/audqueue/audio"
)

var _ audio.Source[float32] = (*Resampler[float32])(nil)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// Includes basic anti-aliasing filtering when downsampling.
type Resampler[S audio.Sample] struct {
	src      audio.Source[S]
	dstRate  int
	ratio    float64 // srcRate / dstRate - how many source frames per output frame
	channels int

	// Window of 4 frames for cubic interpolation
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	// Position between frames[1] and frames[2] (in source frames)
	pos float64

	// Current output frame and the next channel to hand out
	out    []S
	outPos int
	done   bool

	// Simple low-pass filter state for anti-aliasing (when downsampling)
	filterState []float32
	useFilter   bool
	filterAlpha float32
}

// Resample converts src to dstRate. When the rates already match, samples
// pass through untouched.
func Resample[S audio.Sample](src audio.Source[S], dstRate int) *Resampler[S] {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	// Enable simple low-pass filter when downsampling
	useFilter := ratio > 1.0
	var filterAlpha float32
	if useFilter {
		// One-pole low-pass, cutoff near the destination Nyquist frequency
		filterAlpha = 0.5
	}

	r := &Resampler[S]{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		out:         make([]S, channels),
		outPos:      channels,
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
		filterState: make([]float32, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler[S]) SampleRate() int { return r.dstRate }
func (r *Resampler[S]) Channels() int   { return r.channels }

func (r *Resampler[S]) CurrentFrameLen() (int, bool) {
	if r.ratio == 1 {
		return r.src.CurrentFrameLen()
	}
	return 0, false
}

func (r *Resampler[S]) Remaining() (int, bool) {
	n, ok := audio.Remaining(r.src)
	if !ok {
		return 0, false
	}
	if r.ratio == 1 {
		return n, true
	}
	frames := float64(n/r.channels) / r.ratio
	return int(frames)*r.channels + r.channels - r.outPos, true
}

func (r *Resampler[S]) TotalDuration() (time.Duration, bool) { return r.src.TotalDuration() }
func (r *Resampler[S]) Close() error                         { return r.src.Close() }

func (r *Resampler[S]) Next() (S, bool) {
	if r.ratio == 1 {
		return r.src.Next()
	}

	if r.outPos == r.channels {
		if r.done || !r.interpolate() {
			r.done = true
			var zero S
			return zero, false
		}
		r.outPos = 0
	}

	s := r.out[r.outPos]
	r.outPos++
	return s, true
}

// fetchNextFrame shifts the window and reads the next frame into frames[3].
func (r *Resampler[S]) fetchNextFrame() {
	// Shift frames: [0,1,2,3] -> [1,2,3,?]
	first := r.frames[0]
	copy(r.frames[:], r.frames[1:])
	r.frames[3] = first
	copy(r.hasFrame[:], r.hasFrame[1:])

	r.hasFrame[3] = r.hasFrame[2] && r.readFiltered(r.frames[3])
}

func (r *Resampler[S]) readFiltered(dst []float32) bool {
	if !readFrame(r.src, dst) {
		return false
	}

	if r.useFilter {
		for c := range dst {
			// One-pole low-pass: y[n] = alpha * x[n] + (1-alpha) * y[n-1]
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}
	return true
}

func (r *Resampler[S]) prime() {
	r.primed = true

	if !readFrame(r.src, r.frames[1]) {
		return
	}
	r.hasFrame[1] = true
	// Initialize filter state with first frame to avoid warm-up transients
	copy(r.filterState, r.frames[1])
	// No history yet: the first frame doubles as t-1
	copy(r.frames[0], r.frames[1])

	r.hasFrame[2] = r.readFiltered(r.frames[2])
	r.hasFrame[3] = r.hasFrame[2] && r.readFiltered(r.frames[3])
}

// interpolate computes the next output frame into r.out.
func (r *Resampler[S]) interpolate() bool {
	if r.channels <= 0 {
		return false
	}
	if !r.primed {
		r.prime()
	}

	for r.pos >= 1.0 {
		r.pos -= 1.0
		r.fetchNextFrame()
	}

	if !r.hasFrame[1] {
		return false
	}

	// A single trailing frame is emitted as is
	if !r.hasFrame[2] {
		if r.pos > 0 {
			return false
		}
		for c := range r.channels {
			r.out[c] = audio.FromFloat64[S](float64(r.frames[1][c]))
		}
		r.pos += r.ratio
		return true
	}

	alpha := float32(r.pos)
	for c := range r.channels {
		y0 := r.frames[0][c]
		y1 := r.frames[1][c]
		y2 := r.frames[2][c]
		y3 := y2
		if r.hasFrame[3] {
			y3 = r.frames[3][c]
		}
		r.out[c] = audio.FromFloat64[S](float64(CubicInterpolate(y0, y1, y2, y3, alpha)))
	}

	r.pos += r.ratio
	return true
}
