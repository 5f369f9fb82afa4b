// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"unsafe"
)

type sampleKind uint8

const (
	kindFloat sampleKind = iota
	kindInt16
	kindInt32
)

func kindOf[S Sample]() sampleKind {
	var zero S
	half := 0.5
	// Only integer types truncate 0.5 to zero.
	if S(half) != zero {
		return kindFloat
	}
	if unsafe.Sizeof(zero) == 2 {
		return kindInt16
	}
	return kindInt32
}

// ToFloat64 maps s to [-1,1]. Integer samples are scaled by their full range.
func ToFloat64[S Sample](s S) float64 {
	switch kindOf[S]() {
	case kindInt16:
		return float64(s) / 32768.0
	case kindInt32:
		return float64(s) / 2147483648.0
	}
	return float64(s)
}

// FromFloat64 maps x in [-1,1] to S. Integer results are rounded and
// clamped to the type's range, so integer to float and back is lossless.
func FromFloat64[S Sample](x float64) S {
	switch kindOf[S]() {
	case kindInt16:
		return S(clampScale(x, 32768.0, math.MinInt16, math.MaxInt16))
	case kindInt32:
		return S(clampScale(x, 2147483648.0, math.MinInt32, math.MaxInt32))
	}
	return S(x)
}

// Convert maps a sample from one representation to another.
func Convert[From, To Sample](s From) To {
	return FromFloat64[To](ToFloat64(s))
}

func clampScale(x, full, lo, hi float64) float64 {
	v := math.Round(x * full)
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}
