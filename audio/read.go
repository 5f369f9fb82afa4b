// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// ReadSamples fills dst with interleaved samples pulled one at a time from
// src. dst length should be a multiple of src.Channels() at the time of the
// call. Returns number of samples written (not frames). When n == 0 with
// err == io.EOF, the stream is finished.
//
// A short read with io.EOF means src ended inside dst; the tail of dst is
// left untouched.
func ReadSamples[S Sample](src Source[S], dst []S) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := src.Channels()
	if channels <= 0 {
		return 0, ErrInvalidChannels
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	for i := range dst {
		s, ok := src.Next()
		if !ok {
			return i, io.EOF
		}
		dst[i] = s
	}

	return len(dst), nil
}

// Collect drains src into a slice. Intended for finite sources.
func Collect[S Sample](src Source[S]) []S {
	var out []S
	if n, ok := Remaining(src); ok {
		out = make([]S, 0, n)
	}

	for {
		s, ok := src.Next()
		if !ok {
			return out
		}
		out = append(out, s)
	}
}
