// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/ik5/audqueue/audio"
)

const bytesPerFloat = 4

// PCMReader encodes a source as interleaved float32 little-endian PCM, the
// oto.FormatFloat32LE layout. Read never blocks on the source.
type PCMReader[S audio.Sample] struct {
	src  audio.Source[S]
	done bool
}

func NewPCMReader[S audio.Sample](src audio.Source[S]) *PCMReader[S] {
	return &PCMReader[S]{src: src}
}

// Read fills p with whole samples and returns io.EOF once the source has
// ended.
func (r *PCMReader[S]) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}

	n := 0
	for n+bytesPerFloat <= len(p) {
		s, ok := r.src.Next()
		if !ok {
			r.done = true
			break
		}

		v := float32(audio.ToFloat64(s))
		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(v))
		n += bytesPerFloat
	}

	if n == 0 && r.done {
		return 0, io.EOF
	}
	return n, nil
}
