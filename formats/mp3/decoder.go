// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audqueue/audio"
	"github.com/ik5/audqueue/formats/internal/block"
)

// go-mp3 always decodes to 16-bit little-endian stereo.
const (
	channels       = 2
	bytesPerSample = 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// lengther is implemented by gomp3.Decoder; Length is the decoded size in
// bytes, or negative when the input cannot seek.
type lengther interface {
	Length() int64
}

func newSource(dec mp3Reader) *block.Source {
	var raw []byte

	fill := func(dst []float32) (int, error) {
		want := len(dst) * bytesPerSample
		if cap(raw) < want {
			raw = make([]byte, want)
		}
		raw = raw[:want]

		n, err := io.ReadFull(dec, raw)
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = io.EOF
		}

		samples := n / (bytesPerSample * channels) * channels
		for i := range samples {
			v := int16(binary.LittleEndian.Uint16(raw[2*i:]))
			dst[i] = float32(v) / 32768.0
		}
		return samples, err
	}

	src := block.New(channels, dec.SampleRate(), block.DefaultSize, fill)
	if l, ok := dec.(lengther); ok && l.Length() > 0 {
		src.WithLength(l.Length() / bytesPerSample)
	}
	return src
}

type Decoder struct{}

// Decode starts decoding r. The duration is known when r can seek.
func (Decoder) Decode(r io.Reader) (audio.Source[float32], error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newSource(dec), nil
}
