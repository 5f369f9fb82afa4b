// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audqueue/audio"
	"github.com/ik5/audqueue/formats/internal/block"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read decodes interleaved samples into p and returns how many it wrote.
	Read(p []float32) (int, error)
}

// lengther is implemented by oggvorbis.Reader; Length counts frames and is
// zero when unknown.
type lengther interface {
	Length() int64
}

func newSource(dec oggReader) *block.Source {
	channels := dec.Channels()

	fill := func(dst []float32) (int, error) {
		n, err := dec.Read(dst)
		n -= n % channels
		return n, err
	}

	src := block.New(channels, dec.SampleRate(), block.DefaultSize, fill)
	if l, ok := dec.(lengther); ok && l.Length() > 0 {
		src.WithLength(l.Length() * int64(channels))
	}
	return src
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source[float32], error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newSource(dec), nil
}
