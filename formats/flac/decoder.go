// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/audqueue/audio"
	"github.com/ik5/audqueue/formats/internal/block"
)

// frameReader is the part of flac.Stream a source needs.
type frameReader interface {
	ParseNext() (*frame.Frame, error)
}

// deinterleaver carries a partly consumed FLAC frame across blocks.
type deinterleaver struct {
	dec      frameReader
	channels int
	scale    float32

	cur *frame.Frame
	off int
}

func (d *deinterleaver) fill(dst []float32) (int, error) {
	n := 0
	for n+d.channels <= len(dst) {
		if d.cur == nil || d.off >= len(d.cur.Subframes[0].Samples) {
			f, err := d.dec.ParseNext()
			if err != nil {
				return n, err
			}
			if len(f.Subframes) < d.channels {
				return n, ErrCorruptFrame
			}
			d.cur, d.off = f, 0
			continue
		}

		for c := range d.channels {
			dst[n] = float32(d.cur.Subframes[c].Samples[d.off]) / d.scale
			n++
		}
		d.off++
	}
	return n, nil
}

func newSource(dec frameReader, channels, sampleRate, bitDepth int, frames uint64) *block.Source {
	d := &deinterleaver{dec: dec, channels: channels, scale: block.Scale(bitDepth)}

	src := block.New(channels, sampleRate, block.DefaultSize, d.fill)
	if frames > 0 {
		src.WithLength(int64(frames) * int64(channels))
	}
	return src
}

type Decoder struct{}

// Decode parses the FLAC metadata blocks and returns a streaming source.
// The reader is not closed by the source.
func (Decoder) Decode(r io.Reader) (audio.Source[float32], error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	info := stream.Info
	if info == nil || info.NChannels == 0 || info.SampleRate == 0 {
		return nil, ErrNoStreamInfo
	}
	if info.BitsPerSample == 0 || info.BitsPerSample > 32 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, info.BitsPerSample)
	}

	return newSource(stream, int(info.NChannels), int(info.SampleRate), int(info.BitsPerSample), info.NSamples), nil
}
