// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/audqueue/audio"
	"github.com/ik5/audqueue/formats/internal/block"
)

func newSource(dec block.PCMReader, channels, sampleRate, bitDepth int, frames int64) *block.Source {
	src := block.New(channels, sampleRate, block.DefaultSize, block.PCM(dec, channels, sampleRate, bitDepth))
	if frames > 0 {
		src.WithLength(frames * int64(channels))
	}
	return src
}

type Decoder struct{}

// Decode reads the AIFF header and returns a streaming source. Input that
// cannot seek is buffered in memory first.
func (Decoder) Decode(r io.Reader) (audio.Source[float32], error) {
	rs, err := block.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit", ErrUnsupportedBitDepth, bitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	return newSource(dec, format.NumChannels, format.SampleRate, bitDepth, int64(dec.NumSampleFrames)), nil
}
