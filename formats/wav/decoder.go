// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/audqueue/audio"
	"github.com/ik5/audqueue/formats/internal/block"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

func newSource(dec block.PCMReader, channels, sampleRate, bitDepth int, length int64) *block.Source {
	fill := block.PCM(dec, channels, sampleRate, bitDepth)
	return block.New(channels, sampleRate, block.DefaultSize, fill).WithLength(length)
}

type Decoder struct{}

// Decode reads the WAV header and returns a streaming source. Input that
// cannot seek is buffered in memory first.
func (Decoder) Decode(r io.Reader) (audio.Source[float32], error) {
	rs, err := block.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %#x", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit", ErrUnsupportedBitDepth, bitDepth)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoPCMData, err)
	}

	channels := int(dec.NumChans)
	length := int64(dec.PCMSize) / int64(bitDepth/8)

	return newSource(dec, channels, int(dec.SampleRate), bitDepth, length), nil
}
