// SPDX-License-Identifier: EPL-2.0

package block

import goaudio "github.com/go-audio/audio"

// PCMReader is the reading half of the go-audio WAV and AIFF decoders.
type PCMReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// PCM returns a FillFunc that pulls integer PCM from dec and scales it by
// bitDepth. Trailing partial frames are dropped.
func PCM(dec PCMReader, channels, sampleRate, bitDepth int) FillFunc {
	scale := Scale(bitDepth)
	ints := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}

	return func(dst []float32) (int, error) {
		if cap(ints.Data) < len(dst) {
			ints.Data = make([]int, len(dst))
		}
		ints.Data = ints.Data[:len(dst)]

		n, err := dec.PCMBuffer(ints)
		n = min(n, len(dst))
		n -= n % channels
		for i := range n {
			dst[i] = float32(ints.Data[i]) / scale
		}
		return n, err
	}
}
