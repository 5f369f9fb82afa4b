// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audqueue/audio"
)

const encodeBlockFrames = 1024

// Writer encodes 16-bit PCM WAV. The header is completed by Close.
type Writer struct {
	enc *wav.Encoder
	buf *goaudio.IntBuffer
}

// NewWriter starts a 16-bit PCM WAV stream on w. The underlying writer is
// not closed by Close.
func NewWriter(w io.WriteSeeker, sampleRate, channels int) *Writer {
	return &Writer{
		enc: wav.NewEncoder(w, sampleRate, 16, channels, formatPCM),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}
}

// Write appends interleaved samples.
func (w *Writer) Write(samples []int16) error {
	if len(samples) == 0 {
		return nil
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, s := range samples {
		w.buf.Data[i] = int(s)
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Close finalises the header.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Encode drains src into w as a complete WAV file and returns the number of
// samples written. The format is taken from src before the first read and
// checked again at every frame boundary src reports; Encode fails with
// ErrFormatChanged if it moves.
func Encode(w io.WriteSeeker, src audio.Source[int16]) (int, error) {
	channels, rate := src.Channels(), src.SampleRate()
	if channels <= 0 {
		return 0, audio.ErrInvalidChannels
	}
	if rate <= 0 {
		return 0, audio.ErrInvalidRate
	}

	out := NewWriter(w, rate, channels)
	buf := make([]int16, 0, encodeBlockFrames*channels)
	total, span := 0, 0

	flush := func() error {
		if err := out.Write(buf); err != nil {
			return err
		}
		total += len(buf)
		buf = buf[:0]
		return nil
	}

	for {
		if span <= 0 {
			if src.Channels() != channels || src.SampleRate() != rate {
				if err := flush(); err != nil {
					return total, err
				}
				_ = out.Close()
				return total, ErrFormatChanged
			}

			span = channels
			if n, ok := src.CurrentFrameLen(); ok && n > 0 {
				span = n
			}
		}

		s, ok := src.Next()
		if !ok {
			break
		}
		buf = append(buf, s)
		span--

		if len(buf) == cap(buf) {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}

	if err := flush(); err != nil {
		return total, err
	}
	return total, out.Close()
}
