// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes RIFF WAVE files through go-audio/wav.
//
// # Decoding
//
// Decoder accepts integer PCM (format tag 1) and WAVE_FORMAT_EXTENSIBLE at
// 16, 24 or 32 bits, any channel count and any sample rate:
//
//	src, err := wav.Decoder{}.Decode(f)
//	if errors.Is(err, wav.ErrUnsupportedBitDepth) {
//	    // 8-bit and float WAV are rejected
//	}
//	defer src.Close()
//
// Samples come out as float32 in [-1, 1], interleaved. The source knows its
// length from the data chunk, so TotalDuration and Remaining are exact. A
// read error in the middle of the data ends the stream early; the error is
// kept on the source and returned by its Err method.
//
// # Encoding
//
// Writer produces 16-bit PCM. The header sizes are patched by Close, which
// is why it needs an io.WriteSeeker:
//
//	w := wav.NewWriter(f, 44100, 2)
//	_ = w.Write(samples)
//	_ = w.Close()
//
// Encode drains a whole source, typically a queue without keep-alive, into
// a file. WAV holds a single format, so Encode stops with ErrFormatChanged
// when the source switches channel count or sample rate; normalise sources
// before appending them if they differ.
package wav
