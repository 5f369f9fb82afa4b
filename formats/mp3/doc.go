// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
//
// # Decoding MP3 Files
//
//	file, _ := os.Open("audio.mp3")
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	ctrl.Append(src)
//
// # Output Format
//
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: always 2, mono files are duplicated by the decoder
//   - Sample rate: Depends on the MP3 file (typically 44.1kHz or 48kHz)
//
// TotalDuration and Remaining are only known when the input is an
// io.ReadSeeker, since go-mp3 has to scan the whole file to size it.
//
// To match a fixed output format, wrap the source:
//
//	src = source.Remix(source.Resample(src, 8000), 1)
package mp3
