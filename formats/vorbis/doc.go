// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
// Vorbis is a free, open-source lossy audio compression format.
//
// # Decoding Vorbis Files
//
//	file, _ := os.Open("audio.ogg")
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	ctrl.Append(src)
//
// The decoder returns an audio.Source[float32] with the file's own channel
// count and sample rate. Vorbis decodes to float natively, so samples are
// passed through without conversion.
//
// The duration is known when the input can seek.
package vorbis
