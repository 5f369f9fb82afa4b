// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
//   - Uncompressed AIFF, 8, 16, 24 or 32-bit
//   - Any channel count and sample rate
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("audio.aif")
//	src, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	ctrl.Append(src)
//
// The decoder returns an audio.Source[float32] with samples normalized to
// [-1.0, 1.0]. go-audio needs to seek, so input that is not an
// io.ReadSeeker is read into memory first.
//
// # Error Handling
//
//   - ErrNotAiffFile: The input is not a valid AIFF file
//   - ErrUnsupportedBitDepth: The sample size is not supported
//   - ErrUnsupportedAiffLayout: The header describes no usable format
//
// Errors met while streaming end the source early; the returned source has
// an Err() error method that reports them.
package aiff
