// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC audio file decoding.
//
// This package uses github.com/mewkiz/flac, a pure Go decoder:
//
//	file, _ := os.Open("audio.flac")
//	src, err := flac.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	ctrl.Append(src)
//
// Samples of any bit depth up to 32 are normalized to float32 in
// [-1.0, 1.0]. TotalDuration comes from STREAMINFO and is unknown when the
// encoder did not record a sample count.
package flac
