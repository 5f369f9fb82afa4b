// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrNoStreamInfo        = errors.New("FLAC stream has no STREAMINFO")
	ErrCorruptFrame        = errors.New("FLAC frame has fewer subframes than channels")
	ErrUnsupportedBitDepth = errors.New("FLAC bit depth out of range")
)
