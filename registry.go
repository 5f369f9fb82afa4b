// SPDX-License-Identifier: EPL-2.0

package audqueue

import (
	"path/filepath"
	"strings"

	"github.com/ik5/audqueue/audio"
	"github.com/ik5/audqueue/formats/aiff"
	"github.com/ik5/audqueue/formats/flac"
	"github.com/ik5/audqueue/formats/mp3"
	"github.com/ik5/audqueue/formats/vorbis"
	"github.com/ik5/audqueue/formats/wav"
)

// DefaultRegistry returns a registry with every bundled decoder, keyed by
// lower-case file extension without the dot.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aifc", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("flac", flac.Decoder{})

	return reg
}

// FormatOf returns the registry key for path: its extension, lower-cased,
// without the dot.
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
