// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
	"time"
)

// Sample is the set of element types a Source may produce.
// The zero value of every member is silence.
type Sample interface {
	~int16 | ~int32 | ~float32 | ~float64
}

// Source is a lazy sequence of interleaved samples.
type Source[S Sample] interface {
	// Next returns the next sample, or false once the source is exhausted.
	Next() (S, bool)
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// CurrentFrameLen is the number of samples left before channels or
	// sample rate may change. ok is false when unknown.
	CurrentFrameLen() (n int, ok bool)
	// TotalDuration of the whole source. ok is false when unknown or infinite.
	TotalDuration() (d time.Duration, ok bool)

	// Close releases any resources.
	Close() error
}

// Remainer is implemented by sources that can estimate how many samples
// they still hold.
type Remainer interface {
	Remaining() (n int, ok bool)
}

// Remaining returns src's remaining sample estimate if it has one.
func Remaining[S Sample](src Source[S]) (int, bool) {
	r, ok := src.(Remainer)
	if !ok {
		return 0, false
	}
	return r.Remaining()
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source[float32], error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.RWMutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats lists the registered format keys in no particular order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	formats := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		formats = append(formats, k)
	}
	return formats
}
