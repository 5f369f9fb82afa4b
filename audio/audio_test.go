package audio

import (
	"errors"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDecoder is a test decoder implementation
type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(r io.Reader) (Source[float32], error) {
	return newSliceSource[float32](2, 44100, 0, 0, 0, 0), nil
}

// failingDecoder always returns an error
type failingDecoder struct{}

func (d *failingDecoder) Decode(r io.Reader) (Source[float32], error) {
	return nil, errors.New("decode failed")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}

	registry.Register("wav", decoder)

	got, ok := registry.Get("wav")
	require.True(t, ok, "Registry.Get() failed to retrieve registered decoder")
	assert.Same(t, decoder, got)
}

func TestRegistry_MultipleFormats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavDecoder := &mockDecoder{name: "wav"}
	mp3Decoder := &mockDecoder{name: "mp3"}
	failing := &failingDecoder{}

	registry.Register("wav", wavDecoder)
	registry.Register("mp3", mp3Decoder)
	registry.Register("ogg", failing)

	tests := []struct {
		format string
		want   Decoder
		wantOK bool
	}{
		{"wav", wavDecoder, true},
		{"mp3", mp3Decoder, true},
		{"ogg", failing, true},
		{"flac", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, ok := registry.Get(tt.format)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Same(t, tt.want, got)
			}
		})
	}

	formats := registry.Formats()
	sort.Strings(formats)
	assert.Equal(t, []string{"mp3", "ogg", "wav"}, formats)
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder1 := &mockDecoder{name: "first"}
	decoder2 := &mockDecoder{name: "second"}

	registry.Register("wav", decoder1)
	registry.Register("wav", decoder2)

	got, ok := registry.Get("wav")
	require.True(t, ok)
	assert.Same(t, decoder2, got, "Registry.Get() did not return the overwritten decoder")
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Register("format", decoder)
		}()
		go func() {
			defer wg.Done()
			_, _ = registry.Get("format")
		}()
	}
	wg.Wait()

	got, ok := registry.Get("format")
	require.True(t, ok)
	assert.Same(t, decoder, got)
}

func TestRemaining(t *testing.T) {
	t.Parallel()

	src := newSliceSource[int16](1, 8000, 1, 2, 3)
	n, ok := Remaining[int16](src)
	require.True(t, ok)
	assert.Equal(t, 3, n)

	src.Next()
	n, _ = Remaining[int16](src)
	assert.Equal(t, 2, n)
}

func TestErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	errs := []error{ErrInvalidDstSize, ErrUnknownFormat, ErrInvalidChannels, ErrInvalidRate}
	for i, a := range errs {
		for j, b := range errs {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}

	wrapped := errors.Join(ErrInvalidDstSize, errors.New("additional context"))
	assert.ErrorIs(t, wrapped, ErrInvalidDstSize)
}

// BenchmarkRegistry_Get benchmarks retrieving decoders
func BenchmarkRegistry_Get(b *testing.B) {
	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})

	b.ReportAllocs()

	for b.Loop() {
		_, _ = registry.Get("wav")
	}
}
