// SPDX-License-Identifier: EPL-2.0

package audqueue

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audqueue/audio"
	"github.com/ik5/audqueue/formats/wav"
	"github.com/ik5/audqueue/internal/audiotest"
	"github.com/ik5/audqueue/queue"
	"github.com/ik5/audqueue/source"
)

func writeWAV(t *testing.T, name string, channels, rate int, samples []int16) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)

	_, err = wav.Encode(f, source.Buffer(channels, rate, samples))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return path
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	formats := DefaultRegistry().Formats()
	sort.Strings(formats)
	assert.Equal(t, []string{"aif", "aifc", "aiff", "flac", "mp3", "oga", "ogg", "wav", "wave"}, formats)
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"song.mp3", "mp3"},
		{"/music/Track.FLAC", "flac"},
		{"a.b.ogg", "ogg"},
		{"noext", ""},
		{"dir.wav/file", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatOf(tt.path), tt.path)
	}
}

func TestOpenFile(t *testing.T) {
	t.Parallel()

	path := writeWAV(t, "tone.WAV", 2, 22050, []int16{16384, -16384, 8192, -8192})

	src, err := OpenFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, src.Channels())
	assert.Equal(t, 22050, src.SampleRate())

	n, ok := audio.Remaining(src)
	require.True(t, ok)
	assert.Equal(t, 4, n)

	assert.Equal(t, []float32{0.5, -0.5, 0.25, -0.25}, audio.Collect(src))
	require.NoError(t, src.Close())
}

func TestOpenFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.wav"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))
	_, err = OpenFile(path)
	require.ErrorIs(t, err, audio.ErrUnknownFormat)

	bad := filepath.Join(t.TempDir(), "bad.wav")
	require.NoError(t, os.WriteFile(bad, []byte("not a wav"), 0o600))
	_, err = OpenFile(bad)
	require.ErrorIs(t, err, wav.ErrNotWavFile)
	assert.Contains(t, err.Error(), bad)
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 2, 44100, 440)
	out := Prepare[int16](src, Format{Channels: 1, SampleRate: 16000})

	assert.Equal(t, 1, out.Channels())
	assert.Equal(t, 16000, out.SampleRate())
	assert.InDelta(t, 16000, len(audio.Collect(out)), 2)
}

func TestPrepare_Passthrough(t *testing.T) {
	t.Parallel()

	src := source.Buffer(2, 48000, []float32{0.1, 0.2})
	out := Prepare[float32](src, Format{Channels: 2, SampleRate: 48000})
	assert.Same(t, src, out)

	out = Prepare[float32](src, Format{})
	assert.Same(t, src, out)
}

func TestPrepare_IntoQueue(t *testing.T) {
	t.Parallel()

	want := Format{Channels: 2, SampleRate: 48000}
	ctrl, q := queue.New[int16](false)
	ctrl.Append(Prepare[int16](audiotest.NewSineSource(44100, 1, 4410, 440), want))
	ctrl.Append(Prepare[int16](audiotest.NewSineSource(22050, 2, 2205, 220), want))

	for {
		assert.Equal(t, want.Channels, q.Channels())
		assert.Equal(t, want.SampleRate, q.SampleRate())
		if _, ok := q.Next(); !ok {
			break
		}
	}
}
