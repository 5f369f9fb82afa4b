// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audqueue/audio"
)

// Helper function to create a minimal valid WAV file
func createWAVFile(sampleRate, channels, bitsPerSample, format int, samples []int16) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bits/8)
	blockAlign := numChannels * (bits / 8)
	dataSize := uint32(len(samples) * 2)
	riffSize := 36 + dataSize

	// RIFF header
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, riffSize)
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(format))
	_ = binary.Write(buf, binary.LittleEndian, numChannels)
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, byteRate)
	_ = binary.Write(buf, binary.LittleEndian, blockAlign)
	_ = binary.Write(buf, binary.LittleEndian, bits)

	// data chunk
	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, dataSize)
	for _, s := range samples {
		_ = binary.Write(buf, binary.LittleEndian, s)
	}

	return buf.Bytes()
}

func TestDecoder_ValidWAVFile(t *testing.T) {
	t.Parallel()

	data := createWAVFile(8000, 1, 16, formatPCM, []int16{0, 16384, -16384, -32768})

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	assert.Equal(t, 8000, src.SampleRate())
	assert.Equal(t, 1, src.Channels())
	assert.Equal(t, []float32{0, 0.5, -0.5, -1}, audio.Collect(src))
}

func TestDecoder_StereoWAVFile(t *testing.T) {
	t.Parallel()

	data := createWAVFile(44100, 2, 16, formatPCM, []int16{100, 200, 300, 400, 500, 600})

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 44100, src.SampleRate())
	assert.Equal(t, 2, src.Channels())

	n, ok := audio.Remaining(src)
	require.True(t, ok)
	assert.Equal(t, 6, n)
	assert.Len(t, audio.Collect(src), 6)
}

func TestDecoder_NonSeekableInput(t *testing.T) {
	t.Parallel()

	data := createWAVFile(8000, 1, 16, formatPCM, []int16{1, 2, 3})
	r := io.MultiReader(bytes.NewReader(data[:10]), bytes.NewReader(data[10:]))

	src, err := Decoder{}.Decode(r)
	require.NoError(t, err)
	assert.Len(t, audio.Collect(src), 3)
}

func TestDecoder_TotalDuration(t *testing.T) {
	t.Parallel()

	data := createWAVFile(8000, 2, 16, formatPCM, make([]int16, 8000))

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	d, ok := src.TotalDuration()
	require.True(t, ok)
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not riff", []byte("NOT A WAV FILE DATA"), ErrNotWavFile},
		{"truncated", []byte("RIFF\x00"), ErrNotWavFile},
		{"8-bit", createWAVFile(8000, 1, 8, formatPCM, []int16{0}), ErrUnsupportedBitDepth},
		{"float", createWAVFile(8000, 1, 16, 3, []int16{0}), ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// mockPCMReader serves fixed integer samples.
type mockPCMReader struct {
	data []int
}

func (m *mockPCMReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	n := copy(buf.Data, m.data)
	m.data = m.data[n:]
	return n, nil
}

func TestSource_TwentyFourBit(t *testing.T) {
	t.Parallel()

	src := newSource(&mockPCMReader{data: []int{4194304, -8388608}}, 1, 96000, 24, 2)

	n, ok := audio.Remaining(src)
	require.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Equal(t, []float32{0.5, -1}, audio.Collect[float32](src))
}

func BenchmarkSource_Next(b *testing.B) {
	data := createWAVFile(48000, 2, 16, formatPCM, make([]int16, 48000*2))

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, ok := src.Next(); !ok {
				break
			}
		}
	}
}
