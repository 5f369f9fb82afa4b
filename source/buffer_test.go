package source

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audqueue/audio"
)

func TestBuffer(t *testing.T) {
	t.Parallel()

	b := Buffer(2, 4, []int16{1, 2, 3, 4, 5, 6})

	d, ok := b.TotalDuration()
	require.True(t, ok)
	assert.Equal(t, 750*time.Millisecond, d)

	n, _ := b.CurrentFrameLen()
	assert.Equal(t, 6, n)

	b.Next()
	n, _ = b.Remaining()
	assert.Equal(t, 5, n)

	assert.Equal(t, []int16{2, 3, 4, 5, 6}, audio.Collect[int16](b))
	_, ok = b.Next()
	assert.False(t, ok)
}

func TestConvert(t *testing.T) {
	t.Parallel()

	src := Buffer(1, 8000, []float32{0, 1, -1, 2})
	conv := Convert[float32, int16](src)

	assert.Equal(t, 1, conv.Channels())
	assert.Equal(t, 8000, conv.SampleRate())

	n, ok := conv.Remaining()
	require.True(t, ok)
	assert.Equal(t, 4, n)

	got := audio.Collect[int16](conv)
	assert.Equal(t, []int16{0, math.MaxInt16, math.MinInt16, math.MaxInt16}, got)
}
