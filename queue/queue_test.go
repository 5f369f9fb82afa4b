package queue

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audqueue/audio"
	"github.com/ik5/audqueue/internal/audiotest"
	"github.com/ik5/audqueue/source"
)

func expectSamples[S audio.Sample](t *testing.T, q *Queue[S], want ...S) {
	t.Helper()

	for i, w := range want {
		got, ok := q.Next()
		require.Truef(t, ok, "sample %d: queue ended early", i)
		require.Equalf(t, w, got, "sample %d", i)
	}
}

func expectEnd[S audio.Sample](t *testing.T, q *Queue[S]) {
	t.Helper()

	_, ok := q.Next()
	require.False(t, ok, "queue should have ended")
}

func TestQueue_FormatSwitch(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](false)
	ctl.Append(source.Buffer(1, 48000, []int16{10, -10, 10, -10}))
	ctl.Append(source.Buffer(2, 96000, []int16{5, 5, 5, 5}))

	assert.Equal(t, 1, q.Channels())
	assert.Equal(t, 48000, q.SampleRate())

	expectSamples(t, q, 10, -10, 10, -10)

	// The new format is visible as soon as the first source ran dry.
	assert.Equal(t, 2, q.Channels())
	assert.Equal(t, 96000, q.SampleRate())

	expectSamples(t, q, 5, 5, 5, 5)
	expectEnd(t, q)
}

func TestQueue_ImmediateEnd(t *testing.T) {
	t.Parallel()

	ctl, q := New[float32](false)
	expectEnd(t, q)
	expectEnd(t, q)
	assert.True(t, ctl.Closed())
}

func TestQueue_KeepAlive(t *testing.T) {
	t.Parallel()

	_, q := New[int16](true)
	for i := range 100_000 {
		s, ok := q.Next()
		require.Truef(t, ok, "sample %d", i)
		require.Zero(t, s)
	}

	assert.Equal(t, DefaultFallbackChannels, q.Channels())
	assert.Equal(t, DefaultFallbackSampleRate, q.SampleRate())
}

func TestQueue_NoDelayWhenAdded(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](true)
	for range 10 {
		expectSamples(t, q, 0)
	}

	ctl.Append(source.Buffer(1, 48000, []int16{10, -10, 10, -10}))
	expectSamples(t, q, 10, -10, 10, -10)

	// Back to keep-alive silence.
	expectSamples(t, q, 0, 0, 0)
}

func TestQueue_AppendAfterDrain(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](false)
	ctl.Append(source.Buffer(1, 48000, []int16{1, 2}))
	expectSamples(t, q, 1)

	// The last sample is still held when the second append arrives.
	expectSamples(t, q, 2)
	ctl.Append(source.Buffer(1, 48000, []int16{3}))
	expectSamples(t, q, 3)
	expectEnd(t, q)
}

func TestQueue_PauseResume(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](false)
	src := audiotest.NewRampSource(48000, 1, 10)
	ctl.Append(src)

	expectSamples(t, q, 1, 2, 3)
	consumed := src.Generated()

	ctl.Pause()
	for range 50 {
		expectSamples(t, q, 0)
	}
	assert.True(t, q.Paused())
	assert.Equal(t, consumed, src.Generated(), "pause must not consume the source")

	ctl.Play()
	expectSamples(t, q, 4, 5, 6, 7, 8, 9, 10)
	assert.False(t, q.Paused())
	expectEnd(t, q)
}

func TestQueue_PauseBeforeFirstSource(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](false)
	ctl.Pause()
	expectSamples(t, q, 0, 0)

	ctl.Append(source.Buffer(1, 8000, []int16{7}))
	expectSamples(t, q, 0)

	ctl.Play()
	expectSamples(t, q, 7)
	expectEnd(t, q)
}

func TestQueue_StopKeepAlive(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](true)
	a := audiotest.NewRampSource(48000, 1, 100)
	b := audiotest.NewRampSource(48000, 1, 100)
	ctl.Append(a)
	ctl.Append(b)

	expectSamples(t, q, 1, 2)

	ctl.Stop()
	for range 10_000 {
		expectSamples(t, q, 0)
	}

	assert.Equal(t, 1, a.Closed())
	assert.Equal(t, 1, b.Closed())
	assert.Zero(t, b.Generated(), "discarded source must not be played")
	assert.False(t, ctl.Closed())
}

func TestQueue_AppendThenStop(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](true)
	a := audiotest.NewRampSource(48000, 1, 100)
	b := audiotest.NewRampSource(48000, 1, 100)
	ctl.Append(a)
	ctl.Append(b)
	ctl.Stop()

	for range 1000 {
		expectSamples(t, q, 0)
	}
	assert.Zero(t, a.Generated())
	assert.Zero(t, b.Generated())
	assert.Equal(t, 1, a.Closed())
	assert.Equal(t, 1, b.Closed())
}

func TestQueue_StopThenAppend(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](true)
	ctl.Append(audiotest.NewRampSource(48000, 1, 100))
	expectSamples(t, q, 1)

	ctl.Stop()
	ctl.Append(source.Buffer(1, 48000, []int16{42}))
	expectSamples(t, q, 42, 0)
}

func TestQueue_StopWithoutKeepAlive(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](false)
	a := audiotest.NewRampSource(48000, 1, 100)
	ctl.Append(a)

	expectSamples(t, q, 1)
	ctl.Stop()
	expectEnd(t, q)
	expectEnd(t, q)

	assert.Equal(t, 1, a.Closed())
	assert.True(t, ctl.Closed())
}

func TestQueue_StopWhilePaused(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](false)
	ctl.Append(audiotest.NewRampSource(48000, 1, 100))
	expectSamples(t, q, 1)

	ctl.Pause()
	ctl.Stop()
	expectEnd(t, q)
}

func TestQueue_NextTrack(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](false)
	a := audiotest.NewRampSource(48000, 1, 10)
	b := audiotest.NewConstantSource[int16](22050, 2, 4, 100)
	ctl.Append(a)
	ctl.Append(b)

	expectSamples(t, q, 1)
	ctl.Next()
	expectSamples(t, q, 100)
	assert.Equal(t, 2, q.Channels())
	assert.Equal(t, 22050, q.SampleRate())
	assert.Equal(t, 1, a.Closed())

	expectSamples(t, q, 100, 100, 100)
	expectEnd(t, q)
}

func TestQueue_NextTrackOnLastSource(t *testing.T) {
	t.Parallel()

	t.Run("keep alive", func(t *testing.T) {
		t.Parallel()

		ctl, q := New[int16](true)
		ctl.Append(audiotest.NewRampSource(48000, 1, 10))
		expectSamples(t, q, 1)
		ctl.Next()
		expectSamples(t, q, 0, 0)
	})

	t.Run("no keep alive", func(t *testing.T) {
		t.Parallel()

		ctl, q := New[int16](false)
		ctl.Append(audiotest.NewRampSource(48000, 1, 10))
		expectSamples(t, q, 1)
		ctl.Next()
		expectEnd(t, q)
	})
}

func TestQueue_ClosesFinishedSources(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](false)
	a := audiotest.NewRampSource(48000, 1, 2)
	b := audiotest.NewRampSource(48000, 1, 2)
	ctl.Append(a)
	ctl.Append(b)

	expectSamples(t, q, 1, 2)
	assert.Equal(t, 1, a.Closed(), "first source closed on switch")
	assert.Zero(t, b.Closed())

	expectSamples(t, q, 1, 2)
	expectEnd(t, q)
	assert.Equal(t, 1, a.Closed())
	assert.Equal(t, 1, b.Closed())
}

func TestQueue_EmptySourcesAreSkipped(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](false)
	ctl.Append(source.Empty[int16](2, 48000))
	ctl.Append(source.Buffer[int16](1, 8000, nil))
	ctl.Append(source.Buffer(1, 16000, []int16{3}))

	expectSamples(t, q, 3)
	expectEnd(t, q)
}

func TestQueue_CurrentFrameLen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    Config
		source func() *audiotest.MockSource[int16]
		want   int
	}{
		{
			name: "reported by source",
			source: func() *audiotest.MockSource[int16] {
				m := audiotest.NewRampSource(48000, 1, 100)
				m.FrameLen = 7
				return m
			},
			// Seven left in the source plus the sample held by the queue.
			want: 8,
		},
		{
			name: "short remainder",
			source: func() *audiotest.MockSource[int16] {
				return audiotest.NewRampSource(48000, 1, 100)
			},
			want: 100,
		},
		{
			name: "long remainder",
			source: func() *audiotest.MockSource[int16] {
				return audiotest.NewRampSource(48000, 1, 10_000)
			},
			want: DefaultFrameLenThreshold,
		},
		{
			name: "unknown remainder",
			source: func() *audiotest.MockSource[int16] {
				m := audiotest.NewRampSource(48000, 1, 100)
				m.HideRemaining = true
				return m
			},
			want: DefaultFrameLenThreshold,
		},
		{
			name: "custom threshold",
			cfg:  Config{FrameLenThreshold: 64},
			source: func() *audiotest.MockSource[int16] {
				return audiotest.NewRampSource(48000, 1, -1)
			},
			want: 64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctl, q := NewWithConfig[int16](tt.cfg)
			ctl.Append(tt.source())

			n, ok := q.CurrentFrameLen()
			require.True(t, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestQueue_CurrentFrameLenBeforeSources(t *testing.T) {
	t.Parallel()

	_, q := New[int16](true)
	n, ok := q.CurrentFrameLen()
	require.True(t, ok)
	assert.Equal(t, DefaultFallbackChannels, n, "silence is reported frame by frame")
}

func TestQueue_SilenceYieldsAtFrameBoundary(t *testing.T) {
	t.Parallel()

	ctl, q := NewWithConfig[int16](Config{KeepAliveIfEmpty: true, FallbackChannels: 2})

	// One and a half stereo frames of silence.
	expectSamples(t, q, 0, 0, 0)

	ctl.Append(source.Buffer(1, 8000, []int16{7, 8}))

	n, ok := q.CurrentFrameLen()
	require.True(t, ok)
	assert.Equal(t, 1, n, "one sample left in the silent frame")
	assert.Equal(t, 2, q.Channels())

	expectSamples(t, q, 0)
	assert.Equal(t, 1, q.Channels())
	assert.Equal(t, 8000, q.SampleRate())

	expectSamples(t, q, 7, 8)
	assert.Equal(t, 2, q.Channels(), "back to silence")
	expectSamples(t, q, 0, 0)
}

func TestQueue_FormatStableWithinFrameLen(t *testing.T) {
	t.Parallel()

	ctl, q := NewWithConfig[int16](Config{KeepAliveIfEmpty: true, FallbackChannels: 2})

	var got []int16
	for len(got) < 16 {
		n, ok := q.CurrentFrameLen()
		require.True(t, ok)
		require.Positive(t, n)

		channels, rate := q.Channels(), q.SampleRate()
		for range n {
			require.Equalf(t, channels, q.Channels(), "channels changed after %d samples", len(got))
			require.Equalf(t, rate, q.SampleRate(), "sample rate changed after %d samples", len(got))

			// Lands in the middle of a silent frame.
			if len(got) == 3 {
				ctl.Append(source.Buffer(2, 96000, []int16{1000, -1000, 1000, -1000, 1000, -1000}))
			}

			s, ok := q.Next()
			require.True(t, ok)
			got = append(got, s)
		}
	}

	assert.Equal(t, []int16{
		0, 0, 0, 0,
		1000, -1000, 1000, -1000, 1000, -1000,
		0, 0, 0, 0, 0, 0,
	}, got)
}

func TestQueue_TotalDurationUnknown(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](false)
	ctl.Append(source.Buffer(1, 48000, []int16{1, 2, 3}))

	_, known := q.TotalDuration()
	assert.False(t, known)
}

func TestQueue_Pending(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](false)
	for range 3 {
		ctl.Append(audiotest.NewRampSource(48000, 1, 5))
	}

	// Querying a property promotes the first source.
	assert.Equal(t, 1, q.Channels())
	assert.Equal(t, 2, q.Pending())
}

func TestQueue_Close(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](true)
	a := audiotest.NewRampSource(48000, 1, 10)
	b := audiotest.NewRampSource(48000, 1, 10)
	ctl.Append(a)
	ctl.Append(b)
	expectSamples(t, q, 1)

	c := audiotest.NewRampSource(48000, 1, 10)
	ctl.Append(c)

	require.NoError(t, q.Close())
	require.NoError(t, q.Close())

	assert.Equal(t, 1, a.Closed())
	assert.Equal(t, 1, b.Closed())
	assert.Equal(t, 1, c.Closed(), "sources still in flight are closed too")

	assert.True(t, ctl.Closed())
	expectEnd(t, q)
}

func TestQueue_CloseAfterEndClosesLateSources(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](false)
	expectEnd(t, q)

	// An Append that passed the closed check just before the queue ended.
	late := audiotest.NewRampSource(48000, 1, 10)
	ctl.link.sources.Push(stamped[audio.Source[int16]]{seq: ctl.link.seq.Add(1), msg: late})

	require.NoError(t, q.Close())
	assert.Equal(t, 1, late.Closed())
	assert.Zero(t, late.Generated())

	require.NoError(t, q.Close())
	assert.Equal(t, 1, late.Closed())
}

func TestController_DropsAfterClose(t *testing.T) {
	t.Parallel()

	ctl, q := New[int16](false)
	expectEnd(t, q)

	late := audiotest.NewRampSource(48000, 1, 10)
	ctl.Append(late)
	ctl.Play()
	ctl.Pause()
	ctl.Stop()
	ctl.Next()

	assert.Equal(t, 1, late.Closed(), "late source is closed instead of queued")
	assert.Zero(t, late.Generated())
	expectEnd(t, q)
}

func TestController_ConcurrentProducers(t *testing.T) {
	t.Parallel()

	const (
		producers = 8
		perSource = 200
	)

	ctl, q := New[int16](true)

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perSource {
				v := int16(p*1000 + i + 1)
				ctl.Append(source.Buffer(1, 48000, []int16{v}))
			}
		}()
	}

	last := make(map[int]int16, producers)
	got := 0
	deadline := time.Now().Add(5 * time.Second)
	for got < producers*perSource {
		require.True(t, time.Now().Before(deadline), "timed out after %d samples", got)

		s, ok := q.Next()
		require.True(t, ok)
		if s == 0 {
			continue
		}

		p := int(s-1) / 1000
		assert.Greater(t, s, last[p], "producer %d out of order", p)
		last[p] = s
		got++
	}

	wg.Wait()
	assert.Zero(t, q.Pending())
}

func TestQueue_DebugLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	ctl, q := NewWithConfig[int16](Config{Logger: logger})
	ctl.Append(source.Buffer(2, 48000, []int16{1, 1}))
	ctl.Stop()
	expectEnd(t, q)

	out := buf.String()
	assert.Contains(t, out, "command=stop")
	assert.Contains(t, out, "queue exhausted")
}

func TestCommand_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "play", Play.String())
	assert.Equal(t, "pause", Pause.String())
	assert.Equal(t, "stop", Stop.String())
	assert.Equal(t, "next", NextTrack.String())
	assert.Equal(t, "unknown", Command(99).String())
}

func BenchmarkQueue_Next(b *testing.B) {
	ctl, q := New[float32](true)
	ctl.Append(audiotest.NewSineSource(48000, 2, -1, 440))

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		q.Next()
	}
}

func BenchmarkQueue_KeepAliveSilence(b *testing.B) {
	_, q := New[float32](true)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		q.Next()
	}
}
