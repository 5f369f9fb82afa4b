// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/ik5/audqueue/audio"
	"github.com/ik5/audqueue/internal/config"
	"github.com/ik5/audqueue/output"
)

// backend drives a queue from the audio device's own goroutine.
type backend interface {
	// Start begins playback. The returned channel closes once src ends.
	Start(src audio.Source[float32]) (<-chan struct{}, error)
	// Close stops pulling from src. src may be closed afterwards.
	Close() error
}

func newBackend(out config.Output) (backend, error) {
	switch out.Backend {
	case config.BackendBeep:
		return &beepBackend{out: out}, nil
	case config.BackendOto:
		return &otoBackend{out: out}, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, out.Backend)
}

type beepBackend struct {
	out config.Output
}

func (b *beepBackend) Start(src audio.Source[float32]) (<-chan struct{}, error) {
	sr := beep.SampleRate(b.out.SampleRate)
	if err := speaker.Init(sr, sr.N(b.out.Buffer)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(output.Streamer(src), beep.Callback(func() {
		close(done)
	})))
	return done, nil
}

func (b *beepBackend) Close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}

type otoBackend struct {
	out    config.Output
	player *oto.Player
}

func (o *otoBackend) Start(src audio.Source[float32]) (<-chan struct{}, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   o.out.SampleRate,
		ChannelCount: o.out.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   o.out.Buffer,
	})
	if err != nil {
		return nil, fmt.Errorf("creating oto context: %w", err)
	}
	<-ready

	r := &eofNotifier{r: output.NewPCMReader(src), done: make(chan struct{})}
	o.player = ctx.NewPlayer(r)
	o.player.Play()
	return r.done, nil
}

func (o *otoBackend) Close() error {
	if o.player == nil {
		return nil
	}
	o.player.Pause()
	return o.player.Close()
}

// eofNotifier closes done the first time the wrapped reader ends.
type eofNotifier struct {
	r    io.Reader
	done chan struct{}
	once sync.Once
}

func (e *eofNotifier) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil {
		e.once.Do(func() { close(e.done) })
	}
	return n, err
}
