// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/ik5/audqueue/audio"
	"github.com/ik5/audqueue/formats/wav"
	"github.com/ik5/audqueue/queue"
)

func newRenderCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render -o OUT.wav FILE...",
		Short: "Concatenate files into a single 16-bit WAV file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(out, args)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "destination WAV file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (a *app) render(out string, files []string) (err error) {
	qcfg := a.cfg.Queue(a.log)
	qcfg.KeepAliveIfEmpty = false
	ctl, q := queue.NewWithConfig[int16](qcfg)
	defer func() { err = errors.Join(err, q.Close()) }()

	for _, path := range files {
		src, err := openPrepared[int16](a, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		ctl.Append(src)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	start := time.Now()
	progress := &progressSource{Source: q, log: a.log.Info, every: rate.Sometimes{Interval: time.Second}}

	n, err := wav.Encode(f, progress)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", out, err)
	}

	size := int64(0)
	if st, err := f.Stat(); err == nil {
		size = st.Size()
	}

	frames := n / a.cfg.Output.Channels
	a.log.Info("rendered",
		"file", out,
		"files", len(files),
		"samples", humanize.Comma(int64(n)),
		"length", (time.Duration(frames) * time.Second / time.Duration(a.cfg.Output.SampleRate)).Round(time.Millisecond),
		"size", humanize.Bytes(uint64(size)), //nolint:gosec // file sizes are never negative
		"took", time.Since(start).Round(time.Millisecond))
	return nil
}

// progressSource logs how far rendering got, at most once per interval.
type progressSource struct {
	audio.Source[int16]
	log   func(msg any, keyvals ...any)
	every rate.Sometimes
	n     int64
}

func (p *progressSource) Next() (int16, bool) {
	s, ok := p.Source.Next()
	if ok {
		p.n++
		p.every.Do(func() {
			p.log("rendering", "samples", humanize.Comma(p.n))
		})
	}
	return s, ok
}
