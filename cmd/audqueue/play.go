// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ik5/audqueue"
	"github.com/ik5/audqueue/queue"
)

type playOptions struct {
	watch     string
	keepAlive bool
}

func newPlayCmd(a *app) *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play [FILE...]",
		Short: "Play files back to back on the audio device",
		Long: `Play files back to back on the audio device.

While playing, type a command and press enter:
  p  pause    r  resume    n  next    s  stop    q  quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.play(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.watch, "watch", "w", "", "append audio files created in this directory")
	cmd.Flags().BoolVarP(&opts.keepAlive, "keep-alive", "k", false, "keep playing silence when the queue runs dry")
	return cmd
}

func (a *app) play(cmd *cobra.Command, args []string, opts *playOptions) error {
	if len(args) == 0 && opts.watch == "" {
		return errors.New("nothing to play: pass files or --watch")
	}

	qcfg := a.cfg.Queue(a.log)
	qcfg.KeepAliveIfEmpty = qcfg.KeepAliveIfEmpty || opts.keepAlive || opts.watch != ""
	ctl, q := queue.NewWithConfig[float32](qcfg)

	for _, path := range args {
		if err := a.appendFile(ctl, path); err != nil {
			_ = q.Close()
			return err
		}
	}

	dev, err := newBackend(a.cfg.Output)
	if err != nil {
		_ = q.Close()
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if opts.watch != "" {
		w, err := a.watch(ctx, ctl, opts.watch)
		if err != nil {
			_ = q.Close()
			return err
		}
		defer w.Close()
	}

	done, err := dev.Start(q)
	if err != nil {
		_ = q.Close()
		return err
	}
	a.log.Info("playing", "files", len(args), "backend", a.cfg.Output.Backend)

	a.controlLoop(ctx, ctl, cmd.InOrStdin(), done)

	// The device must stop pulling before the queue is closed.
	if err := dev.Close(); err != nil {
		a.log.Warn("closing output", "error", err)
	}
	return q.Close()
}

func (a *app) appendFile(ctl *queue.Controller[float32], path string) error {
	src, err := openPrepared[float32](a, path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	ctl.Append(src)
	a.log.Debug("appended", "file", path)
	return nil
}

// controlLoop forwards stdin commands until the queue ends, quit is typed
// or ctx is cancelled.
func (a *app) controlLoop(ctx context.Context, ctl *queue.Controller[float32], in io.Reader, done <-chan struct{}) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			a.log.Info("queue finished")
			return
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				// stdin closed: keep playing until the queue ends.
				lines = nil
				continue
			}

			c := parseControl(line)
			if c == controlNone {
				a.log.Warn("unknown command", "input", line)
				continue
			}
			a.log.Debug("control", "input", line)
			if !c.apply(ctl) {
				return
			}
		}
	}
}

// watch appends every supported file created in dir.
func (a *app) watch(ctx context.Context, ctl *queue.Controller[float32], dir string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	a.log.Info("watching", "dir", dir)

	reg := audqueue.DefaultRegistry()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) {
					continue
				}
				if _, known := reg.Get(audqueue.FormatOf(event.Name)); !known {
					a.log.Debug("skipping unsupported file", "file", event.Name)
					continue
				}
				if err := a.appendFile(ctl, event.Name); err != nil {
					a.log.Warn("cannot append watched file", "error", err)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				a.log.Debug("watch error", "dir", dir, "error", err)
			}
		}
	}()

	return w, nil
}
