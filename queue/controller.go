// SPDX-License-Identifier: EPL-2.0

package queue

import (
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/ik5/audqueue/audio"
	"github.com/ik5/audqueue/internal/mpsc"
)

// stamped tags a message with its send order across both channels.
type stamped[T any] struct {
	seq uint64
	msg T
}

// link is the state shared by a Controller and its Queue.
type link[S audio.Sample] struct {
	commands *mpsc.Queue[stamped[Command]]
	sources  *mpsc.Queue[stamped[audio.Source[S]]]
	seq      atomic.Uint64
	closed   atomic.Bool
	log      *log.Logger
}

func markClosed[S audio.Sample](l *link[S]) { l.closed.Store(true) }

// Controller is the producer side of a queue. All methods are non-blocking
// and safe for concurrent use; share one Controller between goroutines
// freely.
//
// Messages are fire-and-forget. The queue sees the messages of a single
// goroutine in the order they were sent, sources and commands alike, so
// Append followed by Stop discards the appended source. Once the Queue has
// ended or been closed, every call is silently dropped.
type Controller[S audio.Sample] struct {
	link *link[S]
}

// Append adds src to the end of the queue. The queue takes ownership and
// closes src once it is finished, skipped or discarded. If the queue is
// already gone, src is closed immediately.
func (c *Controller[S]) Append(src audio.Source[S]) {
	if c.link.closed.Load() {
		c.link.log.Debug("queue closed, dropping source")
		if err := src.Close(); err != nil {
			c.link.log.Warn("closing dropped source", "error", err)
		}
		return
	}
	c.link.sources.Push(stamped[audio.Source[S]]{seq: c.link.seq.Add(1), msg: src})
}

// Play resumes playback after Pause.
func (c *Controller[S]) Play() { c.send(Play) }

// Pause makes the queue play silence without consuming the current source.
func (c *Controller[S]) Pause() { c.send(Pause) }

// Stop discards the current source and everything pending.
func (c *Controller[S]) Stop() { c.send(Stop) }

// Next skips the rest of the current source.
func (c *Controller[S]) Next() { c.send(NextTrack) }

// Closed reports whether the queue stopped accepting messages.
func (c *Controller[S]) Closed() bool { return c.link.closed.Load() }

func (c *Controller[S]) send(cmd Command) {
	if c.link.closed.Load() {
		c.link.log.Debug("queue closed, dropping command", "command", cmd)
		return
	}
	c.link.commands.Push(stamped[Command]{seq: c.link.seq.Add(1), msg: cmd})
}
