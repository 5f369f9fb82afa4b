// SPDX-License-Identifier: EPL-2.0

package queue

import (
	"errors"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ik5/audqueue/audio"
	"github.com/ik5/audqueue/internal/mpsc"
	"github.com/ik5/audqueue/source"
)

var _ audio.Source[int16] = (*Queue[int16])(nil)

// Queue is the consumer side: a Source whose samples are the concatenation
// of every appended source, in append order.
//
// A Queue must be driven by a single goroutine. Next never blocks: both
// message channels are polled on every call.
type Queue[S audio.Sample] struct {
	link  *link[S]
	cfg   Config
	log   *log.Logger
	debug bool

	pending []audio.Source[S]
	head    int

	// current is never nil. held is the sample read ahead from current;
	// reading ahead lets the queue switch sources, and report the new
	// format, as soon as current runs dry.
	current audio.Source[S]
	held    S
	hasHeld bool
	// filler is set while current is keep-alive silence or the initial
	// placeholder. A filler gives way to a pending source at its next frame
	// boundary; fillerPos counts the filler samples played so far.
	filler    bool
	fillerPos int

	silence   *source.Take[S]
	paused    bool
	exhausted bool
}

// New creates a bound Controller/Queue pair with default tunables.
func New[S audio.Sample](keepAliveIfEmpty bool) (*Controller[S], *Queue[S]) {
	return NewWithConfig[S](Config{KeepAliveIfEmpty: keepAliveIfEmpty})
}

// NewWithConfig creates a bound Controller/Queue pair.
func NewWithConfig[S audio.Sample](cfg Config) (*Controller[S], *Queue[S]) {
	cfg = cfg.withDefaults()

	l := &link[S]{
		commands: mpsc.New[stamped[Command]](),
		sources:  mpsc.New[stamped[audio.Source[S]]](),
		log:      cfg.Logger,
	}

	silence := source.Zero[S](cfg.FallbackChannels, cfg.FallbackSampleRate)
	q := &Queue[S]{
		link:    l,
		cfg:     cfg,
		log:     cfg.Logger,
		debug:   cfg.Logger.GetLevel() <= log.DebugLevel,
		pending: make([]audio.Source[S], 0, 16),
		current: source.Empty[S](cfg.FallbackChannels, cfg.FallbackSampleRate),
		filler:  true,
		silence: source.TakeDuration[S](silence, cfg.KeepAliveSilence),
	}

	// Controllers outliving an abandoned Queue turn into no-ops.
	runtime.AddCleanup(q, markClosed[S], l)

	return &Controller[S]{link: l}, q
}

// Next returns the next sample. While paused it returns silence without
// touching the current source. It returns false once the queue is
// exhausted: keep-alive is off, nothing is pending and the current source
// has ended. Exhaustion is final.
func (q *Queue[S]) Next() (S, bool) {
	var zero S

	q.poll()
	if q.exhausted {
		return zero, false
	}
	if q.paused {
		return zero, true
	}

	q.promote()
	if !q.hasHeld && !q.advance() {
		return zero, false
	}

	s := q.held
	if q.filler {
		q.fillerPos++
	}
	q.fill()
	return s, true
}

// Channels of the source currently being drained. It may change at any
// source boundary.
func (q *Queue[S]) Channels() int {
	q.sync()
	return q.current.Channels()
}

// SampleRate of the source currently being drained. It may change at any
// source boundary.
func (q *Queue[S]) SampleRate() int {
	q.sync()
	return q.current.SampleRate()
}

// CurrentFrameLen bounds how many samples may be produced before the queue
// reconsiders switching sources. It is always known. Silence is reported
// one frame at a time, and a pending source only replaces it between two
// of its frames.
func (q *Queue[S]) CurrentFrameLen() (int, bool) {
	q.sync()
	if q.exhausted {
		return 0, true
	}

	// A filler is reported one frame at a time so that consumers look
	// again before a pending source can take over.
	if q.filler {
		ch := max(q.current.Channels(), 1)
		return ch - q.fillerPos%ch, true
	}
	if !q.hasHeld {
		return q.cfg.FallbackChannels, true
	}

	held := 0
	if q.hasHeld {
		held = 1
	}

	if n, ok := q.current.CurrentFrameLen(); ok && n != 0 {
		return n + held, true
	}

	threshold := q.cfg.FrameLenThreshold
	if n, ok := audio.Remaining(q.current); ok {
		n += held
		if n != 0 && n < threshold {
			return n, true
		}
	}

	return threshold, true
}

// TotalDuration is never known: more sources may be appended at any time.
func (q *Queue[S]) TotalDuration() (time.Duration, bool) { return 0, false }

// Paused reports whether a Pause command is in effect.
func (q *Queue[S]) Paused() bool { return q.paused }

// Pending reports how many sources wait behind the current one, counting
// only messages already received.
func (q *Queue[S]) Pending() int { return len(q.pending) - q.head }

// Close ends the queue: later Controller calls are dropped and every source
// still owned by the queue is closed. It is safe to call more than once.
func (q *Queue[S]) Close() error {
	if q.exhausted {
		// An Append racing with teardown can still land here.
		var errs []error
		q.link.sources.Drain(func(s stamped[audio.Source[S]]) {
			if err := s.msg.Close(); err != nil {
				errs = append(errs, err)
			}
		})
		return errors.Join(errs...)
	}
	return q.finish()
}

// sync brings the current slot up to date for property queries without
// ever ending the queue. With keep-alive, a dry slot switches to silence
// here so the reported format is the one of the next sample.
func (q *Queue[S]) sync() {
	q.poll()
	if q.exhausted || q.paused {
		return
	}

	q.promote()
	if !q.hasHeld && q.cfg.KeepAliveIfEmpty {
		q.advance()
	}
}

// poll drains both channels, merging them back into send order.
func (q *Queue[S]) poll() {
	for {
		cmd, hasCmd := q.link.commands.Peek()
		src, hasSrc := q.link.sources.Peek()

		switch {
		case hasCmd && (!hasSrc || cmd.seq < src.seq):
			q.link.commands.TryPop()
			if !q.exhausted {
				q.apply(cmd.msg)
			}
		case hasSrc:
			q.link.sources.TryPop()
			if q.exhausted {
				q.retire(src.msg)
				continue
			}
			q.pending = append(q.pending, src.msg)
		default:
			return
		}
	}
}

func (q *Queue[S]) apply(cmd Command) {
	if q.debug {
		q.log.Debug("queue command", "command", cmd, "pending", q.Pending())
	}

	switch cmd {
	case Play:
		q.paused = false
	case Pause:
		q.paused = true
	case NextTrack:
		q.advance()
	case Stop:
		q.clearPending()
		q.advance()
	}
}

// promote hands the current slot to a pending source while the current one
// has nothing left, or holds filler silence between two of its frames.
func (q *Queue[S]) promote() {
	for (!q.hasHeld || q.fillerAligned()) && q.Pending() > 0 {
		q.advance()
	}
}

func (q *Queue[S]) fillerAligned() bool {
	if !q.filler {
		return false
	}
	ch := q.current.Channels()
	return ch <= 1 || q.fillerPos%ch == 0
}

// fill reads the next sample ahead, moving on to pending sources when the
// current one is done. With nothing pending the slot stays empty; Next
// decides between silence and exhaustion.
func (q *Queue[S]) fill() {
	q.held, q.hasHeld = q.current.Next()
	for !q.hasHeld && q.Pending() > 0 {
		q.advance()
	}
}

// advance discards the current source and installs the next one. It
// reports false when the queue ended instead.
func (q *Queue[S]) advance() bool {
	if q.Pending() > 0 {
		next := q.pending[q.head]
		q.pending[q.head] = nil
		q.head++
		if q.head == len(q.pending) {
			q.pending = q.pending[:0]
			q.head = 0
		}

		q.install(next, false)
		return true
	}

	if !q.cfg.KeepAliveIfEmpty {
		_ = q.finish()
		return false
	}

	// Play a short silence rather than spinning on an empty queue.
	q.silence.Reset()
	q.install(q.silence, true)
	return true
}

func (q *Queue[S]) install(src audio.Source[S], filler bool) {
	if !q.filler {
		q.retire(q.current)
	}

	q.current = src
	q.filler = filler
	q.fillerPos = 0
	q.held, q.hasHeld = src.Next()

	if q.debug && !filler {
		q.log.Debug("queue switched source",
			"channels", src.Channels(),
			"sample_rate", src.SampleRate(),
			"pending", q.Pending())
	}
}

func (q *Queue[S]) retire(src audio.Source[S]) {
	if err := src.Close(); err != nil {
		q.log.Warn("closing finished source", "error", err)
	}
}

func (q *Queue[S]) clearPending() {
	for i := q.head; i < len(q.pending); i++ {
		q.retire(q.pending[i])
		q.pending[i] = nil
	}
	q.pending = q.pending[:0]
	q.head = 0
}

func (q *Queue[S]) finish() error {
	q.exhausted = true
	q.link.closed.Store(true)

	channels, rate := q.current.Channels(), q.current.SampleRate()

	var errs []error
	closeSrc := func(src audio.Source[S]) {
		if err := src.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if !q.filler {
		closeSrc(q.current)
	}
	for i := q.head; i < len(q.pending); i++ {
		closeSrc(q.pending[i])
	}
	q.pending = nil
	q.head = 0
	// Sources pushed before the closed flag became visible.
	q.link.sources.Drain(func(s stamped[audio.Source[S]]) { closeSrc(s.msg) })

	q.current = source.Empty[S](channels, rate)
	q.filler = true
	q.fillerPos = 0
	q.hasHeld = false

	if q.debug {
		q.log.Debug("queue exhausted")
	}

	return errors.Join(errs...)
}
