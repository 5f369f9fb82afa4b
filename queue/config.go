// SPDX-License-Identifier: EPL-2.0

package queue

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultFrameLenThreshold caps the frame length the queue reports when
	// the current source cannot tell where its frame ends.
	DefaultFrameLenThreshold = 512
	// DefaultKeepAliveSilence is the length of each silence chunk played
	// while a keep-alive queue has nothing pending.
	DefaultKeepAliveSilence = 10 * time.Millisecond
	// DefaultFallbackChannels and DefaultFallbackSampleRate describe the
	// keep-alive silence and the placeholder in the current slot before the
	// first source arrives.
	DefaultFallbackChannels   = 1
	DefaultFallbackSampleRate = 44100
)

// Config tunes a queue. Zero fields take the package defaults.
type Config struct {
	// KeepAliveIfEmpty plays silence instead of ending when no source is
	// left.
	KeepAliveIfEmpty bool

	FrameLenThreshold  int
	KeepAliveSilence   time.Duration
	FallbackChannels   int
	FallbackSampleRate int

	// Logger receives command and transition events at debug level.
	// Nil discards them.
	Logger *log.Logger
}

func (c Config) withDefaults() Config {
	if c.FrameLenThreshold <= 0 {
		c.FrameLenThreshold = DefaultFrameLenThreshold
	}
	if c.KeepAliveSilence <= 0 {
		c.KeepAliveSilence = DefaultKeepAliveSilence
	}
	if c.FallbackChannels <= 0 {
		c.FallbackChannels = DefaultFallbackChannels
	}
	if c.FallbackSampleRate <= 0 {
		c.FallbackSampleRate = DefaultFallbackSampleRate
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	return c
}
