// SPDX-License-Identifier: EPL-2.0

package main

import (
	"strings"

	"github.com/ik5/audqueue/queue"
)

type control int

const (
	controlNone control = iota
	controlPlay
	controlPause
	controlNext
	controlStop
	controlQuit
)

var controls = map[string]control{
	"p":      controlPause,
	"pause":  controlPause,
	"r":      controlPlay,
	"play":   controlPlay,
	"resume": controlPlay,
	"n":      controlNext,
	"next":   controlNext,
	"s":      controlStop,
	"stop":   controlStop,
	"q":      controlQuit,
	"quit":   controlQuit,
}

// parseControl reads one line typed on stdin.
func parseControl(line string) control {
	return controls[strings.ToLower(strings.TrimSpace(line))]
}

// apply forwards c to the queue. It reports false for quit.
func (c control) apply(ctl *queue.Controller[float32]) bool {
	switch c {
	case controlPlay:
		ctl.Play()
	case controlPause:
		ctl.Pause()
	case controlNext:
		ctl.Next()
	case controlStop:
		ctl.Stop()
	case controlQuit:
		return false
	}
	return true
}
