// SPDX-License-Identifier: EPL-2.0

package queue

// Command is a control message sent from a Controller to its Queue.
type Command uint8

const (
	// Play resumes output after Pause.
	Play Command = iota
	// Pause makes the queue emit silence without consuming its current source.
	Pause
	// Stop discards every pending source and the remainder of the current one.
	Stop
	// NextTrack discards the remainder of the current source.
	NextTrack
)

func (c Command) String() string {
	switch c {
	case Play:
		return "play"
	case Pause:
		return "pause"
	case Stop:
		return "stop"
	case NextTrack:
		return "next"
	}
	return "unknown"
}
