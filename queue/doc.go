// SPDX-License-Identifier: EPL-2.0

// Package queue implements a playback queue that can be extended while it
// is being played.
//
// New returns two halves. The Controller is shared by any number of
// producer goroutines; the Queue is a Source driven by one consumer,
// typically an audio callback:
//
//	ctrl, q := queue.New[float32](true)
//	ctrl.Append(intro)
//	go feed(ctrl)
//	speaker.Play(output.Streamer(q))
//
// # Real-time behaviour
//
// Queue.Next never blocks and, once warm, does not allocate. Messages from
// the Controller travel over lock-free channels and are picked up on the
// next call. A source appended while the queue plays keep-alive silence
// is heard once the current silent frame is complete.
//
// # Formats
//
// The queue reports the channel count and sample rate of whichever source
// it is draining. These may change at any source boundary and become
// visible as soon as the previous source has produced its last sample.
// CurrentFrameLen is always known so a consumer can tell how far it may
// read before checking again.
//
// # Ending
//
// With keep-alive on, an empty queue plays short chunks of silence forever.
// With keep-alive off, the queue ends once nothing is left. Ending is final:
// later Controller calls are dropped and appended sources are closed.
//
// # Commands
//
// Pause emits silence without consuming the current source, Play resumes it
// exactly where it stopped. Next skips to the following source and Stop
// drops everything queued so far.
package queue
