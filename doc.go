// SPDX-License-Identifier: EPL-2.0

// Package audqueue plays a sequence of audio sources as one stream that
// can be extended while it plays.
//
// The core lives in the queue subpackage. This package adds the glue most
// players need: opening files by extension and normalising them to the
// output format.
//
// # Quick Start
//
//	ctrl, q := queue.New[float32](true)
//	speaker.Init(beep.SampleRate(48000), 4800)
//	speaker.Play(output.Streamer[float32](q))
//
//	src, err := audqueue.OpenFile("intro.flac")
//	if err != nil {
//	    return err
//	}
//	ctrl.Append(audqueue.Prepare[float32](src, audqueue.Format{Channels: 2, SampleRate: 48000}))
//
// # Supported Formats
//
// DefaultRegistry knows these extensions:
//   - wav, wave via formats/wav
//   - aif, aiff, aifc via formats/aiff
//   - mp3 via formats/mp3
//   - ogg, oga via formats/vorbis
//   - flac via formats/flac
//
// All decoders return an audio.Source[float32].
//
// # Subpackages
//
//   - audio: Source interface, sample conversion, decoder registry
//   - source: silence, buffers, resampling, remixing
//   - queue: the extensible queue and its controller
//   - output: beep and oto adapters
//   - formats/...: decoders, plus a WAV writer
package audqueue
