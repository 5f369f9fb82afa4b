// SPDX-License-Identifier: EPL-2.0

// Package output connects sources to audio output drivers.
//
// Streamer adapts a source to a beep.Streamer for the beep speaker:
//
//	speaker.Init(beep.SampleRate(48000), 4800)
//	speaker.Play(output.Streamer[float32](q))
//
// PCMReader adapts a source to the io.Reader an oto player pulls from,
// encoding float32 little-endian PCM:
//
//	player := ctx.NewPlayer(output.NewPCMReader[float32](q))
//	player.Play()
//
// Both read whatever channel layout the source reports at each frame
// boundary, so a queue whose sources differ in channel count still plays
// in step. Neither changes the sample rate: normalise sources before
// appending them.
//
// FromBeep goes the other way and lets beep streamers, such as beep's own
// decoders and effects, be appended to a queue.
package output
