// SPDX-License-Identifier: EPL-2.0

// Package source provides leaf sample sources and adapters.
//
// # Silence
//
// Zero yields silence forever; TakeDuration bounds it:
//
//	gap := source.TakeDuration(source.Zero[float32](2, 48000), 500*time.Millisecond)
//
// # In-memory data
//
// Buffer plays back a slice of interleaved samples, Empty yields nothing.
//
// # Normalising sources for an output device
//
// A queue surfaces whatever format its current source reports. When the
// device has a fixed format, normalise each source before appending it:
//
//	src = source.Remix(source.Resample(src, 48000), 2)
//	ctrl.Append(source.Convert[float32, int16](src))
//
// Resample uses Catmull-Rom cubic interpolation with a one-pole low-pass
// filter when downsampling. Remix averages down to mono and cycles channels
// otherwise.
package source
