// SPDX-License-Identifier: EPL-2.0

// Package audio provides the core types shared by every sample source.
//
// # Source Interface
//
// A Source is a lazy, pull-based sequence of interleaved samples:
//
//	type Source[S Sample] interface {
//	    Next() (S, bool)
//	    Channels() int
//	    SampleRate() int
//	    CurrentFrameLen() (int, bool)
//	    TotalDuration() (time.Duration, bool)
//	    Close() error
//	}
//
// Channels and SampleRate may change between frames. CurrentFrameLen tells
// a consumer how many samples it may pull before it has to look at them
// again. Sources that can estimate their remaining length also implement
// Remainer.
//
// # Sample Format
//
// Sample covers int16, int32, float32 and float64. Float samples live in
// [-1.0, 1.0], integer samples span their full range, and the zero value of
// each is silence. ToFloat64, FromFloat64 and Convert move between them:
//
//	s := audio.Convert[float32, int16](0.5) // 16384
//
// # Format Registry
//
// The registry maps a format key to a decoder:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// Decoders always produce float32 sources.
//
// # Block Reads
//
// ReadSamples pulls a frame-aligned block into a caller-owned slice and
// reports io.EOF once the source has ended:
//
//	buf := make([]float32, 4096)
//	for {
//	    n, err := audio.ReadSamples(src, buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
