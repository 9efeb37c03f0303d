// SPDX-License-Identifier: EPL-2.0

// Package audio moves decoded audio toward the looper: a Source
// interface shared by the decoders, a Resampler to the host rate, a
// MonoMixer down to the looper's single channel, and a BlockReader that
// slices the result into host-sized blocks.
//
// A typical chain:
//
//	src, err := registry.Open("wav", f)
//	res, err := audio.NewResampler(src, 48000)
//	blocks, err := audio.NewBlockReader(audio.NewMonoMixer(res), 256)
//	for {
//	    n, err := blocks.Next(buf)
//	    if err == io.EOF {
//	        break
//	    }
//	    // buf[:n] is input, buf[n:] is padding
//	}
//
// Samples are float32 in [-1, 1]. Every stage returns io.EOF at the end
// of the stream, possibly together with the last samples.
//
// The Resampler and MonoMixer allocate only at construction and when a
// caller asks for a larger read than before.
package audio
