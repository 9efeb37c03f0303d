// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files through
// github.com/go-audio/wav.
//
// Decoder accepts 16, 24 and 32-bit PCM with any channel count and
// rate and yields float32 samples. Write encodes float32 samples at any
// of those depths to a seekable writer; WriteWAV16 streams 16-bit PCM
// to writers that cannot seek, such as stdout.
//
//	src, err := wav.Decoder{}.Decode(f)
//	...
//	err = wav.Write(out, loop, 48000, 1, 24)
package wav
