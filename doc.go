// SPDX-License-Identifier: EPL-2.0

// Package audloop records and replays tempo synchronised loops.
//
// The real work happens in the subpackages: looper holds the recording
// engine, transport models the host's musical position, state keeps
// saved loops, and audio and formats turn files into float32 streams.
// This package ties them together for programs that work with files.
//
// # Rendering a File
//
// Render runs a decoded file through a looper the way a host would: a
// clock plays the transport, the input is cut into blocks, and the
// record control is released on a chosen bar:
//
//	src, err := audloop.OpenFile(audloop.DefaultRegistry(), "take.ogg")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	opts := audloop.DefaultRenderOptions()
//	opts.Tempo = 96
//	opts.LoopBars = 2
//
//	res, err := audloop.Render(ctx, src, opts)
//	if err != nil {
//	    return err
//	}
//
//	err = audloop.ExportLoop("loop.wav", res.Loop, res.SampleRate, 24)
//
// # Supported Formats
//
// Decoding:
//   - WAV, integer PCM 16, 24 and 32-bit, via formats/wav
//   - AIFF via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// ExportLoop writes WAV or AIFF.
package audloop
