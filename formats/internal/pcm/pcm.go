// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer PCM decoders and encoders to
// float32 samples.
package pcm

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audloop/utils"
)

const defaultBufSize = 4096

// Reader is the decoding half shared by go-audio's wav and aiff
// decoders.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Writer is the encoding half shared by go-audio's wav and aiff
// encoders.
type Writer interface {
	Write(buf *goaudio.IntBuffer) error
	Close() error
}

// Source reads integer PCM from a go-audio decoder as float32.
type Source struct {
	dec      Reader
	format   *goaudio.Format
	bitDepth int
	buf      *goaudio.IntBuffer
	done     bool
}

func NewSource(dec Reader, format *goaudio.Format, bitDepth int) *Source {
	return &Source{
		dec:      dec,
		format:   format,
		bitDepth: bitDepth,
		buf: &goaudio.IntBuffer{
			Format:         format,
			Data:           make([]int, defaultBufSize),
			SourceBitDepth: bitDepth,
		},
	}
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) BufSize() int    { return cap(s.buf.Data) }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}

	want := len(dst) - len(dst)%s.format.NumChannels
	if want == 0 {
		return 0, nil
	}
	if cap(s.buf.Data) < want {
		s.buf.Data = make([]int, want)
	}
	s.buf.Data = s.buf.Data[:want]

	n, err := s.dec.PCMBuffer(s.buf)
	n = min(n, want)
	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.IntToFloat32(v, s.bitDepth)
	}

	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), err == nil && n < want:
		s.done = true
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("decoding PCM: %w", err)
	}

	return n, nil
}

// Encode writes interleaved float32 samples through enc at bitDepth and
// closes it.
func Encode(enc Writer, samples []float32, format *goaudio.Format, bitDepth int) error {
	buf := &goaudio.IntBuffer{
		Format:         format,
		Data:           make([]int, 0, min(len(samples), defaultBufSize)),
		SourceBitDepth: bitDepth,
	}

	for start := 0; start < len(samples); start += defaultBufSize {
		chunk := samples[start:min(start+defaultBufSize, len(samples))]
		buf.Data = buf.Data[:len(chunk)]
		for i, x := range chunk {
			buf.Data[i] = utils.Float32ToInt(x, bitDepth)
		}

		if err := enc.Write(buf); err != nil {
			enc.Close()
			return fmt.Errorf("encoding PCM: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing PCM stream: %w", err)
	}
	return nil
}

// SupportedDepth reports whether bitDepth is one of the integer depths
// the decoders convert.
func SupportedDepth(bitDepth int) bool {
	switch bitDepth {
	case 16, 24, 32:
		return true
	default:
		return false
	}
}
