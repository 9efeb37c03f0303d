// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audloop/audio"
)

// oggReader is the part of oggvorbis.Reader the source needs. Read
// returns a count of float32 values, always whole frames.
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	Read([]float32) (int, error)
}

type source struct {
	dec  oggReader
	done bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) BufSize() int    { return 4096 }
func (s *source) Close() error    { return nil }

// Frames is the stream length in frames as stored in the last Ogg page,
// or 0 when unknown.
func (s *source) Frames() int64 { return s.dec.Length() }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}

	ch := s.dec.Channels()
	want := len(dst) - len(dst)%ch
	if want == 0 {
		return 0, nil
	}

	// Vorbis packets are short; keep reading until dst is full.
	n := 0
	for n < want {
		got, err := s.dec.Read(dst[n:want])
		n += got
		if err == io.EOF {
			s.done = true
			return n, io.EOF
		}
		if err != nil {
			return n, fmt.Errorf("decoding vorbis: %w", err)
		}
		if got == 0 {
			break
		}
	}

	return n, nil
}

// Decoder reads Ogg Vorbis streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening ogg vorbis stream: %w", err)
	}

	return &source{dec: dec}, nil
}
