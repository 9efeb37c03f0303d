// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audloop/internal/audiotest"
)

// fakeMP3 hands out canned PCM the way go-mp3 does, in short reads.
type fakeMP3 struct {
	pcm    []byte
	pos    int
	rate   int
	length int64
	err    error
}

func newFakeMP3(rate int, samples ...int16) *fakeMP3 {
	var pcm []byte
	for _, s := range samples {
		pcm = binary.LittleEndian.AppendUint16(pcm, uint16(s))
	}
	return &fakeMP3{pcm: pcm, rate: rate, length: int64(len(pcm))}
}

func (f *fakeMP3) SampleRate() int { return f.rate }
func (f *fakeMP3) Length() int64   { return f.length }

func (f *fakeMP3) Read(p []byte) (int, error) {
	if f.err != nil && f.pos >= len(f.pcm)/2 {
		return 0, f.err
	}
	if f.pos >= len(f.pcm) {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), 6)], f.pcm[f.pos:])
	f.pos += n
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := newSource(newFakeMP3(44100, math.MinInt16, 16384, -16384, 0, 8192, 8192))
	if src.Channels() != 2 || src.SampleRate() != 44100 {
		t.Fatalf("channels=%d rate=%d", src.Channels(), src.SampleRate())
	}
	if src.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", src.Frames())
	}

	got, err := audiotest.Collect(src, 5)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	want := []float32{-1, 0.5, -0.5, 0, 0.25, 0.25}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}

	if n, err := src.ReadSamples(make([]float32, 4)); n != 0 || err != io.EOF {
		t.Errorf("after end = %d, %v, want 0, EOF", n, err)
	}
}

func TestSource_UnknownLength(t *testing.T) {
	t.Parallel()

	dec := newFakeMP3(48000)
	dec.length = -1
	if got := newSource(dec).Frames(); got != -1 {
		t.Errorf("Frames() = %d, want -1", got)
	}
}

func TestSource_Error(t *testing.T) {
	t.Parallel()

	errCorrupt := errors.New("bad huffman table")
	dec := newFakeMP3(44100, 1, 2, 3, 4, 5, 6, 7, 8)
	dec.err = errCorrupt

	_, err := audiotest.Collect(newSource(dec), 4)
	if !errors.Is(err, errCorrupt) {
		t.Errorf("Collect() error = %v, want %v", err, errCorrupt)
	}
}

func TestDecoder_Invalid(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("not an mp3 stream")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) succeeded", data)
		}
	}
}
