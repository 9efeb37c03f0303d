// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/formats/internal/pcm"
)

// Decoder reads 16, 24 and 32-bit AIFF files.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	depth := int(dec.BitDepth)
	if !pcm.SupportedDepth(depth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}
	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedLayout
	}

	return pcm.NewSource(dec, format, depth), nil
}

// Write encodes interleaved samples as AIFF at bitDepth. w must seek.
func Write(w io.WriteSeeker, samples []float32, sampleRate, channels, bitDepth int) error {
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidLayout, sampleRate, channels)
	}
	if !pcm.SupportedDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	enc := aiff.NewEncoder(w, sampleRate, bitDepth, channels)
	format := &goaudio.Format{NumChannels: channels, SampleRate: sampleRate}

	return pcm.Encode(enc, samples, format, bitDepth)
}
