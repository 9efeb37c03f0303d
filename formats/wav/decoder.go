// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/formats/internal/pcm"
)

const formatPCM = 1

// Decoder reads 16, 24 and 32-bit integer PCM WAV files.
type Decoder struct{}

// Decode parses the header of r. go-audio needs to seek, so a reader
// that cannot is read into memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}
	depth := int(dec.BitDepth)
	if !pcm.SupportedDepth(depth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("locating wav data: %w", err)
	}

	return pcm.NewSource(dec, dec.Format(), depth), nil
}
