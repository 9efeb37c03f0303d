// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audloop/formats/internal/pcm"
	"github.com/ik5/audloop/utils"
)

// Write encodes interleaved samples as an integer PCM WAV. The encoder
// patches the chunk sizes at the end, so w must seek.
func Write(w io.WriteSeeker, samples []float32, sampleRate, channels, bitDepth int) error {
	if err := checkLayout(sampleRate, channels); err != nil {
		return err
	}
	if !pcm.SupportedDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM)
	format := &goaudio.Format{NumChannels: channels, SampleRate: sampleRate}

	return pcm.Encode(enc, samples, format, bitDepth)
}

// header is the canonical 44-byte header of a PCM WAV.
type header struct {
	Riff          [4]byte
	RiffSize      uint32
	Wave          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

// WriteWAV16 writes 16-bit PCM WAV to a plain writer. The sizes are
// known up front, so no seeking is needed; use it for pipes.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []float32) error {
	if err := checkLayout(sampleRate, channels); err != nil {
		return err
	}

	const bytesPerSample = 2
	dataSize := uint32(len(samples) * bytesPerSample)
	h := header{
		Riff:          [4]byte{'R', 'I', 'F', 'F'},
		RiffSize:      36 + dataSize,
		Wave:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   formatPCM,
		Channels:      uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * channels * bytesPerSample),
		BlockAlign:    uint16(channels * bytesPerSample),
		BitsPerSample: 16,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	const chunk = 4096
	buf := make([]byte, 0, min(len(samples), chunk)*bytesPerSample)
	for start := 0; start < len(samples); start += chunk {
		buf = buf[:0]
		for _, x := range samples[start:min(start+chunk, len(samples))] {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(utils.Float32ToInt16(x)))
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
	}

	return nil
}

func checkLayout(sampleRate, channels int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if channels <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	return nil
}
