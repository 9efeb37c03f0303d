// SPDX-License-Identifier: EPL-2.0

package audloop

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/formats/aiff"
	"github.com/ik5/audloop/formats/mp3"
	"github.com/ik5/audloop/formats/vorbis"
	"github.com/ik5/audloop/formats/wav"
)

// DefaultRegistry knows every format this module decodes. AIFF is
// registered under both of its usual extensions.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})

	return reg
}

// Format returns the lower case extension of path without its dot.
func Format(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "", fmt.Errorf("%w: %s", ErrNoFormatExtension, path)
	}
	return ext, nil
}

// fileSource closes the file under a decoded source.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}

// OpenFile decodes path with the decoder registered for its extension.
// Closing the returned source closes the file.
func OpenFile(reg *audio.Registry, path string) (audio.Source, error) {
	format, err := Format(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	src, err := reg.Open(format, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &fileSource{Source: src, f: f}, nil
}

// ExportLoop writes mono samples to path as WAV or AIFF, picked by the
// extension, at the given bit depth.
func ExportLoop(path string, samples []float32, sampleRate, bitDepth int) (err error) {
	format, err := Format(path)
	if err != nil {
		return err
	}

	var write func(f *os.File) error
	switch format {
	case "wav":
		write = func(f *os.File) error { return wav.Write(f, samples, sampleRate, 1, bitDepth) }
	case "aif", "aiff":
		write = func(f *os.File) error { return aiff.Write(f, samples, sampleRate, 1, bitDepth) }
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedExport, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
