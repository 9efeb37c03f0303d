// SPDX-License-Identifier: EPL-2.0

package state

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	bundleMagic   = "AUDLOOP"
	bundleVersion = uint32(1)
)

// Encode writes every entry of s to w.
func Encode(w io.Writer, s *MemoryStore) error {
	entries := s.Entries()

	if _, err := io.WriteString(w, bundleMagic); err != nil {
		return fmt.Errorf("writing magic: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, bundleVersion); err != nil {
		return fmt.Errorf("writing version: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(entries))); err != nil {
		return fmt.Errorf("writing entry count: %w", err)
	}

	for _, e := range entries {
		if len(e.Key) > math.MaxUint16 {
			return fmt.Errorf("%w: %d bytes", ErrKeyTooLong, len(e.Key))
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(e.Key))); err != nil {
			return fmt.Errorf("writing key %q: %w", e.Key, err)
		}
		if _, err := io.WriteString(w, e.Key); err != nil {
			return fmt.Errorf("writing key %q: %w", e.Key, err)
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(e.Type)); err != nil {
			return fmt.Errorf("writing type of %q: %w", e.Key, err)
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(e.Value))); err != nil {
			return fmt.Errorf("writing size of %q: %w", e.Key, err)
		}
		if _, err := w.Write(e.Value); err != nil {
			return fmt.Errorf("writing value of %q: %w", e.Key, err)
		}
	}

	return nil
}

// Decode reads a bundle from r into a new MemoryStore.
func Decode(r io.Reader) (*MemoryStore, error) {
	header := make([]byte, len(bundleMagic))
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}
	if string(header) != bundleMagic {
		return nil, ErrInvalidBundle
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version > bundleVersion {
		return nil, fmt.Errorf("%w: %d (newest known %d)", ErrUnsupportedVersion, version, bundleVersion)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("reading entry count: %w", err)
	}

	s := NewMemoryStore()
	for i := range count {
		var keyLen uint16
		if err := binary.Read(r, binary.LittleEndian, &keyLen); err != nil {
			return nil, fmt.Errorf("reading entry %d: %w", i, err)
		}
		key := make([]byte, keyLen)
		if _, err := io.ReadFull(r, key); err != nil {
			return nil, fmt.Errorf("reading entry %d key: %w", i, err)
		}

		var typ, size uint32
		if err := binary.Read(r, binary.LittleEndian, &typ); err != nil {
			return nil, fmt.Errorf("reading type of %q: %w", key, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, fmt.Errorf("reading size of %q: %w", key, err)
		}

		// The buffer grows with the bytes actually read, not the declared
		// size.
		var value bytes.Buffer
		if _, err := io.CopyN(&value, r, int64(size)); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("%w: value of %q: %w", ErrInvalidBundle, key, err)
		}

		s.entries[string(key)] = Entry{Key: string(key), Type: Type(typ), Value: value.Bytes()}
	}

	return s, nil
}
