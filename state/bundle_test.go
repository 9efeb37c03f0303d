// SPDX-License-Identifier: EPL-2.0

package state

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"runtime"
	"testing"
)

func TestBundle_RoundTrip(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	s.Store("urn:test:buffer", []byte{0, 0, 128, 63, 0, 0, 0, 191}, TypeFloat)
	s.Store("urn:test:count", []byte{2, 0, 0, 0}, TypeLong)
	s.Store("urn:test:empty", nil, TypeLong)

	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got.Len() != s.Len() {
		t.Fatalf("decoded %d entries, want %d", got.Len(), s.Len())
	}
	for _, want := range s.Entries() {
		value, typ, ok := got.Retrieve(want.Key)
		if !ok {
			t.Errorf("key %q missing after round trip", want.Key)
			continue
		}
		if typ != want.Type {
			t.Errorf("key %q type = %v, want %v", want.Key, typ, want.Type)
		}
		if !bytes.Equal(value, want.Value) {
			t.Errorf("key %q value = %v, want %v", want.Key, value, want.Value)
		}
	}
}

func TestBundle_Header(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Encode(&buf, NewMemoryStore()); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	data := buf.Bytes()
	if string(data[:7]) != "AUDLOOP" {
		t.Errorf("magic = %q, want AUDLOOP", data[:7])
	}
	if v := binary.LittleEndian.Uint32(data[7:11]); v != 1 {
		t.Errorf("version = %d, want 1", v)
	}
	if n := binary.LittleEndian.Uint32(data[11:15]); n != 0 {
		t.Errorf("entry count = %d, want 0", n)
	}
}

func TestDecode_NotABundle(t *testing.T) {
	t.Parallel()

	_, err := Decode(bytes.NewReader([]byte("RIFF....WAVE")))
	if !errors.Is(err, ErrInvalidBundle) {
		t.Errorf("Decode() error = %v, want ErrInvalidBundle", err)
	}
}

func TestDecode_Truncated(t *testing.T) {
	t.Parallel()

	_, err := Decode(bytes.NewReader([]byte("AUD")))
	if !errors.Is(err, ErrInvalidBundle) {
		t.Errorf("Decode() error = %v, want ErrInvalidBundle", err)
	}
}

func TestDecode_NewerVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	buf.WriteString("AUDLOOP")
	binary.Write(&buf, binary.LittleEndian, uint32(99))
	binary.Write(&buf, binary.LittleEndian, uint32(0))

	_, err := Decode(&buf)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedVersion", err)
	}
}

func TestDecode_TruncatedValue(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	s.Store("k", []byte{1, 2, 3, 4}, TypeFloat)

	var buf bytes.Buffer
	Encode(&buf, s)
	data := buf.Bytes()

	if _, err := Decode(bytes.NewReader(data[:len(data)-2])); err == nil {
		t.Error("Decode() error = nil for a truncated value")
	}
}

func TestDecode_HugeSize(t *testing.T) {
	// A few bytes that declare a value of almost 4 GiB.
	var buf bytes.Buffer
	buf.WriteString(bundleMagic)
	binary.Write(&buf, binary.LittleEndian, bundleVersion)
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	buf.WriteString("k")
	binary.Write(&buf, binary.LittleEndian, uint32(TypeFloat))
	binary.Write(&buf, binary.LittleEndian, uint32(0xF0000000))
	buf.Write([]byte{1, 2, 3})

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := Decode(&buf)
	runtime.ReadMemStats(&after)

	if !errors.Is(err, ErrInvalidBundle) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Decode() error = %v, want %v and %v", err, ErrInvalidBundle, io.ErrUnexpectedEOF)
	}
	if grown := after.TotalAlloc - before.TotalAlloc; grown > 1<<20 {
		t.Errorf("Decode() allocated %d bytes for a short value, want under 1 MiB", grown)
	}
}
