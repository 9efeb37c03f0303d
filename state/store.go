// SPDX-License-Identifier: EPL-2.0

package state

import (
	"sort"
	"sync"
)

// Type tags a stored value so a reader can check what it gets back.
type Type uint32

const (
	// TypeFloat is a vector of little endian float32 values.
	TypeFloat Type = iota + 1
	// TypeLong is a little endian unsigned integer.
	TypeLong
)

func (t Type) String() string {
	switch t {
	case TypeFloat:
		return "float"
	case TypeLong:
		return "long"
	default:
		return "unknown"
	}
}

// Entry is one stored value.
type Entry struct {
	Key   string
	Type  Type
	Value []byte
}

// MemoryStore keeps entries in memory. It is safe for concurrent use.
type MemoryStore struct {
	entries map[string]Entry
	mtx     *sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
		mtx:     &sync.Mutex{},
	}
}

// Store keeps a private copy of value under key.
func (s *MemoryStore) Store(key string, value []byte, typ Type) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.entries[key] = Entry{Key: key, Type: typ, Value: append([]byte(nil), value...)}
	return nil
}

// Retrieve returns the value stored under key. The returned slice must
// not be modified.
func (s *MemoryStore) Retrieve(key string) ([]byte, Type, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, 0, false
	}
	return e.Value, e.Type, true
}

func (s *MemoryStore) Delete(key string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.entries, key)
}

func (s *MemoryStore) Len() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return len(s.entries)
}

// Entries returns all entries sorted by key.
func (s *MemoryStore) Entries() []Entry {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return out
}
