// SPDX-License-Identifier: EPL-2.0

package looper

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"

	"github.com/ik5/audloop/state"
)

// Keys under which the loop is stored.
const (
	KeyBuffer      = "urn:audloop:buffer"
	KeyLoopSamples = "urn:audloop:loop_samples"
	KeyHasRecorded = "urn:audloop:has_recorded"
)

const sampleWidth = 4

// Storer is the host side of Save.
type Storer interface {
	Store(key string, value []byte, typ state.Type) error
}

// Retriever is the host side of Restore.
type Retriever interface {
	Retrieve(key string) (value []byte, typ state.Type, ok bool)
}

// Save stores the loop, its length and the recorded flag. Nothing is
// stored unless the persist control is high and a loop exists.
func (e *Engine) Save(s Storer) error {
	if s == nil {
		return ErrNilStore
	}

	if e.persistEnable < ControlThreshold {
		e.logger.Info("persistence disabled, not saving")
		return nil
	}
	if !e.st.HasRecorded || e.st.LoopSampleCount == 0 {
		e.logger.Info("no recorded loop to save")
		return nil
	}

	count := e.st.LoopSampleCount
	buf := make([]byte, count*sampleWidth)
	for i, x := range e.loop[:count] {
		binary.LittleEndian.PutUint32(buf[i*sampleWidth:], math.Float32bits(x))
	}

	if err := s.Store(KeyBuffer, buf, state.TypeFloat); err != nil {
		return fmt.Errorf("storing loop buffer: %w", err)
	}
	if err := s.Store(KeyLoopSamples, binary.LittleEndian.AppendUint32(nil, uint32(count)), state.TypeLong); err != nil {
		return fmt.Errorf("storing loop length: %w", err)
	}
	if err := s.Store(KeyHasRecorded, binary.LittleEndian.AppendUint32(nil, 1), state.TypeLong); err != nil {
		return fmt.Errorf("storing recorded flag: %w", err)
	}

	e.logger.Info("loop saved", slog.Int("loop_samples", count))
	return nil
}

// Restore loads what Save stored. Missing or mistyped values are skipped
// and a short buffer is copied as far as it goes; the only error is a nil
// retriever.
func (e *Engine) Restore(r Retriever) error {
	if r == nil {
		return ErrNilStore
	}

	if v, ok := retrieveLong(r, KeyLoopSamples); ok {
		e.st.LoopSampleCount = int(min(v, uint64(len(e.loop))))
	} else {
		e.logger.Warn("loop length not restored", slog.String("key", KeyLoopSamples))
	}

	if v, ok := retrieveLong(r, KeyHasRecorded); ok {
		e.st.HasRecorded = v != 0
	} else {
		e.logger.Warn("recorded flag not restored", slog.String("key", KeyHasRecorded))
	}

	data, _, ok := r.Retrieve(KeyBuffer)
	if !ok || e.st.LoopSampleCount == 0 {
		e.logger.Warn("no loop data restored",
			slog.Bool("found", ok),
			slog.Int("loop_samples", e.st.LoopSampleCount),
		)
		return nil
	}

	size := min(len(data), e.st.LoopSampleCount*sampleWidth)
	n := size / sampleWidth
	for i := range n {
		e.loop[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*sampleWidth:]))
	}

	e.st.ReadPosition = 0
	e.st.Recording = false
	e.st.RecordingTail = false
	e.st.WaitingForBar = false
	e.st.Playing = false
	e.st.WaitingToPlay = false
	e.resetTail()

	e.logger.Info("loop restored",
		slog.Int("bytes", n*sampleWidth),
		slog.Int("expected_bytes", e.st.LoopSampleCount*sampleWidth),
		slog.Int("loop_samples", e.st.LoopSampleCount),
		slog.Bool("has_recorded", e.st.HasRecorded),
	)
	return nil
}

// retrieveLong reads a 32 or 64 bit little endian integer.
func retrieveLong(r Retriever, key string) (uint64, bool) {
	v, typ, ok := r.Retrieve(key)
	if !ok || typ != state.TypeLong {
		return 0, false
	}

	switch {
	case len(v) >= 8:
		return binary.LittleEndian.Uint64(v), true
	case len(v) >= 4:
		return uint64(binary.LittleEndian.Uint32(v)), true
	default:
		return 0, false
	}
}
