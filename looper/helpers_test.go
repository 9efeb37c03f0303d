// SPDX-License-Identifier: EPL-2.0

package looper

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/ik5/audloop/state"
	"github.com/ik5/audloop/transport"
)

// At 1000 Hz, 120 BPM and 4/4 one bar is 2000 samples.
const (
	testRate    = 1000
	testBarLen  = 2000
	testTempo   = 120
	testMeter   = 4
	rollingBeat = 0.5
)

func newTestEngine(tb testing.TB) *Engine {
	tb.Helper()

	eng, err := New(DefaultConfig(testRate))
	if err != nil {
		tb.Fatalf("New() error = %v", err)
	}
	eng.Activate()
	return eng
}

func at(bar int64, beat float32) transport.Position {
	return transport.NewPosition(bar, beat, 1, testTempo, testMeter)
}

func stoppedAt(bar int64, beat float32) transport.Position {
	return transport.NewPosition(bar, beat, 0, testTempo, testMeter)
}

// run processes one block of in with one bar of loop length.
func run(e *Engine, in []float32, rec float32, pos ...transport.Position) ([]float32, Status) {
	out := make([]float32, len(in))
	st := e.Process(&Block{
		In:             in,
		Out:            out,
		RecordEnable:   rec,
		LoopLengthBars: 1,
		Positions:      pos,
	})
	return out, st
}

// armAndStart arms the engine mid bar 0 and starts recording at bar 1.
// The next sample fed to the engine is loop sample 0.
func armAndStart(tb testing.TB, e *Engine) {
	tb.Helper()

	run(e, nil, 1, at(0, rollingBeat))
	if _, st := run(e, nil, 0, at(0, rollingBeat)); !st.Armed {
		tb.Fatal("engine not armed after falling edge")
	}
	if _, st := run(e, nil, 0, at(1, 0)); !st.Capturing {
		tb.Fatal("recording did not start on bar crossing")
	}
}

func fill(n int, v float32) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// step returns n samples equal to before up to index edge and after from
// there on, giving a single crossing at edge when the signs differ.
func step(n, edge int, before, after float32) []float32 {
	s := fill(n, after)
	for i := range min(edge, n) {
		s[i] = before
	}
	return s
}

// loadLoop restores samples into e as a recorded loop.
func loadLoop(tb testing.TB, e *Engine, samples []float32) {
	tb.Helper()

	store := state.NewMemoryStore()
	buf := make([]byte, len(samples)*4)
	for i, x := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(x))
	}
	store.Store(KeyBuffer, buf, state.TypeFloat)
	store.Store(KeyLoopSamples, binary.LittleEndian.AppendUint32(nil, uint32(len(samples))), state.TypeLong)
	store.Store(KeyHasRecorded, binary.LittleEndian.AppendUint32(nil, 1), state.TypeLong)

	if err := e.Restore(store); err != nil {
		tb.Fatalf("Restore() error = %v", err)
	}
	e.Activate()
}

func ramp(n int) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = float32(i + 1)
	}
	return s
}

func allZero(s []float32) bool {
	for _, x := range s {
		if x != 0 {
			return false
		}
	}
	return true
}

func drain(e *Engine) []Event {
	var evs []Event
	e.DrainEvents(func(ev Event) { evs = append(evs, ev) })
	return evs
}

func findEvent(evs []Event, kind EventKind) (Event, bool) {
	for _, ev := range evs {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}
