// SPDX-License-Identifier: EPL-2.0

package looper

import (
	"log/slog"

	"github.com/ik5/audloop/transport"
)

const (
	// TailCapacity is the longest tail captured after the loop.
	TailCapacity = 1024
	// CrossingDistance is how far apart, in samples, a tail crossing and a
	// loop crossing may be and still be matched.
	CrossingDistance = 8
	// CrossfadeLength is the width of the blend between tail and loop.
	CrossfadeLength = 64

	halfCrossfade = CrossfadeLength / 2

	// ControlThreshold splits control values into high and low.
	ControlThreshold = 0.5
	// ImmediateStartWindow is how close to bar 0 beat 0 the transport
	// must be for playback to start without waiting for a bar line.
	ImmediateStartWindow = 0.1
)

// Block is one processing call's worth of host I/O.
type Block struct {
	// In and Out must be the same length. If they are not, only the
	// common prefix is processed and the rest of Out is silenced.
	In  []float32
	Out []float32

	RecordEnable   float32
	LoopLengthBars float32
	PersistEnable  float32

	// Positions are this block's decoded transport events, oldest first.
	Positions []transport.Position
}

// Engine is a single loop recorder. It is not safe for concurrent use.
type Engine struct {
	sampleRate float64
	logger     *slog.Logger

	loop []float32
	tail [TailCapacity]float32

	tr *transport.Tracker
	st State

	target           int
	prevRecordEnable float32
	persistEnable    float32

	events *eventRing
	frame  uint64
}

// New allocates an engine and its buffers. The engine starts idle with
// an empty loop; call Activate before the first Process.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	capacity := cfg.EventCapacity
	if capacity <= 0 {
		capacity = DefaultEventCapacity
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &Engine{
		sampleRate: cfg.SampleRate,
		logger:     logger,
		loop:       make([]float32, cfg.Capacity()),
		tr:         transport.NewTracker(),
		events:     newEventRing(capacity),
	}
	e.reset()

	return e, nil
}

// Activate puts the engine back into its idle state. The loop buffer and
// its length are cleared only when no recorded loop exists, so a loop
// restored before activation survives it.
func (e *Engine) Activate() {
	if !e.st.HasRecorded {
		clear(e.loop)
		e.st.LoopSampleCount = 0
	}
	e.reset()

	e.logger.Info("looper activated",
		slog.Bool("has_recorded", e.st.HasRecorded),
		slog.Int("loop_samples", e.st.LoopSampleCount),
		slog.Int("capacity", len(e.loop)),
	)
}

// reset clears everything except the loop and whether it is usable.
func (e *Engine) reset() {
	e.st = State{
		HasRecorded:         e.st.HasRecorded,
		LoopSampleCount:     e.st.LoopSampleCount,
		MinCrossingDistance: TailCapacity,
	}
	e.prevRecordEnable = 0
	e.target = 0
	e.tr.Reset()
}

// Process runs one block. See the package documentation for the order
// of operations.
func (e *Engine) Process(b *Block) Status {
	n := min(len(b.In), len(b.Out))

	snap := e.tr.Update(b.Positions)
	crossed := e.tr.Crossed()

	e.persistEnable = b.PersistEnable
	e.target = LoopLength(snap.BeatsPerBar, b.LoopLengthBars, snap.BeatsPerMinute, e.sampleRate, len(e.loop))

	// Falling edge: the control was high last block and is low now.
	trigger := b.RecordEnable <= ControlThreshold && e.prevRecordEnable > ControlThreshold
	e.prevRecordEnable = b.RecordEnable

	if trigger {
		e.handleTrigger()
	}
	if e.st.WaitingForBar && snap.Rolling && crossed {
		e.startRecording()
	}
	e.schedulePlayback(crossed)
	e.adoptLength()

	for i := range n {
		var out float32

		switch {
		case e.st.Recording:
			e.record(b.In[i])
		case e.st.RecordingTail:
			e.captureTail(b.In[i])
		default:
			out = e.play()
		}

		if e.spliceReady() {
			e.splice()
		}

		b.Out[i] = out
		e.frame++
	}
	clear(b.Out[n:])

	e.tr.Commit()

	return e.Status()
}

// Status returns the flags published by the last Process call.
func (e *Engine) Status() Status {
	return Status{
		Capturing: e.st.Capturing(),
		Armed:     e.st.WaitingForBar,
		Recorded:  e.st.HasRecorded,
	}
}

// State returns a copy of the control state.
func (e *Engine) State() State { return e.st }

// Transport returns the snapshot seen by the last Process call.
func (e *Engine) Transport() transport.Snapshot { return e.tr.Current() }

// TargetLength is the loop length, in samples, computed from the last
// block's controls and transport.
func (e *Engine) TargetLength() int { return e.target }

// Capacity is the loop buffer size in samples.
func (e *Engine) Capacity() int { return len(e.loop) }

// SampleRate is the host rate the engine was created with.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// SetPersistEnable sets the persist control for a Save outside Process.
// The next Process call overwrites it with Block.PersistEnable.
func (e *Engine) SetPersistEnable(v float32) { e.persistEnable = v }

// CopyLoop copies the active loop into dst and returns the number of
// samples copied.
func (e *Engine) CopyLoop(dst []float32) int {
	return copy(dst, e.loop[:e.st.LoopSampleCount])
}

// Loop returns a copy of the active loop.
func (e *Engine) Loop() []float32 {
	out := make([]float32, e.st.LoopSampleCount)
	e.CopyLoop(out)
	return out
}
