// SPDX-License-Identifier: EPL-2.0

package looper

import (
	"context"
	"log/slog"
)

// EventKind identifies a diagnostic event.
type EventKind uint8

const (
	// EventArmed: A is the latched loop length.
	EventArmed EventKind = iota + 1
	// EventArmIgnored: the record control fired while the computed loop
	// length was zero.
	EventArmIgnored
	// EventRecordingStarted: A is the loop length.
	EventRecordingStarted
	// EventRecordingAborted: A is the write position, B the loop length.
	EventRecordingAborted
	// EventLoopFilled: A is the loop length.
	EventLoopFilled
	// EventCrossingMatched: A is the tail position, B the loop position,
	// C the stitch position; Flag is set for a rising crossing.
	EventCrossingMatched
	// EventTailFallback: A is the crossings seen, B the smallest distance
	// found (TailCapacity when none), C the fallback stitch position.
	EventTailFallback
	// EventTailAborted: A is the tail position, B the crossings seen.
	EventTailAborted
	// EventSpliceApplied: A is the stitch position, B the samples copied
	// before the crossfade window.
	EventSpliceApplied
	// EventPlaybackWaiting: playback waits for the next bar line.
	EventPlaybackWaiting
	// EventPlaybackStarted: A is the loop length; Flag is set when
	// playback started at the top of the song without waiting.
	EventPlaybackStarted
	// EventPlaybackStopped: A is the read position when stopped.
	EventPlaybackStopped
	// EventLoopResized: A is the old length, B the new one.
	EventLoopResized
)

func (k EventKind) String() string {
	switch k {
	case EventArmed:
		return "armed"
	case EventArmIgnored:
		return "arm ignored"
	case EventRecordingStarted:
		return "recording started"
	case EventRecordingAborted:
		return "recording aborted"
	case EventLoopFilled:
		return "loop filled"
	case EventCrossingMatched:
		return "zero crossing matched"
	case EventTailFallback:
		return "tail full without match"
	case EventTailAborted:
		return "tail capture stopped"
	case EventSpliceApplied:
		return "splice applied"
	case EventPlaybackWaiting:
		return "playback waiting for bar"
	case EventPlaybackStarted:
		return "playback started"
	case EventPlaybackStopped:
		return "playback stopped"
	case EventLoopResized:
		return "loop resized"
	default:
		return "unknown"
	}
}

// Event is one diagnostic record. The meaning of A, B, C and Flag
// depends on Kind.
type Event struct {
	Kind EventKind
	// Frame counts samples processed since the engine was created.
	Frame   uint64
	A, B, C int
	Flag    bool
}

// Attrs renders the payload with names matching the kind.
func (ev Event) Attrs() []slog.Attr {
	attrs := []slog.Attr{slog.Uint64("frame", ev.Frame)}

	switch ev.Kind {
	case EventArmed, EventRecordingStarted, EventLoopFilled:
		attrs = append(attrs, slog.Int("loop_samples", ev.A))
	case EventRecordingAborted:
		attrs = append(attrs, slog.Int("write_pos", ev.A), slog.Int("loop_samples", ev.B))
	case EventCrossingMatched:
		attrs = append(attrs,
			slog.Int("tail_pos", ev.A),
			slog.Int("loop_pos", ev.B),
			slog.Int("distance", abs(ev.A-ev.B)),
			slog.Int("stitch", ev.C),
			slog.Bool("rising", ev.Flag),
		)
	case EventTailFallback:
		attrs = append(attrs, slog.Int("crossings", ev.A), slog.Int("stitch", ev.C))
		if ev.B < TailCapacity {
			attrs = append(attrs, slog.Int("min_distance", ev.B))
		}
	case EventTailAborted:
		attrs = append(attrs, slog.Int("tail_pos", ev.A), slog.Int("crossings", ev.B))
	case EventSpliceApplied:
		attrs = append(attrs, slog.Int("stitch", ev.A), slog.Int("copied", ev.B), slog.Int("crossfade", CrossfadeLength))
	case EventPlaybackStarted:
		attrs = append(attrs, slog.Int("loop_samples", ev.A), slog.Bool("immediate", ev.Flag))
	case EventPlaybackStopped:
		attrs = append(attrs, slog.Int("read_pos", ev.A))
	case EventLoopResized:
		attrs = append(attrs, slog.Int("from", ev.A), slog.Int("to", ev.B))
	}

	return attrs
}

// Level is the log level LogEvents uses for this event.
func (ev Event) Level() slog.Level {
	switch ev.Kind {
	case EventTailFallback, EventArmIgnored:
		return slog.LevelWarn
	case EventCrossingMatched, EventLoopResized:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// eventRing is a fixed size FIFO. When full, new events are dropped and
// counted.
type eventRing struct {
	buf     []Event
	head    int
	count   int
	dropped uint64
}

func newEventRing(capacity int) *eventRing {
	return &eventRing{buf: make([]Event, capacity)}
}

func (r *eventRing) push(ev Event) {
	if r.count == len(r.buf) {
		r.dropped++
		return
	}
	r.buf[(r.head+r.count)%len(r.buf)] = ev
	r.count++
}

func (r *eventRing) pop() (Event, bool) {
	if r.count == 0 {
		return Event{}, false
	}
	ev := r.buf[r.head]
	r.head = (r.head + 1) % len(r.buf)
	r.count--
	return ev, true
}

func (e *Engine) emit(ev Event) {
	ev.Frame = e.frame
	e.events.push(ev)
}

// DrainEvents passes every pending event to fn, oldest first, and
// returns how many events were dropped because the ring was full since
// the last drain. Like every other method it must not run concurrently
// with Process.
func (e *Engine) DrainEvents(fn func(Event)) uint64 {
	for {
		ev, ok := e.events.pop()
		if !ok {
			break
		}
		fn(ev)
	}

	dropped := e.events.dropped
	e.events.dropped = 0
	return dropped
}

// LogEvents drains pending events into logger. A nil logger uses the
// engine's own.
func (e *Engine) LogEvents(ctx context.Context, logger *slog.Logger) {
	if logger == nil {
		logger = e.logger
	}

	dropped := e.DrainEvents(func(ev Event) {
		logger.LogAttrs(ctx, ev.Level(), ev.Kind.String(), ev.Attrs()...)
	})
	if dropped > 0 {
		logger.LogAttrs(ctx, slog.LevelWarn, "diagnostic events dropped", slog.Uint64("count", dropped))
	}
}
