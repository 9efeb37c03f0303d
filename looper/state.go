// SPDX-License-Identifier: EPL-2.0

package looper

// State is a copy of the engine's control state.
//
// At most one of Recording and RecordingTail is set, Playing and
// WaitingToPlay are never both set, and WritePosition <= LoopSampleCount.
// StitchPosition is 0 until the tail search settles on a splice point.
type State struct {
	Recording     bool
	RecordingTail bool
	HasRecorded   bool
	WaitingForBar bool
	Playing       bool
	WaitingToPlay bool

	LoopSampleCount int
	WritePosition   int
	ReadPosition    int
	StitchPosition  int
	TailPosition    int

	// Tail search bookkeeping, kept for diagnostics only.
	ZeroCrossingsSeen   int
	MinCrossingDistance int
}

// Capturing reports whether the loop or its tail is being recorded.
func (s State) Capturing() bool { return s.Recording || s.RecordingTail }

func (s State) Capture() CapturePhase {
	switch {
	case s.Recording:
		return PhaseRecording
	case s.RecordingTail:
		return PhaseTailCapture
	case s.WaitingForBar:
		return PhaseArmed
	default:
		return PhaseIdle
	}
}

func (s State) Playback() PlaybackPhase {
	switch {
	case s.Playing:
		return PhasePlaying
	case s.WaitingToPlay:
		return PhaseWaitingToPlay
	default:
		return PhaseStopped
	}
}

// CapturePhase is the record side state machine position.
type CapturePhase uint8

const (
	PhaseIdle CapturePhase = iota
	PhaseArmed
	PhaseRecording
	PhaseTailCapture
)

func (p CapturePhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseArmed:
		return "armed"
	case PhaseRecording:
		return "recording"
	case PhaseTailCapture:
		return "tail-capture"
	default:
		return "unknown"
	}
}

// PlaybackPhase is the playback side state machine position.
type PlaybackPhase uint8

const (
	PhaseStopped PlaybackPhase = iota
	PhaseWaitingToPlay
	PhasePlaying
)

func (p PlaybackPhase) String() string {
	switch p {
	case PhaseStopped:
		return "stopped"
	case PhaseWaitingToPlay:
		return "waiting-to-play"
	case PhasePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Status is what the engine publishes after every block.
type Status struct {
	// Capturing is set while the loop or its tail is recorded.
	Capturing bool
	// Armed is set while waiting for a bar line to start recording.
	Armed bool
	// Recorded is set while a usable loop exists.
	Recorded bool
}

// Values returns the status as control port values, 1 for set and 0
// otherwise.
func (s Status) Values() (capturing, armed, recorded float32) {
	return flag(s.Capturing), flag(s.Armed), flag(s.Recorded)
}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
