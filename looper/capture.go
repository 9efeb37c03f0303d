// SPDX-License-Identifier: EPL-2.0

package looper

// handleTrigger reacts to a falling edge of the record control.
func (e *Engine) handleTrigger() {
	switch {
	case e.st.Recording:
		// Early stop: the partial loop is discarded.
		e.st.Recording = false
		e.emit(Event{Kind: EventRecordingAborted, A: e.st.WritePosition, B: e.st.LoopSampleCount})

	case e.st.RecordingTail:
		// Early stop during the tail: keep the loop without a splice.
		e.st.RecordingTail = false
		e.st.HasRecorded = true
		e.emit(Event{Kind: EventTailAborted, A: e.st.TailPosition, B: e.st.ZeroCrossingsSeen})
		e.resetTail()

	default:
		if e.target == 0 {
			e.emit(Event{Kind: EventArmIgnored})
			return
		}

		e.st.WaitingForBar = true
		e.st.LoopSampleCount = e.target
		if e.st.ReadPosition >= e.st.LoopSampleCount {
			e.st.ReadPosition = 0
		}
		e.emit(Event{Kind: EventArmed, A: e.target})
	}
}

func (e *Engine) startRecording() {
	e.st.Recording = true
	e.st.WaitingForBar = false
	e.st.WritePosition = 0
	e.st.ReadPosition = 0
	e.st.HasRecorded = false

	e.emit(Event{Kind: EventRecordingStarted, A: e.st.LoopSampleCount})
}

// record writes one input sample into the loop and starts the tail
// capture once the loop is full.
func (e *Engine) record(x float32) {
	if e.st.WritePosition < e.st.LoopSampleCount {
		e.loop[e.st.WritePosition] = x
		e.st.WritePosition++
	}

	if e.st.WritePosition >= e.st.LoopSampleCount {
		e.st.Recording = false
		e.st.RecordingTail = true
		e.resetTail()
		e.emit(Event{Kind: EventLoopFilled, A: e.st.LoopSampleCount})
	}
}

// adoptLength follows tempo and length changes while a loop exists and
// nothing is being captured or armed.
func (e *Engine) adoptLength() {
	if e.st.Capturing() || e.st.WaitingForBar || !e.st.HasRecorded {
		return
	}
	if e.target == e.st.LoopSampleCount {
		return
	}

	old := e.st.LoopSampleCount
	e.st.LoopSampleCount = e.target
	if e.st.ReadPosition >= e.st.LoopSampleCount {
		e.st.ReadPosition = 0
	}
	e.st.WritePosition = min(e.st.WritePosition, e.st.LoopSampleCount)

	e.emit(Event{Kind: EventLoopResized, A: old, B: e.target})
}
