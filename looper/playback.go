// SPDX-License-Identifier: EPL-2.0

package looper

// schedulePlayback runs the Stopped/WaitingToPlay/Playing machine once
// per block.
func (e *Engine) schedulePlayback(crossed bool) {
	if !e.st.HasRecorded || e.st.LoopSampleCount == 0 || e.st.Capturing() {
		return
	}

	switch {
	case !e.tr.Rolling():
		if e.st.Playing || e.st.WaitingToPlay {
			e.emit(Event{Kind: EventPlaybackStopped, A: e.st.ReadPosition})
		}
		e.st.Playing = false
		e.st.WaitingToPlay = false

	case !e.st.Playing && !e.st.WaitingToPlay:
		if e.tr.AtTop(ImmediateStartWindow) {
			e.startPlayback(true)
			return
		}
		e.st.WaitingToPlay = true
		e.emit(Event{Kind: EventPlaybackWaiting})

	case e.st.WaitingToPlay && crossed:
		e.startPlayback(false)
	}
}

func (e *Engine) startPlayback(immediate bool) {
	e.st.Playing = true
	e.st.WaitingToPlay = false
	e.st.ReadPosition = 0
	e.emit(Event{Kind: EventPlaybackStarted, A: e.st.LoopSampleCount, Flag: immediate})
}

// play returns the next loop sample, or silence when not playing.
func (e *Engine) play() float32 {
	if !e.st.Playing || !e.st.HasRecorded || e.st.LoopSampleCount == 0 {
		return 0
	}

	x := e.loop[e.st.ReadPosition]
	e.st.ReadPosition++
	if e.st.ReadPosition >= e.st.LoopSampleCount {
		e.st.ReadPosition = 0
	}

	return x
}
