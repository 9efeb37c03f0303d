// SPDX-License-Identifier: EPL-2.0

package looper

import "github.com/ik5/audloop/utils"

func (e *Engine) resetTail() {
	e.st.TailPosition = 0
	e.st.StitchPosition = 0
	e.st.ZeroCrossingsSeen = 0
	e.st.MinCrossingDistance = TailCapacity
}

// zeroCrossing reports a sign change from a to b and its direction.
// Landing exactly on zero counts as reaching the new sign.
func zeroCrossing(a, b float32) (crossed, rising bool) {
	switch {
	case a < 0 && b >= 0:
		return true, true
	case a > 0 && b <= 0:
		return true, false
	default:
		return false, false
	}
}

// captureTail appends one sample to the tail and looks for a splice
// point. The first qualifying match wins; later crossings only update
// the diagnostics.
func (e *Engine) captureTail(x float32) {
	if e.st.TailPosition >= TailCapacity {
		return
	}

	e.tail[e.st.TailPosition] = x
	e.st.TailPosition++

	if e.st.TailPosition >= 2 {
		e.matchCrossing(e.st.TailPosition - 1)
	}

	if e.st.StitchPosition > 0 && e.st.TailPosition >= e.st.StitchPosition+halfCrossfade {
		e.st.RecordingTail = false
		e.st.HasRecorded = true
		return
	}

	if e.st.TailPosition >= TailCapacity && e.st.StitchPosition == 0 {
		e.st.StitchPosition = halfCrossfade
		e.st.RecordingTail = false
		e.st.HasRecorded = true
		e.emit(Event{
			Kind: EventTailFallback,
			A:    e.st.ZeroCrossingsSeen,
			B:    e.st.MinCrossingDistance,
			C:    e.st.StitchPosition,
		})
	}
}

// matchCrossing checks the tail at t for a zero crossing and scans the
// loop around the same offset for one in the same direction.
func (e *Engine) matchCrossing(t int) {
	crossed, rising := zeroCrossing(e.tail[t-1], e.tail[t])
	if !crossed {
		return
	}
	e.st.ZeroCrossingsSeen++

	lo := 1
	if t > CrossingDistance {
		lo = t - CrossingDistance
	}
	hi := e.st.LoopSampleCount - 1
	if t+CrossingDistance < e.st.LoopSampleCount {
		hi = t + CrossingDistance
	}

	for l := lo; l <= hi; l++ {
		loopCrossed, loopRising := zeroCrossing(e.loop[l-1], e.loop[l])
		if !loopCrossed || loopRising != rising {
			continue
		}

		distance := t - l
		if distance < 0 {
			distance = -distance
		}
		if distance < e.st.MinCrossingDistance {
			e.st.MinCrossingDistance = distance
		}

		mid := (t + l) / 2
		if distance <= CrossingDistance &&
			mid >= halfCrossfade &&
			mid+1 < TailCapacity-halfCrossfade &&
			e.st.StitchPosition == 0 {
			e.st.StitchPosition = mid + 1
			e.emit(Event{Kind: EventCrossingMatched, A: t, B: l, C: e.st.StitchPosition, Flag: rising})
			return
		}
	}
}

func (e *Engine) spliceReady() bool {
	return !e.st.RecordingTail && e.st.StitchPosition > 0 && e.st.TailPosition > 0
}

// splice rewrites the loop's opening with the tail: samples before the
// crossfade window are copied verbatim, then the window blends linearly
// from the tail into the loop's own content. Writes stop at the loop end.
func (e *Engine) splice() {
	start := e.st.StitchPosition - halfCrossfade
	count := e.st.LoopSampleCount

	copied := copy(e.loop[:min(start, count)], e.tail[:start])

	for cf := range CrossfadeLength {
		p := start + cf
		if p >= count {
			break
		}
		w := float32(cf) / float32(CrossfadeLength-1)
		e.loop[p] = utils.Lerp(e.tail[p], e.loop[p], w)
	}

	e.emit(Event{Kind: EventSpliceApplied, A: e.st.StitchPosition, B: copied})
	e.resetTail()
}
