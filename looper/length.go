// SPDX-License-Identifier: EPL-2.0

package looper

import "math"

// LoopLength converts a length in bars into samples at the given tempo
// and meter: floor(floor(beatsPerBar*bars) * 60 * sampleRate / bpm),
// clamped to [0, capacity].
func LoopLength(beatsPerBar, bars, bpm float32, sampleRate float64, capacity int) int {
	if !(bpm > 0) || !(sampleRate > 0) || capacity <= 0 {
		return 0
	}

	beats := math.Floor(float64(beatsPerBar * bars))
	if !(beats > 0) {
		return 0
	}

	samples := math.Floor(beats * 60 * sampleRate / float64(bpm))
	if samples >= float64(capacity) {
		return capacity
	}
	if !(samples > 0) {
		return 0
	}

	return int(samples)
}
