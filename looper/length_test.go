// SPDX-License-Identifier: EPL-2.0

package looper

import (
	"math"
	"testing"
)

func TestLoopLength(t *testing.T) {
	t.Parallel()

	const capacity = 48000 * 300

	tests := []struct {
		name        string
		beatsPerBar float32
		bars        float32
		bpm         float32
		rate        float64
		capacity    int
		want        int
	}{
		{"one bar 4/4 at 120", 4, 1, 120, 48000, capacity, 96000},
		{"two bars 3/4 at 90", 3, 2, 90, 44100, capacity, 176400},
		{"fractional bars floor the beats", 4, 1.3, 120, 48000, capacity, 120000},
		{"fractional meter", 3.5, 1, 100, 48000, capacity, 86400},
		{"samples are floored", 4, 1, 133, 44100, capacity, 79578},
		{"clamped to capacity", 4, 1000, 60, 48000, capacity, capacity},
		{"zero bars", 4, 0, 120, 48000, capacity, 0},
		{"negative bars", 4, -2, 120, 48000, capacity, 0},
		{"less than a beat", 4, 0.2, 120, 48000, capacity, 0},
		{"zero tempo", 4, 1, 0, 48000, capacity, 0},
		{"zero capacity", 4, 1, 120, 48000, 0, 0},
		{"NaN bars", 4, float32(math.NaN()), 120, 48000, capacity, 0},
		{"infinite bars", 4, float32(math.Inf(1)), 120, 48000, capacity, capacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := LoopLength(tt.beatsPerBar, tt.bars, tt.bpm, tt.rate, tt.capacity)
			if got != tt.want {
				t.Errorf("LoopLength(%v, %v, %v, %v, %d) = %d, want %d",
					tt.beatsPerBar, tt.bars, tt.bpm, tt.rate, tt.capacity, got, tt.want)
			}
		})
	}
}

// TestLoopLengthBounds sweeps tempo and rate and checks the result never
// leaves [0, capacity].
func TestLoopLengthBounds(t *testing.T) {
	t.Parallel()

	rates := []float64{8000, 22050, 44100, 48000, 96000, 192000}
	const capacity = 1 << 20

	for _, rate := range rates {
		for bpm := float32(20); bpm <= 300; bpm += 7 {
			for bars := float32(0); bars <= 16; bars += 0.75 {
				got := LoopLength(4, bars, bpm, rate, capacity)
				if got < 0 || got > capacity {
					t.Fatalf("LoopLength(4, %v, %v, %v) = %d, outside [0, %d]", bars, bpm, rate, got, capacity)
				}

				beats := math.Floor(float64(4 * bars))
				want := math.Min(math.Floor(beats*60*rate/float64(bpm)), capacity)
				if got != int(want) {
					t.Fatalf("LoopLength(4, %v, %v, %v) = %d, want %d", bars, bpm, rate, got, int(want))
				}
			}
		}
	}
}
