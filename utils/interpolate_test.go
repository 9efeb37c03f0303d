// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
	}{
		{"start is y1", 0.3, -0.7, 0.9, 0.1, 0, -0.7},
		{"end is y2", 0, 1, 2, 3, 1, 2},
		{"line midpoint", 0, 1, 2, 3, 0.5, 1.5},
		{"constant", 0.25, 0.25, 0.25, 0.25, 0.37, 0.25},
		{"symmetric peak", 0, 1, 1, 0, 0.5, 1.125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("CubicInterpolate(%v, %v, %v, %v, %v) = %v, want %v",
					tt.y0, tt.y1, tt.y2, tt.y3, tt.x, got, tt.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	t.Parallel()

	if got := Lerp(-0.25, 0.5, 0); got != -0.25 {
		t.Errorf("Lerp at 0 = %v, want -0.25", got)
	}
	if got := Lerp(-0.25, 0.5, 1); got != 0.5 {
		t.Errorf("Lerp at 1 = %v, want 0.5", got)
	}
	if got := Lerp(0, 1, 0.25); got != 0.25 {
		t.Errorf("Lerp at 0.25 = %v, want 0.25", got)
	}
}

func TestCubicInterpolate_ZeroAlloc(t *testing.T) {
	var sink float32
	allocs := testing.AllocsPerRun(100, func() {
		sink += CubicInterpolate(0.1, 0.2, 0.3, 0.4, 0.5)
	})
	if allocs != 0 {
		t.Errorf("CubicInterpolate allocated %v times, want 0", allocs)
	}
	_ = sink
}
