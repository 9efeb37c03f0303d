// SPDX-License-Identifier: EPL-2.0

package transport

import "testing"

func TestTracker_InitialState(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	snap := tr.Current()

	if snap.HasBar() || snap.HasBarBeat() {
		t.Errorf("initial snapshot has bar=%d beat=%v, want both unset", snap.Bar, snap.BarBeat)
	}
	if snap.Rolling {
		t.Error("initial snapshot is rolling, want stopped")
	}
	if snap.BeatsPerMinute != DefaultTempo {
		t.Errorf("BeatsPerMinute = %v, want %v", snap.BeatsPerMinute, DefaultTempo)
	}
	if snap.BeatsPerBar != DefaultBeatsPerBar {
		t.Errorf("BeatsPerBar = %v, want %v", snap.BeatsPerBar, DefaultBeatsPerBar)
	}
}

func TestTracker_Crossing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		prev Position
		cur  Position
		want bool
	}{
		{
			name: "bar index increments",
			prev: NewPosition(3, 3.9, 1, 120, 4),
			cur:  NewPosition(4, 0.1, 1, 120, 4),
			want: true,
		},
		{
			name: "same bar, beat advances",
			prev: NewPosition(3, 1.0, 1, 120, 4),
			cur:  NewPosition(3, 1.5, 1, 120, 4),
			want: false,
		},
		{
			name: "beat wraps without bar index",
			prev: Position{Has: HasBarBeat | HasSpeed, BarBeat: 3.8, Speed: 1},
			cur:  Position{Has: HasBarBeat | HasSpeed, BarBeat: 0.2, Speed: 1},
			want: true,
		},
		{
			name: "bar index jumps backwards on relocate",
			prev: NewPosition(9, 2, 1, 120, 4),
			cur:  NewPosition(2, 2, 1, 120, 4),
			want: true,
		},
		{
			name: "previous bar unset",
			prev: Position{Has: HasSpeed, Speed: 1},
			cur:  Position{Has: HasBar | HasSpeed, Bar: 1, Speed: 1},
			want: false,
		},
		{
			name: "negative beat is never compared",
			prev: Position{Has: HasBarBeat, BarBeat: 2},
			cur:  Position{Has: HasBarBeat, BarBeat: Unset},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := NewTracker()
			tr.Update([]Position{tt.prev})
			tr.Commit()

			tr.Update([]Position{tt.cur})
			if got := tr.Crossed(); got != tt.want {
				t.Errorf("Crossed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTracker_NoEventsCarriesForward(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.Update([]Position{NewPosition(2, 1.5, 1, 90, 3)})
	tr.Commit()

	snap := tr.Update(nil)
	if tr.Crossed() {
		t.Error("Crossed() = true for a block without events, want false")
	}
	if snap.Bar != 2 || snap.BarBeat != 1.5 || !snap.Rolling {
		t.Errorf("snapshot = %+v, want bar 2 beat 1.5 rolling", snap)
	}
	if snap.BeatsPerMinute != 90 || snap.BeatsPerBar != 3 {
		t.Errorf("tempo/meter = %v/%v, want 90/3", snap.BeatsPerMinute, snap.BeatsPerBar)
	}
}

func TestTracker_LastEventWins(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	snap := tr.Update([]Position{
		NewPosition(0, 0, 1, 100, 4),
		{Has: HasTempo, BeatsPerMinute: 140},
		{Has: HasSpeed, Speed: 0},
	})

	if snap.BeatsPerMinute != 140 {
		t.Errorf("BeatsPerMinute = %v, want 140", snap.BeatsPerMinute)
	}
	if snap.Rolling {
		t.Error("Rolling = true, want false from the last event")
	}
	if snap.Bar != 0 {
		t.Errorf("Bar = %d, want 0 kept from the first event", snap.Bar)
	}
}

func TestTracker_IgnoresNonPositiveTempo(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	snap := tr.Update([]Position{{Has: HasTempo | HasMeter, BeatsPerMinute: 0, BeatsPerBar: -3}})

	if snap.BeatsPerMinute != DefaultTempo || snap.BeatsPerBar != DefaultBeatsPerBar {
		t.Errorf("tempo/meter = %v/%v, want defaults", snap.BeatsPerMinute, snap.BeatsPerBar)
	}
}

func TestTracker_CommitReplacesPrevious(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.Update([]Position{NewPosition(1, 0, 1, 120, 4)})
	tr.Commit()
	tr.Update([]Position{NewPosition(1, 2, 1, 120, 4)})
	tr.Commit()

	if prev := tr.Previous(); prev.BarBeat != 2 {
		t.Errorf("Previous().BarBeat = %v, want 2", prev.BarBeat)
	}
	if tr.Crossed() {
		t.Error("Crossed() = true after Commit, want false")
	}
}

func TestTracker_AtTop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{"bar 0 beat 0", NewPosition(0, 0, 1, 120, 4), true},
		{"bar 0 inside window", NewPosition(0, 0.05, 1, 120, 4), true},
		{"bar 0 at window edge", NewPosition(0, 0.1, 1, 120, 4), false},
		{"bar 1 beat 0", NewPosition(1, 0, 1, 120, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := NewTracker()
			tr.Update([]Position{tt.pos})
			if got := tr.AtTop(0.1); got != tt.want {
				t.Errorf("AtTop(0.1) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTracker_Update_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	tr := NewTracker()
	events := []Position{NewPosition(0, 0, 1, 120, 4)}

	allocs := testing.AllocsPerRun(1000, func() {
		tr.Update(events)
		tr.Commit()
	})

	if allocs > 0 {
		t.Errorf("Update allocated %v times, want 0", allocs)
	}
}
