// SPDX-License-Identifier: EPL-2.0

package transport

// Unset marks a bar index or beat-within-bar value the host has not
// reported yet.
const Unset = -1

// Transport defaults used until the host reports tempo and meter.
const (
	DefaultTempo       = 120.0
	DefaultBeatsPerBar = 4.0
)

// Field selects which values of a Position are present.
type Field uint8

const (
	HasBarBeat Field = 1 << iota
	HasBar
	HasSpeed
	HasTempo
	HasMeter

	HasAll = HasBarBeat | HasBar | HasSpeed | HasTempo | HasMeter
)

// Position is one decoded host transport event.
type Position struct {
	Has Field

	// BarBeat is the beat within the current bar, starting at 0.
	BarBeat float32
	// Bar is the zero based bar index.
	Bar int64
	// Speed is the transport speed; anything above 0 means rolling.
	Speed          float32
	BeatsPerMinute float32
	BeatsPerBar    float32
}

// NewPosition returns a Position with every field present.
func NewPosition(bar int64, barBeat, speed, bpm, beatsPerBar float32) Position {
	return Position{
		Has:            HasAll,
		BarBeat:        barBeat,
		Bar:            bar,
		Speed:          speed,
		BeatsPerMinute: bpm,
		BeatsPerBar:    beatsPerBar,
	}
}

// Snapshot is the transport state for one processing block.
type Snapshot struct {
	BarBeat        float32
	Bar            int64
	Rolling        bool
	BeatsPerMinute float32
	BeatsPerBar    float32
}

// InitialSnapshot is the state before the host has said anything.
func InitialSnapshot() Snapshot {
	return Snapshot{
		BarBeat:        Unset,
		Bar:            Unset,
		BeatsPerMinute: DefaultTempo,
		BeatsPerBar:    DefaultBeatsPerBar,
	}
}

func (s Snapshot) HasBar() bool     { return s.Bar >= 0 }
func (s Snapshot) HasBarBeat() bool { return s.BarBeat >= 0 }

// CrossedFrom reports whether a bar boundary lies between prev and s.
func (s Snapshot) CrossedFrom(prev Snapshot) bool {
	if s.HasBar() && prev.HasBar() && s.Bar != prev.Bar {
		return true
	}

	return s.HasBarBeat() && prev.HasBarBeat() && s.BarBeat < prev.BarBeat
}

// apply overlays the fields present in p.
func (s *Snapshot) apply(p Position) {
	if p.Has&HasBarBeat != 0 {
		s.BarBeat = p.BarBeat
	}
	if p.Has&HasBar != 0 {
		s.Bar = p.Bar
	}
	if p.Has&HasSpeed != 0 {
		s.Rolling = p.Speed > 0
	}
	// Tempo and meter must stay positive; they divide the loop length.
	if p.Has&HasTempo != 0 && p.BeatsPerMinute > 0 {
		s.BeatsPerMinute = p.BeatsPerMinute
	}
	if p.Has&HasMeter != 0 && p.BeatsPerBar > 0 {
		s.BeatsPerBar = p.BeatsPerBar
	}
}
