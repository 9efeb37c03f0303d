// SPDX-License-Identifier: EPL-2.0

package transport

import "math"

// Clock is a sample counting transport. Tempo and meter changes take
// effect from the current position onwards.
type Clock struct {
	sampleRate  float64
	bpm         float64
	beatsPerBar float64

	// beats at the last re-origin, plus frames elapsed since then
	originBeats float64
	frames      uint64
	rolling     bool
}

// NewClock creates a stopped clock at bar 0 beat 0. Non-positive tempo
// or meter values fall back to DefaultTempo and DefaultBeatsPerBar.
func NewClock(sampleRate, bpm, beatsPerBar float64) *Clock {
	if bpm <= 0 {
		bpm = DefaultTempo
	}
	if beatsPerBar <= 0 {
		beatsPerBar = DefaultBeatsPerBar
	}

	return &Clock{
		sampleRate:  sampleRate,
		bpm:         bpm,
		beatsPerBar: beatsPerBar,
	}
}

func (c *Clock) Start()         { c.rolling = true }
func (c *Clock) Stop()          { c.rolling = false }
func (c *Clock) Rolling() bool  { return c.rolling }
func (c *Clock) Tempo() float64 { return c.bpm }

// SetTempo changes the tempo without moving the position.
func (c *Clock) SetTempo(bpm float64) {
	if bpm <= 0 {
		return
	}
	c.rebase()
	c.bpm = bpm
}

// SetMeter changes the beats per bar. The absolute beat count is kept,
// so bar and beat values are recomputed with the new meter.
func (c *Clock) SetMeter(beatsPerBar float64) {
	if beatsPerBar <= 0 {
		return
	}
	c.beatsPerBar = beatsPerBar
}

// Locate moves the clock to the given bar and beat.
func (c *Clock) Locate(bar int64, barBeat float64) {
	c.originBeats = float64(bar)*c.beatsPerBar + barBeat
	c.frames = 0
}

// Beats returns the absolute beat position.
func (c *Clock) Beats() float64 {
	return c.originBeats + float64(c.frames)*c.bpm/(60*c.sampleRate)
}

// Position reports the current transport state.
func (c *Clock) Position() Position {
	beats := c.Beats()
	bar := math.Floor(beats / c.beatsPerBar)
	barBeat := beats - bar*c.beatsPerBar

	speed := float32(0)
	if c.rolling {
		speed = 1
	}

	return NewPosition(int64(bar), float32(barBeat), speed, float32(c.bpm), float32(c.beatsPerBar))
}

// Advance returns the position at the start of a block of frames and
// then moves the clock past it. A stopped clock does not move.
func (c *Clock) Advance(frames int) Position {
	pos := c.Position()
	if c.rolling && frames > 0 {
		c.frames += uint64(frames)
	}
	return pos
}

// FramesPerBar is the bar length in frames at the current tempo.
func (c *Clock) FramesPerBar() float64 {
	return c.beatsPerBar * 60 * c.sampleRate / c.bpm
}

func (c *Clock) rebase() {
	c.originBeats = c.Beats()
	c.frames = 0
}
