// SPDX-License-Identifier: EPL-2.0

package transport

// Tracker keeps the current and previous block snapshots.
// It is not safe for concurrent use; the owner calls it from the
// processing routine only.
type Tracker struct {
	prev    Snapshot
	cur     Snapshot
	crossed bool
}

func NewTracker() *Tracker {
	t := &Tracker{}
	t.Reset()
	return t
}

// Reset forgets everything the host reported.
func (t *Tracker) Reset() {
	t.prev = InitialSnapshot()
	t.cur = t.prev
	t.crossed = false
}

// Update folds this block's events into the current snapshot and
// computes the bar crossing against the previous block. Events are
// applied in order, so the last value of each field wins.
func (t *Tracker) Update(events []Position) Snapshot {
	t.cur = t.prev
	if len(events) == 0 {
		t.crossed = false
		return t.cur
	}

	for i := range events {
		t.cur.apply(events[i])
	}
	t.crossed = t.cur.CrossedFrom(t.prev)

	return t.cur
}

// Commit makes the current snapshot the previous one. Call it once at
// the end of every block, whether or not a crossing happened.
func (t *Tracker) Commit() {
	t.prev = t.cur
	t.crossed = false
}

func (t *Tracker) Current() Snapshot  { return t.cur }
func (t *Tracker) Previous() Snapshot { return t.prev }
func (t *Tracker) Crossed() bool      { return t.crossed }

// Rolling reports whether the current snapshot says the transport moves.
func (t *Tracker) Rolling() bool { return t.cur.Rolling }

// AtTop reports whether the transport sits at the very start of the
// song: bar 0 and a beat in [0, window).
func (t *Tracker) AtTop(window float32) bool {
	return t.cur.Bar == 0 && t.cur.BarBeat >= 0 && t.cur.BarBeat < window
}
