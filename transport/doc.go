// SPDX-License-Identifier: EPL-2.0

// Package transport tracks the host's musical transport for the looper.
//
// A host describes its transport with zero or more Position events per
// processing block. The Tracker folds those events into a Snapshot and
// reports whether a bar boundary was crossed since the previous block:
//
//	tr := transport.NewTracker()
//
//	// once per block
//	snap := tr.Update(events)
//	if tr.Crossed() {
//	    // a new bar started somewhere before this block
//	}
//	tr.Commit()
//
// # Bar Boundaries
//
// A crossing is recognised when both the previous and the current bar
// index are set and differ, or when both beat-within-bar values are set
// and the current one is smaller than the previous one (the beat wrapped
// into the next bar). Unset values are negative and are never compared.
//
// # Partial Events
//
// Each Position carries a Has mask. Fields that are absent keep their
// previous value, so a host that only sends tempo once still gets a valid
// snapshot on every block. A block with no events carries the previous
// snapshot forward unchanged and never signals a crossing.
//
// # Clock
//
// Clock is a free-running transport for hosts that do not have one, such
// as offline rendering and live capture from a sound card. It advances by
// a number of frames per block and reports the Position at the start of
// each block:
//
//	clk := transport.NewClock(48000, 120, 4)
//	clk.Start()
//	pos := clk.Advance(256)
package transport
