// SPDX-License-Identifier: EPL-2.0

// Package looper implements a tempo synchronised single loop recorder.
//
// The Engine records one loop from a mono input, starting and stopping on
// the host's bar lines, and plays it back in sync with the transport. The
// seam where the loop wraps around is made click free by recording a
// short tail after the loop, finding a zero crossing in the tail that
// lines up with one near the start of the loop, and cross fading the tail
// into the loop's opening samples.
//
// # Processing
//
// The host calls Process once per block with the block's input, output,
// control values and transport events. Process never allocates, never
// blocks and never fails:
//
//	eng, err := looper.New(looper.DefaultConfig(48000))
//	if err != nil {
//	    return err
//	}
//	eng.Activate()
//
//	blk := &looper.Block{In: in, Out: out, LoopLengthBars: 2}
//	for {
//	    blk.RecordEnable = control()
//	    blk.Positions = hostEvents()
//	    status := eng.Process(blk)
//	    _ = status
//	}
//
// # Record Control Polarity
//
// Recording is driven by the falling edge of the record enable control:
// a value above 0.5 followed by a value at or below 0.5 in the next block.
// Pressing the control does nothing; releasing it arms the looper (when
// idle) or stops a capture in progress. This is the externally visible
// contract of the control and is kept on purpose, even though it is the
// opposite of what most record buttons do.
//
// # States
//
// Capture moves through Idle, Armed, Recording and TailCapture. Arming
// latches the loop length computed from the loop length control and the
// current tempo and meter; recording starts at the next bar crossing
// while the transport rolls. When the loop is full the tail capture runs
// for at most TailCapacity samples, the splice is applied and the loop is
// marked as recorded.
//
// Playback moves through Stopped, WaitingToPlay and Playing. With a
// recorded loop and a rolling transport, playback starts right away when
// the transport sits at bar 0 beat 0, otherwise at the next bar crossing.
// Stopping the transport always stops playback.
//
// # Diagnostics
//
// The processing path records Events into a fixed size ring instead of
// logging. Drain them from a non real-time goroutine with DrainEvents or
// LogEvents. Whether or not anybody reads them has no effect on audio.
//
// # Persistence
//
// Save and Restore move the loop through a host store (see package
// state). They must not run concurrently with Process; the engine has no
// internal locking.
package looper
