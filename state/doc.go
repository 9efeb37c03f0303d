// SPDX-License-Identifier: EPL-2.0

// Package state holds looper state outside the engine.
//
// Hosts own persistence. The looper hands them a few typed, keyed byte
// values on save and asks for them back on restore. MemoryStore is a
// ready-made host side store, and Encode/Decode turn a store into a
// versioned binary bundle that can be written to disk:
//
//	store := state.NewMemoryStore()
//	if err := engine.Save(store); err != nil {
//	    return err
//	}
//	f, _ := os.Create("loop.state")
//	err := state.Encode(f, store)
//
// # Bundle Layout
//
// All integers are little endian:
//   - magic "AUDLOOP" (7 bytes)
//   - version (uint32)
//   - entry count (uint32)
//   - per entry: key length (uint16), key, type (uint32),
//     value length (uint32), value
package state
