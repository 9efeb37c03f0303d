// SPDX-License-Identifier: EPL-2.0

package state

import "errors"

var (
	// ErrInvalidBundle indicates the data is not a state bundle
	ErrInvalidBundle = errors.New("not an audloop state bundle")

	// ErrUnsupportedVersion indicates a bundle written by a newer version
	ErrUnsupportedVersion = errors.New("unsupported state bundle version")

	// ErrKeyTooLong indicates a key that does not fit the bundle layout
	ErrKeyTooLong = errors.New("state key too long")
)
