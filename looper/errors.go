// SPDX-License-Identifier: EPL-2.0

package looper

import "errors"

var (
	ErrInvalidSampleRate  = errors.New("sample rate must be positive")
	ErrInvalidMaxDuration = errors.New("maximum loop duration must be positive")
	ErrCapacityTooSmall   = errors.New("loop capacity is smaller than the tail window")
	ErrCapacityTooLarge   = errors.New("loop capacity does not fit the state format")
	ErrNilStore           = errors.New("nil state store")
)
