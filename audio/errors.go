// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize   = errors.New("dst size must be multiple of channels")
	ErrInvalidRate      = errors.New("sample rate must be positive")
	ErrInvalidChannels  = errors.New("channel count must be positive")
	ErrInvalidBlockSize = errors.New("block size must be positive")
	ErrNotMono          = errors.New("source must be mono")
	ErrUnknownFormat    = errors.New("no decoder registered for format")
)
