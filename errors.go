// SPDX-License-Identifier: EPL-2.0

package audloop

import "errors"

var (
	ErrInvalidOptions    = errors.New("invalid render options")
	ErrUnsupportedExport = errors.New("unsupported export format")
	ErrNoFormatExtension = errors.New("file has no format extension")
)
