// SPDX-License-Identifier: EPL-2.0

// Package utils holds sample conversions and interpolation shared by the
// decoders, the resampler and the looper.
package utils
