// SPDX-License-Identifier: EPL-2.0

// Package aiff reads and writes AIFF files through
// github.com/go-audio/aiff. 16, 24 and 32-bit integer PCM are supported
// in both directions; samples are float32 in [-1, 1].
package aiff
