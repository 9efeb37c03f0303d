// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files through github.com/hajimehoshi/go-mp3.
// Output is always stereo float32 at the file's sample rate; mono files
// come out with both channels equal.
package mp3
