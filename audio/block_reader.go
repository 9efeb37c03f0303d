// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// BlockReader cuts a mono source into fixed-size blocks, the way a host
// hands audio to a plugin. The last block is padded with silence.
type BlockReader struct {
	src    Source
	size   int
	done   bool
	frames int64
}

func NewBlockReader(src Source, size int) (*BlockReader, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, size)
	}
	if src.Channels() != 1 {
		return nil, fmt.Errorf("%w: got %d channels", ErrNotMono, src.Channels())
	}

	return &BlockReader{src: src, size: size}, nil
}

func (b *BlockReader) Size() int { return b.size }

// Frames is the number of source frames delivered so far.
func (b *BlockReader) Frames() int64 { return b.frames }

// Next fills the first Size() samples of dst and returns how many came
// from the source; the rest are zero. It returns 0 and io.EOF once the
// source has nothing left.
func (b *BlockReader) Next(dst []float32) (int, error) {
	if len(dst) < b.size {
		return 0, fmt.Errorf("%w: dst holds %d, need %d", ErrInvalidBlockSize, len(dst), b.size)
	}
	dst = dst[:b.size]

	if b.done {
		clear(dst)
		return 0, io.EOF
	}

	n := 0
	for n < b.size {
		got, err := b.src.ReadSamples(dst[n:])
		n += got
		if err == io.EOF {
			b.done = true
			break
		}
		if err != nil {
			return n, fmt.Errorf("reading block: %w", err)
		}
		if got == 0 {
			return n, fmt.Errorf("reading block: %w", io.ErrNoProgress)
		}
	}
	clear(dst[n:])
	b.frames += int64(n)

	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}
