// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audloop/utils"
)

const (
	resampleChunkFrames = 1024
	// lowpassAlpha is the one-pole coefficient applied to the input
	// when downsampling.
	lowpassAlpha = 0.5
)

// Resampler converts src to another sample rate with cubic
// interpolation, keeping the channel layout. The first output frame is
// the first input frame, so a resampled bar still starts on its
// downbeat. When downsampling the input passes a one-pole low-pass
// first.
type Resampler struct {
	src      Source
	dstRate  int
	channels int
	step     float64 // source frames per output frame

	// hist holds source frames base-1 .. base+2; output lies between
	// hist[1] and hist[2] at offset frac.
	hist [4][]float32
	base int64
	real int64 // source frames actually read
	frac float64

	in      []float32
	inPos   int
	inLen   int
	srcDone bool
	primed  bool

	lowpass  []float32
	filtered bool
	lpPrimed bool
}

func NewResampler(src Source, dstRate int) (*Resampler, error) {
	switch {
	case dstRate <= 0:
		return nil, fmt.Errorf("%w: target %d", ErrInvalidRate, dstRate)
	case src.SampleRate() <= 0:
		return nil, fmt.Errorf("%w: source %d", ErrInvalidRate, src.SampleRate())
	case src.Channels() <= 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, src.Channels())
	}

	ch := src.Channels()
	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		channels: ch,
		step:     float64(src.SampleRate()) / float64(dstRate),
		in:       make([]float32, resampleChunkFrames*ch),
		lowpass:  make([]float32, ch),
	}
	r.filtered = r.step > 1
	for i := range r.hist {
		r.hist[i] = make([]float32, ch)
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// Ratio is the number of source frames consumed per output frame.
func (r *Resampler) Ratio() float64 { return r.step }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// fetch copies the next source frame into frame. It reports false once
// the source is exhausted.
func (r *Resampler) fetch(frame []float32) (bool, error) {
	for r.inPos >= r.inLen {
		if r.srcDone {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		switch {
		case err == io.EOF:
			r.srcDone = true
		case err != nil:
			return false, fmt.Errorf("reading source: %w", err)
		case n == 0:
			return false, fmt.Errorf("reading source: %w", io.ErrNoProgress)
		}
	}

	copy(frame, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.filtered {
		if !r.lpPrimed {
			copy(r.lowpass, frame)
			r.lpPrimed = true
		}
		for c, x := range frame {
			y := lowpassAlpha*x + (1-lowpassAlpha)*r.lowpass[c]
			r.lowpass[c] = y
			frame[c] = y
		}
	}

	return true, nil
}

// prime loads the first frame into hist[0] and hist[1] and reads ahead
// two more.
func (r *Resampler) prime() error {
	ok, err := r.fetch(r.hist[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.hist[0], r.hist[1])
	r.real = 1

	for i := 2; i < len(r.hist); i++ {
		ok, err := r.fetch(r.hist[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.hist[i], r.hist[i-1])
			continue
		}
		r.real++
	}

	r.primed = true
	return nil
}

// shift moves the window one source frame ahead. Past the end of the
// source the last frame is repeated.
func (r *Resampler) shift() error {
	oldest := r.hist[0]
	r.hist[0], r.hist[1], r.hist[2] = r.hist[1], r.hist[2], r.hist[3]
	r.hist[3] = oldest
	r.base++

	ok, err := r.fetch(r.hist[3])
	if err != nil {
		return err
	}
	if ok {
		r.real++
	} else {
		copy(r.hist[3], r.hist[2])
	}

	return nil
}

// ReadSamples fills dst with frames at the target rate. len(dst) must be
// a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.frac >= 1 {
			r.frac--
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
		}
		if r.base >= r.real {
			return written * r.channels, io.EOF
		}

		t := float32(r.frac)
		out := dst[written*r.channels:]
		for c := range r.channels {
			out[c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], t)
		}

		written++
		r.frac += r.step
	}

	return written * r.channels, nil
}
