// SPDX-License-Identifier: EPL-2.0

// Package audiotest generates deterministic signals for tests. Generator
// satisfies audio.Source without importing it.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of one sample of one channel.
type Waveform func(frame, channel int) float32

// Generator produces frames frames of interleaved samples from a
// waveform, then io.EOF.
type Generator struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Waveform

	// ErrAfter, when non-nil, is returned once pos reaches FailAt.
	ErrAfter error
	FailAt   int
	// Closed counts Close calls.
	Closed int
}

func New(sampleRate, channels, frames int, wave Waveform) *Generator {
	return &Generator{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
	}
}

func Silence(sampleRate, channels, frames int) *Generator {
	return Constant(sampleRate, channels, frames, 0)
}

func Constant(sampleRate, channels, frames int, v float32) *Generator {
	return New(sampleRate, channels, frames, func(int, int) float32 { return v })
}

// Sine is a sine of freq Hz on every channel.
func Sine(sampleRate, channels, frames int, freq float64) *Generator {
	return New(sampleRate, channels, frames, func(f, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(f) / float64(sampleRate)))
	})
}

// Ramp counts frames: frame i is (i+1)*step on every channel.
func Ramp(sampleRate, channels, frames int, step float32) *Generator {
	return New(sampleRate, channels, frames, func(f, _ int) float32 { return float32(f+1) * step })
}

// Square alternates between +amp and -amp every half period frames,
// starting positive.
func Square(sampleRate, channels, frames, halfPeriod int, amp float32) *Generator {
	return New(sampleRate, channels, frames, func(f, _ int) float32 {
		if (f/halfPeriod)%2 == 0 {
			return amp
		}
		return -amp
	})
}

// PerChannel gives channel c the constant values[c].
func PerChannel(sampleRate, frames int, values ...float32) *Generator {
	return New(sampleRate, len(values), frames, func(_, c int) float32 { return values[c] })
}

func (g *Generator) SampleRate() int { return g.sampleRate }
func (g *Generator) Channels() int   { return g.channels }
func (g *Generator) BufSize() int    { return 4096 }

func (g *Generator) Close() error {
	g.Closed++
	return nil
}

// Rewind starts the signal over.
func (g *Generator) Rewind() { g.pos = 0 }

// Remaining is the number of frames not read yet.
func (g *Generator) Remaining() int { return g.frames - g.pos }

func (g *Generator) ReadSamples(dst []float32) (int, error) {
	if g.ErrAfter != nil && g.pos >= g.FailAt {
		return 0, g.ErrAfter
	}
	if g.pos >= g.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/g.channels, g.frames-g.pos)
	if g.ErrAfter != nil {
		n = min(n, g.FailAt-g.pos)
	}
	for f := range n {
		for c := range g.channels {
			dst[f*g.channels+c] = g.wave(g.pos+f, c)
		}
	}
	g.pos += n

	if g.pos >= g.frames {
		return n * g.channels, io.EOF
	}
	return n * g.channels, nil
}

// Collect reads src until io.EOF with a buffer of bufSize samples.
func Collect(src interface {
	ReadSamples([]float32) (int, error)
}, bufSize int) ([]float32, error) {
	buf := make([]float32, bufSize)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		if n == 0 {
			return out, io.ErrNoProgress
		}
	}
}
