// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer averages the channels of src into one. A mono source passes
// through untouched.
type MonoMixer struct {
	src  Source
	buf  []float32
	gain float32
}

func NewMonoMixer(src Source) *MonoMixer {
	ch := max(src.Channels(), 1)
	return &MonoMixer{
		src:  src,
		buf:  make([]float32, src.BufSize()*ch),
		gain: 1 / float32(ch),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("closing mixer source: %w", err)
	}
	return nil
}

// ReadSamples writes one mixed sample per source frame.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	ch := m.src.Channels()
	if ch == 1 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * ch
	if cap(m.buf) < need {
		m.buf = make([]float32, need)
	}
	buf := m.buf[:need]

	n, err := m.src.ReadSamples(buf)
	frames := n / ch

	if ch == 2 {
		for f := range frames {
			dst[f] = (buf[2*f] + buf[2*f+1]) * m.gain
		}
		return frames, err
	}

	for f := range frames {
		var sum float32
		for _, x := range buf[f*ch : f*ch+ch] {
			sum += x
		}
		dst[f] = sum * m.gain
	}

	return frames, err
}
