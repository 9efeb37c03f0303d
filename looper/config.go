// SPDX-License-Identifier: EPL-2.0

package looper

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

const (
	DefaultMaxLoopDuration = 5 * time.Minute
	DefaultEventCapacity   = 256
)

// Config sets up an Engine.
type Config struct {
	// SampleRate of the host in Hz.
	SampleRate float64
	// MaxLoopDuration bounds the loop buffer. The buffer holds
	// SampleRate * MaxLoopDuration samples.
	MaxLoopDuration time.Duration
	// EventCapacity is the size of the diagnostics ring.
	EventCapacity int
	// Logger receives activation and persistence messages, and events
	// passed through LogEvents. Nil discards them.
	Logger *slog.Logger
}

func DefaultConfig(sampleRate float64) Config {
	return Config{
		SampleRate:      sampleRate,
		MaxLoopDuration: DefaultMaxLoopDuration,
		EventCapacity:   DefaultEventCapacity,
	}
}

// Capacity is the loop buffer size in samples.
func (c Config) Capacity() int {
	n := math.Ceil(c.SampleRate * c.MaxLoopDuration.Seconds())
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

func (c Config) Validate() error {
	if !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, c.SampleRate)
	}
	if c.MaxLoopDuration <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidMaxDuration, c.MaxLoopDuration)
	}

	capacity := c.Capacity()
	if capacity < TailCapacity {
		return fmt.Errorf("%w: %d samples, need %d", ErrCapacityTooSmall, capacity, TailCapacity)
	}
	if capacity >= math.MaxInt32 {
		return fmt.Errorf("%w: %d samples", ErrCapacityTooLarge, capacity)
	}

	return nil
}
