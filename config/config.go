// SPDX-License-Identifier: EPL-2.0

// Package config loads runtime settings for the audloop programs from
// AUDLOOP_* environment variables. Unset or unparsable values fall back
// to defaults.
package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ik5/audloop"
	"github.com/ik5/audloop/looper"
)

// Config holds all runtime configuration.
type Config struct {
	// Host
	SampleRate int
	BlockSize  int

	// Song
	Tempo       float64
	BeatsPerBar float64

	// Looper controls
	LoopBars  float64
	ArmBar    int
	ExtraBars int
	MaxLoop   time.Duration

	// Persistence
	Persist   bool
	StatePath string

	// Output
	BitDepth  int
	LogLevel  string
	LogFormat string // text or json
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		SampleRate: envInt("AUDLOOP_SAMPLE_RATE", 48000),
		BlockSize:  envInt("AUDLOOP_BLOCK_SIZE", 256),

		Tempo:       envFloat("AUDLOOP_TEMPO", 120),
		BeatsPerBar: envFloat("AUDLOOP_BEATS_PER_BAR", 4),

		LoopBars:  envFloat("AUDLOOP_LOOP_BARS", 1),
		ArmBar:    envInt("AUDLOOP_ARM_BAR", 1),
		ExtraBars: envInt("AUDLOOP_EXTRA_BARS", 2),
		MaxLoop:   envDuration("AUDLOOP_MAX_LOOP", looper.DefaultMaxLoopDuration),

		Persist:   envBool("AUDLOOP_PERSIST", false),
		StatePath: envStr("AUDLOOP_STATE_PATH", "audloop.state"),

		BitDepth:  envInt("AUDLOOP_BIT_DEPTH", 24),
		LogLevel:  envStr("AUDLOOP_LOG_LEVEL", "info"),
		LogFormat: envStr("AUDLOOP_LOG_FORMAT", "text"),
	}
}

// Looper derives the engine configuration.
func (c Config) Looper(logger *slog.Logger) looper.Config {
	cfg := looper.DefaultConfig(float64(c.SampleRate))
	cfg.MaxLoopDuration = c.MaxLoop
	cfg.Logger = logger
	return cfg
}

// Render derives options for audloop.Render.
func (c Config) Render(logger *slog.Logger) audloop.RenderOptions {
	return audloop.RenderOptions{
		SampleRate:      c.SampleRate,
		BlockSize:       c.BlockSize,
		Tempo:           c.Tempo,
		BeatsPerBar:     c.BeatsPerBar,
		LoopBars:        float32(c.LoopBars),
		ArmBar:          int64(c.ArmBar),
		ExtraBars:       c.ExtraBars,
		Persist:         c.Persist,
		MaxLoopDuration: c.MaxLoop,
		Logger:          logger,
	}
}

// Logger builds a slog logger writing to w. An unknown level means info.
func (c Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// envDuration accepts Go durations ("90s", "2m") or plain seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if s, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(s * float64(time.Second))
	}
	return fallback
}
