// SPDX-License-Identifier: EPL-2.0

package audloop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/looper"
	"github.com/ik5/audloop/state"
	"github.com/ik5/audloop/transport"
)

// RenderOptions describe an offline session: the host rate and block
// size, the song tempo and meter, and when the record control is
// released.
type RenderOptions struct {
	SampleRate  int
	BlockSize   int
	Tempo       float64
	BeatsPerBar float64
	// LoopBars is the loop length control, in bars.
	LoopBars float32
	// ArmBar is the bar on which the record control is released. The
	// control is held high from the first block, so the looper arms on
	// that bar line and starts recording right away. Zero never records,
	// which is useful together with Restore.
	ArmBar int64
	// ExtraBars of silence are rendered after the source ends.
	ExtraBars int
	// Persist sets the persist control; the result then carries the
	// saved loop.
	Persist bool
	// MaxLoopDuration bounds the loop buffer. Zero uses the looper
	// default.
	MaxLoopDuration time.Duration
	// Restore, when set, is loaded into the engine before activation.
	Restore looper.Retriever
	Logger  *slog.Logger
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		SampleRate:  48000,
		BlockSize:   256,
		Tempo:       transport.DefaultTempo,
		BeatsPerBar: transport.DefaultBeatsPerBar,
		LoopBars:    1,
		ArmBar:      1,
		ExtraBars:   2,
	}
}

func (o RenderOptions) Validate() error {
	switch {
	case o.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidOptions, o.SampleRate)
	case o.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d", ErrInvalidOptions, o.BlockSize)
	case !(o.Tempo > 0) || math.IsInf(o.Tempo, 0):
		return fmt.Errorf("%w: tempo %v", ErrInvalidOptions, o.Tempo)
	case !(o.BeatsPerBar > 0) || math.IsInf(o.BeatsPerBar, 0):
		return fmt.Errorf("%w: beats per bar %v", ErrInvalidOptions, o.BeatsPerBar)
	case !(o.LoopBars > 0) || math.IsInf(float64(o.LoopBars), 0):
		return fmt.Errorf("%w: loop bars %v", ErrInvalidOptions, o.LoopBars)
	case o.ArmBar < 0:
		return fmt.Errorf("%w: arm bar %d", ErrInvalidOptions, o.ArmBar)
	case o.ExtraBars < 0:
		return fmt.Errorf("%w: extra bars %d", ErrInvalidOptions, o.ExtraBars)
	case o.MaxLoopDuration < 0:
		return fmt.Errorf("%w: max loop duration %v", ErrInvalidOptions, o.MaxLoopDuration)
	}

	return nil
}

// RenderResult is what an offline session produced.
type RenderResult struct {
	// Output is the engine output, one sample per input frame followed by
	// the extra bars.
	Output     []float32
	Loop       []float32
	SampleRate int
	Blocks     int

	Status looper.Status
	State  looper.State

	// Events are the diagnostics drained during the session. Dropped
	// counts events lost to a full ring.
	Events  []looper.Event
	Dropped uint64

	// Saved holds the stored loop when Persist was set and a loop exists.
	Saved *state.MemoryStore
}

// session is one engine fed block by block against a clock.
type session struct {
	opts   RenderOptions
	logger *slog.Logger

	eng *looper.Engine
	clk *transport.Clock
	blk *looper.Block
	pos []transport.Position

	released bool
	res      *RenderResult
}

// Render decodes src through the resampler and mono mixer, feeds it to a
// looper in BlockSize blocks while a clock plays the part of the host
// transport, and collects the output. src is not closed.
func Render(ctx context.Context, src audio.Source, opts RenderOptions) (*RenderResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s, err := newSession(opts)
	if err != nil {
		return nil, err
	}

	resampled, err := audio.NewResampler(src, opts.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("resampling source: %w", err)
	}
	blocks, err := audio.NewBlockReader(audio.NewMonoMixer(resampled), opts.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("cutting blocks: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		_, err := blocks.Next(s.blk.In)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("rendering block %d: %w", s.res.Blocks, err)
		}

		s.step(ctx)
	}

	clear(s.blk.In)
	extra := int(math.Ceil(float64(opts.ExtraBars) * s.clk.FramesPerBar() / float64(opts.BlockSize)))
	for range extra {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.step(ctx)
	}

	return s.finish(ctx)
}

func newSession(opts RenderOptions) (*session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cfg := looper.DefaultConfig(float64(opts.SampleRate))
	cfg.Logger = logger
	if opts.MaxLoopDuration > 0 {
		cfg.MaxLoopDuration = opts.MaxLoopDuration
	}

	eng, err := looper.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating looper: %w", err)
	}
	if opts.Restore != nil {
		if err := eng.Restore(opts.Restore); err != nil {
			return nil, fmt.Errorf("restoring loop: %w", err)
		}
	}
	eng.Activate()

	clk := transport.NewClock(float64(opts.SampleRate), opts.Tempo, opts.BeatsPerBar)
	clk.Start()

	pos := make([]transport.Position, 1)
	blk := &looper.Block{
		In:             make([]float32, opts.BlockSize),
		Out:            make([]float32, opts.BlockSize),
		LoopLengthBars: opts.LoopBars,
		Positions:      pos,
	}
	if opts.ArmBar > 0 {
		blk.RecordEnable = 1
	}
	if opts.Persist {
		blk.PersistEnable = 1
	}

	return &session{
		opts:   opts,
		logger: logger,
		eng:    eng,
		clk:    clk,
		blk:    blk,
		pos:    pos,
		res:    &RenderResult{SampleRate: opts.SampleRate},
	}, nil
}

// step processes the block already in s.blk.In.
func (s *session) step(ctx context.Context) {
	s.pos[0] = s.clk.Advance(s.opts.BlockSize)
	if !s.released && s.pos[0].Bar >= s.opts.ArmBar {
		s.blk.RecordEnable = 0
		s.released = true
	}

	s.res.Status = s.eng.Process(s.blk)
	s.res.Output = append(s.res.Output, s.blk.Out...)
	s.res.Blocks++

	s.drain(ctx)
}

func (s *session) drain(ctx context.Context) {
	dropped := s.eng.DrainEvents(func(ev looper.Event) {
		s.res.Events = append(s.res.Events, ev)
		s.logger.LogAttrs(ctx, ev.Level(), ev.Kind.String(), ev.Attrs()...)
	})
	if dropped > 0 {
		s.res.Dropped += dropped
		s.logger.LogAttrs(ctx, slog.LevelWarn, "diagnostic events dropped", slog.Uint64("count", dropped))
	}
}

func (s *session) finish(ctx context.Context) (*RenderResult, error) {
	s.res.State = s.eng.State()
	s.res.Loop = s.eng.Loop()

	if s.opts.Persist {
		store := state.NewMemoryStore()
		if err := s.eng.Save(store); err != nil {
			return nil, fmt.Errorf("saving loop: %w", err)
		}
		if store.Len() > 0 {
			s.res.Saved = store
		}
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "render finished",
		slog.Int("blocks", s.res.Blocks),
		slog.Int("loop_samples", s.res.State.LoopSampleCount),
		slog.Int("events", len(s.res.Events)),
	)

	return s.res, nil
}
