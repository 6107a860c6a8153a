package render

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/san-kum/recart/internal/colormap"
	"github.com/san-kum/recart/internal/expr"
	"github.com/san-kum/recart/internal/interval"
)

const (
	DefaultWidth  = 350
	DefaultHeight = 350
	DefaultFrames = 51
	DefaultDepth  = 7
)

type Config struct {
	Width   int
	Height  int
	Frames  int
	Depth   int
	Workers int
}

func DefaultConfig() Config {
	return Config{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Frames:  DefaultFrames,
		Depth:   DefaultDepth,
		Workers: 1,
	}
}

// Empty reports whether cfg describes a grid with no pixels or no frames.
func (c Config) Empty() bool {
	return c.Width <= 0 || c.Height <= 0 || c.Frames <= 0
}

// Pixels is the number of pixels per frame.
func (c Config) Pixels() int {
	if c.Width <= 0 || c.Height <= 0 {
		return 0
	}
	return c.Width * c.Height
}

// Observer is notified after each frame has been handed to the sink.
type Observer interface {
	OnFrame(f *Frame, elapsed time.Duration)
}

type ObserverFunc func(f *Frame, elapsed time.Duration)

func (fn ObserverFunc) OnFrame(f *Frame, elapsed time.Duration) { fn(f, elapsed) }

type Renderer struct {
	ch        expr.Channels
	cfg       Config
	observers []Observer
	logger    *slog.Logger
}

func New(ch expr.Channels, cfg Config) *Renderer {
	return &Renderer{
		ch:        ch,
		cfg:       cfg,
		observers: make([]Observer, 0),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// NewRandom builds the three channel trees at cfg.Depth with b.
func NewRandom(b *expr.Builder, cfg Config) *Renderer {
	return New(b.BuildChannels(cfg.Depth), cfg)
}

func (r *Renderer) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Renderer) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

func (r *Renderer) Channels() expr.Channels { return r.ch }
func (r *Renderer) Config() Config          { return r.cfg }

// grid holds the pixel and time mappings onto [-1, 1].
type grid struct {
	x, y, t interval.Mapping
}

func (r *Renderer) grid() (grid, error) {
	var g grid
	var err error
	if g.x, err = interval.NewMapping(interval.Interval{Lo: 0, Hi: float64(r.cfg.Width)}, interval.Unit); err != nil {
		return g, fmt.Errorf("%w: width %d: %w", ErrInvalidInterval, r.cfg.Width, err)
	}
	if g.y, err = interval.NewMapping(interval.Interval{Lo: 0, Hi: float64(r.cfg.Height)}, interval.Unit); err != nil {
		return g, fmt.Errorf("%w: height %d: %w", ErrInvalidInterval, r.cfg.Height, err)
	}
	if g.t, err = interval.NewMapping(interval.Interval{Lo: 0, Hi: float64(r.cfg.Frames)}, interval.Unit); err != nil {
		return g, fmt.Errorf("%w: frames %d: %w", ErrInvalidInterval, r.cfg.Frames, err)
	}
	return g, nil
}

// Render emits every frame in index order, handing each one to sink before
// computing the next. An empty grid renders nothing and returns (0, nil).
// It returns the number of frames the sink accepted.
func (r *Renderer) Render(ctx context.Context, sink Sink) (int, error) {
	if r.cfg.Empty() {
		r.logger.Debug("empty grid, nothing to render",
			"width", r.cfg.Width, "height", r.cfg.Height, "frames", r.cfg.Frames)
		return 0, nil
	}

	g, err := r.grid()
	if err != nil {
		return 0, &RenderError{Frame: 0, Err: err}
	}

	emitted := 0
	for k := 0; k < r.cfg.Frames; k++ {
		select {
		case <-ctx.Done():
			return emitted, ctx.Err()
		default:
		}

		start := time.Now()
		f := r.renderFrame(g, k)

		if err := sink.WriteFrame(f); err != nil {
			return emitted, &RenderError{Frame: k, T: f.T, Err: fmt.Errorf("%w: %w", ErrSink, err)}
		}
		emitted++

		elapsed := time.Since(start)
		r.logger.Debug("frame rendered", "frame", k, "t", f.T, "elapsed", elapsed)
		for _, obs := range r.observers {
			obs.OnFrame(f, elapsed)
		}
	}

	return emitted, nil
}

// Frames returns the frame sequence lazily. Each iteration starts again at
// frame 0. A non-nil error ends the sequence.
func (r *Renderer) Frames(ctx context.Context) iter.Seq2[*Frame, error] {
	return func(yield func(*Frame, error) bool) {
		if r.cfg.Empty() {
			return
		}
		g, err := r.grid()
		if err != nil {
			yield(nil, &RenderError{Err: err})
			return
		}
		for k := 0; k < r.cfg.Frames; k++ {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(r.renderFrame(g, k), nil) {
				return
			}
		}
	}
}

// RenderFrame computes frame k on its own, in any order.
func (r *Renderer) RenderFrame(k int) (*Frame, error) {
	g, err := r.grid()
	if err != nil {
		return nil, &RenderError{Frame: k, Err: err}
	}
	if k < 0 || k >= r.cfg.Frames {
		return nil, &RenderError{Frame: k, Err: fmt.Errorf("%w: %d not in [0, %d)", ErrFrameRange, k, r.cfg.Frames)}
	}
	return r.renderFrame(g, k), nil
}

func (r *Renderer) renderFrame(g grid, k int) *Frame {
	f := NewFrame(k, r.cfg.Width, r.cfg.Height)
	f.T = g.t.Map(float64(k))

	parallelRows(r.cfg.Height, r.cfg.Workers, func(start, end int) {
		var sr, sg, sb expr.Stack
		for j := start; j < end; j++ {
			y := g.y.Map(float64(j))
			for i := 0; i < r.cfg.Width; i++ {
				c := expr.Coord{X: g.x.Map(float64(i)), Y: y, T: f.T}
				f.Set(i, j, colormap.FromValues(
					r.ch.R.EvalWith(&sr, c),
					r.ch.G.EvalWith(&sg, c),
					r.ch.B.EvalWith(&sb, c),
				))
			}
		}
	})

	return f
}
