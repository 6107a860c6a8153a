package render

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/san-kum/recart/internal/colormap"
	"github.com/san-kum/recart/internal/expr"
)

// projectionChannels renders R=x, G=y, B=t so pixel values are predictable.
func projectionChannels(t *testing.T) expr.Channels {
	t.Helper()
	mk := func(p expr.Primitive) expr.Tree {
		tree, err := expr.NewTree(expr.NewLeaf(p))
		if err != nil {
			t.Fatalf("NewTree: %v", err)
		}
		return tree
	}
	return expr.Channels{R: mk(expr.SelectX), G: mk(expr.SelectY), B: mk(expr.SelectT)}
}

func TestRenderSmallImage(t *testing.T) {
	r := NewRandom(expr.NewSeededBuilder(1), Config{Width: 4, Height: 4, Frames: 1, Depth: 1})

	var sink MemorySink
	n, err := r.Render(context.Background(), &sink)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if n != 1 || len(sink.Frames) != 1 {
		t.Fatalf("expected 1 frame, got n=%d frames=%d", n, len(sink.Frames))
	}

	f := sink.Frames[0]
	if f.Len() != 16 {
		t.Errorf("expected 16 pixels, got %d", f.Len())
	}
}

func TestRenderKnownPixels(t *testing.T) {
	r := New(projectionChannels(t), Config{Width: 4, Height: 2, Frames: 2})

	var sink MemorySink
	if _, err := r.Render(context.Background(), &sink); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	xs := []uint8{0, 63, 127, 191}
	ys := []uint8{0, 127}
	ts := []uint8{0, 127}

	for k, f := range sink.Frames {
		for j := 0; j < f.Height; j++ {
			for i := 0; i < f.Width; i++ {
				want := colormap.RGB{R: xs[i], G: ys[j], B: ts[k]}
				if got := f.At(i, j); got != want {
					t.Errorf("frame %d pixel (%d,%d) = %+v, want %+v", k, i, j, got, want)
				}
			}
		}
	}
}

func TestRenderFrameOrder(t *testing.T) {
	ch := expr.NewSeededBuilder(5).BuildChannels(4)

	tests := []struct {
		name    string
		workers int
	}{
		{"sequential", 1},
		{"parallel", 4},
		{"more workers than rows", 64},
	}

	var reference []*Frame
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(ch, Config{Width: 24, Height: 20, Frames: 6, Workers: tt.workers})

			var sink MemorySink
			n, err := r.Render(context.Background(), &sink)
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if n != 6 {
				t.Fatalf("expected 6 frames, got %d", n)
			}
			for i, f := range sink.Frames {
				if f.Index != i {
					t.Errorf("frame %d emitted at position %d", f.Index, i)
				}
			}

			if reference == nil {
				reference = sink.Frames
				return
			}
			for k := range sink.Frames {
				for p := range sink.Frames[k].Pix {
					if sink.Frames[k].Pix[p] != reference[k].Pix[p] {
						t.Fatalf("frame %d pixel %d differs from sequential render", k, p)
					}
				}
			}
		})
	}
}

func TestRenderEmptyGrid(t *testing.T) {
	ch := expr.NewSeededBuilder(1).BuildChannels(2)
	cfgs := []Config{
		{Width: 0, Height: 4, Frames: 1},
		{Width: 4, Height: 0, Frames: 1},
		{Width: 4, Height: 4, Frames: 0},
		{Width: -2, Height: 4, Frames: 3},
	}

	for _, cfg := range cfgs {
		var sink MemorySink
		n, err := New(ch, cfg).Render(context.Background(), &sink)
		if err != nil || n != 0 || len(sink.Frames) != 0 {
			t.Errorf("config %+v: expected no-op, got n=%d err=%v", cfg, n, err)
		}
	}
}

func TestRenderFrameErrors(t *testing.T) {
	ch := expr.NewSeededBuilder(1).BuildChannels(2)

	_, err := New(ch, Config{Width: 4, Height: 4, Frames: 0}).RenderFrame(0)
	if !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}

	_, err = New(ch, Config{Width: 4, Height: 4, Frames: 3}).RenderFrame(3)
	if !errors.Is(err, ErrFrameRange) {
		t.Errorf("expected ErrFrameRange, got %v", err)
	}

	f, err := New(ch, Config{Width: 4, Height: 4, Frames: 3}).RenderFrame(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Index != 2 {
		t.Errorf("expected index 2, got %d", f.Index)
	}
}

func TestRenderOutOfOrderMatches(t *testing.T) {
	r := New(expr.NewSeededBuilder(9).BuildChannels(3), Config{Width: 8, Height: 8, Frames: 4})

	var sink MemorySink
	if _, err := r.Render(context.Background(), &sink); err != nil {
		t.Fatal(err)
	}

	for _, k := range []int{3, 0, 2, 1} {
		f, err := r.RenderFrame(k)
		if err != nil {
			t.Fatal(err)
		}
		if f.T != sink.Frames[k].T {
			t.Errorf("frame %d t = %v, want %v", k, f.T, sink.Frames[k].T)
		}
		for p := range f.Pix {
			if f.Pix[p] != sink.Frames[k].Pix[p] {
				t.Fatalf("frame %d differs when rendered out of order", k)
			}
		}
	}
}

func TestRenderCanceled(t *testing.T) {
	r := NewRandom(expr.NewSeededBuilder(1), Config{Width: 4, Height: 4, Frames: 10, Depth: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := r.Render(ctx, Discard)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 frames, got %d", n)
	}
}

func TestRenderSinkError(t *testing.T) {
	r := NewRandom(expr.NewSeededBuilder(1), Config{Width: 4, Height: 4, Frames: 5, Depth: 2})

	boom := errors.New("disk full")
	sink := SinkFunc(func(f *Frame) error {
		if f.Index == 2 {
			return boom
		}
		return nil
	})

	n, err := r.Render(context.Background(), sink)
	if n != 2 {
		t.Errorf("expected 2 emitted frames, got %d", n)
	}
	if !errors.Is(err, ErrSink) || !errors.Is(err, boom) {
		t.Errorf("expected sink error wrapping cause, got %v", err)
	}

	var re *RenderError
	if !errors.As(err, &re) || re.Frame != 2 {
		t.Errorf("expected RenderError for frame 2, got %v", err)
	}
}

func TestRenderObservers(t *testing.T) {
	r := NewRandom(expr.NewSeededBuilder(1), Config{Width: 4, Height: 4, Frames: 3, Depth: 2})

	var calls atomic.Int32
	var last int
	r.AddObserver(ObserverFunc(func(f *Frame, elapsed time.Duration) {
		calls.Add(1)
		last = f.Index
		if elapsed < 0 {
			t.Errorf("negative elapsed %v", elapsed)
		}
	}))

	if _, err := r.Render(context.Background(), Discard); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 observer calls, got %d", calls.Load())
	}
	if last != 2 {
		t.Errorf("expected last frame 2, got %d", last)
	}
}

func TestFramesRestartable(t *testing.T) {
	r := NewRandom(expr.NewSeededBuilder(4), Config{Width: 3, Height: 3, Frames: 4, Depth: 3})

	for pass := 0; pass < 2; pass++ {
		count := 0
		for f, err := range r.Frames(context.Background()) {
			if err != nil {
				t.Fatal(err)
			}
			if f.Index != count {
				t.Errorf("pass %d: expected frame %d, got %d", pass, count, f.Index)
			}
			count++
		}
		if count != 4 {
			t.Errorf("pass %d: expected 4 frames, got %d", pass, count)
		}
	}

	count := 0
	for range r.Frames(context.Background()) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("early break yielded %d frames", count)
	}
}

func TestParallelRowsCoversEveryRow(t *testing.T) {
	tests := []struct{ n, workers int }{
		{0, 4}, {1, 4}, {7, 2}, {16, 4}, {17, 4}, {100, 8}, {350, 3}, {5, 100},
	}

	for _, tt := range tests {
		hits := make([]atomic.Int32, tt.n)
		parallelRows(tt.n, tt.workers, func(start, end int) {
			for i := start; i < end; i++ {
				hits[i].Add(1)
			}
		})
		for i := range hits {
			if hits[i].Load() != 1 {
				t.Errorf("n=%d workers=%d: row %d visited %d times", tt.n, tt.workers, i, hits[i].Load())
			}
		}
	}
}

func BenchmarkRenderFrame(b *testing.B) {
	r := NewRandom(expr.NewSeededBuilder(1), Config{Width: 64, Height: 64, Frames: 1, Depth: 7})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.RenderFrame(0); err != nil {
			b.Fatal(err)
		}
	}
}
