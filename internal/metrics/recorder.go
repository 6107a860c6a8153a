// Package metrics exports render timings as Prometheus collectors.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/recart/internal/render"
)

const namespace = "recart"

// Recorder is a render.Observer counting frames, pixels and per-frame render
// time.
type Recorder struct {
	frames   prometheus.Counter
	pixels   prometheus.Counter
	duration prometheus.Histogram

	mu      sync.Mutex
	count   int
	total   time.Duration
	slowest time.Duration
}

// NewRecorder creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_rendered_total",
			Help:      "Total number of frames rendered and handed to a sink",
		}),
		pixels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pixels_rendered_total",
			Help:      "Total number of pixels evaluated",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_render_seconds",
			Help:      "Time to render and emit one frame",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{r.frames, r.pixels, r.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

func (r *Recorder) OnFrame(f *render.Frame, elapsed time.Duration) {
	r.frames.Inc()
	r.pixels.Add(float64(f.Len()))
	r.duration.Observe(elapsed.Seconds())

	r.mu.Lock()
	r.count++
	r.total += elapsed
	r.slowest = max(r.slowest, elapsed)
	r.mu.Unlock()
}

type Snapshot struct {
	Frames  int
	Total   time.Duration
	Mean    time.Duration
	Slowest time.Duration
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{Frames: r.count, Total: r.total, Slowest: r.slowest}
	if r.count > 0 {
		s.Mean = r.total / time.Duration(r.count)
	}
	return s
}

// FramesPerSecond is the mean frame throughput, or 0 before any frame.
func (s Snapshot) FramesPerSecond() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Total.Seconds()
}
