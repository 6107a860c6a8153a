// Package stats summarizes rendered frames by their mean color.
package stats

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/recart/internal/render"
)

type Frame struct {
	Index     int     `json:"index"`
	T         float64 `json:"t"`
	MeanR     float64 `json:"mean_r"`
	MeanG     float64 `json:"mean_g"`
	MeanB     float64 `json:"mean_b"`
	Luminance float64 `json:"luminance"`
	Hue       float64 `json:"hue"`
}

// Compute averages every channel of f and derives HCL luminance and hue of
// the mean color. An empty frame has zero means.
func Compute(f *render.Frame) Frame {
	s := Frame{Index: f.Index, T: f.T}
	if f.Len() == 0 {
		return s
	}

	var r, g, b float64
	for _, c := range f.Pix {
		r += float64(c.R)
		g += float64(c.G)
		b += float64(c.B)
	}
	n := float64(f.Len())
	s.MeanR, s.MeanG, s.MeanB = r/n, g/n, b/n

	mean := colorful.Color{R: s.MeanR / 255, G: s.MeanG / 255, B: s.MeanB / 255}
	h, _, l := mean.Hcl()
	s.Luminance = l
	if math.IsNaN(h) {
		h = 0
	}
	s.Hue = h
	return s
}

// Collector is a render.Sink that records the stats of every frame.
type Collector struct {
	Frames []Frame
}

func (c *Collector) WriteFrame(f *render.Frame) error {
	c.Frames = append(c.Frames, Compute(f))
	return nil
}

// Series extracts one value per frame, in frame order.
func (c *Collector) Series(fn func(Frame) float64) []float64 {
	out := make([]float64, len(c.Frames))
	for i, f := range c.Frames {
		out[i] = fn(f)
	}
	return out
}
