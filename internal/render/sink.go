package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
)

// Sink receives finished frames. Ownership of the frame passes to the sink.
type Sink interface {
	WriteFrame(f *Frame) error
}

type SinkFunc func(f *Frame) error

func (fn SinkFunc) WriteFrame(f *Frame) error { return fn(f) }

// PNGSink writes frame k to Base + k + ".png".
type PNGSink struct {
	Base string

	written []string
}

func (s *PNGSink) Path(k int) string {
	return s.Base + strconv.Itoa(k) + ".png"
}

func (s *PNGSink) WriteFrame(f *Frame) error {
	path := s.Path(f.Index)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if err := writePNG(path, f.Image()); err != nil {
		return err
	}
	s.written = append(s.written, path)
	return nil
}

// Written lists the files written so far, in frame order.
func (s *PNGSink) Written() []string { return s.written }

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}

// WritePNG encodes a single frame to path.
func WritePNG(path string, f *Frame) error {
	return writePNG(path, f.Image())
}

// DefaultGIFDelay is the per-frame delay in hundredths of a second.
const DefaultGIFDelay = 4

// GIFSink collects frames and writes them as one looping animation on Close.
type GIFSink struct {
	Path  string
	Delay int

	anim gif.GIF
}

func NewGIFSink(path string, delay int) *GIFSink {
	if delay <= 0 {
		delay = DefaultGIFDelay
	}
	return &GIFSink{Path: path, Delay: delay, anim: gif.GIF{LoopCount: 0}}
}

func (s *GIFSink) WriteFrame(f *Frame) error {
	img := f.Image()
	bounds := img.Bounds()
	pal := image.NewPaletted(bounds, palette.Plan9)
	draw.FloydSteinberg.Draw(pal, bounds, img, image.Point{})

	s.anim.Image = append(s.anim.Image, pal)
	s.anim.Delay = append(s.anim.Delay, s.Delay)
	return nil
}

// Len is the number of frames collected.
func (s *GIFSink) Len() int { return len(s.anim.Image) }

// Close encodes the collected frames. It does nothing if no frame arrived.
func (s *GIFSink) Close() error {
	if len(s.anim.Image) == 0 {
		return nil
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	file, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(file, &s.anim); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", s.Path, err)
	}
	return file.Close()
}

// MemorySink keeps every frame it receives, in order.
type MemorySink struct {
	Frames []*Frame
}

func (s *MemorySink) WriteFrame(f *Frame) error {
	s.Frames = append(s.Frames, f)
	return nil
}

type multiSink []Sink

// MultiSink hands each frame to every sink in order, stopping at the first
// error.
func MultiSink(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) WriteFrame(f *Frame) error {
	for _, s := range m {
		if err := s.WriteFrame(f); err != nil {
			return err
		}
	}
	return nil
}

// Discard drops every frame.
var Discard Sink = SinkFunc(func(*Frame) error { return nil })
