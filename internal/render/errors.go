package render

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInterval indicates a degenerate remapping interval, which
	// happens when a frame is requested from a zero-sized grid.
	ErrInvalidInterval = errors.New("render: invalid interval")

	// ErrFrameRange indicates a frame index outside [0, Frames).
	ErrFrameRange = errors.New("render: frame index out of range")

	// ErrSink indicates the sink rejected a frame.
	ErrSink = errors.New("render: sink failed")
)

// RenderError wraps an error with the frame it occurred on.
type RenderError struct {
	Frame int
	T     float64
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.T, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
