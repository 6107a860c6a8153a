// Package render evaluates per-channel expression trees over a pixel grid and
// emits one [Frame] per time sample.
//
//   - [Renderer]: drives the time, x and y loops
//   - [Frame]: the pixel buffer for one time sample
//   - [Sink]: receives finished frames ([PNGSink], [GIFSink], [MemorySink])
//   - [Observer]: notified after each frame is emitted
//
// # Example
//
//	b := expr.NewSeededBuilder(seed)
//	r := render.NewRandom(b, render.Config{Width: 350, Height: 350, Frames: 51, Depth: 7})
//	n, err := r.Render(ctx, &render.PNGSink{Base: "frames/img"})
//
// # Ordering
//
// Frames are emitted in strictly increasing index order and each frame is
// handed to the sink before the next one is computed. With Config.Workers > 1
// the rows of a frame are split into disjoint chunks, one goroutine each, so
// every pixel is written by exactly one goroutine.
//
// # Thread Safety
//
// A Renderer may be used by one Render call at a time. Sinks are called from
// the goroutine running Render and need no locking of their own.
package render
