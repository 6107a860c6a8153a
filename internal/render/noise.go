package render

import (
	"math/rand"

	"github.com/san-kum/recart/internal/colormap"
)

// Noise fills a frame with uniformly random colors. It is a quick check that
// the image path works end to end without building any trees.
func Noise(width, height int, rng *rand.Rand) *Frame {
	f := NewFrame(0, width, height)
	for i := range f.Pix {
		f.Pix[i] = colormap.FromChannels(
			rng.Intn(colormap.MaxChannel+1),
			rng.Intn(colormap.MaxChannel+1),
			rng.Intn(colormap.MaxChannel+1),
		)
	}
	return f
}
