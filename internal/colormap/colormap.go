// Package colormap converts signed unit-range channel values into 8-bit color.
package colormap

import (
	"image/color"

	"github.com/san-kum/recart/internal/interval"
)

const MaxChannel = 255

var channelMapping = interval.MustMapping(interval.Unit, interval.Interval{Lo: 0, Hi: MaxChannel})

// Quantize maps v from [-1, 1] onto [0, 255], truncating toward zero.
// Values outside [-1, 1] are not clamped and land outside [0, 255].
func Quantize(v float64) int {
	return int(channelMapping.Map(v))
}

type RGB struct {
	R, G, B uint8
}

// FromChannels narrows quantized channels into an RGB. Channels are expected
// to be in [0, 255]; anything else wraps.
func FromChannels(r, g, b int) RGB {
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// FromValues quantizes three channel values.
func FromValues(r, g, b float64) RGB {
	return FromChannels(Quantize(r), Quantize(g), Quantize(b))
}

func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}
