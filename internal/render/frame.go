package render

import (
	"image"

	"github.com/san-kum/recart/internal/colormap"
)

// Frame is the pixel buffer for one time sample. Pixel (i, j) is column i,
// row j and lives at Pix[j*Width+i].
type Frame struct {
	Index  int
	T      float64
	Width  int
	Height int
	Pix    []colormap.RGB
}

func NewFrame(index, width, height int) *Frame {
	width, height = max(width, 0), max(height, 0)
	return &Frame{
		Index:  index,
		Width:  width,
		Height: height,
		Pix:    make([]colormap.RGB, width*height),
	}
}

func (f *Frame) Len() int { return len(f.Pix) }

func (f *Frame) At(i, j int) colormap.RGB { return f.Pix[j*f.Width+i] }

func (f *Frame) Set(i, j int, c colormap.RGB) { f.Pix[j*f.Width+i] = c }

// Image copies the frame into an opaque RGBA image.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for j := 0; j < f.Height; j++ {
		row := f.Pix[j*f.Width : (j+1)*f.Width]
		off := j * img.Stride
		for i, c := range row {
			img.Pix[off+4*i] = c.R
			img.Pix[off+4*i+1] = c.G
			img.Pix[off+4*i+2] = c.B
			img.Pix[off+4*i+3] = 0xff
		}
	}
	return img
}

// Clone returns a deep copy of f.
func (f *Frame) Clone() *Frame {
	c := *f
	c.Pix = make([]colormap.RGB, len(f.Pix))
	copy(c.Pix, f.Pix)
	return &c
}

// FrameFromImage converts a decoded image back into a frame.
func FrameFromImage(index int, img image.Image) *Frame {
	b := img.Bounds()
	f := NewFrame(index, b.Dx(), b.Dy())
	for j := 0; j < f.Height; j++ {
		for i := 0; i < f.Width; i++ {
			f.Set(i, j, colormap.FromColor(img.At(b.Min.X+i, b.Min.Y+j)))
		}
	}
	return f
}
