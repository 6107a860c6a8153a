package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/recart/internal/colormap"
	"github.com/san-kum/recart/internal/render"
)

const halfBlock = "▀"

// Canvas is a grid of half-block cells. Each cell holds two pixels, so a
// canvas of Height cells covers 2*Height pixel rows.
type Canvas struct {
	Width, Height int
	top, bottom   []colormap.RGB
}

// NewCanvas samples f down to at most cols by rows cells, keeping the aspect
// ratio. Frames smaller than the limit are shown one pixel per half cell.
func NewCanvas(f *render.Frame, cols, rows int) *Canvas {
	c := &Canvas{}
	if f == nil || f.Len() == 0 || cols <= 0 || rows <= 0 {
		return c
	}

	scale := max(float64(f.Width)/float64(cols), float64(f.Height)/float64(2*rows), 1)
	c.Width = max(int(float64(f.Width)/scale), 1)
	pxRows := max(int(float64(f.Height)/scale), 1)
	c.Height = (pxRows + 1) / 2

	c.top = make([]colormap.RGB, c.Width*c.Height)
	c.bottom = make([]colormap.RGB, c.Width*c.Height)
	sample := func(cx, py int) colormap.RGB {
		i := min(int(float64(cx)*scale), f.Width-1)
		j := min(int(float64(py)*scale), f.Height-1)
		return f.At(i, j)
	}
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			idx := row*c.Width + col
			c.top[idx] = sample(col, 2*row)
			if 2*row+1 < pxRows {
				c.bottom[idx] = sample(col, 2*row+1)
			}
		}
	}
	return c
}

// Cell returns the upper and lower pixel of cell (col, row).
func (c *Canvas) Cell(col, row int) (top, bottom colormap.RGB) {
	idx := row*c.Width + col
	return c.top[idx], c.bottom[idx]
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			top, bottom := c.Cell(col, row)
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(top))).
				Background(lipgloss.Color(hexColor(bottom)))
			sb.WriteString(style.Render(halfBlock))
		}
		if row < c.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hexColor(c colormap.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
