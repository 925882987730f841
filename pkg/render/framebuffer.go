// Package render draws wireframe meshes into a framebuffer shown on a
// terminal with half-block characters.
package render

import (
	"image/color"
)

// Framebuffer is a row-major pixel grid. On a terminal each cell shows two
// pixel rows, so Height is twice the number of rows drawn.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA
}

func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates the pixels when the dimensions change. Contents are
// not kept.
func (fb *Framebuffer) Resize(width, height int) {
	if fb.Pixels != nil && width == fb.Width && height == fb.Height {
		return
	}
	fb.Width, fb.Height = width, height
	fb.Pixels = make([]color.RGBA, width*height)
}

func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

func (fb *Framebuffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return 0, false
	}
	return y*fb.Width + x, true
}

// SetPixel ignores writes outside the buffer.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if i, ok := fb.index(x, y); ok {
		fb.Pixels[i] = c
	}
}

// GetPixel returns transparent black outside the buffer.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if i, ok := fb.index(x, y); ok {
		return fb.Pixels[i]
	}
	return color.RGBA{}
}

// DrawLine draws the segment (x0, y0)-(x1, y1) with Bresenham's algorithm,
// both ends included.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx, sx := span(x0, x1)
	dy, sy := span(y0, y1)
	dy = -dy
	e := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// span returns the distance from a to b and the unit step toward b.
func span(a, b int) (int, int) {
	if b < a {
		return a - b, -1
	}
	return b - a, 1
}
