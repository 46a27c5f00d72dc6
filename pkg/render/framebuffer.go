// Package render provides software rasterization for the Chieftan engine.
package render

import (
	"image"
	"image/png"
	"os"
)

// Framebuffer is a fixed-size 2D pixel surface. Pixels are stored as tightly
// packed RGBA8 bytes in row-major order, four bytes per pixel, so the raw
// data can be handed to a presenter without conversion.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []byte // Row-major RGBA pixel data, len = Width*Height*4
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// All pixels start opaque black.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
	fb.Clear(ColorBlack)
	return fb
}

// Clear fills the framebuffer with a solid color.
// Uses copy-doubling so the fill is a handful of memmoves.
func (fb *Framebuffer) Clear(c Color) {
	if len(fb.Pix) == 0 {
		return
	}
	fb.Pix[0] = c.R
	fb.Pix[1] = c.G
	fb.Pix[2] = c.B
	fb.Pix[3] = c.A
	for i := 4; i < len(fb.Pix); i *= 2 {
		copy(fb.Pix[i:], fb.Pix[:i])
	}
}

// Bytes returns the raw RGBA pixel data. The slice aliases the framebuffer
// storage; callers present it, they do not own it.
func (fb *Framebuffer) Bytes() []byte {
	return fb.Pix
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	i := (y*fb.Width + x) * 4
	fb.Pix[i] = c.R
	fb.Pix[i+1] = c.G
	fb.Pix[i+2] = c.B
	fb.Pix[i+3] = c.A
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	i := (y*fb.Width + x) * 4
	return Color{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3]}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect draws a filled rectangle.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c Color) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			fb.SetPixel(px, py, c)
		}
	}
}

// DrawRectOutline draws a rectangle outline.
func (fb *Framebuffer) DrawRectOutline(x, y, w, h int, c Color) {
	// Top and bottom
	for px := x; px < x+w; px++ {
		fb.SetPixel(px, y, c)
		fb.SetPixel(px, y+h-1, c)
	}
	// Left and right
	for py := y; py < y+h; py++ {
		fb.SetPixel(x, py, c)
		fb.SetPixel(x+w-1, py, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Pix)
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}
