package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"
)

// Texture is an immutable view of an RGBA8 image used for texture mapping.
// Pixels are tightly packed, row-major, four bytes per texel. Sampling is
// nearest-neighbor with repeat wrapping; coordinates outside the texture are
// folded back non-negative before indexing.
type Texture struct {
	Width  int
	Height int
	Pix    []byte // Row-major RGBA texel data
}

// NewTexture creates an empty (opaque black) texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	pix := make([]byte, width*height*4)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 255
	}
	return &Texture{
		Width:  width,
		Height: height,
		Pix:    pix,
	}
}

// LoadTexture loads a texture from an image file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return TextureFromImage(img), nil
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	tex := NewTexture(width, height)

	for y := range height {
		for x := range width {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			r, g, b, a := c.RGBA()
			// RGBA returns 16-bit values, scale to 8-bit
			tex.SetPixel(x, y, Color{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: uint8(a >> 8),
			})
		}
	}

	return tex
}

// NewSolidTexture creates a single-color texture.
func NewSolidTexture(width, height int, c Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			tex.SetPixel(x, y, c)
		}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			cx := x / checkSize
			cy := y / checkSize
			if (cx+cy)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// NewGradientTexture creates a horizontal gradient texture.
func NewGradientTexture(width, height int, left, right Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			t := float64(x) / float64(width-1)
			tex.SetPixel(x, y, LerpColor(left, right, t))
		}
	}
	return tex
}

// SetPixel sets a texel. Only meaningful while building a texture; the
// rasterizer treats the data as immutable for the duration of a draw call.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	i := (y*t.Width + x) * 4
	t.Pix[i] = c.R
	t.Pix[i+1] = c.G
	t.Pix[i+2] = c.B
	t.Pix[i+3] = c.A
}

// GetPixel returns the texel at (x, y) with bounds checking.
func (t *Texture) GetPixel(x, y int) Color {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return Color{}
	}
	i := (y*t.Width + x) * 4
	return Color{t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3]}
}

// texelOffset returns the byte offset of the texel at wrapped coordinates.
// x and y may be any integers; they wrap modulo the texture dimensions with
// negative results folded non-negative.
func (t *Texture) texelOffset(x, y int) int {
	x %= t.Width
	if x < 0 {
		x += t.Width
	}
	y %= t.Height
	if y < 0 {
		y += t.Height
	}
	return (y*t.Width + x) * 4
}

// Sample samples the texture at UV coordinates (0-1 range) using
// nearest-neighbor filtering with repeat wrapping.
func (t *Texture) Sample(u, v float64) Color {
	x := int(math.Floor(u * float64(t.Width)))
	y := int(math.Floor(v * float64(t.Height)))
	i := t.texelOffset(x, y)
	return Color{t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3]}
}
