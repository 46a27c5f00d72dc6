package render

import (
	"image"
	"testing"
)

func TestTextureSampleNearest(t *testing.T) {
	tex := NewTexture(2, 2)
	tex.SetPixel(0, 0, ColorRed)
	tex.SetPixel(1, 0, ColorGreen)
	tex.SetPixel(0, 1, ColorBlue)
	tex.SetPixel(1, 1, ColorYellow)

	tests := []struct {
		name string
		u, v float64
		want Color
	}{
		{"top left", 0.1, 0.1, ColorRed},
		{"top right", 0.9, 0.1, ColorGreen},
		{"bottom left", 0.1, 0.9, ColorBlue},
		{"bottom right", 0.9, 0.9, ColorYellow},
		{"wrap positive", 1.1, 0.1, ColorRed},
		{"wrap negative", -0.1, 0.1, ColorGreen},
		{"wrap far negative", -1.9, 0.1, ColorRed},
		{"wrap both", 2.6, 3.6, ColorYellow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Sample(tc.u, tc.v); got != tc.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestTexelOffsetWrapsNegative(t *testing.T) {
	tex := NewTexture(4, 4)
	if got, want := tex.texelOffset(-1, 0), (0*4+3)*4; got != want {
		t.Errorf("texelOffset(-1, 0) = %d, want %d", got, want)
	}
	if got, want := tex.texelOffset(0, -1), (3*4+0)*4; got != want {
		t.Errorf("texelOffset(0, -1) = %d, want %d", got, want)
	}
	if got, want := tex.texelOffset(5, 6), (2*4+1)*4; got != want {
		t.Errorf("texelOffset(5, 6) = %d, want %d", got, want)
	}
}

func TestTexturePixelBounds(t *testing.T) {
	tex := NewTexture(4, 4)
	tex.SetPixel(-1, 0, ColorRed) // Should not panic or write
	tex.SetPixel(0, 100, ColorRed)

	if c := tex.GetPixel(-1, 0); c != (Color{}) {
		t.Errorf("out-of-bounds GetPixel = %v, want zero", c)
	}
	if c := tex.GetPixel(0, 0); c != RGBA(0, 0, 0, 255) {
		t.Errorf("fresh texel = %v, want opaque black", c)
	}
}

func TestNewCheckerTexture(t *testing.T) {
	tex := NewCheckerTexture(4, 4, 2, ColorWhite, ColorBlack)

	if c := tex.GetPixel(0, 0); c != ColorWhite {
		t.Errorf("(0,0) = %v, want white", c)
	}
	if c := tex.GetPixel(2, 0); c != ColorBlack {
		t.Errorf("(2,0) = %v, want black", c)
	}
	if c := tex.GetPixel(2, 2); c != ColorWhite {
		t.Errorf("(2,2) = %v, want white", c)
	}
}

func TestNewGradientTexture(t *testing.T) {
	tex := NewGradientTexture(8, 1, ColorBlack, ColorWhite)

	left := tex.GetPixel(0, 0)
	right := tex.GetPixel(7, 0)
	if left.R != 0 || right.R != 255 {
		t.Errorf("gradient endpoints = %v .. %v", left, right)
	}
	prev := -1
	for x := 0; x < 8; x++ {
		c := tex.GetPixel(x, 0)
		if int(c.R) < prev {
			t.Errorf("gradient not monotonic at %d", x)
		}
		prev = int(c.R)
	}
}

func TestNewSolidTexture(t *testing.T) {
	tex := NewSolidTexture(3, 3, ColorCyan)
	for y := range 3 {
		for x := range 3 {
			if c := tex.GetPixel(x, y); c != ColorCyan {
				t.Fatalf("(%d,%d) = %v, want cyan", x, y, c)
			}
		}
	}
}

func TestTextureFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, ColorRed)
	img.SetRGBA(1, 0, ColorBlue)

	tex := TextureFromImage(img)
	if tex.Width != 2 || tex.Height != 1 {
		t.Fatalf("dims = %dx%d, want 2x1", tex.Width, tex.Height)
	}
	if c := tex.GetPixel(0, 0); c != ColorRed {
		t.Errorf("(0,0) = %v, want red", c)
	}
	if c := tex.GetPixel(1, 0); c != ColorBlue {
		t.Errorf("(1,0) = %v, want blue", c)
	}
}

func TestLoadTextureMissingFile(t *testing.T) {
	if _, err := LoadTexture("/nonexistent/texture.png"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestColorHelpers(t *testing.T) {
	if c := MultiplyColor(RGB(100, 200, 50), 0.5); c.R != 50 || c.G != 100 || c.B != 25 {
		t.Errorf("MultiplyColor = %v", c)
	}
	if c := MultiplyColor(RGB(200, 200, 200), 2); c.R != 255 {
		t.Errorf("MultiplyColor should clamp, got %v", c)
	}
	if c := ModulateColor(ColorWhite, RGB(10, 20, 30)); c.R != 10 || c.G != 20 || c.B != 30 {
		t.Errorf("ModulateColor = %v", c)
	}
	if c := LerpColor(ColorBlack, ColorWhite, 0.5); c.R != 127 {
		t.Errorf("LerpColor = %v", c)
	}
}
