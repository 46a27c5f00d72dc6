package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/RubenTipparach/cheiftan-engine/pkg/math3d"
)

// Sentinel errors for misuse of the draw entry points.
var (
	// ErrNoMatrices is returned when a 3D draw call arrives before SetMatrices.
	ErrNoMatrices = errors.New("render: draw without matrices set")
	// ErrNoTexture is returned when a draw call has a nil or empty texture.
	ErrNoTexture = errors.New("render: draw without texture")
)

// depthClear is the depth buffer sentinel. Any in-frustum fragment projects
// to a strictly smaller depth, so the first write to a pixel always passes.
const depthClear = math.MaxFloat32

// fogState holds the distance fog configuration.
type fogState struct {
	enabled bool
	near    float64
	far     float64
	color   Color
}

// lightState holds the per-vertex lighting configuration.
type lightState struct {
	enabled bool
	ambient float64 // Minimum intensity floor
}

// Renderer owns a framebuffer, a matching depth buffer, and the per-mesh
// transform state. It rasterizes textured triangles with perspective-correct
// interpolation and depth testing. A Renderer is not safe for concurrent use;
// all calls happen on the caller's goroutine.
type Renderer struct {
	fb    *Framebuffer
	depth []float32 // Row-major z/w values, same layout as the framebuffer

	mvp         math3d.Mat4
	cameraPos   math3d.Vec3
	hasMatrices bool

	fog   fogState
	light lightState

	stats FrameStats
}

// New creates a renderer with a width x height framebuffer and depth buffer.
// The buffers are allocated once and reused for the renderer's lifetime.
func New(width, height int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid resolution %dx%d", width, height)
	}
	r := &Renderer{
		fb:    NewFramebuffer(width, height),
		depth: make([]float32, width*height),
	}
	r.ClearBuffers()
	return r, nil
}

// Width returns the framebuffer width.
func (r *Renderer) Width() int {
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Renderer) Height() int {
	return r.fb.Height
}

// Framebuffer returns the renderer's framebuffer for overlay drawing and
// presentation.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// ImageData returns the raw RGBA bytes of the framebuffer.
func (r *Renderer) ImageData() []byte {
	return r.fb.Bytes()
}

// ClearBuffers resets the framebuffer to opaque black, the depth buffer to
// its far sentinel, and zeroes the frame statistics.
// Uses copy-doubling for both fills.
func (r *Renderer) ClearBuffers() {
	r.fb.Clear(ColorBlack)

	r.depth[0] = depthClear
	for i := 1; i < len(r.depth); i *= 2 {
		copy(r.depth[i:], r.depth[:i])
	}

	r.stats = FrameStats{}
}

// SetMatrices stores the composed model-view-projection matrix and the world
// camera position used for subsequent DrawTriangle3D calls. Call once per
// mesh, before submitting its triangles.
func (r *Renderer) SetMatrices(mvp math3d.Mat4, cameraPos math3d.Vec3) {
	r.mvp = mvp
	r.cameraPos = cameraPos
	r.hasMatrices = true
}

// CameraPosition returns the camera position of the last SetMatrices call.
func (r *Renderer) CameraPosition() math3d.Vec3 {
	return r.cameraPos
}

// SetFog configures depth fog. When enabled, shaded pixels blend toward the
// fog color as their view-space distance moves from near to far.
func (r *Renderer) SetFog(enabled bool, near, far float64, red, green, blue uint8) {
	r.fog = fogState{
		enabled: enabled,
		near:    near,
		far:     far,
		color:   RGB(red, green, blue),
	}
}

// SetVertexLighting enables modulation of sampled texels by the per-vertex
// intensity carried on submitted vertices. ambient is the minimum intensity;
// interpolated values are clamped to [ambient, 1].
func (r *Renderer) SetVertexLighting(enabled bool, ambient float64) {
	r.light = lightState{enabled: enabled, ambient: ambient}
}

// Stats returns the frame counters accumulated since the last ClearBuffers.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// DepthAt returns the depth buffer value at (x, y), or the clear sentinel if
// out of bounds. Intended for tests and debug overlays.
func (r *Renderer) DepthAt(x, y int) float32 {
	if x < 0 || x >= r.fb.Width || y < 0 || y >= r.fb.Height {
		return depthClear
	}
	return r.depth[y*r.fb.Width+x]
}
