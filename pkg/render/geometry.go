package render

import (
	"github.com/RubenTipparach/cheiftan-engine/pkg/math3d"
)

// NearPlane is the clip-space w cutoff. Vertices with w at or below this are
// behind the camera and get clipped.
const NearPlane = 0.01

// Vertex is a mesh-side vertex: a model-space position, a texture coordinate,
// and an optional lighting intensity in [0, 1] supplied by the caller (used
// only when vertex lighting is enabled on the renderer).
type Vertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2
	Light    float64
}

// clipVertex is a vertex in clip space, before the perspective divide.
// Attributes interpolate linearly here, which is what makes near-plane
// clipping a plain lerp.
type clipVertex struct {
	pos   math3d.Vec4
	uv    math3d.Vec2
	light float64
}

// lerpClip interpolates all attributes between two clip-space vertices.
func lerpClip(a, b clipVertex, t float64) clipVertex {
	return clipVertex{
		pos:   a.pos.Lerp(b.pos, t),
		uv:    a.uv.Lerp(b.uv, t),
		light: a.light + (b.light-a.light)*t,
	}
}

// DrawTriangle3D transforms one mesh triangle through the current MVP,
// clips it against the near plane, projects it to the screen, culls
// back-facing results, and rasterizes the rest with tex.
//
// Counter-clockwise winding (as seen by the camera) is front-facing.
// SetMatrices must have been called first.
func (r *Renderer) DrawTriangle3D(v1, v2, v3 Vertex, tex *Texture) error {
	if !r.hasMatrices {
		return ErrNoMatrices
	}
	if tex == nil || tex.Width <= 0 || tex.Height <= 0 {
		return ErrNoTexture
	}

	var cv [3]clipVertex
	for i, v := range [3]Vertex{v1, v2, v3} {
		cv[i] = clipVertex{
			pos:   r.mvp.MulVec4(math3d.V4FromV3(v.Position, 1)),
			uv:    v.UV,
			light: v.Light,
		}
	}

	var behind [3]bool
	behindCount := 0
	for i := range cv {
		if cv[i].pos.W <= NearPlane {
			behind[i] = true
			behindCount++
		}
	}

	switch behindCount {
	case 3:
		// Entirely behind the camera.
		r.stats.TrianglesCulled++
		return nil

	case 0:
		r.projectTriangle(cv[0], cv[1], cv[2], tex)
		return nil
	}

	// The triangle straddles the near plane. Clipping yields at most two
	// output triangles, dispatched iteratively below.
	r.stats.TrianglesClipped++
	var out [2][3]clipVertex
	outCount := 0

	if behindCount == 1 {
		// One vertex behind: the visible region is a trapezoid, split into
		// two triangles. f1, f2 are the front vertices in winding order
		// after the behind vertex, so winding is preserved.
		bi := 0
		for i := range behind {
			if behind[i] {
				bi = i
				break
			}
		}
		v := cv[bi]
		f1 := cv[(bi+1)%3]
		f2 := cv[(bi+2)%3]

		a := lerpClip(f1, v, clipT(f1.pos.W, v.pos.W))
		b := lerpClip(f2, v, clipT(f2.pos.W, v.pos.W))

		out[0] = [3]clipVertex{f1, f2, a}
		out[1] = [3]clipVertex{f2, b, a}
		outCount = 2
	} else {
		// Two vertices behind: a single smaller triangle survives.
		fi := 0
		for i := range behind {
			if !behind[i] {
				fi = i
				break
			}
		}
		f := cv[fi]
		b1 := cv[(fi+1)%3]
		b2 := cv[(fi+2)%3]

		out[0] = [3]clipVertex{
			f,
			lerpClip(f, b1, clipT(f.pos.W, b1.pos.W)),
			lerpClip(f, b2, clipT(f.pos.W, b2.pos.W)),
		}
		outCount = 1
	}

	for i := range outCount {
		r.projectTriangle(out[i][0], out[i][1], out[i][2], tex)
	}
	return nil
}

// clipT returns the interpolation parameter at which the edge from a front
// vertex (w = fw) to a behind vertex (w = bw) crosses the near plane.
func clipT(fw, bw float64) float64 {
	return (NearPlane - fw) / (bw - fw)
}

// projectTriangle performs the perspective divide and viewport mapping for a
// clip-space triangle, culls it if back-facing, and hands it to the scanline
// rasterizer.
func (r *Renderer) projectTriangle(c1, c2, c3 clipVertex, tex *Texture) {
	halfW := float64(r.fb.Width) * 0.5
	halfH := float64(r.fb.Height) * 0.5
	tw := float64(tex.Width)
	th := float64(tex.Height)

	var sv [3]RasterVertex
	for i, c := range [3]clipVertex{c1, c2, c3} {
		invW := 1.0 / c.pos.W
		sv[i] = RasterVertex{
			X: (c.pos.X*invW + 1) * halfW,
			// Y is flipped: world +Y is up, screen +Y is down.
			Y:      (1 - c.pos.Y*invW) * halfH,
			Z:      c.pos.Z * invW,
			InvW:   invW,
			UoverW: c.uv.X * tw * invW,
			VoverW: c.uv.Y * th * invW,
			Light:  c.light,
		}
	}

	// Backface culling by the signed double area in screen space. The Y flip
	// above turns counter-clockwise mesh winding into a negative area, so
	// non-negative means back-facing (or degenerate).
	cross := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	if cross >= 0 {
		r.stats.TrianglesCulled++
		return
	}

	r.stats.TrianglesDrawn++
	r.scanTriangle(sv[0], sv[1], sv[2], tex)
}
