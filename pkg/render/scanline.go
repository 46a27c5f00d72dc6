package render

import "math"

// RasterVertex is a vertex ready for rasterization: projected to the screen,
// with its perspective-divided attributes. UoverW and VoverW carry the
// texture dimensions baked in, so recovering a texel index in the inner loop
// is a single multiply.
type RasterVertex struct {
	X, Y   float64 // Screen position
	Z      float64 // Post-divide depth (z/w)
	InvW   float64 // 1/w in clip space
	UoverW float64 // u * textureWidth / w
	VoverW float64 // v * textureHeight / w
	Light  float64 // Vertex intensity, interpolated linearly in screen space
}

// Degeneracy cutoffs for the DDA. Edges shorter than edgeEpsilon rows and
// spans narrower than spanEpsilon columns are skipped.
const (
	edgeEpsilon = 1.0 / 256  // 2^-8
	spanEpsilon = 1.0 / 2048 // 2^-11
)

// fogDither is the blend-factor offset applied on (col+row) parity to break
// up fog banding.
const fogDither = 1.0 / 255

// spanEdge is one side of a scanline span: the screen X where an edge
// crosses the current row, plus the interpolated attributes there.
// The same struct doubles as a per-row or per-column step.
type spanEdge struct {
	x     float64
	invW  float64
	u     float64
	v     float64
	z     float64
	light float64
}

// edgeAt returns the attribute set on the edge from a toward b, offset rows
// below a, where the edge spans dy rows. step receives the per-row deltas.
func edgeAt(a, b RasterVertex, dy, offset float64) (at, step spanEdge) {
	step = spanEdge{
		x:     (b.X - a.X) / dy,
		invW:  (b.InvW - a.InvW) / dy,
		u:     (b.UoverW - a.UoverW) / dy,
		v:     (b.VoverW - a.VoverW) / dy,
		z:     (b.Z - a.Z) / dy,
		light: (b.Light - a.Light) / dy,
	}
	at = spanEdge{
		x:     a.X + offset*step.x,
		invW:  a.InvW + offset*step.invW,
		u:     a.UoverW + offset*step.u,
		v:     a.VoverW + offset*step.v,
		z:     a.Z + offset*step.z,
		light: a.Light + offset*step.light,
	}
	return at, step
}

// advance moves an edge accumulator by one step.
func (e *spanEdge) advance(step spanEdge) {
	e.x += step.x
	e.invW += step.invW
	e.u += step.u
	e.v += step.v
	e.z += step.z
	e.light += step.light
}

// DrawTriangle rasterizes a triangle whose vertices are already projected.
// No clipping or culling is performed; the caller owns the inputs.
func (r *Renderer) DrawTriangle(v1, v2, v3 RasterVertex, tex *Texture) error {
	if tex == nil || tex.Width <= 0 || tex.Height <= 0 {
		return ErrNoTexture
	}
	r.stats.TrianglesDrawn++
	r.scanTriangle(v1, v2, v3, tex)
	return nil
}

// scanTriangle fills a projected triangle by walking its edges one row at a
// time. The long edge (top vertex to bottom vertex) is walked for the full
// height; the two short edges take over on their own halves, switching at
// the middle vertex. Each row's span is filled left to right with
// perspective-correct texture lookups and a depth test per pixel.
func (r *Renderer) scanTriangle(va, vb, vc RasterVertex, tex *Texture) {
	// Sort so va.Y <= vb.Y <= vc.Y.
	if vb.Y < va.Y {
		va, vb = vb, va
	}
	if vc.Y < va.Y {
		va, vc = vc, va
	}
	if vc.Y < vb.Y {
		vb, vc = vc, vb
	}

	h := r.fb.Height

	minRow := int(math.Ceil(va.Y))
	if minRow < 0 {
		minRow = 0
	}
	maxRow := int(math.Ceil(vc.Y)) - 1
	if maxRow > h-1 {
		maxRow = h - 1
	}
	if maxRow < minRow {
		return
	}

	dy := vc.Y - va.Y
	if dy < edgeEpsilon {
		return
	}

	// Major edge A→C, pre-stepped to the first integer row.
	major, majorStep := edgeAt(va, vc, dy, float64(minRow)-va.Y)

	// Minor edge: A→B until the middle vertex's row, then B→C.
	midRow := int(math.Ceil(vb.Y))

	var minor, minorStep spanEdge
	minorActive := false

	if dy1 := vb.Y - va.Y; math.Abs(dy1) >= edgeEpsilon && minRow < midRow {
		minor, minorStep = edgeAt(va, vb, dy1, float64(minRow)-va.Y)
		minorActive = true
	}

	dy2 := vc.Y - vb.Y
	lowerHalf := math.Abs(dy2) >= edgeEpsilon
	inLowerHalf := false

	for row := minRow; row <= maxRow; row++ {
		if !inLowerHalf && row >= midRow {
			inLowerHalf = true
			if lowerHalf {
				minor, minorStep = edgeAt(vb, vc, dy2, float64(row)-vb.Y)
				minorActive = true
			} else {
				minorActive = false
			}
		}

		if minorActive {
			r.scanSpan(row, minor, major, tex)
			minor.advance(minorStep)
		}
		major.advance(majorStep)
	}
}

// scanSpan fills one row between two edge crossings.
func (r *Renderer) scanSpan(row int, e1, e2 spanEdge, tex *Texture) {
	left, right := e1, e2
	if right.x < left.x {
		left, right = right, left
	}

	span := right.x - left.x
	if span < spanEpsilon {
		return
	}

	// Per-column steps from the left-to-right attribute difference.
	step := spanEdge{
		invW:  (right.invW - left.invW) / span,
		u:     (right.u - left.u) / span,
		v:     (right.v - left.v) / span,
		z:     (right.z - left.z) / span,
		light: (right.light - left.light) / span,
	}

	width := r.fb.Width
	startCol := int(math.Ceil(left.x))
	if startCol < 0 {
		startCol = 0
	}
	endCol := int(math.Ceil(right.x)) - 1
	if endCol > width-1 {
		endCol = width - 1
	}
	if endCol < startCol {
		return
	}

	// Pre-step attributes to the first integer column.
	colOff := float64(startCol) - left.x
	texW := left.invW + colOff*step.invW
	texU := left.u + colOff*step.u
	texV := left.v + colOff*step.v
	texZ := left.z + colOff*step.z
	texL := left.light + colOff*step.light

	pix := r.fb.Pix
	depth := r.depth
	texPix := tex.Pix
	tw, th := tex.Width, tex.Height
	rowOffset := row * width

	for col := startCol; col <= endCol; col++ {
		idx := rowOffset + col
		z := float32(texZ)
		if idx >= 0 && idx < len(depth) && z < depth[idx] {
			depth[idx] = z

			// Perspective-correct texel lookup: the accumulators carry u/w
			// and 1/w, dividing recovers u (already scaled by the texture
			// dimensions). Negative wrap results fold non-negative.
			var zRecip float64
			if texW != 0 {
				zRecip = 1 / texW
			}
			tx := int(math.Floor(texU*zRecip)) % tw
			if tx < 0 {
				tx += tw
			}
			ty := int(math.Floor(texV*zRecip)) % th
			if ty < 0 {
				ty += th
			}

			ti := (ty*tw + tx) * 4
			cr := float64(texPix[ti])
			cg := float64(texPix[ti+1])
			cb := float64(texPix[ti+2])

			if r.light.enabled {
				intensity := texL
				if intensity < r.light.ambient {
					intensity = r.light.ambient
				}
				if intensity > 1 {
					intensity = 1
				}
				cr *= intensity
				cg *= intensity
				cb *= intensity
			}

			if r.fog.enabled {
				// 1/invW is the view-space distance under the projection
				// contract (w = z_eye).
				t := (zRecip - r.fog.near) / (r.fog.far - r.fog.near)
				if t > 0 && t < 1 && (col+row)&1 == 1 {
					t += fogDither
				}
				if t < 0 {
					t = 0
				} else if t > 1 {
					t = 1
				}
				cr += (float64(r.fog.color.R) - cr) * t
				cg += (float64(r.fog.color.G) - cg) * t
				cb += (float64(r.fog.color.B) - cb) * t
			}

			// Round half up so convex blends hit their endpoints exactly.
			o := idx * 4
			pix[o] = uint8(cr + 0.5)
			pix[o+1] = uint8(cg + 0.5)
			pix[o+2] = uint8(cb + 0.5)
			pix[o+3] = 255
			r.stats.PixelsDrawn++
		}

		texW += step.invW
		texU += step.u
		texV += step.v
		texZ += step.z
		texL += step.light
	}
}
