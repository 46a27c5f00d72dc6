package render

import (
	"github.com/RubenTipparach/cheiftan-engine/pkg/math3d"
)

// Wireframe renders projected 3D lines over a framebuffer.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// DrawLine3D draws a line in 3D space.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	viewProj := w.camera.ViewProjectionMatrix()

	clipA := viewProj.MulVec4(math3d.V4FromV3(p1, 1))
	clipB := viewProj.MulVec4(math3d.V4FromV3(p2, 1))

	// Skip if both endpoints are behind the camera.
	if clipA.W <= NearPlane && clipB.W <= NearPlane {
		return
	}

	// Clip the line at the near plane so the surviving endpoint projects
	// sanely.
	if clipA.W <= NearPlane {
		clipA = clipB.Lerp(clipA, (NearPlane-clipB.W)/(clipA.W-clipB.W))
	} else if clipB.W <= NearPlane {
		clipB = clipA.Lerp(clipB, (NearPlane-clipA.W)/(clipB.W-clipA.W))
	}

	x0 := int((clipA.X/clipA.W + 1) * 0.5 * float64(w.fb.Width))
	y0 := int((1 - clipA.Y/clipA.W) * 0.5 * float64(w.fb.Height))
	x1 := int((clipB.X/clipB.W + 1) * 0.5 * float64(w.fb.Width))
	y1 := int((1 - clipB.Y/clipB.W) * 0.5 * float64(w.fb.Height))

	w.fb.DrawLine(x0, y0, x1, y1, color)
}

// DrawMesh renders a mesh's triangle edges.
func (w *Wireframe) DrawMesh(mesh MeshSource, transform math3d.Mat4, color Color) {
	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.GetFace(i)

		p0, _, _ := mesh.GetVertex(face[0])
		p1, _, _ := mesh.GetVertex(face[1])
		p2, _, _ := mesh.GetVertex(face[2])

		v0 := transform.MulVec3(p0)
		v1 := transform.MulVec3(p1)
		v2 := transform.MulVec3(p2)

		w.DrawLine3D(v0, v1, color)
		w.DrawLine3D(v1, v2, color)
		w.DrawLine3D(v2, v0, color)
	}
}

// DrawAxes draws a transform's local coordinate frame: X red, Y green,
// Z blue, each axis length units long.
func (w *Wireframe) DrawAxes(transform math3d.Mat4, length float64) {
	origin := transform.MulVec3(math3d.Zero3())
	for _, axis := range []struct {
		dir   math3d.Vec3
		color Color
	}{
		{math3d.V3(length, 0, 0), ColorRed},
		{math3d.V3(0, length, 0), ColorGreen},
		{math3d.V3(0, 0, length), ColorBlue},
	} {
		w.DrawLine3D(origin, transform.MulVec3(axis.dir), axis.color)
	}
}

// DrawGrid draws a square XZ-plane grid at height y, size units across with
// step spacing between lines.
func (w *Wireframe) DrawGrid(y, size, step float64, color Color) {
	half := size / 2
	for x := -half; x <= half; x += step {
		w.DrawLine3D(math3d.V3(x, y, -half), math3d.V3(x, y, half), color)
	}
	for z := -half; z <= half; z += step {
		w.DrawLine3D(math3d.V3(-half, y, z), math3d.V3(half, y, z), color)
	}
}

// DrawPoint marks a position with a small three-axis cross.
func (w *Wireframe) DrawPoint(pos math3d.Vec3, size float64, color Color) {
	h := size / 2
	w.DrawLine3D(pos.Sub(math3d.V3(h, 0, 0)), pos.Add(math3d.V3(h, 0, 0)), color)
	w.DrawLine3D(pos.Sub(math3d.V3(0, h, 0)), pos.Add(math3d.V3(0, h, 0)), color)
	w.DrawLine3D(pos.Sub(math3d.V3(0, 0, h)), pos.Add(math3d.V3(0, 0, h)), color)
}
