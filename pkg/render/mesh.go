package render

import (
	"github.com/RubenTipparach/cheiftan-engine/pkg/math3d"
)

// MeshSource is implemented by the models package to feed indexed triangle
// lists to the renderer without a dependency cycle. Faces wind
// counter-clockwise when front-facing.
type MeshSource interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// BoundedMeshSource extends MeshSource with a local-space bounding box,
// enabling whole-mesh frustum culling before any triangle is submitted.
type BoundedMeshSource interface {
	MeshSource
	GetBounds() (min, max math3d.Vec3)
}

// DirectionalLight feeds the renderer's per-vertex lighting hook: a simple
// Lambert term per vertex with an ambient floor, interpolated across each
// triangle.
type DirectionalLight struct {
	Direction math3d.Vec3 // World-space direction toward the light
	Ambient   float64     // Minimum intensity in [0, 1]
}

// Intensity returns the vertex intensity for a world-space normal.
func (l DirectionalLight) Intensity(normal math3d.Vec3) float64 {
	lambert := normal.Dot(l.Direction.Normalize())
	if lambert < 0 {
		lambert = 0
	}
	return l.Ambient + (1-l.Ambient)*lambert
}

// meshCulled reports whether the mesh's transformed bounds fall entirely
// outside the camera frustum. Meshes without bounds are never culled here;
// their off-screen triangles still fall out in the per-triangle stage.
func meshCulled(mesh MeshSource, model math3d.Mat4, cam *Camera) bool {
	bounded, ok := mesh.(BoundedMeshSource)
	if !ok {
		return false
	}
	minB, maxB := bounded.GetBounds()
	worldBounds := AABB{Min: minB, Max: maxB}.Transform(model)
	return !cam.Frustum().IntersectAABB(worldBounds)
}

// DrawMesh renders an indexed mesh with the given model transform, camera,
// and texture. If light is non-nil, per-vertex Lambert intensities modulate
// the sampled texels. The mesh's bounds, when available, are tested against
// the camera frustum first so fully off-screen meshes cost nothing.
func (r *Renderer) DrawMesh(mesh MeshSource, model math3d.Mat4, cam *Camera, tex *Texture, light *DirectionalLight) error {
	if meshCulled(mesh, model, cam) {
		return nil
	}

	r.SetMatrices(cam.ViewProjectionMatrix().Mul(model), cam.Position)
	if light != nil {
		r.SetVertexLighting(true, light.Ambient)
	} else {
		r.SetVertexLighting(false, 0)
	}

	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.GetFace(i)

		var tri [3]Vertex
		for j, vi := range face {
			pos, normal, uv := mesh.GetVertex(vi)
			v := Vertex{Position: pos, UV: uv}
			if light != nil {
				worldNormal := model.MulVec3Dir(normal).Normalize()
				v.Light = light.Intensity(worldNormal)
			}
			tri[j] = v
		}

		if err := r.DrawTriangle3D(tri[0], tri[1], tri[2], tex); err != nil {
			return err
		}
	}
	return nil
}
