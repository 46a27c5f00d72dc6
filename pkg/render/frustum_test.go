package render

import (
	"math"
	"testing"

	"github.com/RubenTipparach/cheiftan-engine/pkg/math3d"
)

func TestPlaneDistanceToPoint(t *testing.T) {
	// Plane at Z=0, normal pointing +Z
	plane := Plane{Normal: math3d.V3(0, 0, 1), D: 0}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected float64
	}{
		{"origin", math3d.V3(0, 0, 0), 0},
		{"in front", math3d.V3(0, 0, 5), 5},
		{"behind", math3d.V3(0, 0, -3), -3},
		{"offset XY", math3d.V3(10, -5, 2), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist := plane.DistanceToPoint(tc.point)
			if math.Abs(dist-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", dist, tc.expected)
			}
		})
	}
}

func TestPlaneNormalize(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	plane.Normalize()

	// Normal should have length 1
	length := plane.Normal.Len()
	if math.Abs(length-1.0) > 1e-9 {
		t.Errorf("normalized normal length = %v, want 1.0", length)
	}

	// Check components (3/5, 4/5)
	if math.Abs(plane.Normal.Y-0.6) > 1e-9 {
		t.Errorf("normal.Y = %v, want 0.6", plane.Normal.Y)
	}
	if math.Abs(plane.Normal.Z-0.8) > 1e-9 {
		t.Errorf("normal.Z = %v, want 0.8", plane.Normal.Z)
	}

	// D should be scaled too (10/5 = 2)
	if math.Abs(plane.D-2.0) > 1e-9 {
		t.Errorf("D = %v, want 2.0", plane.D)
	}
}

func TestAABBBasics(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -2, -3), math3d.V3(1, 2, 3))

	center := box.Center()
	if center.X != 0 || center.Y != 0 || center.Z != 0 {
		t.Errorf("center = %v, want (0, 0, 0)", center)
	}

	size := box.Size()
	if size.X != 2 || size.Y != 4 || size.Z != 6 {
		t.Errorf("size = %v, want (2, 4, 6)", size)
	}

	halfSize := box.HalfSize()
	if halfSize.X != 1 || halfSize.Y != 2 || halfSize.Z != 3 {
		t.Errorf("halfSize = %v, want (1, 2, 3)", halfSize)
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := NewAABB(math3d.V3(0, 0, 0), math3d.V3(10, 10, 10))

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center", math3d.V3(5, 5, 5), true},
		{"corner min", math3d.V3(0, 0, 0), true},
		{"corner max", math3d.V3(10, 10, 10), true},
		{"edge", math3d.V3(5, 0, 5), true},
		{"outside X", math3d.V3(11, 5, 5), false},
		{"outside Y", math3d.V3(5, -1, 5), false},
		{"outside Z", math3d.V3(5, 5, 15), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := box.ContainsPoint(tc.point)
			if result != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, result, tc.expected)
			}
		})
	}
}

func TestAABBTransform(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	t.Run("translation", func(t *testing.T) {
		trans := math3d.Translate(math3d.V3(10, 20, 30))
		transformed := box.Transform(trans)

		if transformed.Min.X != 9 || transformed.Min.Y != 19 || transformed.Min.Z != 29 {
			t.Errorf("translated min = %v, want (9, 19, 29)", transformed.Min)
		}
		if transformed.Max.X != 11 || transformed.Max.Y != 21 || transformed.Max.Z != 31 {
			t.Errorf("translated max = %v, want (11, 21, 31)", transformed.Max)
		}
	})

	t.Run("rotation grows bounds", func(t *testing.T) {
		rot := math3d.RotateY(math.Pi / 4)
		transformed := box.Transform(rot)

		// A unit cube rotated 45° around Y spans sqrt(2) on X and Z.
		want := math.Sqrt(2)
		if math.Abs(transformed.Max.X-want) > 1e-9 {
			t.Errorf("rotated max.X = %v, want %v", transformed.Max.X, want)
		}
		if math.Abs(transformed.Max.Y-1) > 1e-9 {
			t.Errorf("rotated max.Y = %v, want 1", transformed.Max.Y)
		}
	})
}

// testFrustum builds a frustum from a camera at the origin looking +Z.
func testFrustum() Frustum {
	proj := math3d.Perspective(math.Pi/2, 1, 0.1, 100)
	return NewFrustumFromMatrix(proj)
}

func TestFrustumContainsPoint(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"straight ahead", math3d.V3(0, 0, 10), true},
		{"behind", math3d.V3(0, 0, -10), false},
		{"closer than near", math3d.V3(0, 0, 0.01), false},
		{"past far", math3d.V3(0, 0, 200), false},
		{"inside left edge", math3d.V3(-9, 0, 10), true},
		{"outside left edge", math3d.V3(-11, 0, 10), false},
		{"outside top", math3d.V3(0, 11, 10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectAABB(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name     string
		box      AABB
		expected bool
	}{
		{"fully inside", NewAABB(math3d.V3(-1, -1, 5), math3d.V3(1, 1, 7)), true},
		{"straddles near plane", NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1)), true},
		{"fully behind", NewAABB(math3d.V3(-1, -1, -10), math3d.V3(1, 1, -5)), false},
		{"far off to the side", NewAABB(math3d.V3(100, 0, 5), math3d.V3(102, 1, 6)), false},
		{"huge box surrounding frustum", NewAABB(math3d.V3(-1000, -1000, -1000), math3d.V3(1000, 1000, 1000)), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.IntersectAABB(tc.box); got != tc.expected {
				t.Errorf("IntersectAABB(%v) = %v, want %v", tc.box, got, tc.expected)
			}
		})
	}
}

func TestCameraFrustumTracksPosition(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(1)
	cam.SetClipPlanes(0.1, 100)
	cam.SetPosition(math3d.V3(0, 0, -5))
	cam.LookAt(math3d.Zero3())

	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	if !cam.Frustum().IntersectAABB(box) {
		t.Error("box in front of camera should be visible")
	}

	// Turn the camera around: the same box is now behind it.
	cam.LookAt(math3d.V3(0, 0, -10))
	if cam.Frustum().IntersectAABB(box) {
		t.Error("box behind camera should be culled")
	}
}

func BenchmarkFrustumIntersectAABB(b *testing.B) {
	f := testFrustum()
	box := NewAABB(math3d.V3(-1, -1, 5), math3d.V3(1, 1, 7))

	for b.Loop() {
		_ = f.IntersectAABB(box)
	}
}
