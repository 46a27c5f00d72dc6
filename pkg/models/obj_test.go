package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RubenTipparach/cheiftan-engine/pkg/math3d"
)

func writeOBJ(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.obj")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOBJTriangle(t *testing.T) {
	path := writeOBJ(t, `
# simple triangle
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
f 1/1 2/2 3/3
`)

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if mesh.VertexCount() != 3 || mesh.TriangleCount() != 1 {
		t.Fatalf("counts = %d vertices, %d faces", mesh.VertexCount(), mesh.TriangleCount())
	}

	pos, normal, uv := mesh.GetVertex(1)
	if pos != math3d.V3(1, 0, 0) {
		t.Errorf("vertex 1 position = %v", pos)
	}
	if uv != math3d.V2(1, 0) {
		t.Errorf("vertex 1 uv = %v", uv)
	}
	// No vn lines: normals are generated.
	if normal.Len() < 0.99 {
		t.Errorf("vertex 1 normal = %v, want generated unit normal", normal)
	}
}

func TestLoadOBJQuadTriangulation(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Fatalf("quad should fan into 2 triangles, got %d", mesh.TriangleCount())
	}
	if f := mesh.GetFace(0); f != [3]int{0, 1, 2} {
		t.Errorf("first fan triangle = %v", f)
	}
	if f := mesh.GetFace(1); f != [3]int{0, 2, 3} {
		t.Errorf("second fan triangle = %v", f)
	}
}

func TestLoadOBJNegativeIndices(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	pos, _, _ := mesh.GetVertex(0)
	if pos != math3d.V3(0, 0, 0) {
		t.Errorf("vertex 0 = %v", pos)
	}
}

func TestLoadOBJSharedVertexReuse(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3
f 1 3 4
`)

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	// The two shared corners appear once each.
	if mesh.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", mesh.VertexCount())
	}
}

func TestLoadOBJBadFace(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
f 1 2 9
`)
	if _, err := LoadOBJ(path); err == nil {
		t.Error("out-of-range face index should fail")
	}
}

func TestLoadOBJMissingFile(t *testing.T) {
	if _, err := LoadOBJ("/nonexistent/model.obj"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadOBJFullVertexSpec(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`)

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	_, normal, _ := mesh.GetVertex(0)
	if normal != math3d.V3(0, 0, 1) {
		t.Errorf("explicit normal = %v, want +Z", normal)
	}
}
