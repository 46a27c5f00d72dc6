package models

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/RubenTipparach/cheiftan-engine/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file into a Mesh. Faces with more than
// three vertices are fan-triangulated; missing normals are generated.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh := NewMesh(filepath.Base(path))

	var positions []math3d.Vec3
	var uvs []math3d.Vec2
	var normals []math3d.Vec3

	// OBJ indexes positions, UVs, and normals independently; the mesh wants
	// one vertex per unique combination.
	vertexCache := make(map[string]int)

	addVertex := func(spec string) (int, error) {
		if i, ok := vertexCache[spec]; ok {
			return i, nil
		}

		v := MeshVertex{}
		parts := strings.Split(spec, "/")

		pi, err := objIndex(parts[0], len(positions))
		if err != nil {
			return 0, err
		}
		v.Position = positions[pi]

		if len(parts) > 1 && parts[1] != "" {
			ti, err := objIndex(parts[1], len(uvs))
			if err != nil {
				return 0, err
			}
			v.UV = uvs[ti]
		}
		if len(parts) > 2 && parts[2] != "" {
			ni, err := objIndex(parts[2], len(normals))
			if err != nil {
				return 0, err
			}
			v.Normal = normals[ni]
		}

		i := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, v)
		vertexCache[spec] = i
		return i, nil
	}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, p)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: short texcoord", lineNo)
			}
			u, err1 := strconv.ParseFloat(fields[1], 64)
			v, err2 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: bad texcoord", lineNo)
			}
			uvs = append(uvs, math3d.V2(u, v))

		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, n)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, spec := range fields[1:] {
				i, err := addVertex(spec)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx = append(idx, i)
			}
			// Fan triangulation preserves the file's winding order.
			for i := 1; i+1 < len(idx); i++ {
				mesh.Faces = append(mesh.Faces, Face{
					V:        [3]int{idx[0], idx[i], idx[i+1]},
					Material: -1,
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if len(normals) == 0 {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()

	return mesh, nil
}

// objIndex resolves a 1-based (or negative, from-the-end) OBJ index.
func objIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	if n < 0 {
		n += count
	} else {
		n--
	}
	if n < 0 || n >= count {
		return 0, fmt.Errorf("index %q out of range", s)
	}
	return n, nil
}

// parseFloats3 parses three floats into a Vec3.
func parseFloats3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("want 3 components, got %d", len(fields))
	}
	var out [3]float64
	for i := range 3 {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("bad component %q", fields[i])
		}
		out[i] = f
	}
	return math3d.V3(out[0], out[1], out[2]), nil
}
