// Package obj imports the polygonal subset of Wavefront OBJ: vertex
// positions and faces. Texture and normal references, material
// statements and smoothing groups are skipped; all faces land in a
// single sub-mesh regardless of object or group statements.
package obj

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/importer"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/scene"
)

// Compile-time interface check.
var _ importer.Importer = (*Importer)(nil)

// Importer parses OBJ data.
type Importer struct{}

// New returns a new OBJ importer.
func New() *Importer {
	return &Importer{}
}

// CanImport reports whether hint names the OBJ format.
func (im *Importer) CanImport(hint string) bool {
	return hint == "obj"
}

// Import parses data as OBJ text. Faces keep their corner count here;
// polygon faces are handled by the Triangulate post-processing step.
func (im *Importer) Import(data []byte, opts importer.Options) (*scene.Scene, error) {
	sm := &scene.Mesh{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj: line %d: vertex needs 3 coordinates", lineNo)
			}
			var v mgl64.Vec3
			for j := 0; j < 3; j++ {
				f, err := strconv.ParseFloat(fields[j+1], 64)
				if err != nil {
					return nil, fmt.Errorf("obj: line %d: bad coordinate %q: %w", lineNo, fields[j+1], err)
				}
				v[j] = f
			}
			sm.Vertices = append(sm.Vertices, v)

		case "f":
			face := scene.Face{Indices: make([]uint32, 0, len(fields)-1)}
			for _, entry := range fields[1:] {
				idx, err := resolveIndex(entry, len(sm.Vertices))
				if err != nil {
					return nil, fmt.Errorf("obj: line %d: %w", lineNo, err)
				}
				face.Indices = append(face.Indices, idx)
			}
			sm.Faces = append(sm.Faces, face)

		case "o", "g":
			if len(fields) > 1 && sm.Name == "" {
				sm.Name = fields[1]
			}

		default:
			// vn, vt, s, mtllib, usemtl, comments: not geometry.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obj: scan: %w", err)
	}
	if len(sm.Vertices) == 0 && len(sm.Faces) == 0 {
		return nil, fmt.Errorf("obj: no geometry statements found")
	}

	root := scene.NewNode("obj")
	root.MeshIndices = []int{0}
	out := &scene.Scene{Meshes: []*scene.Mesh{sm}, Root: root}
	importer.ApplyOptions(out, opts)
	return out, nil
}

// resolveIndex turns one face entry ("7", "7/1", "7//3", "-2") into a
// zero-based vertex index. OBJ counts from 1; negative values count
// back from the most recently defined vertex.
func resolveIndex(entry string, defined int) (uint32, error) {
	if slash := strings.IndexByte(entry, '/'); slash >= 0 {
		entry = entry[:slash]
	}
	idx, err := strconv.Atoi(entry)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q: %w", entry, err)
	}
	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx = defined + idx
	default:
		return 0, fmt.Errorf("face index 0 is not valid, OBJ counts from 1")
	}
	if idx < 0 || idx >= defined {
		return 0, fmt.Errorf("face index %q outside the %d defined vertices", entry, defined)
	}
	return uint32(idx), nil
}
