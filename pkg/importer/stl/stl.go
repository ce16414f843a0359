// Package stl imports binary and ASCII STL data and exports binary STL.
// STL carries bare facet soup, so the imported scene is a single
// sub-mesh under a single root node; vertex sharing is recovered by the
// JoinIdenticalVertices post-processing step.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/importer"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/mesh"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/scene"
)

// Compile-time interface check.
var _ importer.Importer = (*Importer)(nil)

// binary layout: 80-byte header, uint32 triangle count, then 50 bytes
// per triangle (normal, three vertices, attribute word).
const (
	headerSize     = 80
	triangleStride = 50
)

// Importer parses STL data.
type Importer struct{}

// New returns a new STL importer.
func New() *Importer {
	return &Importer{}
}

// CanImport reports whether hint names the STL format.
func (im *Importer) CanImport(hint string) bool {
	return hint == "stl"
}

// Import parses data as binary STL when the declared triangle count
// matches the payload size, as ASCII STL when the data starts with the
// "solid" keyword, and fails otherwise.
func (im *Importer) Import(data []byte, opts importer.Options) (*scene.Scene, error) {
	var (
		sm  *scene.Mesh
		err error
	)
	switch {
	case isBinary(data):
		sm = parseBinary(data)
	case bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")):
		sm, err = parseASCII(data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("stl: data is neither binary nor ASCII STL")
	}

	root := scene.NewNode("stl")
	root.MeshIndices = []int{0}
	sc := &scene.Scene{Meshes: []*scene.Mesh{sm}, Root: root}
	importer.ApplyOptions(sc, opts)
	return sc, nil
}

// isBinary checks whether the declared triangle count exactly accounts
// for the payload size. ASCII files that happen to start with a
// matching byte pattern cannot satisfy this.
func isBinary(data []byte) bool {
	if len(data) < headerSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[headerSize:])
	return len(data) == headerSize+4+int(count)*triangleStride
}

// parseBinary reads the facet records. The stored facet normals are
// ignored; normals are recomputed during mesh construction.
func parseBinary(data []byte) *scene.Mesh {
	count := int(binary.LittleEndian.Uint32(data[headerSize:]))
	sm := &scene.Mesh{
		Vertices: make([]mgl64.Vec3, 0, count*3),
		Faces:    make([]scene.Face, 0, count),
	}
	for i := 0; i < count; i++ {
		rec := data[headerSize+4+i*triangleStride:]
		for j := 0; j < 3; j++ {
			const normalSize = 12
			base := normalSize + j*12
			sm.Vertices = append(sm.Vertices, mgl64.Vec3{
				float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[base:]))),
				float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[base+4:]))),
				float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[base+8:]))),
			})
		}
		k := uint32(i * 3)
		sm.Faces = append(sm.Faces, scene.Face{Indices: []uint32{k, k + 1, k + 2}})
	}
	return sm
}

// parseASCII scans the keyword grammar, collecting vertex lines. Every
// group of three vertices forms one facet.
func parseASCII(data []byte) (*scene.Mesh, error) {
	sm := &scene.Mesh{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "solid":
			if len(fields) > 1 && sm.Name == "" {
				sm.Name = fields[1]
			}
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("stl: malformed vertex line %q", sc.Text())
			}
			var v mgl64.Vec3
			for j := 0; j < 3; j++ {
				f, err := strconv.ParseFloat(fields[j+1], 64)
				if err != nil {
					return nil, fmt.Errorf("stl: bad vertex coordinate %q: %w", fields[j+1], err)
				}
				v[j] = f
			}
			sm.Vertices = append(sm.Vertices, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("stl: scan: %w", err)
	}
	if len(sm.Vertices)%3 != 0 {
		return nil, fmt.Errorf("stl: truncated facet, %d trailing vertices", len(sm.Vertices)%3)
	}
	for i := 0; i < len(sm.Vertices); i += 3 {
		k := uint32(i)
		sm.Faces = append(sm.Faces, scene.Face{Indices: []uint32{k, k + 1, k + 2}})
	}
	return sm, nil
}

// Write emits m as binary STL. Triangle normals are taken from the mesh
// when present and recomputed from the winding otherwise.
func Write(w io.Writer, m *mesh.Mesh) error {
	var header [headerSize]byte
	copy(header[:], "geometric-shapes binary STL")
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("stl: write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(m.TriangleCount())); err != nil {
		return fmt.Errorf("stl: write triangle count: %w", err)
	}

	haveNormals := len(m.TriangleNormals) == m.TriangleCount()*3
	var rec struct {
		Normal [3]float32
		Verts  [3][3]float32
		Attr   uint16
	}
	for i := 0; i < m.TriangleCount(); i++ {
		var n mgl64.Vec3
		if haveNormals {
			n = mgl64.Vec3{m.TriangleNormals[i*3], m.TriangleNormals[i*3+1], m.TriangleNormals[i*3+2]}
		} else {
			n = faceNormal(m, i)
		}
		rec.Normal = [3]float32{float32(n.X()), float32(n.Y()), float32(n.Z())}
		a, b, c := m.Triangle(i)
		for j, vi := range [3]uint32{a, b, c} {
			v := m.Vertex(int(vi))
			rec.Verts[j] = [3]float32{float32(v.X()), float32(v.Y()), float32(v.Z())}
		}
		if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("stl: write triangle %d: %w", i, err)
		}
	}
	return nil
}

// faceNormal computes the unit normal of triangle i from its winding.
func faceNormal(m *mesh.Mesh, i int) mgl64.Vec3 {
	a, b, c := m.Triangle(i)
	s1 := m.Vertex(int(a)).Sub(m.Vertex(int(b)))
	s2 := m.Vertex(int(b)).Sub(m.Vertex(int(c)))
	n := s1.Cross(s2)
	if l := n.Len(); l > 0 {
		return n.Mul(1 / l)
	}
	return mgl64.Vec3{}
}
