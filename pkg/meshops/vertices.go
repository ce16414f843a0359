package meshops

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/mesh"
)

// FromTriangles assembles a mesh from an explicit vertex list and
// triangle index list. Vertices keep their order; indices are copied
// unchanged and trusted to be in range. Triangle and vertex normals
// are computed on the result. The inputs are never retained.
func FromTriangles(vertices []mgl64.Vec3, triangles []uint32) *mesh.Mesh {
	m := mesh.New(len(vertices), len(triangles)/3)
	for i, v := range vertices {
		m.SetVertex(i, v)
	}
	copy(m.Triangles, triangles)
	m.ComputeTriangleNormals()
	m.ComputeVertexNormals()
	return m
}

// FromVertices builds a mesh from a triangle soup: every three
// consecutive points form one triangle. Bit-identical points collapse
// onto a single vertex whose identifier is assigned in first-seen
// order, so corners shared between triangles become shared vertices.
// Nearly-equal points stay distinct; there is no tolerance.
func FromVertices(points []mgl64.Vec3) (*mesh.Mesh, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("meshops: %d points: %w", len(points), ErrFewPoints)
	}
	if rem := len(points) % 3; rem != 0 {
		log.Printf("warning: point count %d is not divisible by 3, dropping %d trailing points", len(points), rem)
	}

	usable := points[:len(points)-len(points)%3]
	seen := make(map[mgl64.Vec3]uint32, len(usable))
	var unique []mgl64.Vec3
	triangles := make([]uint32, 0, len(usable))
	for _, p := range usable {
		id, ok := seen[p]
		if !ok {
			id = uint32(len(unique))
			unique = append(unique, p)
			seen[p] = id
		}
		triangles = append(triangles, id)
	}
	return FromTriangles(unique, triangles), nil
}
