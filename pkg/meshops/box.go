package meshops

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/mesh"
)

// Box tessellates an axis-aligned box centered on the origin from its
// half extents: eight corner vertices and twelve triangles from a
// fixed table, wound to face outward. The extents are not validated;
// degenerate extents yield a degenerate mesh.
func Box(halfExtents mgl64.Vec3) *mesh.Mesh {
	x, y, z := halfExtents.X(), halfExtents.Y(), halfExtents.Z()

	vertices := []mgl64.Vec3{
		{-x, -y, -z},
		{x, -y, -z},
		{x, -y, z},
		{-x, -y, z},
		{-x, y, z},
		{-x, y, -z},
		{x, y, z},
		{x, y, -z},
	}
	triangles := []uint32{
		0, 1, 2,
		2, 3, 0,
		4, 3, 2,
		2, 6, 4,
		7, 6, 2,
		2, 1, 7,
		3, 4, 5,
		5, 0, 3,
		0, 5, 7,
		7, 1, 0,
		7, 5, 4,
		4, 6, 7,
	}
	return FromTriangles(vertices, triangles)
}
