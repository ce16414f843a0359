// Package meshops constructs canonical triangle meshes: from raw
// triangle soups, from explicit vertex and index lists, from imported
// scene graphs, from retrievable assets and from parametric
// primitives. Every construction returns a freshly allocated mesh
// with triangle and vertex normals computed; results share no state
// with their inputs or with each other.
package meshops

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/importer"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/importer/gltf"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/importer/obj"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/importer/stl"
)

// DefaultScale leaves loaded geometry at its authored size. The
// unscaled entry points pass it through.
var DefaultScale = mgl64.Vec3{1, 1, 1}

// Distinct failure conditions, discriminable with errors.Is.
var (
	// ErrFewPoints is returned when fewer than three points are given;
	// they cannot form a triangle.
	ErrFewPoints = errors.New("fewer than three points")
	// ErrEmptyData is returned for an empty asset buffer.
	ErrEmptyData = errors.New("empty asset data")
	// ErrNoScene is returned when no importer produces a scene from
	// the asset data.
	ErrNoScene = errors.New("no importable scene in asset data")
	// ErrNoMeshes is returned when the imported scene carries no
	// sub-meshes at all.
	ErrNoMeshes = errors.New("scene has no meshes")
	// ErrNoVertices is returned when the scene's sub-meshes carry no
	// vertices.
	ErrNoVertices = errors.New("scene has no vertices")
	// ErrNoTriangles is returned when flattening the scene yields no
	// triangles.
	ErrNoTriangles = errors.New("scene has no triangles")
)

// importers is the built-in backend set. Hint selection consults it in
// order; content-based fallback does too.
var importers = []importer.Importer{
	stl.New(),
	obj.New(),
	gltf.New(),
}
