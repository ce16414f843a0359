// Package importer defines the boundary between raw asset bytes and the
// scene representation. One backend per file format lives in a
// subpackage (stl, obj, gltf); consumers wire the set they need, the
// backends share the post-processing steps defined here.
package importer

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/scene"
)

// Options selects the post-processing steps a backend applies to a
// freshly parsed scene before returning it.
type Options struct {
	// Triangulate fan-triangulates faces with more than three corners.
	Triangulate bool
	// JoinIdenticalVertices merges bit-identical positions within each
	// sub-mesh and rewrites face indices accordingly.
	JoinIdenticalVertices bool
	// SortByType drops point and line faces so only surfaces remain.
	SortByType bool
	// OptimizeGraph prunes subtrees that reference no sub-mesh.
	OptimizeGraph bool
}

// DefaultOptions enables every post-processing step. This is the set
// mesh construction relies on.
var DefaultOptions = Options{
	Triangulate:           true,
	JoinIdenticalVertices: true,
	SortByType:            true,
	OptimizeGraph:         true,
}

// Importer parses one asset format into a scene.
type Importer interface {
	// CanImport reports whether the backend handles the given
	// normalized format hint ("stl", "obj", "gltf", ...).
	CanImport(hint string) bool
	// Import parses data and applies the requested post-processing.
	Import(data []byte, opts Options) (*scene.Scene, error)
}

// ApplyOptions runs the selected post-processing steps on a parsed
// scene. Backends call this once after parsing.
func ApplyOptions(sc *scene.Scene, opts Options) {
	if sc == nil {
		return
	}
	for _, m := range sc.Meshes {
		if opts.Triangulate {
			triangulateMesh(m)
		}
		if opts.SortByType {
			dropNonSurfaces(m)
		}
		if opts.JoinIdenticalVertices {
			joinVertices(m)
		}
	}
	if opts.OptimizeGraph && sc.Root != nil {
		pruneEmpty(sc.Root)
	}
}

// triangulateMesh replaces every face with more than three corners by a
// triangle fan anchored at its first corner. Winding is preserved.
func triangulateMesh(m *scene.Mesh) {
	needed := false
	for _, f := range m.Faces {
		if len(f.Indices) > 3 {
			needed = true
			break
		}
	}
	if !needed {
		return
	}
	out := make([]scene.Face, 0, len(m.Faces))
	for _, f := range m.Faces {
		if len(f.Indices) <= 3 {
			out = append(out, f)
			continue
		}
		for i := 1; i+1 < len(f.Indices); i++ {
			out = append(out, scene.Face{Indices: []uint32{f.Indices[0], f.Indices[i], f.Indices[i+1]}})
		}
	}
	m.Faces = out
}

// dropNonSurfaces removes point and line faces.
func dropNonSurfaces(m *scene.Mesh) {
	kept := m.Faces[:0]
	for _, f := range m.Faces {
		if len(f.Indices) >= 3 {
			kept = append(kept, f)
		}
	}
	m.Faces = kept
}

// joinVertices deduplicates bit-identical positions within a sub-mesh,
// keeping first-seen order, and rewrites the face indices.
func joinVertices(m *scene.Mesh) {
	if len(m.Vertices) == 0 {
		return
	}
	remap := make([]uint32, len(m.Vertices))
	seen := make(map[mgl64.Vec3]uint32, len(m.Vertices))
	unique := make([]mgl64.Vec3, 0, len(m.Vertices))
	for i, v := range m.Vertices {
		id, ok := seen[v]
		if !ok {
			id = uint32(len(unique))
			unique = append(unique, v)
			seen[v] = id
		}
		remap[i] = id
	}
	if len(unique) == len(m.Vertices) {
		return
	}
	m.Vertices = unique
	for fi := range m.Faces {
		indices := m.Faces[fi].Indices
		for j, idx := range indices {
			indices[j] = remap[idx]
		}
	}
}

// pruneEmpty removes child subtrees that reference no sub-mesh and
// reports whether the subtree rooted at n still references any.
func pruneEmpty(n *scene.Node) bool {
	kept := n.Children[:0]
	for _, child := range n.Children {
		if pruneEmpty(child) {
			kept = append(kept, child)
		}
	}
	n.Children = kept
	return len(n.MeshIndices) > 0 || len(kept) > 0
}
