// Package scene holds the intermediate representation produced by the
// format importers: a tree of nodes carrying local transforms and
// references into a shared sub-mesh table. A scene is read-only once
// built; mesh construction walks it without mutating it.
package scene

import "github.com/go-gl/mathgl/mgl64"

// Scene is an imported asset: a node hierarchy plus the sub-meshes the
// nodes reference by index.
type Scene struct {
	Meshes []*Mesh
	Root   *Node
}

// HasMeshes returns true if the scene carries at least one sub-mesh.
func (s *Scene) HasMeshes() bool {
	return len(s.Meshes) > 0
}

// Node is one element of the scene hierarchy. Transform is the node's
// local transform, relative to its parent.
type Node struct {
	Name        string
	Transform   mgl64.Mat4
	MeshIndices []int
	Children    []*Node
}

// NewNode returns a node with the identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Transform: mgl64.Ident4()}
}

// Mesh is one imported sub-mesh: positions plus faces indexing them.
// Faces may have any number of corners; consumers that only handle
// triangles skip the rest.
type Mesh struct {
	Name     string
	Vertices []mgl64.Vec3
	Faces    []Face
}

// Face is a single polygon referencing vertices of its sub-mesh.
type Face struct {
	Indices []uint32
}
