package meshops

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/scene"
)

// flattenNode appends the triangles of a node's sub-meshes to the
// flattened arrays, then recurses into its children. The transform
// accumulates parent * local on the way down. Recursion depth is
// bounded by the depth of the importer-produced tree.
func flattenNode(sc *scene.Scene, n *scene.Node, parent mgl64.Mat4, scale mgl64.Vec3, vertices *[]mgl64.Vec3, triangles *[]uint32) {
	if n == nil {
		return
	}
	transform := parent.Mul4(n.Transform)
	for _, mi := range n.MeshIndices {
		if mi < 0 || mi >= len(sc.Meshes) {
			continue
		}
		appendSubMesh(sc.Meshes[mi], transform, scale, vertices, triangles)
	}
	for _, child := range n.Children {
		flattenNode(sc, child, transform, scale, vertices, triangles)
	}
}

// appendSubMesh transforms one sub-mesh into the flattened arrays. The
// identifier offset is recorded before the vertices are appended so
// face indices stay valid; vertices are never merged across
// sub-meshes, even when two sub-meshes contain identical positions.
// The scale applies per axis after transformation. Faces that are not
// triangles are skipped.
func appendSubMesh(sm *scene.Mesh, transform mgl64.Mat4, scale mgl64.Vec3, vertices *[]mgl64.Vec3, triangles *[]uint32) {
	offset := uint32(len(*vertices))
	for _, v := range sm.Vertices {
		p := mgl64.TransformCoordinate(v, transform)
		*vertices = append(*vertices, mgl64.Vec3{
			p.X() * scale.X(),
			p.Y() * scale.Y(),
			p.Z() * scale.Z(),
		})
	}
	for _, f := range sm.Faces {
		if len(f.Indices) != 3 {
			continue
		}
		*triangles = append(*triangles, offset+f.Indices[0], offset+f.Indices[1], offset+f.Indices[2])
	}
}
