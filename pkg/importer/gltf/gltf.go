// Package gltf imports glTF 2.0 assets, both the JSON form and the GLB
// binary container. It is the one backend that produces real node
// hierarchies: every glTF node becomes a scene node with its local
// matrix or TRS transform, so transform composition is exercised end to
// end. Only self-contained assets can be imported from memory; buffers
// referenced through external URIs are not resolved.
package gltf

import (
	"bytes"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	qgltf "github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/importer"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/scene"
)

// Compile-time interface check.
var _ importer.Importer = (*Importer)(nil)

// Importer parses glTF and GLB data.
type Importer struct{}

// New returns a new glTF importer.
func New() *Importer {
	return &Importer{}
}

// CanImport reports whether hint names the glTF format.
func (im *Importer) CanImport(hint string) bool {
	return hint == "gltf" || hint == "glb"
}

// Import decodes the document and converts its default scene. Triangle
// primitives are converted one sub-mesh each; strip, fan, line and
// point primitives are skipped.
func (im *Importer) Import(data []byte, opts importer.Options) (*scene.Scene, error) {
	doc := new(qgltf.Document)
	if err := qgltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("gltf: decode: %w", err)
	}
	// Any well-formed JSON decodes; require actual scene content so
	// unrelated JSON data is rejected rather than imported as empty.
	if len(doc.Nodes) == 0 && len(doc.Meshes) == 0 {
		return nil, fmt.Errorf("gltf: document has no nodes or meshes")
	}

	out := &scene.Scene{}

	// Convert primitives first so nodes can reference them by index.
	// One glTF mesh may hold several primitives; each becomes its own
	// sub-mesh, so a glTF mesh index maps to a list of sub-meshes.
	subMeshes := make(map[uint32][]int)
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			if prim.Mode != qgltf.PrimitiveTriangles {
				continue
			}
			sm, err := convertPrimitive(doc, gm, prim, pi)
			if err != nil {
				return nil, err
			}
			if sm == nil {
				continue
			}
			subMeshes[uint32(mi)] = append(subMeshes[uint32(mi)], len(out.Meshes))
			out.Meshes = append(out.Meshes, sm)
		}
	}

	root := scene.NewNode("gltf")
	for _, ni := range rootNodes(doc) {
		if int(ni) >= len(doc.Nodes) {
			continue
		}
		root.Children = append(root.Children, convertNode(doc, ni, subMeshes))
	}
	out.Root = root

	importer.ApplyOptions(out, opts)
	return out, nil
}

// convertPrimitive reads one triangle primitive into a sub-mesh.
// Primitives without positions yield nil.
func convertPrimitive(doc *qgltf.Document, gm *qgltf.Mesh, prim *qgltf.Primitive, pi int) (*scene.Mesh, error) {
	posIdx, ok := prim.Attributes[qgltf.POSITION]
	if !ok || int(posIdx) >= len(doc.Accessors) {
		return nil, nil
	}
	pos, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("gltf: mesh %q primitive %d: read positions: %w", gm.Name, pi, err)
	}

	verts := make([]mgl64.Vec3, len(pos))
	for i, p := range pos {
		verts[i] = mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
	}

	var indices []uint32
	if prim.Indices != nil && int(*prim.Indices) < len(doc.Accessors) {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("gltf: mesh %q primitive %d: read indices: %w", gm.Name, pi, err)
		}
	} else {
		indices = make([]uint32, len(verts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("gltf: mesh %q primitive %d: %d indices is not a whole number of triangles", gm.Name, pi, len(indices))
	}

	faces := make([]scene.Face, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		for j := 0; j < 3; j++ {
			if int(indices[i+j]) >= len(verts) {
				return nil, fmt.Errorf("gltf: mesh %q primitive %d: index %d outside %d vertices", gm.Name, pi, indices[i+j], len(verts))
			}
		}
		faces = append(faces, scene.Face{Indices: []uint32{indices[i], indices[i+1], indices[i+2]}})
	}

	return &scene.Mesh{Name: gm.Name, Vertices: verts, Faces: faces}, nil
}

// convertNode recursively converts a glTF node and its children.
func convertNode(doc *qgltf.Document, idx uint32, subMeshes map[uint32][]int) *scene.Node {
	gn := doc.Nodes[idx]
	n := scene.NewNode(gn.Name)
	n.Transform = nodeTransform(gn)
	if gn.Mesh != nil {
		n.MeshIndices = append(n.MeshIndices, subMeshes[*gn.Mesh]...)
	}
	for _, ci := range gn.Children {
		if int(ci) >= len(doc.Nodes) {
			continue
		}
		n.Children = append(n.Children, convertNode(doc, ci, subMeshes))
	}
	return n
}

// rootNodes returns the node indices of the document's default scene,
// falling back to the first scene, then to all parentless nodes for
// documents that declare no scene at all.
func rootNodes(doc *qgltf.Document) []uint32 {
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}
	isChild := make(map[uint32]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []uint32
	for i := range doc.Nodes {
		if !isChild[uint32(i)] {
			roots = append(roots, uint32(i))
		}
	}
	return roots
}

// identityMatrix is the glTF default node matrix (column-major).
var identityMatrix = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// nodeTransform returns the node's local transform. A stored matrix
// wins; otherwise the TRS properties are composed as translation *
// rotation * scale per the glTF specification. The decoder fills
// absent properties with the format defaults (identity matrix, unit
// quaternion, unit scale); the zero-value guards here cover documents
// assembled in memory, which start from Go zero values instead.
func nodeTransform(gn *qgltf.Node) mgl64.Mat4 {
	// glTF matrices are column-major, as is mgl64.Mat4; the stored
	// elements are float32 and widen one by one.
	if m := gn.Matrix; m != ([16]float32{}) && m != identityMatrix {
		var out mgl64.Mat4
		for i, e := range m {
			out[i] = float64(e)
		}
		return out
	}

	tr := gn.Translation
	t := mgl64.Translate3D(float64(tr[0]), float64(tr[1]), float64(tr[2]))

	r := mgl64.Ident4()
	q := mgl64.Quat{
		W: float64(gn.Rotation[3]),
		V: mgl64.Vec3{float64(gn.Rotation[0]), float64(gn.Rotation[1]), float64(gn.Rotation[2])},
	}
	if q.Len() > 0 {
		r = q.Normalize().Mat4()
	}

	s := gn.Scale
	if s == ([3]float32{}) {
		s = [3]float32{1, 1, 1}
	}

	return t.Mul4(r).Mul4(mgl64.Scale3D(float64(s[0]), float64(s[1]), float64(s[2])))
}
