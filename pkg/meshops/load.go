package meshops

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/importer"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/mesh"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/retriever"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/scene"
)

// FromResource retrieves an asset and constructs its mesh at unit
// scale. The resource may be a local path, a file://, http(s):// or
// package:// reference.
func FromResource(resource string) (*mesh.Mesh, error) {
	return FromResourceScaled(resource, DefaultScale)
}

// FromResourceScaled retrieves an asset and constructs its mesh with a
// per-axis scale applied to every vertex. The resource name doubles as
// the format hint.
func FromResourceScaled(resource string, scale mgl64.Vec3) (*mesh.Mesh, error) {
	data, err := retriever.New().Retrieve(resource)
	if err != nil {
		return nil, fmt.Errorf("meshops: retrieve %q: %w", resource, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("meshops: resource %q: %w", resource, ErrEmptyData)
	}
	return FromBinaryScaled(data, resource, scale)
}

// FromBinary constructs a mesh from in-memory asset bytes at unit
// scale. The hint conveys the format, usually as the asset's file name
// or extension.
func FromBinary(data []byte, hint string) (*mesh.Mesh, error) {
	return FromBinaryScaled(data, hint, DefaultScale)
}

// FromBinaryScaled constructs a mesh from in-memory asset bytes with a
// per-axis scale.
func FromBinaryScaled(data []byte, hint string, scale mgl64.Vec3) (*mesh.Mesh, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("meshops: %w", ErrEmptyData)
	}
	sc, err := importScene(data, normalizeHint(hint))
	if err != nil {
		return nil, fmt.Errorf("meshops: import %q: %w", hint, err)
	}
	return FromSceneScaled(sc, hint, scale)
}

// FromScene constructs a single mesh from an imported scene at unit
// scale. The name identifies the asset in failure messages.
func FromScene(sc *scene.Scene, name string) (*mesh.Mesh, error) {
	return FromSceneScaled(sc, name, DefaultScale)
}

// FromSceneScaled flattens every sub-mesh referenced by the scene's
// node hierarchy into one mesh. Node transforms compose top-down, the
// per-axis scale applies after transformation, and sub-meshes are
// concatenated without merging vertices across them.
func FromSceneScaled(sc *scene.Scene, name string, scale mgl64.Vec3) (*mesh.Mesh, error) {
	if sc == nil || !sc.HasMeshes() {
		return nil, fmt.Errorf("meshops: scene %q: %w", name, ErrNoMeshes)
	}

	var vertices []mgl64.Vec3
	var triangles []uint32
	flattenNode(sc, sc.Root, mgl64.Ident4(), scale, &vertices, &triangles)

	if len(vertices) == 0 {
		return nil, fmt.Errorf("meshops: scene %q: %w", name, ErrNoVertices)
	}
	if len(triangles) == 0 {
		return nil, fmt.Errorf("meshops: scene %q: %w", name, ErrNoTriangles)
	}
	return FromTriangles(vertices, triangles), nil
}

// normalizeHint reduces a resource name to a lower-case format hint:
// the substring after the last dot, or empty when there is none. Any
// hint mentioning stl collapses to plain "stl" so the STL extension
// variants (stl, stlb, STL, ...) land on one importer.
func normalizeHint(name string) string {
	hint := ""
	if pos := strings.LastIndexByte(name, '.'); pos >= 0 {
		hint = strings.ToLower(name[pos+1:])
	}
	if strings.Contains(hint, "stl") {
		hint = "stl"
	}
	return hint
}

// importScene parses asset bytes into a scene. The backend matching
// the hint is tried first; the hint is only a hint, so on a miss or a
// parse failure the remaining backends get a chance with the content.
func importScene(data []byte, hint string) (*scene.Scene, error) {
	var hintErr error
	for _, im := range importers {
		if !im.CanImport(hint) {
			continue
		}
		sc, err := im.Import(data, importer.DefaultOptions)
		if err == nil {
			return sc, nil
		}
		hintErr = err
		break
	}
	for _, im := range importers {
		if im.CanImport(hint) {
			continue
		}
		if sc, err := im.Import(data, importer.DefaultOptions); err == nil {
			return sc, nil
		}
	}
	if hintErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoScene, hintErr)
	}
	return nil, ErrNoScene
}
