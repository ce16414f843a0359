package meshops_test

import (
	"bytes"
	"errors"
	"log"
	"math"
	"os"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/meshops"
)

func TestFromVerticesSharedCorners(t *testing.T) {
	p0 := mgl64.Vec3{0, 0, 0}
	p1 := mgl64.Vec3{1, 0, 0}
	p2 := mgl64.Vec3{0, 1, 0}
	p3 := mgl64.Vec3{1, 1, 0}

	// Two triangles sharing the p1-p2 edge, given as a six-point soup.
	m, err := meshops.FromVertices([]mgl64.Vec3{p0, p1, p2, p2, p1, p3})
	if err != nil {
		t.Fatalf("FromVertices failed: %v", err)
	}

	if got := m.VertexCount(); got != 4 {
		t.Fatalf("expected 4 unique vertices, got %d", got)
	}
	if got := m.TriangleCount(); got != 2 {
		t.Fatalf("expected 2 triangles, got %d", got)
	}

	// Identifiers follow first appearance in the soup.
	for i, want := range []mgl64.Vec3{p0, p1, p2, p3} {
		if got := m.Vertex(i); got != want {
			t.Errorf("vertex %d = %v, expected %v", i, got, want)
		}
	}
	wantTris := []uint32{0, 1, 2, 2, 1, 3}
	for i, want := range wantTris {
		if m.Triangles[i] != want {
			t.Errorf("triangle indices = %v, expected %v", m.Triangles, wantTris)
			break
		}
	}
}

func TestFromVerticesDistinctPointsKeptDistinct(t *testing.T) {
	// Nine points, all different, two of them nearly equal: exact
	// comparison must keep all nine.
	points := []mgl64.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{2, 0, 0}, {3, 0, 0}, {2, 1, 0},
		{2 + 1e-15, 0, 0}, {5, 0, 0}, {4, 1, 0},
	}
	m, err := meshops.FromVertices(points)
	if err != nil {
		t.Fatalf("FromVertices failed: %v", err)
	}
	if got := m.VertexCount(); got != 9 {
		t.Errorf("expected 9 vertices, got %d", got)
	}
}

func TestFromVerticesDuplicatesReduceCount(t *testing.T) {
	base := []mgl64.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{4, 0, 0}, {5, 0, 0}, {4, 1, 0},
	}
	m, err := meshops.FromVertices(base)
	if err != nil {
		t.Fatalf("FromVertices failed: %v", err)
	}
	if got := m.VertexCount(); got != 6 {
		t.Fatalf("expected 6 vertices, got %d", got)
	}

	// Repeat the first triangle verbatim: three more soup points, zero
	// new vertices.
	repeated := append(append([]mgl64.Vec3{}, base...), base[0], base[1], base[2])
	m2, err := meshops.FromVertices(repeated)
	if err != nil {
		t.Fatalf("FromVertices failed: %v", err)
	}
	if got := m2.VertexCount(); got != 6 {
		t.Errorf("expected duplicates to add no vertices, got %d", got)
	}
	if got := m2.TriangleCount(); got != 3 {
		t.Errorf("expected 3 triangles, got %d", got)
	}
}

func TestFromVerticesTooFewPoints(t *testing.T) {
	for _, points := range [][]mgl64.Vec3{nil, {{1, 2, 3}}, {{1, 2, 3}, {4, 5, 6}}} {
		m, err := meshops.FromVertices(points)
		if !errors.Is(err, meshops.ErrFewPoints) {
			t.Errorf("%d points: expected ErrFewPoints, got %v", len(points), err)
		}
		if m != nil {
			t.Errorf("%d points: expected no mesh", len(points))
		}
	}
}

func TestFromVerticesDropsRemainder(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	// Seven points: two triangles and one stray point.
	points := []mgl64.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{4, 0, 0}, {5, 0, 0}, {4, 1, 0},
		{9, 9, 9},
	}
	m, err := meshops.FromVertices(points)
	if err != nil {
		t.Fatalf("FromVertices failed: %v", err)
	}
	if got := m.TriangleCount(); got != 2 {
		t.Errorf("expected 2 triangles, got %d", got)
	}
	if got := m.VertexCount(); got != 6 {
		t.Errorf("stray point should be dropped, got %d vertices", got)
	}
	if !bytes.Contains(buf.Bytes(), []byte("not divisible by 3")) {
		t.Errorf("expected a logged warning, got %q", buf.String())
	}
}

func TestFromTrianglesVerbatim(t *testing.T) {
	p := mgl64.Vec3{1, 2, 3}
	// The same position twice: the explicit path must keep both.
	vertices := []mgl64.Vec3{p, {4, 5, 6}, p, {7, 8, 9}}
	triangles := []uint32{0, 1, 2, 2, 1, 3}

	m := meshops.FromTriangles(vertices, triangles)
	if got := m.VertexCount(); got != 4 {
		t.Fatalf("expected all 4 vertices kept, got %d", got)
	}
	for i, want := range vertices {
		if got := m.Vertex(i); got != want {
			t.Errorf("vertex %d = %v, expected %v", i, got, want)
		}
	}
	for i, want := range triangles {
		if m.Triangles[i] != want {
			t.Errorf("triangle indices = %v, expected %v", m.Triangles, triangles)
			break
		}
	}
}

func TestFromTrianglesComputesNormals(t *testing.T) {
	vertices := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	m := meshops.FromTriangles(vertices, []uint32{0, 1, 2, 0, 2, 3})

	if len(m.TriangleNormals) != 6 {
		t.Fatalf("expected triangle normals to be computed, got %d components", len(m.TriangleNormals))
	}
	if len(m.VertexNormals) != 12 {
		t.Fatalf("expected vertex normals to be computed, got %d components", len(m.VertexNormals))
	}
	for i := 0; i < m.TriangleCount(); i++ {
		if got := m.TriangleNormals[i*3+2]; math.Abs(got-1) > 1e-12 {
			t.Errorf("triangle %d normal Z = %v, expected 1", i, got)
		}
	}
}

func TestBoxGeometry(t *testing.T) {
	m := meshops.Box(mgl64.Vec3{1, 1, 1})

	if got := m.VertexCount(); got != 8 {
		t.Fatalf("expected 8 vertices, got %d", got)
	}
	if got := m.TriangleCount(); got != 12 {
		t.Fatalf("expected 12 triangles, got %d", got)
	}
	for i := 0; i < 8; i++ {
		v := m.Vertex(i)
		for axis := 0; axis < 3; axis++ {
			if math.Abs(v[axis]) != 1 {
				t.Errorf("vertex %d coordinate %d = %v, expected magnitude 1", i, axis, v[axis])
			}
		}
	}
	for i := 0; i < 12; i++ {
		a, b, c := m.Triangle(i)
		if a == b || b == c || a == c {
			t.Errorf("triangle %d repeats a corner: %d %d %d", i, a, b, c)
		}
		if a > 7 || b > 7 || c > 7 {
			t.Errorf("triangle %d references vertex outside 0..7: %d %d %d", i, a, b, c)
		}
	}

	if got := m.SurfaceArea(); math.Abs(got-24) > 1e-9 {
		t.Errorf("surface area = %v, expected 24", got)
	}
	if got := m.Volume(); math.Abs(got-8) > 1e-9 {
		t.Errorf("volume = %v, expected 8", got)
	}
	min, max := m.BoundingBox()
	if min != (mgl64.Vec3{-1, -1, -1}) || max != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("bounding box = %v..%v, expected unit cube", min, max)
	}
}

func TestBoxAsymmetricExtents(t *testing.T) {
	m := meshops.Box(mgl64.Vec3{1, 2, 3})
	min, max := m.BoundingBox()
	if min != (mgl64.Vec3{-1, -2, -3}) || max != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("bounding box = %v..%v, expected ±(1,2,3)", min, max)
	}
	if got := m.Volume(); math.Abs(got-48) > 1e-9 {
		t.Errorf("volume = %v, expected 48", got)
	}
}

func TestBoxDegenerateExtents(t *testing.T) {
	// No validation: zero extents still produce the full topology.
	m := meshops.Box(mgl64.Vec3{0, 0, 0})
	if got := m.VertexCount(); got != 8 {
		t.Errorf("expected 8 vertices, got %d", got)
	}
	if got := m.TriangleCount(); got != 12 {
		t.Errorf("expected 12 triangles, got %d", got)
	}
	if got := m.SurfaceArea(); got != 0 {
		t.Errorf("surface area = %v, expected 0", got)
	}
}
