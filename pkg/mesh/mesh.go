// Package mesh defines the canonical indexed-triangle mesh produced by
// every construction path in this module. All arrays are flat: vertices
// has 3 float64 per vertex (x,y,z), triangles has 3 uint32 vertex
// identifiers per triangle, and the two normal arrays mirror them.
package mesh

import "github.com/go-gl/mathgl/mgl64"

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Vertices        []float64 `json:"vertices"`        // [x0,y0,z0, x1,y1,z1, ...]
	Triangles       []uint32  `json:"triangles"`       // [i0,i1,i2, ...] triangles
	TriangleNormals []float64 `json:"triangleNormals"` // one unit normal per triangle
	VertexNormals   []float64 `json:"vertexNormals"`   // one unit normal per vertex
}

// New returns a mesh with storage for the given number of vertices and
// triangles. The arrays are zeroed; callers fill them by index.
func New(vertexCount, triangleCount int) *Mesh {
	return &Mesh{
		Vertices:  make([]float64, vertexCount*3),
		Triangles: make([]uint32, triangleCount*3),
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i int) mgl64.Vec3 {
	return mgl64.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
}

// SetVertex stores v as vertex i.
func (m *Mesh) SetVertex(i int, v mgl64.Vec3) {
	m.Vertices[i*3] = v.X()
	m.Vertices[i*3+1] = v.Y()
	m.Vertices[i*3+2] = v.Z()
}

// Triangle returns the three vertex identifiers of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c uint32) {
	return m.Triangles[i*3], m.Triangles[i*3+1], m.Triangles[i*3+2]
}

// ComputeTriangleNormals fills TriangleNormals with one unit normal per
// triangle, oriented by the triangle's winding. Degenerate triangles get
// a zero normal.
func (m *Mesh) ComputeTriangleNormals() {
	n := m.TriangleCount()
	if len(m.TriangleNormals) != n*3 {
		m.TriangleNormals = make([]float64, n*3)
	}
	for i := 0; i < n; i++ {
		a, b, c := m.Triangle(i)
		s1 := m.Vertex(int(a)).Sub(m.Vertex(int(b)))
		s2 := m.Vertex(int(b)).Sub(m.Vertex(int(c)))
		normal := s1.Cross(s2)
		if l := normal.Len(); l > 0 {
			normal = normal.Mul(1 / l)
		} else {
			normal = mgl64.Vec3{}
		}
		m.TriangleNormals[i*3] = normal.X()
		m.TriangleNormals[i*3+1] = normal.Y()
		m.TriangleNormals[i*3+2] = normal.Z()
	}
}

// ComputeVertexNormals fills VertexNormals by averaging the normals of
// the triangles incident to each vertex. Triangle normals are computed
// first if they are not present yet. Vertices referenced by no triangle
// keep a zero normal.
func (m *Mesh) ComputeVertexNormals() {
	if len(m.TriangleNormals) != m.TriangleCount()*3 {
		m.ComputeTriangleNormals()
	}
	vc := m.VertexCount()
	if vc == 0 {
		return
	}
	sums := make([]mgl64.Vec3, vc)
	for i := 0; i < m.TriangleCount(); i++ {
		tn := mgl64.Vec3{m.TriangleNormals[i*3], m.TriangleNormals[i*3+1], m.TriangleNormals[i*3+2]}
		a, b, c := m.Triangle(i)
		sums[a] = sums[a].Add(tn)
		sums[b] = sums[b].Add(tn)
		sums[c] = sums[c].Add(tn)
	}
	if len(m.VertexNormals) != vc*3 {
		m.VertexNormals = make([]float64, vc*3)
	}
	for i, s := range sums {
		if l := s.Len(); l > 0 {
			s = s.Mul(1 / l)
		}
		m.VertexNormals[i*3] = s.X()
		m.VertexNormals[i*3+1] = s.Y()
		m.VertexNormals[i*3+2] = s.Z()
	}
}

// BoundingBox returns the axis-aligned bounding box of the mesh.
// An empty mesh yields a zero box.
func (m *Mesh) BoundingBox() (min, max mgl64.Vec3) {
	if m.IsEmpty() {
		return min, max
	}
	min = m.Vertex(0)
	max = min
	for i := 1; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		for axis := 0; axis < 3; axis++ {
			if v[axis] < min[axis] {
				min[axis] = v[axis]
			}
			if v[axis] > max[axis] {
				max[axis] = v[axis]
			}
		}
	}
	return min, max
}

// SurfaceArea returns the total area of all triangles.
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		v0 := m.Vertex(int(a))
		e1 := m.Vertex(int(b)).Sub(v0)
		e2 := m.Vertex(int(c)).Sub(v0)
		total += e1.Cross(e2).Len() / 2
	}
	return total
}

// Volume returns the enclosed volume of the mesh using the signed
// tetrahedron method. The result is only meaningful for closed meshes
// with consistent winding.
func (m *Mesh) Volume() float64 {
	signed := 0.0
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		v0 := m.Vertex(int(a))
		v1 := m.Vertex(int(b))
		v2 := m.Vertex(int(c))
		signed += v0.Dot(v1.Cross(v2))
	}
	volume := signed / 6
	if volume < 0 {
		volume = -volume
	}
	return volume
}
