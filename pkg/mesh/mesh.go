// Package mesh defines the indexed triangle mesh shared by every stage of
// the globe pipeline, together with the edge and face-adjacency indexes
// built on top of it.
package mesh

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is an indexed triangle mesh. Vertices are referenced by position in
// the vertex buffer; faces wind counter-clockwise as seen from outside the
// surface they describe.
type Mesh struct {
	Name     string
	Vertices []v3.Vec
	Faces    [][3]int
}

// New returns an empty mesh with the given name.
func New(name string) *Mesh {
	return &Mesh{Name: name}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Faces) == 0
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v v3.Vec) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a triangle referencing existing vertex indices.
func (m *Mesh) AddFace(a, b, c int) {
	m.Faces = append(m.Faces, [3]int{a, b, c})
}

// FaceCentroid returns the centroid of face i.
func (m *Mesh) FaceCentroid(i int) v3.Vec {
	f := m.Faces[i]
	return m.Vertices[f[0]].Add(m.Vertices[f[1]]).Add(m.Vertices[f[2]]).DivScalar(3)
}

// Validate checks the structural invariants of the mesh. A face index out of
// range indicates a defect in the producing code, not bad input.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, vi := range f {
			if vi < 0 || vi >= n {
				return fmt.Errorf("mesh %q: face %d references vertex %d, have %d vertices", m.Name, i, vi, n)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the mesh under a new name.
func (m *Mesh) Clone(name string) *Mesh {
	out := &Mesh{
		Name:     name,
		Vertices: make([]v3.Vec, len(m.Vertices)),
		Faces:    make([][3]int, len(m.Faces)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Faces, m.Faces)
	return out
}

// Positions returns the vertex buffer as flat float32 triples, the layout
// exporters consume.
func (m *Mesh) Positions() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	return out
}

// Indices returns the triangle index buffer as a flat uint32 slice.
func (m *Mesh) Indices() []uint32 {
	out := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		out = append(out, uint32(f[0]), uint32(f[1]), uint32(f[2]))
	}
	return out
}
