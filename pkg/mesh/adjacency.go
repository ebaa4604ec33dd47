package mesh

import "fmt"

// EdgeKey identifies an undirected edge by its two vertex indices, stored
// with A < B so that both directions map to the same key.
type EdgeKey struct {
	A, B int
}

// NewEdgeKey returns the canonical key for the edge between a and b.
func NewEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// NoFace marks an absent face slot in an adjacency entry.
const NoFace = -1

// Adjacency is the edge-to-incident-faces index of a mesh, built once and
// shared read-only by every consumer. Each entry holds up to two face
// indices; the second is NoFace for edges used by a single face.
type Adjacency struct {
	Edges map[EdgeKey][2]int
}

// BuildAdjacency indexes every edge of m. An edge shared by more than two
// faces means the mesh is not manifold, which no producer in this pipeline
// should emit, so it is reported as an error.
func BuildAdjacency(m *Mesh) (*Adjacency, error) {
	adj := &Adjacency{Edges: make(map[EdgeKey][2]int, len(m.Faces)*3/2)}
	for fi, f := range m.Faces {
		for e := 0; e < 3; e++ {
			k := NewEdgeKey(f[e], f[(e+1)%3])
			entry, ok := adj.Edges[k]
			switch {
			case !ok:
				adj.Edges[k] = [2]int{fi, NoFace}
			case entry[1] == NoFace:
				entry[1] = fi
				adj.Edges[k] = entry
			default:
				return nil, fmt.Errorf("mesh %q: edge (%d,%d) is shared by more than two faces", m.Name, k.A, k.B)
			}
		}
	}
	return adj, nil
}

// Faces returns the one or two faces incident to the edge. The second return
// is NoFace for boundary edges; ok is false when the edge does not exist.
func (a *Adjacency) Faces(k EdgeKey) (f0, f1 int, ok bool) {
	entry, ok := a.Edges[k]
	if !ok {
		return NoFace, NoFace, false
	}
	return entry[0], entry[1], true
}

// EdgeCount returns the number of distinct edges.
func (a *Adjacency) EdgeCount() int {
	return len(a.Edges)
}
