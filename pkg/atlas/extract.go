package atlas

import (
	"fmt"

	"github.com/chazu/atlasforge/pkg/geo"
	"github.com/chazu/atlasforge/pkg/geom"
	"github.com/chazu/atlasforge/pkg/mesh"
)

// Unlabeled marks a face claimed by no polygon.
const Unlabeled = -1

// FaceLabels records which entity, if any, claimed each face of the base
// mesh. A face carries at most one label; ties between overlapping polygons
// resolve by input order, first match wins. Labels are tracked by input
// index, never by name, so same-named polygons keep separate face sets.
type FaceLabels struct {
	names  []string
	byFace []int
	faces  [][]int
}

// ExtractFaces labels every face of the base sphere mesh by classifying its
// centroid against the polygons in input order. Unlabeled faces (ocean)
// remain retrievable via Unassigned.
func ExtractFaces(base *mesh.Mesh, proj geom.Projection, polys []*geo.Polygon) (*FaceLabels, error) {
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	labels := &FaceLabels{
		names:  make([]string, len(polys)),
		byFace: make([]int, base.FaceCount()),
		faces:  make([][]int, len(polys)),
	}
	for i, p := range polys {
		labels.names[i] = p.Name
	}

	for fi := range base.Faces {
		labels.byFace[fi] = Unlabeled
		lat, lon := proj.ToLatLon(base.FaceCentroid(fi))
		for pi, p := range polys {
			if p.Contains(lat, lon) {
				labels.byFace[fi] = pi
				labels.faces[pi] = append(labels.faces[pi], fi)
				break
			}
		}
	}
	return labels, nil
}

// Names returns the entity names in input order, including entities that
// claimed no faces.
func (l *FaceLabels) Names() []string {
	return l.names
}

// Faces returns the base face indices labeled with entity i.
func (l *FaceLabels) Faces(i int) []int {
	return l.faces[i]
}

// LabelOf returns the label index of a face, or Unlabeled.
func (l *FaceLabels) LabelOf(face int) int {
	return l.byFace[face]
}

// Unassigned returns the faces claimed by no entity.
func (l *FaceLabels) Unassigned() []int {
	var out []int
	for fi, label := range l.byFace {
		if label == Unlabeled {
			out = append(out, fi)
		}
	}
	return out
}

// LabeledCount returns the number of faces carrying a label.
func (l *FaceLabels) LabeledCount() int {
	n := 0
	for _, label := range l.byFace {
		if label != Unlabeled {
			n++
		}
	}
	return n
}

// BuildPatch assembles a standalone mesh from a subset of base faces,
// re-indexing the shared base vertices into a compact local buffer. Face
// winding is preserved. The base mesh is never mutated.
func BuildPatch(base *mesh.Mesh, name string, faces []int) *mesh.Mesh {
	patch := mesh.New(name)
	local := make(map[int]int, len(faces)*2)
	remap := func(vi int) int {
		if li, ok := local[vi]; ok {
			return li
		}
		li := patch.AddVertex(base.Vertices[vi])
		local[vi] = li
		return li
	}
	for _, fi := range faces {
		f := base.Faces[fi]
		patch.AddFace(remap(f[0]), remap(f[1]), remap(f[2]))
	}
	return patch
}
