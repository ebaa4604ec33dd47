package atlas

import (
	"fmt"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/atlasforge/pkg/mesh"
)

// ExtrudePatch turns a flat spherical patch into a closed volumetric shell.
// The patch is duplicated radially: an outer copy at radius+above keeping
// the original winding, an inner copy at radius-below with reversed winding
// so its normals face out of the shell interior, and side-wall quads along
// every patch boundary edge stitching the two copies watertight. Offsets are
// per-vertex radial, not a uniform translation, so curved patches stay
// spherical.
//
// With above == below == 0 the shell degrades to the flat patch itself: no
// duplicate layer, no side walls.
func ExtrudePatch(patch *mesh.Mesh, radius, above, below float64) (*mesh.Mesh, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if above == 0 && below == 0 {
		out := patch.Clone(patch.Name)
		normalize(out, radius)
		return out, nil
	}

	out := mesh.New(patch.Name)
	n := patch.VertexCount()
	out.Vertices = make([]v3.Vec, 0, 2*n)

	// Outer layer first, inner layer after: inner index = outer index + n.
	for _, v := range patch.Vertices {
		out.Vertices = append(out.Vertices, v.Normalize().MulScalar(radius+above))
	}
	for _, v := range patch.Vertices {
		out.Vertices = append(out.Vertices, v.Normalize().MulScalar(radius-below))
	}

	for _, f := range patch.Faces {
		out.AddFace(f[0], f[1], f[2])
		out.AddFace(f[2]+n, f[1]+n, f[0]+n)
	}

	boundary, err := directedBoundary(patch)
	if err != nil {
		return nil, err
	}
	for _, e := range boundary {
		a, b := e[0], e[1]
		// Wall quad between the layers, wound to face away from the patch.
		out.AddFace(a+n, b+n, b)
		out.AddFace(a+n, b, a)
	}
	return out, nil
}

// directedBoundary returns the patch edges used by exactly one face, in the
// direction they appear in that face (interior on the left). An edge used by
// more than two faces is a structural defect.
func directedBoundary(patch *mesh.Mesh) ([][2]int, error) {
	type edgeUse struct {
		count int
		dir   [2]int
	}
	uses := make(map[mesh.EdgeKey]*edgeUse, len(patch.Faces)*3/2)
	for _, f := range patch.Faces {
		for e := 0; e < 3; e++ {
			a, b := f[e], f[(e+1)%3]
			k := mesh.NewEdgeKey(a, b)
			u, ok := uses[k]
			if !ok {
				u = &edgeUse{dir: [2]int{a, b}}
				uses[k] = u
			}
			u.count++
			if u.count > 2 {
				return nil, fmt.Errorf("%w: edge (%d,%d)", ErrAmbiguousBoundary, k.A, k.B)
			}
		}
	}

	var boundary [][2]int
	for _, u := range uses {
		if u.count == 1 {
			boundary = append(boundary, u.dir)
		}
	}
	// Map iteration order varies per run; fix the wall order so identical
	// inputs produce identical meshes.
	sort.Slice(boundary, func(i, j int) bool {
		if boundary[i][0] != boundary[j][0] {
			return boundary[i][0] < boundary[j][0]
		}
		return boundary[i][1] < boundary[j][1]
	})
	return boundary, nil
}

// normalize projects every vertex of m radially to the given radius.
func normalize(m *mesh.Mesh, radius float64) {
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Normalize().MulScalar(radius)
	}
}
