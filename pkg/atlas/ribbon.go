package atlas

import (
	"fmt"
	"sort"

	"github.com/chazu/atlasforge/pkg/mesh"
)

// BoundaryLoops extracts the closed boundary loops of one labeled entity
// from the shared base-mesh adjacency index. An edge is a boundary edge iff
// its two incident base faces carry different labels (unlabeled counts as a
// label of its own). Edges are chained into loops oriented so that the
// entity's patch lies on the left; every disjoint loop is returned, smallest
// start vertex first, so the result is deterministic.
//
// A vertex incident to more than two boundary edges of the same entity makes
// the walk ambiguous and is reported as ErrAmbiguousBoundary.
func BoundaryLoops(base *mesh.Mesh, adj *mesh.Adjacency, labels *FaceLabels, labelIdx int) ([][]int, error) {
	// next[a] = b for each directed boundary edge a->b.
	next := make(map[int]int)
	for k, faces := range adj.Edges {
		inside, outside := faces[0], faces[1]
		insideLabel := labels.LabelOf(inside)
		outsideLabel := Unlabeled
		if outside != mesh.NoFace {
			outsideLabel = labels.LabelOf(outside)
		}
		if insideLabel == outsideLabel {
			continue
		}
		if insideLabel != labelIdx {
			if outsideLabel != labelIdx {
				continue
			}
			inside = outside
		}

		a, b, err := directedInFace(base, inside, k)
		if err != nil {
			return nil, err
		}
		if _, dup := next[a]; dup {
			return nil, fmt.Errorf("%w: vertex %d", ErrAmbiguousBoundary, a)
		}
		next[a] = b
	}

	if len(next) == 0 {
		return nil, nil
	}

	starts := make([]int, 0, len(next))
	for a := range next {
		starts = append(starts, a)
	}
	sort.Ints(starts)

	visited := make(map[int]bool, len(next))
	var loops [][]int
	for _, start := range starts {
		if visited[start] {
			continue
		}
		loop := []int{start}
		visited[start] = true
		for v := next[start]; v != start; {
			nxt, ok := next[v]
			if !ok {
				return nil, fmt.Errorf("%w: walk dead-ends at vertex %d", ErrAmbiguousBoundary, v)
			}
			loop = append(loop, v)
			visited[v] = true
			v = nxt
		}
		loops = append(loops, loop)
	}
	return loops, nil
}

// directedInFace returns the edge k in the direction it appears in the
// vertex cycle of face fi. Faces wind counter-clockwise seen from outside,
// so the face interior is on the left of the returned direction.
func directedInFace(base *mesh.Mesh, fi int, k mesh.EdgeKey) (a, b int, err error) {
	f := base.Faces[fi]
	for e := 0; e < 3; e++ {
		va, vb := f[e], f[(e+1)%3]
		if mesh.NewEdgeKey(va, vb) == k {
			return va, vb, nil
		}
	}
	return 0, 0, fmt.Errorf("edge (%d,%d) not found in face %d", k.A, k.B, fi)
}

// BuildRibbon emits the border ribbon for one closed boundary loop: a flat
// closed strip of quads following the loop, width/2 to each side of the loop
// in the local tangent plane, at radial distance
// radius + above + height + zfightEps. The epsilon keeps the strip off the
// extruded top surface so the two never z-fight.
func BuildRibbon(base *mesh.Mesh, name string, loop []int, radius, above float64, style BorderStyle) (*mesh.Mesh, error) {
	if len(loop) < 3 {
		return nil, ErrDegenerateLoop
	}

	rTop := radius + above + style.Height + style.ZFightEps
	half := style.Width / 2
	n := len(loop)

	out := mesh.New(name)
	// Two vertices per loop vertex: left of travel, then right.
	for i, vi := range loop {
		dir := base.Vertices[vi].Normalize()
		pos := dir.MulScalar(rTop)

		prev := base.Vertices[loop[(i-1+n)%n]].Normalize()
		nxt := base.Vertices[loop[(i+1)%n]].Normalize()
		travel := nxt.Sub(prev)
		// Perpendicular to the loop direction in the tangent plane. The
		// patch interior is on the left, so side points into the patch.
		side := dir.Cross(travel).Normalize()

		out.AddVertex(pos.Add(side.MulScalar(half)))
		out.AddVertex(pos.Sub(side.MulScalar(half)))
	}

	for i := 0; i < n; i++ {
		li, ri := 2*i, 2*i+1
		lj, rj := 2*((i+1)%n), 2*((i+1)%n)+1
		// Wound for radially outward normals.
		out.AddFace(ri, rj, lj)
		out.AddFace(ri, lj, li)
	}
	return out, nil
}
