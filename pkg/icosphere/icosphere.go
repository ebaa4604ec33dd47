// Package icosphere builds geodesic spheres by subdividing a regular
// icosahedron and re-projecting every vertex onto the target radius after
// each round, so shared edges stay welded and the surface stays spherical.
package icosphere

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/atlasforge/pkg/mesh"
)

// MaxLevel bounds the subdivision level accepted by Build. Face count grows
// as 20*4^N, so level 8 already yields 1.3M faces.
const MaxLevel = 8

// BaseMeshName is the name assigned to the generated sphere mesh.
const BaseMeshName = "icosphere"

// Build constructs a geodesic sphere at the given subdivision level and
// radius. The result is deterministic: the same inputs always produce the
// same topology and, up to floating point, the same vertex positions.
// Faces wind counter-clockwise as seen from outside the sphere.
func Build(level int, radius float64) (*mesh.Mesh, error) {
	if level < 0 || level > MaxLevel {
		return nil, fmt.Errorf("icosphere: subdivision level %d out of range [0, %d]", level, MaxLevel)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("icosphere: radius %v must be positive", radius)
	}

	m := icosahedron(radius)
	for i := 0; i < level; i++ {
		m = subdivide(m)
		project(m, radius)
	}
	return m, nil
}

// icosahedron returns the regular 12-vertex, 20-face icosahedron inscribed
// in the sphere of the given radius.
func icosahedron(radius float64) *mesh.Mesh {
	t := (1.0 + math.Sqrt(5.0)) / 2.0

	m := mesh.New(BaseMeshName)
	m.Vertices = []v3.Vec{
		{X: -1, Y: t, Z: 0}, {X: 1, Y: t, Z: 0}, {X: -1, Y: -t, Z: 0}, {X: 1, Y: -t, Z: 0},
		{X: 0, Y: -1, Z: t}, {X: 0, Y: 1, Z: t}, {X: 0, Y: -1, Z: -t}, {X: 0, Y: 1, Z: -t},
		{X: t, Y: 0, Z: -1}, {X: t, Y: 0, Z: 1}, {X: -t, Y: 0, Z: -1}, {X: -t, Y: 0, Z: 1},
	}
	m.Faces = [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	project(m, radius)
	return m
}

// subdivide splits every face into four by inserting edge midpoints.
// Midpoints are deduplicated across faces via an edge-keyed cache so that
// faces sharing an edge keep sharing vertices.
func subdivide(m *mesh.Mesh) *mesh.Mesh {
	out := mesh.New(m.Name)
	out.Vertices = append(out.Vertices, m.Vertices...)
	out.Faces = make([][3]int, 0, len(m.Faces)*4)

	midpoints := make(map[mesh.EdgeKey]int, len(m.Faces)*3/2)
	midpoint := func(a, b int) int {
		k := mesh.NewEdgeKey(a, b)
		if idx, ok := midpoints[k]; ok {
			return idx
		}
		mid := out.Vertices[a].Add(out.Vertices[b]).MulScalar(0.5)
		idx := out.AddVertex(mid)
		midpoints[k] = idx
		return idx
	}

	for _, f := range m.Faces {
		ab := midpoint(f[0], f[1])
		bc := midpoint(f[1], f[2])
		ca := midpoint(f[2], f[0])
		out.AddFace(f[0], ab, ca)
		out.AddFace(f[1], bc, ab)
		out.AddFace(f[2], ca, bc)
		out.AddFace(ab, bc, ca)
	}
	return out
}

// project pushes every vertex radially onto the sphere of the given radius.
func project(m *mesh.Mesh, radius float64) {
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Normalize().MulScalar(radius)
	}
}
