package atlas

import (
	"math"

	"github.com/chazu/atlasforge/pkg/geo"
	"github.com/chazu/atlasforge/pkg/geom"
	"github.com/chazu/atlasforge/pkg/mesh"
)

// BuildMarker emits the volumetric prism for one point of interest: a
// regular cap polygon of style.Sides vertices in the tangent plane at the
// projected surface point, duplicated at radius+above (top) and
// radius-below (bottom) and stitched with wall quads. The marker depends
// only on the coordinate, never on the polygon classifier.
//
// The prism has exactly 2*style.Sides vertices.
func BuildMarker(place geo.Place, proj geom.Projection, ext Extrusion, style MarkerStyle, name string) (*mesh.Mesh, error) {
	if err := place.Validate(); err != nil {
		return nil, err
	}

	n := proj.Direction(place.Lat, place.Lon)
	t1, t2 := geom.TangentBasis(n)
	sides := style.Sides

	out := mesh.New(name)
	// Top ring first, bottom ring after: bottom index = top index + sides.
	for _, r := range []float64{proj.Radius + ext.Above, proj.Radius - ext.Below} {
		center := n.MulScalar(r)
		for i := 0; i < sides; i++ {
			theta := 2 * math.Pi * float64(i) / float64(sides)
			off := t1.MulScalar(math.Cos(theta) * style.Radius).
				Add(t2.MulScalar(math.Sin(theta) * style.Radius))
			out.AddVertex(center.Add(off))
		}
	}

	// Wall quads, outward-facing.
	for i := 0; i < sides; i++ {
		j := (i + 1) % sides
		out.AddFace(i+sides, j+sides, j)
		out.AddFace(i+sides, j, i)
	}
	// Top cap fan (CCW seen from outside) and reversed bottom cap fan.
	for i := 1; i < sides-1; i++ {
		out.AddFace(0, i, i+1)
	}
	for i := 1; i < sides-1; i++ {
		out.AddFace(sides, sides+i+1, sides+i)
	}
	return out, nil
}

// BuildClosing emits the cap ribbon above a marker's top face: a
// perimeter-to-centroid fan over the cap footprint, scaled by
// style.ClosingScale and lifted by style.ClosingGap so it never coplanes
// with the marker top. The fan has exactly style.Sides triangles.
func BuildClosing(place geo.Place, proj geom.Projection, ext Extrusion, style MarkerStyle, name string) (*mesh.Mesh, error) {
	if err := place.Validate(); err != nil {
		return nil, err
	}

	n := proj.Direction(place.Lat, place.Lon)
	t1, t2 := geom.TangentBasis(n)
	sides := style.Sides
	r := style.Radius * style.ClosingScale
	center := n.MulScalar(proj.Radius + ext.Above + style.ClosingGap)

	out := mesh.New(name)
	ci := out.AddVertex(center)
	for i := 0; i < sides; i++ {
		theta := 2 * math.Pi * float64(i) / float64(sides)
		off := t1.MulScalar(math.Cos(theta) * r).
			Add(t2.MulScalar(math.Sin(theta) * r))
		out.AddVertex(center.Add(off))
	}
	for i := 0; i < sides; i++ {
		j := (i + 1) % sides
		out.AddFace(ci, 1+i, 1+j)
	}
	return out, nil
}
