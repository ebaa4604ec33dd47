// Package geom provides the spherical coordinate conversions shared by the
// globe pipeline: geographic (lat, lon) to Cartesian projection and back,
// and tangent-plane bases for offsetting geometry along the sphere surface.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const degToRad = math.Pi / 180.0

// Projection maps geographic coordinates onto the generated sphere.
// InvertPoles flips the sign of latitude in both directions, swapping the
// north and south pole mapping of the output mesh.
type Projection struct {
	Radius      float64
	InvertPoles bool
}

// Direction returns the unit direction for (lat, lon) in degrees.
func (p Projection) Direction(lat, lon float64) v3.Vec {
	if p.InvertPoles {
		lat = -lat
	}
	latR := lat * degToRad
	lonR := lon * degToRad
	cosLat := math.Cos(latR)
	return v3.Vec{
		X: cosLat * math.Cos(lonR),
		Y: cosLat * math.Sin(lonR),
		Z: math.Sin(latR),
	}
}

// ToSphere returns the Cartesian position of (lat, lon) at the projection
// radius.
func (p Projection) ToSphere(lat, lon float64) v3.Vec {
	return p.Direction(lat, lon).MulScalar(p.Radius)
}

// ToLatLon converts a Cartesian position back to (lat, lon) in degrees.
// The origin maps to (0, 0).
func (p Projection) ToLatLon(v v3.Vec) (lat, lon float64) {
	r := v.Length()
	if r == 0 {
		return 0, 0
	}
	lat = math.Asin(v.Z/r) / degToRad
	lon = math.Atan2(v.Y, v.X) / degToRad
	if p.InvertPoles {
		lat = -lat
	}
	return lat, lon
}

// TangentBasis returns two orthonormal vectors spanning the tangent plane at
// the unit direction n. The basis is right-handed: t1 x t2 points along n.
func TangentBasis(n v3.Vec) (t1, t2 v3.Vec) {
	up := v3.Vec{Z: 1}
	t1 = n.Cross(up)
	if t1.Length() < 1e-9 {
		// n is (anti)parallel to Z; fall back to the Y axis.
		up = v3.Vec{Y: 1}
		t1 = n.Cross(up)
	}
	t1 = t1.Normalize()
	t2 = n.Cross(t1).Normalize()
	return t1, t2
}
