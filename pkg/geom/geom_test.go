package geom

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const tol = 1e-12

func vecNear(a, b v3.Vec, eps float64) bool {
	return a.Sub(b).Length() < eps
}

func TestDirectionCardinalPoints(t *testing.T) {
	p := Projection{Radius: 1}

	cases := []struct {
		lat, lon float64
		want     v3.Vec
	}{
		{0, 0, v3.Vec{X: 1}},
		{0, 90, v3.Vec{Y: 1}},
		{0, 180, v3.Vec{X: -1}},
		{90, 0, v3.Vec{Z: 1}},
		{-90, 0, v3.Vec{Z: -1}},
	}
	for _, c := range cases {
		got := p.Direction(c.lat, c.lon)
		if !vecNear(got, c.want, 1e-9) {
			t.Errorf("Direction(%v, %v) = %+v, want %+v", c.lat, c.lon, got, c.want)
		}
	}
}

func TestInvertPolesFlipsLatitude(t *testing.T) {
	normal := Projection{Radius: 1}
	inverted := Projection{Radius: 1, InvertPoles: true}

	n := normal.Direction(48.85, 2.35)
	i := inverted.Direction(48.85, 2.35)
	if math.Abs(n.Z+i.Z) > tol {
		t.Errorf("inverted Z should mirror: %v vs %v", n.Z, i.Z)
	}
	if math.Abs(n.X-i.X) > tol || math.Abs(n.Y-i.Y) > tol {
		t.Errorf("inversion must not touch X/Y: %+v vs %+v", n, i)
	}
}

func TestLatLonRoundTrip(t *testing.T) {
	for _, p := range []Projection{{Radius: 1}, {Radius: 2.5}, {Radius: 1, InvertPoles: true}} {
		for _, c := range []struct{ lat, lon float64 }{
			{0, 0}, {48.85, 2.35}, {-33.9, 151.2}, {64.1, -21.9}, {10, 179.5},
		} {
			v := p.ToSphere(c.lat, c.lon)
			if math.Abs(v.Length()-p.Radius) > 1e-9 {
				t.Fatalf("ToSphere(%v, %v) has radius %v, want %v", c.lat, c.lon, v.Length(), p.Radius)
			}
			lat, lon := p.ToLatLon(v)
			if math.Abs(lat-c.lat) > 1e-9 || math.Abs(lon-c.lon) > 1e-9 {
				t.Errorf("round trip (%v, %v) -> (%v, %v)", c.lat, c.lon, lat, lon)
			}
		}
	}
}

func TestToLatLonOrigin(t *testing.T) {
	lat, lon := Projection{Radius: 1}.ToLatLon(v3.Vec{})
	if lat != 0 || lon != 0 {
		t.Errorf("origin mapped to (%v, %v), want (0, 0)", lat, lon)
	}
}

func TestTangentBasisOrthonormal(t *testing.T) {
	dirs := []v3.Vec{
		{X: 1}, {Y: 1}, {Z: 1}, {Z: -1},
		v3.Vec{X: 0.5, Y: 0.5, Z: 0.70710678}.Normalize(),
	}
	for _, n := range dirs {
		t1, t2 := TangentBasis(n)
		if math.Abs(t1.Length()-1) > 1e-9 || math.Abs(t2.Length()-1) > 1e-9 {
			t.Errorf("basis at %+v not unit length", n)
		}
		if math.Abs(t1.Dot(n)) > 1e-9 || math.Abs(t2.Dot(n)) > 1e-9 {
			t.Errorf("basis at %+v not tangent", n)
		}
		if math.Abs(t1.Dot(t2)) > 1e-9 {
			t.Errorf("basis at %+v not orthogonal", n)
		}
		if !vecNear(t1.Cross(t2), n, 1e-9) {
			t.Errorf("basis at %+v not right-handed", n)
		}
	}
}
