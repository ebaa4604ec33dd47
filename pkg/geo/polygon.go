// Package geo implements spherical polygons and the point-in-polygon
// classifier used to label sphere faces with countries.
package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// EdgeTolerance is the planar distance in degrees within which a query point
// counts as inside a ring it nearly touches. It keeps adjacent countries'
// face assignments gap-free when a face centroid lands on a shared border.
const EdgeTolerance = 1e-7

// Place is a named point location in degrees.
type Place struct {
	Name string
	Lat  float64
	Lon  float64
}

// Validate reports whether the coordinates are in range.
func (p Place) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("place %q: latitude %v out of range [-90, 90]", p.Name, p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("place %q: longitude %v out of range [-180, 180]", p.Name, p.Lon)
	}
	return nil
}

// Polygon is one named country boundary on the sphere: an outer ring plus
// zero or more hole rings, each a closed sequence of (lon, lat) points in
// degrees. The last point of a ring implicitly connects to the first.
type Polygon struct {
	Name  string
	Rings []orb.Ring

	bounds []orb.Bound
}

// NewPolygon validates the rings and precomputes per-ring bounds. Every ring
// must have at least three points.
func NewPolygon(name string, rings []orb.Ring) (*Polygon, error) {
	if len(rings) == 0 {
		return nil, fmt.Errorf("polygon %q: no rings", name)
	}
	bounds := make([]orb.Bound, len(rings))
	for i, r := range rings {
		if ringLen(r) < 3 {
			return nil, fmt.Errorf("polygon %q: ring %d has fewer than 3 points", name, i)
		}
		bounds[i] = r.Bound()
	}
	return &Polygon{Name: name, Rings: rings, bounds: bounds}, nil
}

// ringLen counts the distinct points of a ring, ignoring an explicit closing
// point equal to the first.
func ringLen(r orb.Ring) int {
	n := len(r)
	if n > 1 && r[0] == r[n-1] {
		n--
	}
	return n
}

// Contains reports whether the query point lies inside the polygon: inside
// the outer ring and outside every hole (even-odd, ring-relative). Points
// within EdgeTolerance of any ring edge classify as inside. Queries at
// exactly +/-90 degrees latitude are outside every polygon: the meridian
// crossing test degenerates at the poles, so the poles never join a country
// fill.
//
// Contains is a pure function of its inputs and is safe to call
// concurrently.
func (p *Polygon) Contains(lat, lon float64) bool {
	if math.Abs(lat) >= 90 {
		return false
	}
	if !p.mayContain(0, lat, lon) {
		return false
	}
	outer := p.Rings[0]
	if nearRing(outer, lat, lon, EdgeTolerance) {
		return true
	}
	if !insideRing(outer, lat, lon) {
		return false
	}
	for i, hole := range p.Rings[1:] {
		if !p.mayContain(i+1, lat, lon) {
			continue
		}
		if nearRing(hole, lat, lon, EdgeTolerance) {
			// A point on a hole edge still belongs to the country.
			return true
		}
		if insideRing(hole, lat, lon) {
			return false
		}
	}
	return true
}

// mayContain is a cheap bounding-box rejection for ring i. Latitude is
// always checked; longitude only for rings spanning less than half the
// globe, since a ring crossing the antimeridian has a misleading raw
// longitude extent.
func (p *Polygon) mayContain(i int, lat, lon float64) bool {
	b := p.bounds[i]
	if lat < b.Min.Lat()-EdgeTolerance || lat > b.Max.Lat()+EdgeTolerance {
		return false
	}
	if b.Max.Lon()-b.Min.Lon() < 180 {
		if lon < b.Min.Lon()-EdgeTolerance || lon > b.Max.Lon()+EdgeTolerance {
			return false
		}
	}
	return true
}

// unwrapLon returns the longitude offset of x from ref, normalized to
// [-180, 180). Working in offsets keeps a ring that straddles the
// antimeridian contiguous relative to the query point.
func unwrapLon(x, ref float64) float64 {
	d := math.Mod(x-ref+540, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// insideRing runs an even-odd crossing test: it counts ring edges crossing
// the meridian arc from the query point toward the north pole. Ring
// longitudes are unwrapped relative to the query longitude first, so rings
// crossing +/-180 are handled like any other.
func insideRing(ring orb.Ring, lat, lon float64) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	x1 := unwrapLon(ring[n-1].Lon(), lon)
	y1 := ring[n-1].Lat()
	for i := 0; i < n; i++ {
		x2 := unwrapLon(ring[i].Lon(), lon)
		y2 := ring[i].Lat()
		if (x1 > 0) != (x2 > 0) {
			// Edge straddles the query meridian; latitude at the crossing.
			yc := y1 + (0-x1)*(y2-y1)/(x2-x1)
			if yc > lat {
				inside = !inside
			}
		}
		x1, y1 = x2, y2
	}
	return inside
}

// nearRing reports whether the query point lies within tol (degrees, planar)
// of any edge of the ring, in the unwrapped longitude domain.
func nearRing(ring orb.Ring, lat, lon, tol float64) bool {
	n := len(ring)
	if n < 2 {
		return false
	}
	tol2 := tol * tol
	x1 := unwrapLon(ring[n-1].Lon(), lon)
	y1 := ring[n-1].Lat() - lat
	for i := 0; i < n; i++ {
		x2 := unwrapLon(ring[i].Lon(), lon)
		y2 := ring[i].Lat() - lat
		if segmentDist2(x1, y1, x2, y2) <= tol2 {
			return true
		}
		x1, y1 = x2, y2
	}
	return false
}

// segmentDist2 returns the squared distance from the origin to the segment
// (x1,y1)-(x2,y2).
func segmentDist2(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	l2 := dx*dx + dy*dy
	t := 0.0
	if l2 > 0 {
		t = -(x1*dx + y1*dy) / l2
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	cx := x1 + t*dx
	cy := y1 + t*dy
	return cx*cx + cy*cy
}
