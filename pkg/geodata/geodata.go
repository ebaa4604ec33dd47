// Package geodata loads country boundaries and populated places from
// GeoJSON documents (Natural Earth layouts) into the pipeline's input types.
// Features that cannot be used are returned as input-stage skip records, so
// the run report accounts for every entity in the source file.
package geodata

import (
	"fmt"
	"os"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/chazu/atlasforge/pkg/atlas"
	"github.com/chazu/atlasforge/pkg/geo"
)

// ParseCountries decodes a FeatureCollection of Polygon/MultiPolygon
// features into spherical polygons. Each part of a MultiPolygon becomes its
// own entity named "<name>_<part>", matching the per-part face grouping the
// rest of the pipeline expects; a name collision (duplicate ADMIN values)
// gets a numeric suffix so scene names stay unique. Features are processed
// in document order; maxFeatures <= 0 means no limit.
//
// Features with unsupported geometry and parts without a usable outer ring
// are dropped from the result and recorded as input-stage skips.
func ParseCountries(data []byte, maxFeatures int) ([]*geo.Polygon, []atlas.EntityError, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, nil, fmt.Errorf("geodata: decode countries: %w", err)
	}

	features := fc.Features
	if maxFeatures > 0 && len(features) > maxFeatures {
		features = features[:maxFeatures]
	}

	var polys []*geo.Polygon
	var skipped []atlas.EntityError
	used := make(map[string]bool)
	for i, f := range features {
		name := featureName(f, "ADMIN", "NAME", "name")
		if name == "" {
			name = fmt.Sprintf("feature_%d", i)
		}

		var parts []orb.Polygon
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			parts = []orb.Polygon{g}
		case orb.MultiPolygon:
			parts = g
		default:
			skipped = append(skipped, atlas.EntityError{
				Entity: name,
				Stage:  atlas.StageInput,
				Err:    fmt.Errorf("unsupported geometry %T", f.Geometry),
			})
			continue
		}

		for pi, part := range parts {
			partName := fmt.Sprintf("%s_%d", name, pi)
			for n := 2; used[partName]; n++ {
				partName = fmt.Sprintf("%s_%d_%d", name, pi, n)
			}

			rings := usableRings(part)
			if len(rings) == 0 {
				skipped = append(skipped, atlas.EntityError{
					Entity: partName,
					Stage:  atlas.StageInput,
					Err:    fmt.Errorf("part has no usable outer ring"),
				})
				continue
			}
			p, err := geo.NewPolygon(partName, rings)
			if err != nil {
				skipped = append(skipped, atlas.EntityError{
					Entity: partName,
					Stage:  atlas.StageInput,
					Err:    err,
				})
				continue
			}
			used[partName] = true
			polys = append(polys, p)
		}
	}
	return polys, skipped, nil
}

// LoadCountries reads and parses a countries GeoJSON file.
func LoadCountries(path string, maxFeatures int) ([]*geo.Polygon, []atlas.EntityError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("geodata: read countries: %w", err)
	}
	return ParseCountries(data, maxFeatures)
}

// ParsePlaces decodes a FeatureCollection of point features into places,
// ordered by POP_MAX descending so that a cap keeps the most populous
// entries. maxPlaces <= 0 means no limit. Features without point geometry
// are recorded as input-stage skips.
func ParsePlaces(data []byte, maxPlaces int) ([]geo.Place, []atlas.EntityError, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, nil, fmt.Errorf("geodata: decode places: %w", err)
	}

	type ranked struct {
		place geo.Place
		pop   float64
	}
	var all []ranked
	var skipped []atlas.EntityError
	for i, f := range fc.Features {
		name := featureName(f, "NAME", "NAMEASCII", "name")
		if name == "" {
			name = fmt.Sprintf("place_%d", i)
		}
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			skipped = append(skipped, atlas.EntityError{
				Entity: name,
				Stage:  atlas.StageInput,
				Err:    fmt.Errorf("unsupported geometry %T", f.Geometry),
			})
			continue
		}
		all = append(all, ranked{
			place: geo.Place{Name: name, Lat: pt.Lat(), Lon: pt.Lon()},
			pop:   featureNumber(f, "POP_MAX", "pop_max", "POP"),
		})
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].pop > all[j].pop })
	if maxPlaces > 0 && len(all) > maxPlaces {
		all = all[:maxPlaces]
	}

	places := make([]geo.Place, len(all))
	for i, r := range all {
		places[i] = r.place
	}
	return places, skipped, nil
}

// LoadPlaces reads and parses a places GeoJSON file.
func LoadPlaces(path string, maxPlaces int) ([]geo.Place, []atlas.EntityError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("geodata: read places: %w", err)
	}
	return ParsePlaces(data, maxPlaces)
}

// usableRings keeps the rings of a polygon part that have at least three
// distinct points. If the outer ring is unusable the whole part is.
func usableRings(part orb.Polygon) []orb.Ring {
	if len(part) == 0 || len(part[0]) < 3 {
		return nil
	}
	rings := []orb.Ring{part[0]}
	for _, hole := range part[1:] {
		if len(hole) >= 3 {
			rings = append(rings, hole)
		}
	}
	return rings
}

// featureName returns the first non-empty string property among keys.
func featureName(f *geojson.Feature, keys ...string) string {
	for _, k := range keys {
		if v, ok := f.Properties[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// featureNumber returns the first numeric property among keys, or 0.
func featureNumber(f *geojson.Feature, keys ...string) float64 {
	for _, k := range keys {
		switch v := f.Properties[k].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}
	return 0
}
