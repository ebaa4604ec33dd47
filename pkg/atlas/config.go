// Package atlas implements the globe generation pipeline: face extraction,
// extrusion, boundary ribbons, point markers, and assembly of the resulting
// meshes into a named scene.
package atlas

import (
	"errors"
	"fmt"
)

// Subdivision bounds accepted by the pipeline. The icosphere builder itself
// accepts a wider range; these are the levels that produce useful globes.
const (
	MinSubdivision = 3
	MaxSubdivision = 7
)

// Extrusion holds the radial depths of a volumetric shell, both measured
// from the base sphere surface. Either may be zero.
type Extrusion struct {
	Above float64 `json:"above"`
	Below float64 `json:"below"`
}

// IsZero reports whether the extrusion degrades to a flat patch.
func (e Extrusion) IsZero() bool {
	return e.Above == 0 && e.Below == 0
}

// BorderStyle holds the border ribbon metrics. ZFightEps is the extra radial
// offset keeping ribbons off the extruded top surface.
type BorderStyle struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	ZFightEps float64 `json:"zfight_eps"`
}

// MarkerStyle holds the point marker metrics. Radius is the tangent-plane
// radius of the cap polygon; Sides its vertex count. ClosingScale and
// ClosingGap size and lift the optional cap ribbon above the marker top.
type MarkerStyle struct {
	Radius       float64 `json:"radius"`
	Sides        int     `json:"sides"`
	ClosingScale float64 `json:"closing_scale"`
	ClosingGap   float64 `json:"closing_gap"`
}

// Config is the single explicit configuration of a generation run. Every
// field is validated up front; there is no implicit global state.
type Config struct {
	Subdivision int
	Radius      float64
	Country     Extrusion
	City        Extrusion
	Border      BorderStyle
	Marker      MarkerStyle

	EnableBorders  bool
	EnableCities   bool
	EnableClosings bool
	InvertPoles    bool

	// Workers bounds the parallel per-entity stages; 0 means GOMAXPROCS.
	Workers int
}

// DefaultConfig mirrors the reference generation parameters.
func DefaultConfig() Config {
	return Config{
		Subdivision: 5,
		Radius:      1.0,
		Country:     Extrusion{Above: 0.1},
		City:        Extrusion{Above: 0.1},
		Border: BorderStyle{
			Width:     0.0005,
			Height:    0.0015,
			ZFightEps: 0.00005,
		},
		Marker: MarkerStyle{
			Radius:       0.007,
			Sides:        3,
			ClosingScale: 1.1,
			ClosingGap:   0.0005,
		},
		EnableBorders: true,
	}
}

// Validate checks every field. Configuration errors are fatal and abort the
// run before any geometry work; nothing is clamped silently.
func (c Config) Validate() error {
	var errs []error
	if c.Subdivision < MinSubdivision || c.Subdivision > MaxSubdivision {
		errs = append(errs, fmt.Errorf("subdivision level %d out of range [%d, %d]", c.Subdivision, MinSubdivision, MaxSubdivision))
	}
	if c.Radius <= 0 {
		errs = append(errs, fmt.Errorf("radius %v must be positive", c.Radius))
	}
	for _, e := range []struct {
		name string
		ext  Extrusion
	}{{"country", c.Country}, {"city", c.City}} {
		if e.ext.Above < 0 {
			errs = append(errs, fmt.Errorf("%s extrusion above %v must not be negative", e.name, e.ext.Above))
		}
		if e.ext.Below < 0 {
			errs = append(errs, fmt.Errorf("%s extrusion below %v must not be negative", e.name, e.ext.Below))
		}
	}
	if c.Border.Width < 0 || c.Border.Height < 0 || c.Border.ZFightEps < 0 {
		errs = append(errs, fmt.Errorf("border metrics must not be negative"))
	}
	if c.EnableBorders && (c.Border.Width == 0 || c.Border.Height == 0) {
		errs = append(errs, fmt.Errorf("borders enabled but border width/height is zero"))
	}
	if c.EnableCities {
		if c.Marker.Radius <= 0 {
			errs = append(errs, fmt.Errorf("marker radius %v must be positive", c.Marker.Radius))
		}
		if c.Marker.Sides < 3 {
			errs = append(errs, fmt.Errorf("marker sides %d must be at least 3", c.Marker.Sides))
		}
		if c.EnableClosings && (c.Marker.ClosingScale <= 0 || c.Marker.ClosingGap < 0) {
			errs = append(errs, fmt.Errorf("closing scale/gap invalid"))
		}
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", c.Workers))
	}
	return errors.Join(errs...)
}
