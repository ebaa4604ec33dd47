package atlas

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Skipped records one entity dropped during generation and why. The report
// carries every skip so that nothing disappears silently from the output.
type Skipped struct {
	Entity string `json:"entity"`
	Stage  Stage  `json:"stage"`
	Reason string `json:"reason"`
}

// Counts summarizes the generated scene.
type Counts struct {
	BaseFaces    int `json:"base_faces"`
	LabeledFaces int `json:"labeled_faces"`
	Countries    int `json:"countries"`
	Shells       int `json:"shells"`
	Borders      int `json:"borders"`
	Cities       int `json:"cities"`
	Closings     int `json:"closings"`
	SkippedCount int `json:"skipped"`
}

// Features records which optional outputs were enabled.
type Features struct {
	Borders  bool `json:"borders"`
	Cities   bool `json:"cities"`
	Closings bool `json:"closings"`
}

// Report documents the realized configuration and outcome of one generation
// run, for downstream consumers of the exported asset. It is a side-channel
// record, never an input to the geometry.
type Report struct {
	RunID       string      `json:"run_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	Subdivision int         `json:"subdivision"`
	Radius      float64     `json:"radius"`
	Country     Extrusion   `json:"country_extrusion"`
	City        Extrusion   `json:"city_extrusion"`
	Border      BorderStyle `json:"border"`
	Features    Features    `json:"features"`
	Counts      Counts      `json:"counts"`
	Countries   []string    `json:"countries"`
	Cities      []string    `json:"cities"`
	Skipped     []Skipped   `json:"skipped_entities"`
}

// newReport stamps a fresh report with a run id and the realized config.
func newReport(cfg Config) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Subdivision: cfg.Subdivision,
		Radius:      cfg.Radius,
		Country:     cfg.Country,
		City:        cfg.City,
		Border:      cfg.Border,
		Features: Features{
			Borders:  cfg.EnableBorders,
			Cities:   cfg.EnableCities,
			Closings: cfg.EnableClosings,
		},
	}
}

// Skip records one skipped entity. Loaders record input-stage skips through
// this after the run, so the report covers entities dropped before the
// pipeline ever saw them.
func (r *Report) Skip(e EntityError) {
	r.Skipped = append(r.Skipped, Skipped{
		Entity: e.Entity,
		Stage:  e.Stage,
		Reason: e.Err.Error(),
	})
	r.Counts.SkippedCount = len(r.Skipped)
}

// WriteFile writes the report as indented JSON.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}
	return nil
}
