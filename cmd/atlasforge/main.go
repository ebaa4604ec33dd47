// Command atlasforge turns GeoJSON country boundaries and populated places
// into a relief-extruded globe mesh and exports it as a 3D asset, writing a
// JSON report of the realized configuration alongside.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/atlasforge/pkg/atlas"
	"github.com/chazu/atlasforge/pkg/export"
	"github.com/chazu/atlasforge/pkg/export/gltf"
	"github.com/chazu/atlasforge/pkg/export/obj"
	"github.com/chazu/atlasforge/pkg/geo"
	"github.com/chazu/atlasforge/pkg/geodata"
)

func main() {
	if err := run(); err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	defaults := atlas.DefaultConfig()

	countriesPath := flag.String("countries", "", "countries GeoJSON file (required)")
	placesPath := flag.String("places", "", "populated places GeoJSON file")
	outPath := flag.String("out", "atlas.glb", "output file (.glb, .gltf or .obj)")
	reportPath := flag.String("report", "", "report JSON path (default: <out>.report.json)")

	subdiv := flag.Int("subdiv", defaults.Subdivision, "icosphere subdivision level")
	radius := flag.Float64("radius", defaults.Radius, "sphere radius")
	extrudeAbove := flag.Float64("extrude-above", defaults.Country.Above, "radial extrusion above the surface (countries and cities)")
	extrudeBelow := flag.Float64("extrude-below", defaults.Country.Below, "radial extrusion below the surface (countries and cities)")
	borderWidth := flag.Float64("border-width", defaults.Border.Width, "border ribbon width")
	borderHeight := flag.Float64("border-height", defaults.Border.Height, "border ribbon height")
	zfightEps := flag.Float64("zfight-eps", defaults.Border.ZFightEps, "radial epsilon keeping ribbons off the top surface")

	borders := flag.Bool("borders", defaults.EnableBorders, "generate border ribbons")
	cities := flag.Bool("cities", defaults.EnableCities, "generate city markers")
	closings := flag.Bool("closings", defaults.EnableClosings, "generate closing caps above city markers")
	invertPoles := flag.Bool("invert-poles", false, "invert the pole mapping")

	maxCountries := flag.Int("max-countries", 0, "limit processed country features (0 = all)")
	maxCities := flag.Int("max-cities", 200, "limit generated cities (0 = all)")
	workers := flag.Int("workers", 0, "parallel country workers (0 = GOMAXPROCS)")
	verbose := flag.Bool("v", false, "debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *countriesPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required -countries flag")
	}

	cfg := defaults
	cfg.Subdivision = *subdiv
	cfg.Radius = *radius
	cfg.Country = atlas.Extrusion{Above: *extrudeAbove, Below: *extrudeBelow}
	cfg.City = cfg.Country
	cfg.Border.Width = *borderWidth
	cfg.Border.Height = *borderHeight
	cfg.Border.ZFightEps = *zfightEps
	cfg.EnableBorders = *borders
	cfg.EnableCities = *cities
	cfg.EnableClosings = *closings
	cfg.InvertPoles = *invertPoles
	cfg.Workers = *workers

	pipeline, err := atlas.New(cfg)
	if err != nil {
		return err
	}

	countries, inputSkips, err := geodata.LoadCountries(*countriesPath, *maxCountries)
	if err != nil {
		return err
	}
	logger.Info("loaded countries", "path", *countriesPath, "polygons", len(countries))

	var places []geo.Place
	if cfg.EnableCities {
		if *placesPath == "" {
			return fmt.Errorf("cities enabled but no -places file given")
		}
		var placeSkips []atlas.EntityError
		places, placeSkips, err = geodata.LoadPlaces(*placesPath, *maxCities)
		if err != nil {
			return err
		}
		inputSkips = append(inputSkips, placeSkips...)
		logger.Info("loaded places", "path", *placesPath, "places", len(places))
	}

	result, err := pipeline.Run(context.Background(), countries, places)
	if err != nil {
		return err
	}
	// Entities dropped at load time belong in the same report as the
	// pipeline's own skips.
	for _, e := range inputSkips {
		result.Report.Skip(e)
	}
	for _, s := range result.Report.Skipped {
		logger.Warn("entity skipped", "entity", s.Entity, "stage", string(s.Stage), "reason", s.Reason)
	}
	logger.Info("scene assembled",
		"objects", result.Scene.ObjectCount(),
		"countries", result.Report.Counts.Countries,
		"borders", result.Report.Counts.Borders,
		"cities", result.Report.Counts.Cities,
		"skipped", result.Report.Counts.SkippedCount,
	)

	if err := exporterFor(*outPath).Export(result.Scene, *outPath); err != nil {
		return err
	}
	logger.Info("exported scene", "path", *outPath)

	rp := *reportPath
	if rp == "" {
		rp = strings.TrimSuffix(*outPath, filepath.Ext(*outPath)) + ".report.json"
	}
	if err := result.Report.WriteFile(rp); err != nil {
		return err
	}
	logger.Info("wrote report", "path", rp, "run_id", result.Report.RunID)
	return nil
}

// exporterFor picks the export backend from the output file extension.
func exporterFor(path string) export.Exporter {
	if strings.EqualFold(filepath.Ext(path), ".obj") {
		return obj.New()
	}
	return gltf.New()
}
