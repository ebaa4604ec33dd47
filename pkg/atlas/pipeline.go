package atlas

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/atlasforge/pkg/geo"
	"github.com/chazu/atlasforge/pkg/geom"
	"github.com/chazu/atlasforge/pkg/icosphere"
	"github.com/chazu/atlasforge/pkg/mesh"
	"github.com/chazu/atlasforge/pkg/scene"
)

// oceanInset is the radial recess of the globe fill below the country
// surfaces, so zero-relief countries never coplane with the ocean.
const oceanInset = 1e-4

// Pipeline generates a full globe scene from parsed inputs. A pipeline is
// stateless between runs; every Run builds its own base mesh and produces an
// independent scene.
type Pipeline struct {
	cfg Config
}

// New validates the configuration and returns a pipeline. Configuration
// errors are fatal: no geometry work happens on an invalid config.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("atlas: invalid config: %w", err)
	}
	return &Pipeline{cfg: cfg}, nil
}

// Result bundles the assembled scene with the run report.
type Result struct {
	Scene  *scene.Scene
	Report *Report
}

// borderOutput keeps a ribbon together with its loop index so that border
// names stay stable when another loop of the same country is skipped.
type borderOutput struct {
	loop int
	m    *mesh.Mesh
}

// countryOutput is the result of one country worker.
type countryOutput struct {
	fill    *mesh.Mesh
	shell   *mesh.Mesh
	borders []borderOutput
	errs    []EntityError
}

// Run executes the full pipeline: base sphere, face extraction, per-country
// extrusion and border ribbons in parallel, point markers, and assembly.
// Per-entity failures are recorded in the report and skipped; only
// configuration and internal invariant violations abort the run.
func (p *Pipeline) Run(ctx context.Context, countries []*geo.Polygon, places []geo.Place) (*Result, error) {
	cfg := p.cfg
	report := newReport(cfg)
	proj := geom.Projection{Radius: cfg.Radius, InvertPoles: cfg.InvertPoles}

	base, err := icosphere.Build(cfg.Subdivision, cfg.Radius)
	if err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}
	adj, err := mesh.BuildAdjacency(base)
	if err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}
	labels, err := ExtractFaces(base, proj, countries)
	if err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}
	report.Counts.BaseFaces = base.FaceCount()
	report.Counts.LabeledFaces = labels.LabeledCount()

	// Countries are independent once the base mesh, adjacency index and
	// labels exist; each worker owns its output slot.
	outputs := make([]countryOutput, len(countries))
	g, gctx := errgroup.WithContext(ctx)
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)
	for i, poly := range countries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outputs[i] = p.generateCountry(base, adj, labels, i, poly.Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}

	asm := NewAssembler(SceneName)

	ocean := BuildPatch(base, scene.GlobeFillName, labels.Unassigned())
	normalize(ocean, cfg.Radius-oceanInset)
	if err := asm.AddGlobe(ocean); err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}

	for i, poly := range countries {
		out := outputs[i]
		for _, e := range out.errs {
			report.Skip(e)
		}
		if out.fill == nil {
			continue
		}
		if err := asm.AddFill(poly.Name, out.fill); err != nil {
			return nil, fmt.Errorf("atlas: %w", err)
		}
		report.Counts.Countries++
		report.Countries = append(report.Countries, poly.Name)

		if out.shell != nil {
			if err := asm.AddShell(poly.Name, out.shell); err != nil {
				return nil, fmt.Errorf("atlas: %w", err)
			}
			report.Counts.Shells++
		}
		for _, b := range out.borders {
			if err := asm.AddBorder(poly.Name, b.loop, b.m); err != nil {
				return nil, fmt.Errorf("atlas: %w", err)
			}
			report.Counts.Borders++
		}
	}

	if cfg.EnableCities {
		for i, place := range places {
			m, err := BuildMarker(place, proj, cfg.City, cfg.Marker, markerName(place.Name, i))
			if err != nil {
				report.Skip(EntityError{Entity: place.Name, Stage: StageMarker, Err: err})
				continue
			}
			if err := asm.AddMarker(place.Name, i, m); err != nil {
				return nil, fmt.Errorf("atlas: %w", err)
			}
			report.Counts.Cities++
			report.Cities = append(report.Cities, place.Name)

			if cfg.EnableClosings {
				c, err := BuildClosing(place, proj, cfg.City, cfg.Marker, closingName(place.Name, i))
				if err != nil {
					report.Skip(EntityError{Entity: place.Name, Stage: StageClosing, Err: err})
					continue
				}
				if err := asm.AddClosing(place.Name, i, c); err != nil {
					return nil, fmt.Errorf("atlas: %w", err)
				}
				report.Counts.Closings++
			}
		}
	}

	return &Result{Scene: asm.Scene(), Report: report}, nil
}

// generateCountry produces the fill, optional shell, and optional border
// ribbons of one country. Structural failures are collected per entity; a
// failed stage never prevents the remaining stages or entities.
func (p *Pipeline) generateCountry(base *mesh.Mesh, adj *mesh.Adjacency, labels *FaceLabels, idx int, name string) countryOutput {
	var out countryOutput
	cfg := p.cfg

	faces := labels.Faces(idx)
	if len(faces) == 0 {
		out.errs = append(out.errs, EntityError{Entity: name, Stage: StageExtract, Err: ErrEmptyPatch})
		return out
	}
	patch := BuildPatch(base, fillName(name), faces)
	out.fill = patch

	if !cfg.Country.IsZero() {
		shell, err := ExtrudePatch(patch, cfg.Radius, cfg.Country.Above, cfg.Country.Below)
		if err != nil {
			out.errs = append(out.errs, EntityError{Entity: name, Stage: StageExtrude, Err: err})
		} else {
			shell.Name = shellName(name)
			out.shell = shell
		}
	}

	if cfg.EnableBorders {
		loops, err := BoundaryLoops(base, adj, labels, idx)
		if err != nil {
			out.errs = append(out.errs, EntityError{Entity: name, Stage: StageBorder, Err: err})
			return out
		}
		for li, loop := range loops {
			rib, err := BuildRibbon(base, borderName(name, li), loop, cfg.Radius, cfg.Country.Above, cfg.Border)
			if err != nil {
				out.errs = append(out.errs, EntityError{
					Entity: name,
					Stage:  StageBorder,
					Err:    fmt.Errorf("loop %d: %w", li, err),
				})
				continue
			}
			out.borders = append(out.borders, borderOutput{loop: li, m: rib})
		}
	}
	return out
}
