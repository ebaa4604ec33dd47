package atlas

import (
	"fmt"

	"github.com/chazu/atlasforge/pkg/mesh"
	"github.com/chazu/atlasforge/pkg/scene"
)

// SceneName is the name of the assembled scene root, matching the reference
// asset hierarchy.
const SceneName = "Atlas"

// Object naming contract. The globe fill keeps its reserved name; every
// other object derives its name from its source entity and role.
func fillName(entity string) string            { return fmt.Sprintf("country_%s", entity) }
func shellName(entity string) string           { return fmt.Sprintf("shell_%s", entity) }
func borderName(entity string, loop int) string {
	return fmt.Sprintf("border_%s_%d", entity, loop)
}
func markerName(entity string, idx int) string { return fmt.Sprintf("city_%s_%d", entity, idx) }
func closingName(entity string, idx int) string {
	return fmt.Sprintf("closing_%s_%d", entity, idx)
}

// Assembler collects pipeline outputs into the named scene. It performs no
// geometry work: purely structural assembly and naming. Duplicate names are
// internal invariant violations and surface as errors.
type Assembler struct {
	s *scene.Scene
}

// NewAssembler returns an assembler building a scene with the given name.
func NewAssembler(name string) *Assembler {
	return &Assembler{s: scene.New(name)}
}

func (a *Assembler) add(obj *scene.Object, m *mesh.Mesh) error {
	obj.Mesh = m
	m.Name = obj.Name
	return a.s.Add(obj)
}

// AddGlobe registers the base globe fill under its reserved name.
func (a *Assembler) AddGlobe(m *mesh.Mesh) error {
	return a.add(&scene.Object{Name: scene.GlobeFillName, Role: scene.RoleGlobe}, m)
}

// AddFill registers a country's flat surface patch.
func (a *Assembler) AddFill(entity string, m *mesh.Mesh) error {
	return a.add(&scene.Object{Name: fillName(entity), Entity: entity, Role: scene.RoleFill}, m)
}

// AddShell registers a country's extruded relief shell.
func (a *Assembler) AddShell(entity string, m *mesh.Mesh) error {
	return a.add(&scene.Object{Name: shellName(entity), Entity: entity, Role: scene.RoleShell}, m)
}

// AddBorder registers one border ribbon loop of a country.
func (a *Assembler) AddBorder(entity string, loop int, m *mesh.Mesh) error {
	return a.add(&scene.Object{Name: borderName(entity, loop), Entity: entity, Role: scene.RoleBorder, Index: loop}, m)
}

// AddMarker registers a point marker. The index disambiguates duplicate
// place names.
func (a *Assembler) AddMarker(entity string, idx int, m *mesh.Mesh) error {
	return a.add(&scene.Object{Name: markerName(entity, idx), Entity: entity, Role: scene.RoleMarker, Index: idx}, m)
}

// AddClosing registers the cap ribbon above a marker.
func (a *Assembler) AddClosing(entity string, idx int, m *mesh.Mesh) error {
	return a.add(&scene.Object{Name: closingName(entity, idx), Entity: entity, Role: scene.RoleClosing, Index: idx}, m)
}

// Scene returns the assembled scene.
func (a *Assembler) Scene() *scene.Scene {
	return a.s
}
