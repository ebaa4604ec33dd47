// Package scene defines the named object collection the pipeline hands to
// exporters: meshes with semantic identity (which entity, which role), not
// raw buffers.
package scene

import (
	"fmt"

	"github.com/chazu/atlasforge/pkg/mesh"
)

// GlobeFillName is the reserved name of the base globe fill object.
const GlobeFillName = "GlobeFill"

// Role enumerates the semantic roles an object can play in the scene.
type Role int

const (
	RoleGlobe   Role = iota // base globe fill (ocean)
	RoleFill                // flat country patch on the sphere surface
	RoleShell               // extruded volumetric country relief
	RoleBorder              // boundary ribbon along a country outline loop
	RoleMarker              // point-of-interest prism
	RoleClosing             // cap ribbon above a marker
)

func (r Role) String() string {
	switch r {
	case RoleGlobe:
		return "globe"
	case RoleFill:
		return "fill"
	case RoleShell:
		return "shell"
	case RoleBorder:
		return "border"
	case RoleMarker:
		return "marker"
	case RoleClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Object is one named mesh in the scene. Entity is the source entity name
// (country or place); Index disambiguates per-entity multiplicity (border
// loop number, duplicate place names).
type Object struct {
	Name   string
	Entity string
	Role   Role
	Index  int
	Mesh   *mesh.Mesh
}

// Scene is the ordered, name-indexed collection of objects produced by one
// generation run. Object order is deterministic: insertion order.
type Scene struct {
	Name    string
	Objects []*Object

	nameIndex map[string]*Object
}

// New returns an empty scene with the given name.
func New(name string) *Scene {
	return &Scene{Name: name, nameIndex: make(map[string]*Object)}
}

// Add appends an object. A duplicate name indicates a naming defect in the
// assembler, so it is an error rather than a silent overwrite.
func (s *Scene) Add(obj *Object) error {
	if obj.Name == "" {
		return fmt.Errorf("scene %q: object with empty name", s.Name)
	}
	if _, exists := s.nameIndex[obj.Name]; exists {
		return fmt.Errorf("scene %q: duplicate object name %q", s.Name, obj.Name)
	}
	s.Objects = append(s.Objects, obj)
	s.nameIndex[obj.Name] = obj
	return nil
}

// Lookup returns the object with the given name, or nil.
func (s *Scene) Lookup(name string) *Object {
	return s.nameIndex[name]
}

// ByRole returns the objects with the given role, in scene order.
func (s *Scene) ByRole(r Role) []*Object {
	var out []*Object
	for _, obj := range s.Objects {
		if obj.Role == r {
			out = append(out, obj)
		}
	}
	return out
}

// ObjectCount returns the total number of objects.
func (s *Scene) ObjectCount() int {
	return len(s.Objects)
}
