// Package gltf implements the export.Exporter interface using the
// github.com/qmuntal/gltf library. Each scene object becomes one named glTF
// mesh attached to its own node.
package gltf

import (
	"fmt"
	"path/filepath"
	"strings"

	qgltf "github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/chazu/atlasforge/pkg/export"
	"github.com/chazu/atlasforge/pkg/scene"
)

// Compile-time interface check.
var _ export.Exporter = (*Exporter)(nil)

// Exporter writes scenes as glTF. Paths ending in .glb are written as
// binary glTF, anything else as JSON glTF.
type Exporter struct{}

// New returns a new glTF exporter.
func New() *Exporter {
	return &Exporter{}
}

// Export serializes the scene. Empty objects are skipped; every non-empty
// object keeps its assembly name on both the mesh and its node.
func (e *Exporter) Export(s *scene.Scene, path string) error {
	doc := qgltf.NewDocument()
	doc.Asset.Generator = "atlasforge"
	doc.Scenes[0].Name = s.Name

	for _, obj := range s.Objects {
		if obj.Mesh == nil || obj.Mesh.IsEmpty() {
			continue
		}
		posAcc := modeler.WritePosition(doc, obj.Mesh.Positions())
		idxAcc := modeler.WriteIndices(doc, obj.Mesh.Indices())

		doc.Meshes = append(doc.Meshes, &qgltf.Mesh{
			Name: obj.Name,
			Primitives: []*qgltf.Primitive{{
				Indices:    qgltf.Index(idxAcc),
				Attributes: map[string]uint32{qgltf.POSITION: posAcc},
			}},
		})
		doc.Nodes = append(doc.Nodes, &qgltf.Node{
			Name: obj.Name,
			Mesh: qgltf.Index(uint32(len(doc.Meshes) - 1)),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}

	var err error
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = qgltf.SaveBinary(doc, path)
	} else {
		err = qgltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("gltf: save %s: %w", path, err)
	}
	return nil
}
