// Package obj implements the export.Exporter interface for Wavefront OBJ,
// a plain-text format handy for inspecting generated geometry in any mesh
// viewer. Object names map to "o" groups; vertex indices are file-global
// and 1-based per the format.
package obj

import (
	"bufio"
	"fmt"
	"os"

	"github.com/chazu/atlasforge/pkg/export"
	"github.com/chazu/atlasforge/pkg/scene"
)

// Compile-time interface check.
var _ export.Exporter = (*Exporter)(nil)

// Exporter writes scenes as Wavefront OBJ text.
type Exporter struct{}

// New returns a new OBJ exporter.
func New() *Exporter {
	return &Exporter{}
}

// Export serializes the scene. Empty objects are skipped.
func (e *Exporter) Export(s *scene.Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("obj: create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# %s\n", s.Name)

	offset := 1
	for _, obj := range s.Objects {
		if obj.Mesh == nil || obj.Mesh.IsEmpty() {
			continue
		}
		fmt.Fprintf(w, "o %s\n", obj.Name)
		for _, v := range obj.Mesh.Vertices {
			fmt.Fprintf(w, "v %g %g %g\n", v.X, v.Y, v.Z)
		}
		for _, face := range obj.Mesh.Faces {
			fmt.Fprintf(w, "f %d %d %d\n", face[0]+offset, face[1]+offset, face[2]+offset)
		}
		offset += obj.Mesh.VertexCount()
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("obj: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("obj: close %s: %w", path, err)
	}
	return nil
}
