// Package export defines the exporter surface of the pipeline.
// Implementations (gltf, obj) serialize an assembled scene to a file format
// behind this interface, so backends can be swapped without touching the
// geometry code.
package export

import "github.com/chazu/atlasforge/pkg/scene"

// Exporter writes a scene to the given path. Object names must survive the
// round trip: downstream tooling addresses objects by the names assigned
// during assembly.
type Exporter interface {
	Export(s *scene.Scene, path string) error
}
