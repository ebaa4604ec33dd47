package atlas

import (
	"errors"
	"fmt"
)

// Structural degeneracies reported per entity. These are non-fatal: the
// entity is skipped and generation continues.
var (
	// ErrEmptyPatch marks an entity whose polygon claimed no sphere faces.
	ErrEmptyPatch = errors.New("patch has no faces")

	// ErrDegenerateLoop marks a boundary loop with fewer than 3 vertices.
	ErrDegenerateLoop = errors.New("boundary loop has fewer than 3 vertices")

	// ErrAmbiguousBoundary marks a patch whose boundary touches itself at a
	// vertex, making the loop walk ambiguous.
	ErrAmbiguousBoundary = errors.New("patch boundary is ambiguous at a vertex")
)

// Stage identifies the pipeline stage an entity error occurred in.
type Stage string

const (
	StageInput   Stage = "input"
	StageExtract Stage = "extract"
	StageExtrude Stage = "extrude"
	StageBorder  Stage = "border"
	StageMarker  Stage = "marker"
	StageClosing Stage = "closing"
)

// EntityError records a non-fatal failure for one entity at one stage. The
// pipeline aggregates these into the run report instead of aborting.
type EntityError struct {
	Entity string
	Stage  Stage
	Err    error
}

func (e EntityError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Entity, e.Stage, e.Err)
}

func (e EntityError) Unwrap() error {
	return e.Err
}
