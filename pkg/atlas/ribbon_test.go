package atlas

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/atlasforge/pkg/geo"
	"github.com/chazu/atlasforge/pkg/geom"
	"github.com/chazu/atlasforge/pkg/mesh"
)

// labelSingleFace builds FaceLabels marking exactly one base face as the
// only entity.
func labelSingleFace(base *mesh.Mesh, name string, face int) *FaceLabels {
	byFace := make([]int, base.FaceCount())
	for i := range byFace {
		byFace[i] = Unlabeled
	}
	byFace[face] = 0
	return &FaceLabels{
		names:  []string{name},
		byFace: byFace,
		faces:  [][]int{{face}},
	}
}

func TestBoundaryLoopsSingleFace(t *testing.T) {
	base := buildBase(t, 0)
	adj, err := mesh.BuildAdjacency(base)
	if err != nil {
		t.Fatalf("BuildAdjacency: %v", err)
	}
	labels := labelSingleFace(base, "tri", 0)

	loops, err := BoundaryLoops(base, adj, labels, 0)
	if err != nil {
		t.Fatalf("BoundaryLoops: %v", err)
	}
	if len(loops) != 1 {
		t.Fatalf("got %d loops, want 1", len(loops))
	}
	// The loop is face 0's vertex cycle, rotated to its smallest vertex.
	got := loops[0]
	want := base.Faces[0]
	if len(got) != 3 {
		t.Fatalf("loop length %d, want 3", len(got))
	}
	start := 0
	for i, v := range want {
		if v < want[start] {
			start = i
		}
	}
	for i := 0; i < 3; i++ {
		if got[i] != want[(start+i)%3] {
			t.Fatalf("loop = %v, want cycle of %v starting at %d", got, want, want[start])
		}
	}
}

func TestBoundaryLoopsBox(t *testing.T) {
	base := buildBase(t, 3)
	adj, err := mesh.BuildAdjacency(base)
	if err != nil {
		t.Fatalf("BuildAdjacency: %v", err)
	}
	proj := geom.Projection{Radius: 1}
	box := boxPolygon(t, "boxland", 0, 0, 40, 40)
	labels, err := ExtractFaces(base, proj, []*geo.Polygon{box})
	if err != nil {
		t.Fatalf("ExtractFaces: %v", err)
	}

	loops, err := BoundaryLoops(base, adj, labels, 0)
	if err != nil {
		t.Fatalf("BoundaryLoops: %v", err)
	}
	if len(loops) == 0 {
		t.Fatal("box country produced no boundary loops")
	}

	for li, loop := range loops {
		if len(loop) < 3 {
			t.Fatalf("loop %d has %d vertices", li, len(loop))
		}
		seen := make(map[int]bool, len(loop))
		for i, a := range loop {
			if seen[a] {
				t.Fatalf("loop %d revisits vertex %d", li, a)
			}
			seen[a] = true
			b := loop[(i+1)%len(loop)]
			// Each consecutive pair must be a base-mesh edge separating the
			// entity from the outside.
			f0, f1, ok := adj.Faces(mesh.NewEdgeKey(a, b))
			if !ok {
				t.Fatalf("loop %d edge (%d,%d) is not a base edge", li, a, b)
			}
			l0, l1 := labels.LabelOf(f0), Unlabeled
			if f1 != mesh.NoFace {
				l1 = labels.LabelOf(f1)
			}
			if (l0 == 0) == (l1 == 0) {
				t.Fatalf("loop %d edge (%d,%d) does not separate the entity", li, a, b)
			}
		}
	}

	// Deterministic: a second walk over the same labels yields identical loops.
	again, err := BoundaryLoops(base, adj, labels, 0)
	if err != nil {
		t.Fatalf("BoundaryLoops (second): %v", err)
	}
	if len(again) != len(loops) {
		t.Fatalf("loop count changed: %d vs %d", len(again), len(loops))
	}
	for li := range loops {
		if len(again[li]) != len(loops[li]) {
			t.Fatalf("loop %d length changed", li)
		}
		for i := range loops[li] {
			if again[li][i] != loops[li][i] {
				t.Fatalf("loop %d differs at position %d", li, i)
			}
		}
	}
}

func TestBoundaryLoopsNoFaces(t *testing.T) {
	base := buildBase(t, 0)
	adj, err := mesh.BuildAdjacency(base)
	if err != nil {
		t.Fatalf("BuildAdjacency: %v", err)
	}
	labels := &FaceLabels{
		names:  []string{"ghost"},
		byFace: make([]int, base.FaceCount()),
		faces:  make([][]int, 1),
	}
	for i := range labels.byFace {
		labels.byFace[i] = Unlabeled
	}
	loops, err := BoundaryLoops(base, adj, labels, 0)
	if err != nil {
		t.Fatalf("BoundaryLoops: %v", err)
	}
	if loops != nil {
		t.Errorf("entity with no faces produced loops: %v", loops)
	}
}

func TestBuildRibbonGeometry(t *testing.T) {
	base := buildBase(t, 0)
	style := BorderStyle{Width: 0.001, Height: 0.002, ZFightEps: 0.00005}
	loop := []int{base.Faces[0][0], base.Faces[0][1], base.Faces[0][2]}

	rib, err := BuildRibbon(base, "border_tri_0", loop, 1.0, 0.05, style)
	if err != nil {
		t.Fatalf("BuildRibbon: %v", err)
	}
	if got, want := rib.VertexCount(), 2*len(loop); got != want {
		t.Errorf("VertexCount = %d, want %d", got, want)
	}
	if got, want := rib.FaceCount(), 2*len(loop); got != want {
		t.Errorf("FaceCount = %d, want %d", got, want)
	}
	if err := rib.Validate(); err != nil {
		t.Errorf("ribbon invalid: %v", err)
	}

	// Every ribbon vertex must sit strictly above the extruded top surface.
	floor := 1.0 + 0.05 + style.Height
	for i, v := range rib.Vertices {
		if v.Length() <= floor {
			t.Errorf("vertex %d at radius %v, want > %v", i, v.Length(), floor)
		}
	}

	// Left/right pairs straddle the loop at the configured width.
	for i := 0; i < len(loop); i++ {
		gap := rib.Vertices[2*i].Sub(rib.Vertices[2*i+1]).Length()
		if math.Abs(gap-style.Width) > 1e-12 {
			t.Errorf("pair %d spans %v, want %v", i, gap, style.Width)
		}
	}
}

func TestBuildRibbonDegenerateLoop(t *testing.T) {
	base := buildBase(t, 0)
	style := BorderStyle{Width: 0.001, Height: 0.002}
	if _, err := BuildRibbon(base, "bad", []int{0, 1}, 1.0, 0, style); !errors.Is(err, ErrDegenerateLoop) {
		t.Errorf("err = %v, want ErrDegenerateLoop", err)
	}
}
