package icosphere

import (
	"math"
	"testing"

	"github.com/chazu/atlasforge/pkg/mesh"
)

func TestBuildCounts(t *testing.T) {
	for level := 0; level <= 4; level++ {
		m, err := Build(level, 1.0)
		if err != nil {
			t.Fatalf("Build(%d, 1): %v", level, err)
		}
		pow4 := 1 << (2 * level)
		if got, want := m.FaceCount(), 20*pow4; got != want {
			t.Errorf("level %d: FaceCount = %d, want %d", level, got, want)
		}
		if got, want := m.VertexCount(), 10*pow4+2; got != want {
			t.Errorf("level %d: VertexCount = %d, want %d", level, got, want)
		}
		if m.Name != BaseMeshName {
			t.Errorf("level %d: Name = %q, want %q", level, m.Name, BaseMeshName)
		}
	}
}

func TestBuildRadius(t *testing.T) {
	for _, radius := range []float64{1.0, 0.5, 6371.0} {
		m, err := Build(3, radius)
		if err != nil {
			t.Fatalf("Build(3, %v): %v", radius, err)
		}
		for i, v := range m.Vertices {
			if math.Abs(v.Length()-radius) > radius*1e-12 {
				t.Fatalf("radius %v: vertex %d at distance %v", radius, i, v.Length())
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, err := Build(2, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(2, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if a.VertexCount() != b.VertexCount() || a.FaceCount() != b.FaceCount() {
		t.Fatal("rebuild changed topology size")
	}
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex %d differs between identical builds", i)
		}
	}
	for i := range a.Faces {
		if a.Faces[i] != b.Faces[i] {
			t.Fatalf("face %d differs between identical builds", i)
		}
	}
}

func TestBuildWindingOutward(t *testing.T) {
	m, err := Build(2, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	for i, f := range m.Faces {
		a := m.Vertices[f[0]]
		b := m.Vertices[f[1]]
		c := m.Vertices[f[2]]
		normal := b.Sub(a).Cross(c.Sub(a))
		if normal.Dot(m.FaceCentroid(i)) <= 0 {
			t.Fatalf("face %d winds inward", i)
		}
	}
}

func TestBuildWatertight(t *testing.T) {
	m, err := Build(2, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	adj, err := mesh.BuildAdjacency(m)
	if err != nil {
		t.Fatalf("BuildAdjacency: %v", err)
	}
	// A closed triangle mesh has exactly 3/2 edges per face, each shared by
	// two faces.
	if got, want := adj.EdgeCount(), m.FaceCount()*3/2; got != want {
		t.Errorf("EdgeCount = %d, want %d", got, want)
	}
	for k, faces := range adj.Edges {
		if faces[1] == mesh.NoFace {
			t.Fatalf("edge %+v has only one face", k)
		}
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	if _, err := Build(-1, 1.0); err == nil {
		t.Error("negative level accepted")
	}
	if _, err := Build(MaxLevel+1, 1.0); err == nil {
		t.Error("level beyond MaxLevel accepted")
	}
	if _, err := Build(2, 0); err == nil {
		t.Error("zero radius accepted")
	}
	if _, err := Build(2, -1); err == nil {
		t.Error("negative radius accepted")
	}
}
