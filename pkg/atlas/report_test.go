package atlas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNewReportStampsRun(t *testing.T) {
	cfg := DefaultConfig()
	r := newReport(cfg)
	if r.RunID == "" {
		t.Error("empty run id")
	}
	if r.GeneratedAt.IsZero() {
		t.Error("zero timestamp")
	}
	if r.Subdivision != cfg.Subdivision || r.Radius != cfg.Radius {
		t.Error("realized config not copied")
	}
	if !r.Features.Borders || r.Features.Cities {
		t.Errorf("features = %+v, want borders only", r.Features)
	}
	if newReport(cfg).RunID == r.RunID {
		t.Error("run ids must be unique per report")
	}
}

func TestReportSkip(t *testing.T) {
	r := newReport(DefaultConfig())
	r.Skip(EntityError{Entity: "speck", Stage: StageExtract, Err: ErrEmptyPatch})
	r.Skip(EntityError{Entity: "tangle", Stage: StageBorder, Err: ErrAmbiguousBoundary})

	if r.Counts.SkippedCount != 2 || len(r.Skipped) != 2 {
		t.Fatalf("skipped count = %d/%d, want 2", r.Counts.SkippedCount, len(r.Skipped))
	}
	if r.Skipped[0].Entity != "speck" || r.Skipped[0].Stage != StageExtract {
		t.Errorf("first skip = %+v", r.Skipped[0])
	}
	if r.Skipped[1].Reason != ErrAmbiguousBoundary.Error() {
		t.Errorf("second skip reason = %q", r.Skipped[1].Reason)
	}
}

func TestReportWriteFile(t *testing.T) {
	r := newReport(DefaultConfig())
	r.Counts.Countries = 3
	r.Countries = []string{"a", "b", "c"}
	r.Skip(EntityError{Entity: "speck", Stage: StageExtract, Err: ErrEmptyPatch})

	path := filepath.Join(t.TempDir(), "run.report.json")
	if err := r.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.RunID != r.RunID {
		t.Errorf("run id = %q, want %q", got.RunID, r.RunID)
	}
	if got.Counts.Countries != 3 || len(got.Countries) != 3 {
		t.Errorf("counts not round-tripped: %+v", got.Counts)
	}
	if len(got.Skipped) != 1 || got.Skipped[0].Stage != StageExtract {
		t.Errorf("skips not round-tripped: %+v", got.Skipped)
	}
}

func TestReportWriteFileBadPath(t *testing.T) {
	r := newReport(DefaultConfig())
	if err := r.WriteFile(filepath.Join(t.TempDir(), "missing", "run.json")); err == nil {
		t.Error("write into missing directory should fail")
	}
}
