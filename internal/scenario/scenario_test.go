package scenario

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write scenario file: %v", err)
	}
	return path
}

func TestDefault_Values(t *testing.T) {
	tbl := Default()

	if tbl.DisasterPoint.Lat != 25.033964 || tbl.DisasterPoint.Lng != 121.564468 {
		t.Errorf("unexpected disaster point: %+v", tbl.DisasterPoint)
	}
	if tbl.Volunteer.ID != "vol_001" {
		t.Errorf("expected volunteer vol_001, got %s", tbl.Volunteer.ID)
	}
	if tbl.Team.ID != "team_hazmat_05" {
		t.Errorf("expected team team_hazmat_05, got %s", tbl.Team.ID)
	}
	if tbl.Analysis.SeverityScore != 9 {
		t.Errorf("expected severity 9, got %d", tbl.Analysis.SeverityScore)
	}
	if !strings.HasPrefix(tbl.Analysis.RiskAssessment, "CRITICAL RISK DETECTED.") {
		t.Errorf("unexpected risk assessment: %q", tbl.Analysis.RiskAssessment)
	}
	if err := tbl.Validate(); err != nil {
		t.Errorf("default table should validate: %v", err)
	}
}

func TestDefault_ReturnsCopy(t *testing.T) {
	a := Default()
	a.Volunteer.Name = "changed"
	a.Analysis.SeverityScore = 1

	b := Default()
	if b.Volunteer.Name != "Alex Chen" {
		t.Errorf("default table was mutated through a copy: %s", b.Volunteer.Name)
	}
	if b.Analysis.SeverityScore != 9 {
		t.Errorf("default analysis was mutated through a copy: %d", b.Analysis.SeverityScore)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	tbl, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tbl != Default() {
		t.Error("expected default table for empty path")
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeScenario(t, `
disaster_point:
  lat: 23.97
  lng: 121.60
team:
  name: Rescue Unit 12
analysis:
  severity_score: 7
`)

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if tbl.DisasterPoint.Lat != 23.97 || tbl.DisasterPoint.Lng != 121.60 {
		t.Errorf("disaster point not overridden: %+v", tbl.DisasterPoint)
	}
	if tbl.Team.Name != "Rescue Unit 12" {
		t.Errorf("expected overridden team name, got %s", tbl.Team.Name)
	}
	// untouched fields keep their defaults
	if tbl.Team.ID != "team_hazmat_05" {
		t.Errorf("expected default team id, got %s", tbl.Team.ID)
	}
	if tbl.Analysis.SeverityScore != 7 {
		t.Errorf("expected severity 7, got %d", tbl.Analysis.SeverityScore)
	}
	if tbl.Analysis.ActionPlan != Default().Analysis.ActionPlan {
		t.Error("expected default action plan to survive overlay")
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeScenario(t, "")

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tbl != Default() {
		t.Error("expected default table for empty file")
	}
}

func TestLoad_UnknownField(t *testing.T) {
	path := writeScenario(t, "disaster_pont:\n  lat: 1\n")

	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_DuplicateIDs(t *testing.T) {
	path := writeScenario(t, "team:\n  id: vol_001\n")

	if _, err := Load(path); err == nil {
		t.Error("expected error for duplicate responder ids")
	}
}

func TestValidate_NonFinite(t *testing.T) {
	tbl := Default()
	tbl.DisasterPoint.Lat = math.NaN()

	if err := tbl.Validate(); err == nil {
		t.Error("expected error for NaN coordinate")
	}

	tbl = Default()
	tbl.Team.Start.Lng = math.Inf(1)
	if err := tbl.Validate(); err == nil {
		t.Error("expected error for infinite coordinate")
	}
}
