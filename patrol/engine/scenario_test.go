package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createTestScenario() *Scenario {
	return &Scenario{
		Name:        "Test Reserve",
		Description: "Scenario for engine tests",
		GridSize:    5,
		RangerCount: 2,
		MaxSteps:    10,
		Layout: []string{
			".....",
			".##A.",
			".#...",
			".A...",
			".....",
		},
		Legend: map[string]string{
			".": "open", "#": "blocked", "A": "animals",
		},
		RiskMap: [][]float64{
			{0.1, 0.2, 0.1, 0.0, 0.0},
			{0.3, 0.0, 0.0, 0.8, 0.1},
			{0.2, 0.0, 0.4, 0.9, 0.2},
			{0.1, 0.7, 0.3, 0.2, 0.1},
			{0.0, 0.1, 0.1, 0.0, 0.0},
		},
	}
}

func TestValidateScenario(t *testing.T) {
	t.Run("valid scenario", func(t *testing.T) {
		if err := ValidateScenario(createTestScenario()); err != nil {
			t.Errorf("Expected valid scenario, got %v", err)
		}
	})

	tests := []struct {
		name    string
		mutate  func(s *Scenario)
		errPart string
	}{
		{"missing name", func(s *Scenario) { s.Name = "" }, "name is required"},
		{"missing description", func(s *Scenario) { s.Description = "" }, "description is required"},
		{"grid too small", func(s *Scenario) { s.GridSize = 2 }, "grid_size"},
		{"grid too large", func(s *Scenario) { s.GridSize = 80 }, "grid_size"},
		{"zero rangers", func(s *Scenario) { s.RangerCount = 0 }, "ranger_count"},
		{"too many steps", func(s *Scenario) { s.MaxSteps = MaxPlanSteps + 1 }, "max_steps"},
		{"short layout", func(s *Scenario) { s.Layout = s.Layout[:3] }, "layout must have"},
		{"short layout row", func(s *Scenario) { s.Layout[2] = ".#.." }, "row 3"},
		{"invalid character", func(s *Scenario) { s.Layout[0] = "..X.." }, "invalid character"},
		{"no open cells", func(s *Scenario) {
			for i := range s.Layout {
				s.Layout[i] = "#####"
			}
		}, "at least one open"},
		{"bad legend", func(s *Scenario) { s.Legend["#"] = "wall" }, "legend"},
		{"short risk map", func(s *Scenario) { s.RiskMap = s.RiskMap[:4] }, "risk_map must have"},
		{"risk out of range", func(s *Scenario) { s.RiskMap[0][0] = 1.2 }, "must be in [0,1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := createTestScenario()
			tt.mutate(scenario)
			err := ValidateScenario(scenario)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Expected error containing %q, got %q", tt.errPart, err.Error())
			}
		})
	}
}

func TestBuildParameters(t *testing.T) {
	scenario := createTestScenario()
	params := BuildParameters(scenario)

	if params.GridSize != scenario.GridSize {
		t.Errorf("Expected grid size %d, got %d", scenario.GridSize, params.GridSize)
	}
	if params.RangerCount != scenario.RangerCount {
		t.Errorf("Expected ranger count %d, got %d", scenario.RangerCount, params.RangerCount)
	}
	if params.MaxSteps != scenario.MaxSteps {
		t.Errorf("Expected max steps %d, got %d", scenario.MaxSteps, params.MaxSteps)
	}

	// Blocked cells: impassable and zero risk regardless of the risk map.
	if params.TerrainMap[1][1] != TerrainImpassable {
		t.Error("Expected (1,1) to be impassable")
	}
	if params.RiskMap[2][3] == 0 {
		t.Error("Expected open cell (2,3) to keep its risk")
	}
	if params.RiskMap[1][2] != 0 {
		t.Errorf("Expected blocked cell (1,2) to carry zero risk, got %g", params.RiskMap[1][2])
	}

	// Animal cells are passable and flagged.
	if params.TerrainMap[1][3] != TerrainPassable || !params.AnimalMap[1][3] {
		t.Error("Expected (1,3) to be passable with animals present")
	}
	if params.AnimalMap[0][0] {
		t.Error("Expected (0,0) to have no animals")
	}

	// The built parameters must pass validation and run end to end.
	if err := ValidateParameters(params); err != nil {
		t.Fatalf("Built parameters failed validation: %v", err)
	}
	planner, err := NewPlannerWithSeed(params, 5)
	if err != nil {
		t.Fatalf("Failed to create planner from scenario: %v", err)
	}
	if _, err := planner.Generate(); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
}

func writeScenarioJSON(t *testing.T, path string, scenario *Scenario) {
	t.Helper()

	data, err := json.MarshalIndent(scenario, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal scenario: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write scenario file: %v", err)
	}
}

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reserve.json")
	writeScenarioJSON(t, path, createTestScenario())

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}

	if scenario.Name != "Test Reserve" {
		t.Errorf("Expected scenario Test Reserve, got %s", scenario.Name)
	}
	if scenario.GridSize != 5 {
		t.Errorf("Expected grid size 5, got %d", scenario.GridSize)
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadScenarioInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := createTestScenario()
	bad.RiskMap[0][0] = 3.0
	path := filepath.Join(dir, "bad.json")
	writeScenarioJSON(t, path, bad)

	if _, err := LoadScenario(path); err == nil {
		t.Error("Expected validation error for out-of-range risk")
	}
}

func TestLoadScenarioDirOverride(t *testing.T) {
	dir := t.TempDir()
	writeScenarioJSON(t, filepath.Join(dir, "reserve.json"), createTestScenario())

	// A scenarios/ path is redirected into SCENARIO_DIR
	t.Setenv("SCENARIO_DIR", dir)

	scenario, err := LoadScenario("scenarios/reserve.json")
	if err != nil {
		t.Fatalf("LoadScenario with SCENARIO_DIR failed: %v", err)
	}

	if scenario.Name != "Test Reserve" {
		t.Errorf("Expected scenario Test Reserve, got %s", scenario.Name)
	}
}

func TestLoadScenarioByName(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.Mkdir("scenarios", 0755); err != nil {
		t.Fatalf("Failed to create scenarios dir: %v", err)
	}
	writeScenarioJSON(t, filepath.Join("scenarios", "reserve.json"), createTestScenario())

	// With and without the .json suffix
	for _, name := range []string{"reserve", "reserve.json"} {
		scenario, err := LoadScenarioByName(name)
		if err != nil {
			t.Fatalf("LoadScenarioByName(%q) failed: %v", name, err)
		}
		if scenario.Name != "Test Reserve" {
			t.Errorf("Expected scenario Test Reserve for %q, got %s", name, scenario.Name)
		}
	}

	if _, err := LoadScenarioByName("missing"); err == nil {
		t.Error("Expected error for unknown scenario name")
	}
}

func TestCountHelpers(t *testing.T) {
	scenario := createTestScenario()
	params := BuildParameters(scenario)

	if got := CountPassableCells(params.TerrainMap); got != 22 {
		t.Errorf("Expected 22 passable cells, got %d", got)
	}
	if got := CountHighRiskCells(params, DefaultHighRiskThreshold); got != 3 {
		t.Errorf("Expected 3 high-risk cells, got %d", got)
	}
}
