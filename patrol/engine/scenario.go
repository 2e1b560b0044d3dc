package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Layout characters used in scenario files.
const (
	LayoutOpen    = '.'
	LayoutBlocked = '#'
	LayoutAnimals = 'A'
)

// Scenario is a named, file-backed plan setup: terrain and animal presence
// as layout strings, an explicit risk map, and default routing parameters.
type Scenario struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	GridSize    int               `json:"grid_size"`
	RangerCount int               `json:"ranger_count"`
	MaxSteps    int               `json:"max_steps"`
	Layout      []string          `json:"layout"`
	Legend      map[string]string `json:"legend"`
	RiskMap     [][]float64       `json:"risk_map"`
}

// ValidateScenario validates a scenario file for correctness. Scenario files
// carry tighter bounds than raw Parameters because they are meant to be
// hand-authored and shared.
func ValidateScenario(scenario *Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario validation: name is required")
	}
	if scenario.Description == "" {
		return fmt.Errorf("scenario validation: description is required")
	}

	if scenario.GridSize < MinScenarioGridSize || scenario.GridSize > MaxScenarioGridSize {
		return fmt.Errorf("scenario validation: grid_size must be between %d and %d, got %d",
			MinScenarioGridSize, MaxScenarioGridSize, scenario.GridSize)
	}
	if scenario.RangerCount < 1 || scenario.RangerCount > MaxRangerCount {
		return fmt.Errorf("scenario validation: ranger_count must be between 1 and %d, got %d",
			MaxRangerCount, scenario.RangerCount)
	}
	if scenario.MaxSteps < 1 || scenario.MaxSteps > MaxPlanSteps {
		return fmt.Errorf("scenario validation: max_steps must be between 1 and %d, got %d",
			MaxPlanSteps, scenario.MaxSteps)
	}

	if len(scenario.Layout) != scenario.GridSize {
		return fmt.Errorf("scenario validation: layout must have %d rows to match grid_size, got %d",
			scenario.GridSize, len(scenario.Layout))
	}

	openCount := 0
	for i, row := range scenario.Layout {
		if len(row) != scenario.GridSize {
			return fmt.Errorf("scenario validation: layout row %d must have %d characters to match grid_size, got %d",
				i+1, scenario.GridSize, len(row))
		}
		for j, char := range row {
			switch char {
			case LayoutOpen, LayoutAnimals:
				openCount++
			case LayoutBlocked:
			default:
				return fmt.Errorf("scenario validation: invalid character %q at row %d, col %d", char, i+1, j+1)
			}
		}
	}
	if openCount == 0 {
		return fmt.Errorf("scenario validation: layout must contain at least one open (.) or animal (A) cell")
	}

	requiredLegend := map[string]string{
		".": "open",
		"#": "blocked",
		"A": "animals",
	}
	for key, expected := range requiredLegend {
		if value, ok := scenario.Legend[key]; !ok || value != expected {
			return fmt.Errorf("scenario validation: legend[%q] must be %q, got %q", key, expected, value)
		}
	}

	if len(scenario.RiskMap) != scenario.GridSize {
		return fmt.Errorf("scenario validation: risk_map must have %d rows to match grid_size, got %d",
			scenario.GridSize, len(scenario.RiskMap))
	}
	for i, row := range scenario.RiskMap {
		if len(row) != scenario.GridSize {
			return fmt.Errorf("scenario validation: risk_map row %d must have %d values, got %d",
				i+1, scenario.GridSize, len(row))
		}
		for j, risk := range row {
			if risk < 0 || risk > 1 {
				return fmt.Errorf("scenario validation: risk_map[%d][%d] must be in [0,1], got %g", i, j, risk)
			}
		}
	}

	return nil
}

// BuildParameters converts a validated scenario into planner Parameters.
// Risk on blocked cells is zeroed per the data-model convention, so
// hand-authored files need not keep the two grids in sync.
func BuildParameters(scenario *Scenario) *Parameters {
	size := scenario.GridSize
	params := &Parameters{
		GridSize:    size,
		RangerCount: scenario.RangerCount,
		MaxSteps:    scenario.MaxSteps,
		RiskMap:     make([][]float64, size),
		AnimalMap:   make([][]bool, size),
		TerrainMap:  make([][]int, size),
	}

	for row := 0; row < size; row++ {
		params.RiskMap[row] = make([]float64, size)
		params.AnimalMap[row] = make([]bool, size)
		params.TerrainMap[row] = make([]int, size)

		for col := 0; col < size; col++ {
			switch scenario.Layout[row][col] {
			case LayoutBlocked:
				params.TerrainMap[row][col] = TerrainImpassable
			case LayoutAnimals:
				params.TerrainMap[row][col] = TerrainPassable
				params.AnimalMap[row][col] = true
				params.RiskMap[row][col] = scenario.RiskMap[row][col]
			default:
				params.TerrainMap[row][col] = TerrainPassable
				params.RiskMap[row][col] = scenario.RiskMap[row][col]
			}
		}
	}

	return params
}

// LoadScenario loads and validates a scenario from a JSON file.
func LoadScenario(filename string) (*Scenario, error) {
	// Support SCENARIO_DIR for an alternative scenario directory.
	scenarioPath := filename
	if scenarioDir := os.Getenv("SCENARIO_DIR"); scenarioDir != "" {
		if strings.HasPrefix(filename, "scenarios/") {
			scenarioPath = filepath.Join(scenarioDir, strings.TrimPrefix(filename, "scenarios/"))
		}
	}

	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	if err := ValidateScenario(&scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// LoadScenarioByName loads a scenario by name from the scenarios directory.
func LoadScenarioByName(name string) (*Scenario, error) {
	if !strings.HasSuffix(name, ".json") {
		name = name + ".json"
	}

	scenarioPath := filepath.Join("scenarios", name)
	if _, err := os.Stat(scenarioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario file '%s' not found", name)
	}

	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file '%s': %v", name, err)
	}

	var scenario Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file '%s': %v", name, err)
	}

	if err := ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario '%s': %v", name, err)
	}

	return &scenario, nil
}
