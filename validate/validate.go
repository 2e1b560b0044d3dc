// Command validate provides a small CLI that validates reserve scenario JSON
// files in the ../scenarios directory. It checks:
//   - JSON structure and required fields
//   - Layout consistency and allowed characters (., #, A)
//   - Legend completeness
//   - Risk map dimensions and [0,1] value range
//   - Ranger count and step budget bounds
//   - Connectivity: the open region forms a single connected area
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wildgrid/patrolsim/patrol/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateScenario loads and validates a single scenario JSON file.
// It performs structural checks, layout/legend validation, risk map checks,
// and connectivity analysis of the open region.
func validateScenario(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var scenario engine.Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	// Validate grid size bounds
	if scenario.GridSize < engine.MinScenarioGridSize || scenario.GridSize > engine.MaxScenarioGridSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("grid_size must be between %d and %d, got %d",
			engine.MinScenarioGridSize, engine.MaxScenarioGridSize, scenario.GridSize))
	}

	// Validate layout
	if len(scenario.Layout) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Layout is empty")
	} else if len(scenario.Layout) != scenario.GridSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Layout has %d rows, expected %d", len(scenario.Layout), scenario.GridSize))
	}

	openCount := 0
	blockedCount := 0
	animalCount := 0
	validChars := map[rune]bool{
		'.': true, // open
		'#': true, // blocked
		'A': true, // open with animals
	}

	for i, row := range scenario.Layout {
		if len(row) != scenario.GridSize {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Inconsistent layout width at row %d: expected %d, got %d", i+1, scenario.GridSize, len(row)))
		}

		for j, char := range row {
			if !validChars[char] {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Invalid character '%c' at position [%d,%d]", char, i+1, j+1))
			}
			switch char {
			case '.':
				openCount++
			case '#':
				blockedCount++
			case 'A':
				animalCount++
			}
		}
	}

	// Validate legend
	expectedLegend := map[string]string{".": "open", "#": "blocked", "A": "animals"}
	for symbol, meaning := range expectedLegend {
		if scenario.Legend[symbol] != meaning {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Legend must map %q to %q, got %q", symbol, meaning, scenario.Legend[symbol]))
		}
	}

	// A reserve with no open ground cannot be patrolled
	if openCount+animalCount == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Layout has no passable cells")
	}

	// Validate risk map
	if len(scenario.RiskMap) != scenario.GridSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("risk_map has %d rows, expected %d", len(scenario.RiskMap), scenario.GridSize))
	}
	highRiskCount := 0
	for i, row := range scenario.RiskMap {
		if len(row) != scenario.GridSize {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("risk_map row %d has %d values, expected %d", i+1, len(row), scenario.GridSize))
		}
		for j, risk := range row {
			if risk < 0 || risk > 1 {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("risk_map[%d][%d] = %v is outside [0,1]", i+1, j+1, risk))
			}
			if risk >= engine.DefaultHighRiskThreshold {
				highRiskCount++
			}
		}
	}

	// Validate patrol defaults
	if scenario.RangerCount <= 0 || scenario.RangerCount > engine.MaxRangerCount {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("ranger_count must be between 1 and %d, got %d", engine.MaxRangerCount, scenario.RangerCount))
	}

	if scenario.MaxSteps <= 0 || scenario.MaxSteps > engine.MaxPlanSteps {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("max_steps must be between 1 and %d, got %d", engine.MaxPlanSteps, scenario.MaxSteps))
	}

	// Connectivity validation over the open region
	if result.Valid {
		connectivityResult := validateConnectivity(scenario.Layout)
		if !connectivityResult.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, connectivityResult.Errors...)
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", scenario.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", scenario.GridSize, scenario.GridSize))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Open cells: %d (animals on %d)", openCount+animalCount, animalCount))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Blocked cells: %d", blockedCount))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ High-risk cells: %d", highRiskCount))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Rangers: %d, Max steps: %d", scenario.RangerCount, scenario.MaxSteps))
	}

	return result
}

// validateConnectivity ensures the open region is a single connected area
// under 4-directional movement. Rangers can start on any passable cell, so a
// fragmented reserve leaves pockets no single plan reliably covers.
func validateConnectivity(layout []string) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	height := len(layout)
	if height == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate connectivity: empty layout")
		return result
	}
	width := len(layout[0])

	isPassable := func(row, col int) bool {
		if row < 0 || col < 0 || row >= height || row >= len(layout) || col >= len(layout[row]) {
			return false
		}
		cell := layout[row][col]
		return cell == '.' || cell == 'A'
	}

	// Find the first passable cell
	startRow, startCol := -1, -1
	totalPassable := 0
	for row := 0; row < height; row++ {
		for col := 0; col < width && col < len(layout[row]); col++ {
			if isPassable(row, col) {
				if startRow == -1 {
					startRow, startCol = row, col
				}
				totalPassable++
			}
		}
	}

	if startRow == -1 {
		result.Valid = false
		result.Errors = append(result.Errors, "No passable cells found for connectivity test")
		return result
	}

	// Flood fill from the first passable cell
	visited := make(map[string]bool)
	queue := [][]int{{startRow, startCol}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		row, col := current[0], current[1]
		key := fmt.Sprintf("%d,%d", row, col)

		if visited[key] {
			continue
		}
		visited[key] = true

		directions := [][]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
		for _, dir := range directions {
			nr, nc := row+dir[0], col+dir[1]
			nkey := fmt.Sprintf("%d,%d", nr, nc)

			if !visited[nkey] && isPassable(nr, nc) {
				queue = append(queue, []int{nr, nc})
			}
		}
	}

	unreachable := totalPassable - len(visited)
	if unreachable > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d/%d open cells unreachable from (%d,%d)",
			unreachable, totalPassable, startRow, startCol))
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: All %d open cells form one region", totalPassable))
	}

	return result
}

// main scans ../scenarios for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	scenarioDir := "../scenarios"
	files, err := filepath.Glob(filepath.Join(scenarioDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding scenario files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateScenario(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All scenarios are valid!")
	} else {
		fmt.Println("❌ Some scenarios have errors")
		os.Exit(1)
	}
}
