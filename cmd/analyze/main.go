// Command analyze prints quick, human-readable heuristics about scenario
// files in the project's scenarios directory. It summarizes dimensions, risk
// distribution, animal presence, terrain openness, and the largest connected
// open region, and flags step budgets too small to cover the reserve.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wildgrid/patrolsim/patrol/engine"
	"gonum.org/v1/gonum/stat"
)

// analysisPoint denotes a grid coordinate used during analysis output.
type analysisPoint struct {
	Row, Col int
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Summarize reserve scenario files and flag planning hazards",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: "scenarios",
				Usage: "Directory containing scenario JSON files",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("dir")

			names := cmd.Args().Slice()
			if len(names) == 0 {
				files, err := filepath.Glob(filepath.Join(dir, "*.json"))
				if err != nil {
					return fmt.Errorf("failed to list scenario files: %w", err)
				}
				if len(files) == 0 {
					return fmt.Errorf("no scenario files found in %s", dir)
				}
				for _, file := range files {
					names = append(names, strings.TrimSuffix(filepath.Base(file), ".json"))
				}
			}

			for _, name := range names {
				fmt.Printf("\n=== Analyzing %s ===\n", name)
				analyzeScenario(filepath.Join(dir, name+".json"))
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func analyzeScenario(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var scenario engine.Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", scenario.Name)
	fmt.Printf("Grid Size: %d x %d\n", scenario.GridSize, len(scenario.Layout))
	fmt.Printf("Rangers: %d\n", scenario.RangerCount)
	fmt.Printf("Max Steps: %d\n", scenario.MaxSteps)

	// Terrain and animal census
	var passable []analysisPoint
	var animals []analysisPoint
	blocked := 0

	for row, line := range scenario.Layout {
		for col, cell := range line {
			switch cell {
			case engine.LayoutOpen:
				passable = append(passable, analysisPoint{row, col})
			case engine.LayoutAnimals:
				passable = append(passable, analysisPoint{row, col})
				animals = append(animals, analysisPoint{row, col})
			case engine.LayoutBlocked:
				blocked++
			}
		}
	}

	total := scenario.GridSize * scenario.GridSize
	if total > 0 {
		fmt.Printf("Open cells: %d/%d (%.0f%%)\n", len(passable), total, float64(len(passable))/float64(total)*100)
	}
	fmt.Printf("Blocked cells: %d\n", blocked)
	fmt.Printf("Animal cells: %d\n", len(animals))

	// Risk distribution over passable cells
	var risks []float64
	highRisk := 0
	maxRisk := 0.0
	var maxRiskAt analysisPoint

	for _, p := range passable {
		if p.Row >= len(scenario.RiskMap) || p.Col >= len(scenario.RiskMap[p.Row]) {
			continue
		}
		risk := scenario.RiskMap[p.Row][p.Col]
		risks = append(risks, risk)
		if risk >= engine.DefaultHighRiskThreshold {
			highRisk++
		}
		if risk > maxRisk {
			maxRisk = risk
			maxRiskAt = p
		}
	}

	if len(risks) > 0 {
		fmt.Printf("Risk (open cells): mean %.3f, stddev %.3f, max %.2f at (%d,%d)\n",
			stat.Mean(risks, nil), stat.StdDev(risks, nil), maxRisk, maxRiskAt.Row, maxRiskAt.Col)
		fmt.Printf("High-risk cells (>= %.1f): %d\n", engine.DefaultHighRiskThreshold, highRisk)
	}

	// Largest connected open region
	regionCount, largest := openRegions(scenario.Layout)
	fmt.Printf("Open regions: %d (largest %d cells)\n", regionCount, largest)
	if regionCount > 1 {
		fmt.Printf("⚠️  WARNING: open region is fragmented; rangers starting in small pockets cannot reach the rest\n")
	}

	// Coverage feasibility: total route length vs open ground
	budget := scenario.RangerCount * scenario.MaxSteps
	if budget < len(passable) {
		fmt.Printf("⚠️  WARNING: step budget %d (%d rangers x %d steps) is below the %d open cells; full coverage is impossible\n",
			budget, scenario.RangerCount, scenario.MaxSteps, len(passable))
	} else {
		fmt.Printf("✅ Step budget %d covers the %d open cells with headroom\n", budget, len(passable))
	}
}

// openRegions counts connected components of passable cells under
// 4-directional movement and returns the size of the largest.
func openRegions(layout []string) (count, largest int) {
	height := len(layout)
	if height == 0 {
		return 0, 0
	}

	passable := func(row, col int) bool {
		if row < 0 || row >= height || col < 0 || col >= len(layout[row]) {
			return false
		}
		return layout[row][col] == byte(engine.LayoutOpen) || layout[row][col] == byte(engine.LayoutAnimals)
	}

	visited := make(map[analysisPoint]bool)

	for row := 0; row < height; row++ {
		for col := 0; col < len(layout[row]); col++ {
			start := analysisPoint{row, col}
			if !passable(row, col) || visited[start] {
				continue
			}

			// Flood fill this region
			size := 0
			queue := []analysisPoint{start}
			for len(queue) > 0 {
				p := queue[0]
				queue = queue[1:]

				if visited[p] || !passable(p.Row, p.Col) {
					continue
				}
				visited[p] = true
				size++

				queue = append(queue,
					analysisPoint{p.Row - 1, p.Col},
					analysisPoint{p.Row + 1, p.Col},
					analysisPoint{p.Row, p.Col - 1},
					analysisPoint{p.Row, p.Col + 1},
				)
			}

			count++
			if size > largest {
				largest = size
			}
		}
	}

	return count, largest
}
