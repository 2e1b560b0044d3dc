package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameters rejects a plan before computation starts.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrNoPassableCells means the terrain has nowhere a ranger can stand.
	ErrNoPassableCells = errors.New("no passable cells in terrain")
)

// stepDirections is the fixed neighbor iteration order: up, down, left,
// right. Scoring ties break toward the first candidate in this order, so the
// order must never change.
var stepDirections = [4]Cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Grid holds the static per-cell inputs for one plan computation plus the
// coverage counters accumulated while routes are generated. Terrain, risk,
// and animal presence are immutable once the grid is built.
type Grid struct {
	Size     int
	Terrain  [][]bool
	Risk     [][]float64
	Animal   [][]bool
	Coverage [][]int
}

// ValidateParameters checks a parameter set for structural correctness.
// It does not inspect terrain contents; an all-impassable map passes here
// and fails later with ErrNoPassableCells.
func ValidateParameters(params *Parameters) error {
	if params == nil {
		return fmt.Errorf("%w: parameters are required", ErrInvalidParameters)
	}
	if params.GridSize <= 0 {
		return fmt.Errorf("%w: grid_size must be positive, got %d", ErrInvalidParameters, params.GridSize)
	}
	if params.RangerCount <= 0 {
		return fmt.Errorf("%w: ranger_count must be positive, got %d", ErrInvalidParameters, params.RangerCount)
	}
	if params.MaxSteps <= 0 {
		return fmt.Errorf("%w: max_steps must be positive, got %d", ErrInvalidParameters, params.MaxSteps)
	}

	size := params.GridSize
	if len(params.RiskMap) != size {
		return fmt.Errorf("%w: risk_map must have %d rows, got %d", ErrInvalidParameters, size, len(params.RiskMap))
	}
	if len(params.AnimalMap) != size {
		return fmt.Errorf("%w: animal_map must have %d rows, got %d", ErrInvalidParameters, size, len(params.AnimalMap))
	}
	if len(params.TerrainMap) != size {
		return fmt.Errorf("%w: terrain_map must have %d rows, got %d", ErrInvalidParameters, size, len(params.TerrainMap))
	}

	for row := 0; row < size; row++ {
		if len(params.RiskMap[row]) != size {
			return fmt.Errorf("%w: risk_map row %d must have %d columns, got %d",
				ErrInvalidParameters, row, size, len(params.RiskMap[row]))
		}
		if len(params.AnimalMap[row]) != size {
			return fmt.Errorf("%w: animal_map row %d must have %d columns, got %d",
				ErrInvalidParameters, row, size, len(params.AnimalMap[row]))
		}
		if len(params.TerrainMap[row]) != size {
			return fmt.Errorf("%w: terrain_map row %d must have %d columns, got %d",
				ErrInvalidParameters, row, size, len(params.TerrainMap[row]))
		}
		for col := 0; col < size; col++ {
			if risk := params.RiskMap[row][col]; risk < 0 || risk > 1 {
				return fmt.Errorf("%w: risk_map[%d][%d] must be in [0,1], got %g",
					ErrInvalidParameters, row, col, risk)
			}
			if flag := params.TerrainMap[row][col]; flag != TerrainImpassable && flag != TerrainPassable {
				return fmt.Errorf("%w: terrain_map[%d][%d] must be 0 or 1, got %d",
					ErrInvalidParameters, row, col, flag)
			}
		}
	}

	return nil
}

// NewGrid validates the parameters and builds the working grid with zeroed
// coverage. Risk on impassable cells is forced to 0 by convention.
func NewGrid(params *Parameters) (*Grid, error) {
	if err := ValidateParameters(params); err != nil {
		return nil, err
	}

	size := params.GridSize
	g := &Grid{
		Size:     size,
		Terrain:  make([][]bool, size),
		Risk:     make([][]float64, size),
		Animal:   make([][]bool, size),
		Coverage: make([][]int, size),
	}

	for row := 0; row < size; row++ {
		g.Terrain[row] = make([]bool, size)
		g.Risk[row] = make([]float64, size)
		g.Animal[row] = make([]bool, size)
		g.Coverage[row] = make([]int, size)

		for col := 0; col < size; col++ {
			passable := params.TerrainMap[row][col] == TerrainPassable
			g.Terrain[row][col] = passable
			if passable {
				g.Risk[row][col] = params.RiskMap[row][col]
				g.Animal[row][col] = params.AnimalMap[row][col]
			}
		}
	}

	return g, nil
}

// InBounds reports whether the coordinates fall inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Size && col >= 0 && col < g.Size
}

// IsPassable reports whether a ranger may stand on the cell.
// Out-of-bounds coordinates are not passable.
func (g *Grid) IsPassable(row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	return g.Terrain[row][col]
}

// Neighbors returns the up-to-4 orthogonally adjacent passable cells in the
// fixed up, down, left, right order.
func (g *Grid) Neighbors(row, col int) []Cell {
	neighbors := make([]Cell, 0, 4)
	for _, dir := range stepDirections {
		nr, nc := row+dir.Row, col+dir.Col
		if g.IsPassable(nr, nc) {
			neighbors = append(neighbors, Cell{Row: nr, Col: nc})
		}
	}
	return neighbors
}

// PassableCells enumerates every passable cell in row-major order.
func (g *Grid) PassableCells() []Cell {
	var cells []Cell
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			if g.Terrain[row][col] {
				cells = append(cells, Cell{Row: row, Col: col})
			}
		}
	}
	return cells
}

// Visit increments the coverage counter for a cell.
func (g *Grid) Visit(c Cell) {
	g.Coverage[c.Row][c.Col]++
}
