package engine

import (
	"errors"
	"testing"
)

// allPassableParams builds a size x size parameter set with every cell
// passable, uniform risk, and no animals.
func allPassableParams(size int, risk float64) *Parameters {
	params := &Parameters{
		GridSize:    size,
		RangerCount: 1,
		MaxSteps:    1,
		RiskMap:     make([][]float64, size),
		AnimalMap:   make([][]bool, size),
		TerrainMap:  make([][]int, size),
	}
	for row := 0; row < size; row++ {
		params.RiskMap[row] = make([]float64, size)
		params.AnimalMap[row] = make([]bool, size)
		params.TerrainMap[row] = make([]int, size)
		for col := 0; col < size; col++ {
			params.RiskMap[row][col] = risk
			params.TerrainMap[row][col] = TerrainPassable
		}
	}
	return params
}

func TestNewGrid(t *testing.T) {
	params := allPassableParams(3, 0.5)
	params.TerrainMap[1][1] = TerrainImpassable
	params.RiskMap[1][1] = 0.9 // should be zeroed: impassable cells carry no risk

	grid, err := NewGrid(params)
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}

	if grid.Size != 3 {
		t.Errorf("Expected grid size 3, got %d", grid.Size)
	}
	if grid.Terrain[1][1] {
		t.Error("Expected (1,1) to be impassable")
	}
	if grid.Risk[1][1] != 0 {
		t.Errorf("Expected risk 0 on impassable cell, got %g", grid.Risk[1][1])
	}
	if grid.Coverage[0][0] != 0 {
		t.Error("Expected coverage to start at zero")
	}
}

func TestGridIsPassable(t *testing.T) {
	params := allPassableParams(3, 0)
	params.TerrainMap[0][1] = TerrainImpassable

	grid, err := NewGrid(params)
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}

	tests := []struct {
		name     string
		row, col int
		want     bool
	}{
		{"passable cell", 0, 0, true},
		{"impassable cell", 0, 1, false},
		{"negative row", -1, 0, false},
		{"negative col", 0, -1, false},
		{"row out of bounds", 3, 0, false},
		{"col out of bounds", 0, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grid.IsPassable(tt.row, tt.col); got != tt.want {
				t.Errorf("IsPassable(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestGridNeighborsOrder(t *testing.T) {
	grid, err := NewGrid(allPassableParams(3, 0))
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}

	// Center cell has all four neighbors, in up, down, left, right order.
	neighbors := grid.Neighbors(1, 1)
	want := []Cell{{0, 1}, {2, 1}, {1, 0}, {1, 2}}
	if len(neighbors) != len(want) {
		t.Fatalf("Expected %d neighbors, got %d", len(want), len(neighbors))
	}
	for i, cell := range want {
		if neighbors[i] != cell {
			t.Errorf("Neighbor %d: expected %v, got %v", i, cell, neighbors[i])
		}
	}

	// Corner cell only has down and right.
	corner := grid.Neighbors(0, 0)
	wantCorner := []Cell{{1, 0}, {0, 1}}
	if len(corner) != len(wantCorner) {
		t.Fatalf("Expected %d corner neighbors, got %d", len(wantCorner), len(corner))
	}
	for i, cell := range wantCorner {
		if corner[i] != cell {
			t.Errorf("Corner neighbor %d: expected %v, got %v", i, cell, corner[i])
		}
	}
}

func TestGridNeighborsSkipImpassable(t *testing.T) {
	params := allPassableParams(3, 0)
	params.TerrainMap[0][1] = TerrainImpassable
	params.TerrainMap[1][0] = TerrainImpassable

	grid, err := NewGrid(params)
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}

	neighbors := grid.Neighbors(1, 1)
	want := []Cell{{2, 1}, {1, 2}}
	if len(neighbors) != len(want) {
		t.Fatalf("Expected %d neighbors, got %d: %v", len(want), len(neighbors), neighbors)
	}
	for i, cell := range want {
		if neighbors[i] != cell {
			t.Errorf("Neighbor %d: expected %v, got %v", i, cell, neighbors[i])
		}
	}
}

func TestGridPassableCells(t *testing.T) {
	params := allPassableParams(2, 0)
	params.TerrainMap[0][1] = TerrainImpassable

	grid, err := NewGrid(params)
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}

	cells := grid.PassableCells()
	want := []Cell{{0, 0}, {1, 0}, {1, 1}}
	if len(cells) != len(want) {
		t.Fatalf("Expected %d passable cells, got %d", len(want), len(cells))
	}
	for i, cell := range want {
		if cells[i] != cell {
			t.Errorf("Cell %d: expected %v, got %v", i, cell, cells[i])
		}
	}
}

func TestGridVisit(t *testing.T) {
	grid, err := NewGrid(allPassableParams(2, 0))
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}

	grid.Visit(Cell{0, 1})
	grid.Visit(Cell{0, 1})
	if grid.Coverage[0][1] != 2 {
		t.Errorf("Expected coverage 2, got %d", grid.Coverage[0][1])
	}
	if grid.Coverage[0][0] != 0 {
		t.Errorf("Expected coverage 0 on unvisited cell, got %d", grid.Coverage[0][0])
	}
}

func TestValidateParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Parameters)
	}{
		{"zero grid size", func(p *Parameters) { p.GridSize = 0 }},
		{"negative grid size", func(p *Parameters) { p.GridSize = -1 }},
		{"zero ranger count", func(p *Parameters) { p.RangerCount = 0 }},
		{"zero max steps", func(p *Parameters) { p.MaxSteps = 0 }},
		{"missing risk row", func(p *Parameters) { p.RiskMap = p.RiskMap[:2] }},
		{"short terrain row", func(p *Parameters) { p.TerrainMap[1] = p.TerrainMap[1][:2] }},
		{"short animal row", func(p *Parameters) { p.AnimalMap[1] = p.AnimalMap[1][:2] }},
		{"risk above one", func(p *Parameters) { p.RiskMap[0][0] = 1.5 }},
		{"negative risk", func(p *Parameters) { p.RiskMap[0][0] = -0.1 }},
		{"bad terrain flag", func(p *Parameters) { p.TerrainMap[0][0] = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := allPassableParams(3, 0.5)
			tt.mutate(params)
			err := ValidateParameters(params)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidParameters) {
				t.Errorf("Expected ErrInvalidParameters, got %v", err)
			}
		})
	}

	t.Run("nil parameters", func(t *testing.T) {
		if err := ValidateParameters(nil); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("Expected ErrInvalidParameters for nil, got %v", err)
		}
	})

	t.Run("valid parameters", func(t *testing.T) {
		if err := ValidateParameters(allPassableParams(3, 0.5)); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})
}
