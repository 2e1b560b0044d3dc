package engine

// CountPassableCells counts passable entries in a wire-format terrain map.
func CountPassableCells(terrain [][]int) int {
	count := 0
	for _, row := range terrain {
		for _, flag := range row {
			if flag == TerrainPassable {
				count++
			}
		}
	}
	return count
}

// CountHighRiskCells counts passable cells whose risk meets the threshold.
func CountHighRiskCells(params *Parameters, threshold float64) int {
	count := 0
	for row := 0; row < params.GridSize; row++ {
		for col := 0; col < params.GridSize; col++ {
			if params.TerrainMap[row][col] == TerrainPassable && params.RiskMap[row][col] >= threshold {
				count++
			}
		}
	}
	return count
}

// ManhattanDistance calculates the Manhattan distance between two cells.
func ManhattanDistance(from, to Cell) int {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}
