package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// computeStats derives the before/after risk summary from the final
// coverage. Means are taken over the full cell count, not just passable
// cells: impassable cells contribute zero to both sums and dilute both
// means equally.
func (p *Planner) computeStats() Stats {
	size := p.grid.Size
	before := make([]float64, 0, size*size)
	after := make([]float64, 0, size*size)

	highRiskCells := 0
	highRiskCovered := 0

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			risk := p.grid.Risk[row][col]
			before = append(before, risk)

			mitigated := risk
			if p.grid.Coverage[row][col] > 0 {
				mitigated = risk * p.mitigation
			}
			after = append(after, mitigated)

			if p.grid.Terrain[row][col] && risk >= p.highRisk {
				highRiskCells++
				if p.grid.Coverage[row][col] > 0 {
					highRiskCovered++
				}
			}
		}
	}

	beforeRisk := stat.Mean(before, nil)
	afterRisk := stat.Mean(after, nil)

	// A zero baseline would make the reduction a division by zero; report
	// 0% instead of NaN.
	reduction := 0
	if beforeRisk > 0 {
		reduction = int(math.Round((beforeRisk - afterRisk) / beforeRisk * 100))
	}

	// Vacuous coverage: with no high-risk cells at all, report 100%.
	highCoverage := 100
	if highRiskCells > 0 {
		highCoverage = int(math.Round(float64(highRiskCovered) / float64(highRiskCells) * 100))
	}

	return Stats{
		BeforeRisk:       beforeRisk,
		AfterRisk:        afterRisk,
		RiskReduction:    fmt.Sprintf("%d%%", reduction),
		HighRiskCoverage: fmt.Sprintf("%d%%", highCoverage),
	}
}
