package engine

import (
	"math/rand"
	"time"
)

// Planner computes patrol routes for one grid and parameter set. A planner
// is single-use: Generate consumes the grid's coverage counters, so build a
// fresh planner for every computation.
type Planner struct {
	params     *Parameters
	grid       *Grid
	rng        *rand.Rand
	passable   []Cell
	mitigation float64
	highRisk   float64
}

// NewPlanner creates a planner with a time-derived seed.
func NewPlanner(params *Parameters) (*Planner, error) {
	return NewPlannerWithSeed(params, time.Now().UnixNano())
}

// NewPlannerWithSeed creates a planner with an explicit seed. Two planners
// built from identical parameters and seeds produce identical results.
func NewPlannerWithSeed(params *Parameters, seed int64) (*Planner, error) {
	grid, err := NewGrid(params)
	if err != nil {
		return nil, err
	}

	// Enumerating passable cells up front both guards the all-impassable
	// case and makes start selection a single uniform index draw.
	passable := grid.PassableCells()
	if len(passable) == 0 {
		return nil, ErrNoPassableCells
	}

	return &Planner{
		params:     params,
		grid:       grid,
		rng:        rand.New(rand.NewSource(seed)),
		passable:   passable,
		mitigation: DefaultMitigationFactor,
		highRisk:   DefaultHighRiskThreshold,
	}, nil
}

// Grid exposes the planner's working grid, mainly for tests and inspection.
func (p *Planner) Grid() *Grid {
	return p.grid
}

// Generate produces one route per ranger and the derived statistics.
// Rangers are generated strictly one after another: every step reads the
// coverage written by all earlier steps, which is what pushes later rangers
// away from already-patrolled ground.
func (p *Planner) Generate() (*Result, error) {
	routes := make([]Route, 0, p.params.RangerCount)
	for id := 0; id < p.params.RangerCount; id++ {
		routes = append(routes, p.walkRoute(id))
	}

	return &Result{
		Routes:   routes,
		Coverage: p.grid.Coverage,
		Stats:    p.computeStats(),
	}, nil
}

// walkRoute runs a single ranger's greedy walk.
func (p *Planner) walkRoute(rangerID int) Route {
	start := p.passable[p.rng.Intn(len(p.passable))]
	path := make([]Cell, 0, p.params.MaxSteps)
	path = append(path, start)
	p.grid.Visit(start)

	current := start
	for step := 1; step < p.params.MaxSteps; step++ {
		next, ok := p.bestNeighbor(current)
		if !ok {
			// Dead end: route stays shorter than max_steps.
			break
		}
		path = append(path, next)
		p.grid.Visit(next)
		current = next
	}

	return Route{RangerID: rangerID, Path: path}
}

// bestNeighbor picks the strictly highest-scoring passable neighbor. Ties
// resolve to the earliest candidate in the fixed direction order, so the
// result is deterministic for a given coverage state.
func (p *Planner) bestNeighbor(current Cell) (Cell, bool) {
	neighbors := p.grid.Neighbors(current.Row, current.Col)
	if len(neighbors) == 0 {
		return Cell{}, false
	}

	best := neighbors[0]
	bestScore := p.scoreCell(best)
	for _, candidate := range neighbors[1:] {
		if score := p.scoreCell(candidate); score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best, true
}

// scoreCell values a candidate step: risk counts double, animal presence
// adds one, and accumulated coverage divides the whole term so visited
// cells fade as targets.
func (p *Planner) scoreCell(c Cell) float64 {
	score := p.grid.Risk[c.Row][c.Col] * 2
	if p.grid.Animal[c.Row][c.Col] {
		score++
	}
	return score / float64(p.grid.Coverage[c.Row][c.Col]+1)
}
