// Package engine provides the core route computation for the Ranger Patrol
// Planner.
//
// The engine package implements:
//   - The grid model: terrain passability, per-cell risk, animal presence,
//     and the coverage counters shared by all rangers within one plan
//   - Greedy per-step route generation biased toward high-risk,
//     animal-present, and under-visited cells
//   - Before/after risk statistics derived from the final coverage
//   - Scenario files: named JSON setups with layout strings and a risk map
//
// Core Types:
//
// Parameters is the full input to one computation, Planner runs it, and
// Result carries the routes, the coverage grid, and the Stats record.
// Scenario is the file-backed form that BuildParameters converts into
// Parameters.
//
// Usage:
//
//	scenario, err := engine.LoadScenarioByName("savanna")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	planner, err := engine.NewPlannerWithSeed(engine.BuildParameters(scenario), 42)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := planner.Generate()
//
// Algorithm:
//
// Each ranger starts on a uniformly chosen passable cell and then walks up
// to max_steps cells, always stepping onto the orthogonal neighbor with the
// highest score (risk*2 + animal) / (coverage+1). Coverage is shared across
// rangers and updated after every single step, so later rangers drift away
// from ground that is already patrolled without any explicit coordination.
// Rangers are generated strictly sequentially; that ordering is what makes
// the spread effect reproducible for a given seed.
package engine
