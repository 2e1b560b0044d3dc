// Package config provides scenario management for the Ranger Patrol Planner.
//
// The config package handles:
//   - Loading scenario files from a directory
//   - Scenario validation and caching
//   - Default scenario selection
//   - Scenario discovery and listing
//
// Scenario Format:
//
// Scenarios are stored as JSON files in the scenarios directory. Each file
// defines:
//   - Terrain and animal presence as layout strings (. open, # blocked,
//     A open with animals) with a required legend
//   - An explicit per-cell risk map with values in [0,1]
//   - Default ranger count and step budget for plans built from it
//
// Bundled Scenarios:
//
//   - savanna: open 10x10 reserve with two rocky outcrops
//   - wetland: 8x8 marsh split by impassable channels
//   - ridgeline: 12x12 highland with a single traversable pass
//
// Usage:
//
//	manager, err := config.NewManager("scenarios")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	scenario, err := manager.LoadScenario("savanna")
//	defaultScenario := manager.GetDefault()
//	scenarios, err := manager.ListScenarios()
package config
