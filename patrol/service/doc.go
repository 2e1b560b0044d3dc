// Package service provides the business logic layer for the Ranger Patrol
// Planner.
//
// The service package implements:
//   - Plan computation from scenarios or raw parameters
//   - Plan storage, retrieval, and recomputation with explicit seeds
//   - Scenario listing, loading, and saving
//
// Core Interfaces:
//
// PatrolService is the main service interface providing high-level plan
// operations. PlanManager handles plan storage and lifecycle.
// ScenarioManager manages scenario loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the route engine. A plan is computed once and stored immutably; all
// reads serve the stored result, and Recompute replaces it wholesale with a
// new seed. Plans are identified by unique 4-character IDs.
//
// Usage:
//
//	planMgr := session.NewManager()
//	scenarioMgr, _ := config.NewManager("scenarios")
//	patrolService := service.NewPatrolService(planMgr, scenarioMgr)
//
//	info, err := patrolService.CreatePlan(ctx, &service.PlanRequest{
//		ScenarioID: "savanna",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	stats, err := patrolService.GetStats(ctx, info.ID)
package service
