// Package session provides storage for computed patrol plans.
//
// The session package implements:
//   - Thread-safe plan storage and retrieval
//   - Unique plan ID generation
//   - JSON file persistence with lazy loading
//   - Cleanup of stale plans
//
// Core Types:
//
// Manager is the main plan store. It holds service.Plan records: the
// parameters a computation ran with, its seed, and its immutable result.
// FilePersistence saves those records wholesale, so loading a plan never
// re-runs the planner.
//
// Plan Identifiers:
//
// Plans use 4-character hex IDs generated from cryptographic randomness and
// matched case-insensitively.
//
// Usage:
//
//	persistence, _ := session.NewFilePersistence("plans")
//	manager := session.NewManagerWithPersistence(persistence)
//
//	plan, err := manager.Create("", &service.Plan{
//		Params: params,
//		Seed:   seed,
//		Result: result,
//	})
package session
