// Package api provides the REST API server for the Ranger Patrol Planner.
//
// Routes:
//
// Plan management:
//   - POST   /api/plans                 - Create a new patrol plan
//   - GET    /api/plans                 - List all plans (newest first)
//   - GET    /api/plans/{id}            - Get full plan state
//   - DELETE /api/plans/{id}            - Delete a plan
//   - POST   /api/plans/{id}/recompute  - Re-run the planner with a fresh seed
//
// Plan data:
//   - GET /api/plans/{id}/routes   - Per-ranger paths
//   - GET /api/plans/{id}/coverage - Visit counts per cell
//   - GET /api/plans/{id}/stats    - Before/after risk statistics
//
// Scenarios:
//   - GET  /api/scenarios        - List available scenarios
//   - POST /api/scenarios        - Save a new scenario
//   - GET  /api/scenarios/{name} - Get a scenario definition
//
// Real-time:
//   - GET /ws?plan={id} - WebSocket subscription to plan updates
//
// All responses are JSON. Errors come back as {"error": "message"} with an
// appropriate HTTP status: rejected parameters map to 400, missing plans and
// scenarios to 404.
package api
