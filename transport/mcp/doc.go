// Package mcp provides Model Context Protocol server implementation for the
// Ranger Patrol Planner.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for plan and scenario operations
//   - Thin-client proxying to the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_plan: Compute patrol routes for a scenario or raw parameters
//   - get_plan: Get full plan state with routes, coverage, and statistics
//   - list_plans: List all stored plans
//   - delete_plan: Remove a plan
//   - recompute_plan: Re-run the planner with a fresh or chosen seed
//   - plan_routes: Per-ranger patrol paths
//   - plan_coverage: ASCII coverage map with per-cell visit counts
//   - plan_stats: Before/after risk statistics
//   - list_scenarios: List available reserve scenarios
//   - get_scenario: Scenario layout, risk map, and defaults
//   - patrol_instructions: Planning model reference
//
// Architecture:
//
// The Client holds no planning state of its own. Every tool call is proxied
// to the REST API, so MCP agents and HTTP consumers always observe the same
// plans regardless of which surface created them.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
