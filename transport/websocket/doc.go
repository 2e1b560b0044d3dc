// Package websocket provides real-time plan updates over WebSocket.
//
// The Hub tracks connected clients grouped by plan ID. When a plan is
// recomputed, the new result is pushed to every client watching that plan,
// so viewers never poll the REST API for changes.
//
// Message Format:
//
//	{
//	  "plan_id": "a3f2",
//	  "event": "plan_update",
//	  "result": { "routes": [...], "coverage": [...], "stats": {...} }
//	}
//
// Events:
//   - plan_created: a new plan was computed (data carries the plan)
//   - plan_update: the plan was recomputed (result carries the new routes)
//
// Clients connect via GET /ws?plan={id}. Incoming client messages are
// ignored; the socket is a one-way update stream kept alive with pings.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	hub.BroadcastToPlan(plan.ID, plan.Result)
package websocket
