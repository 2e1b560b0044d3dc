package service

import (
	"time"

	"github.com/wildgrid/patrolsim/patrol/engine"
)

// PlanRequest asks for a new plan computation. Either ScenarioID or raw
// Parameters must be set; RangerCount and MaxSteps override the scenario
// defaults when positive. A nil Seed means a time-derived seed.
type PlanRequest struct {
	ScenarioID  string             `json:"scenario_id,omitempty"`
	Parameters  *engine.Parameters `json:"parameters,omitempty"`
	RangerCount int                `json:"ranger_count,omitempty"`
	MaxSteps    int                `json:"max_steps,omitempty"`
	Seed        *int64             `json:"seed,omitempty"`
}

// PlanInfo provides information about a stored plan.
type PlanInfo struct {
	ID             string             `json:"id"`
	ScenarioID     string             `json:"scenario_id,omitempty"`
	Seed           int64              `json:"seed"`
	GridSize       int                `json:"grid_size"`
	RangerCount    int                `json:"ranger_count"`
	MaxSteps       int                `json:"max_steps"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Params         *engine.Parameters `json:"params"`
	Result         *engine.Result     `json:"result"`
}

// ScenarioInfo provides information about an available scenario.
type ScenarioInfo struct {
	Filename    string `json:"filename"`
	ScenarioID  string `json:"scenario_id"` // identifier to use for plan creation
	Name        string `json:"name"`        // display name
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
	RangerCount int    `json:"ranger_count"`
	MaxSteps    int    `json:"max_steps"`
}
