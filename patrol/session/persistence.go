package session

import (
	"time"

	"github.com/wildgrid/patrolsim/patrol/engine"
	"github.com/wildgrid/patrolsim/patrol/service"
)

// PlanPersistence defines the interface for persisting plans.
type PlanPersistence interface {
	// Save persists a plan to storage
	Save(plan *service.Plan) error

	// Load retrieves a plan from storage by ID
	Load(id string) (*service.Plan, error)

	// Delete removes a plan from storage
	Delete(id string) error

	// ListAll returns all persisted plan IDs
	ListAll() ([]string, error)

	// Exists checks if a plan exists in storage
	Exists(id string) bool
}

// PersistedPlanData is the JSON structure for persisted plans. Parameters
// and result are stored wholesale, so a load never re-runs the planner.
type PersistedPlanData struct {
	ID             string             `json:"id"`
	ScenarioID     string             `json:"scenario_id,omitempty"`
	Seed           int64              `json:"seed"`
	Params         *engine.Parameters `json:"params"`
	Result         *engine.Result     `json:"result"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
}
