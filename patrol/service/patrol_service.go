package service

import (
	"context"
	"time"

	"github.com/wildgrid/patrolsim/patrol/engine"
)

// PatrolService defines all plan-related operations.
type PatrolService interface {
	// Plan management
	CreatePlan(ctx context.Context, req *PlanRequest) (*PlanInfo, error)
	GetPlan(ctx context.Context, planID string) (*PlanInfo, error)
	ListPlans(ctx context.Context) ([]*PlanInfo, error)
	DeletePlan(ctx context.Context, planID string) error
	Recompute(ctx context.Context, planID string, seed *int64) (*PlanInfo, error)

	// Plan data
	GetRoutes(ctx context.Context, planID string) ([]engine.Route, error)
	GetCoverage(ctx context.Context, planID string) ([][]int, error)
	GetStats(ctx context.Context, planID string) (*engine.Stats, error)

	// Scenarios
	ListScenarios(ctx context.Context) ([]*ScenarioInfo, error)
	LoadScenario(ctx context.Context, name string) (*engine.Scenario, error)
	SaveScenario(ctx context.Context, name string, scenario *engine.Scenario) error
}

// PlanManager defines plan storage operations.
type PlanManager interface {
	Create(id string, plan *Plan) (*Plan, error)
	Get(id string) (*Plan, error)
	List() []*Plan
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ScenarioManager handles scenario loading.
type ScenarioManager interface {
	LoadScenario(name string) (*engine.Scenario, error)
	ListScenarios() ([]*ScenarioInfo, error)
	GetDefault() *engine.Scenario
	SaveScenario(name string, scenario *engine.Scenario) error
}

// Plan is one stored computation: the parameters it ran with, the seed, and
// the immutable result. Recompute swaps the whole record, never edits it.
type Plan struct {
	ID             string
	ScenarioID     string
	Params         *engine.Parameters
	Seed           int64
	Result         *engine.Result
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
