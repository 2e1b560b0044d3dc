package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wildgrid/patrolsim/patrol/engine"
)

// patrolServiceImpl implements the PatrolService interface.
type patrolServiceImpl struct {
	plans     PlanManager
	scenarios ScenarioManager
	mu        sync.RWMutex
}

// NewPatrolService creates a new patrol service instance.
func NewPatrolService(plans PlanManager, scenarios ScenarioManager) PatrolService {
	return &patrolServiceImpl{
		plans:     plans,
		scenarios: scenarios,
	}
}

// CreatePlan resolves the request into engine parameters, runs the planner,
// and stores the result under a new plan ID.
func (s *patrolServiceImpl) CreatePlan(ctx context.Context, req *PlanRequest) (*PlanInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req == nil {
		req = &PlanRequest{}
	}

	params, scenarioID, err := s.resolveParameters(req)
	if err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	planner, err := engine.NewPlannerWithSeed(params, seed)
	if err != nil {
		return nil, err
	}

	result, err := planner.Generate()
	if err != nil {
		return nil, err
	}

	// Let the plan manager generate a proper 4-character ID
	plan, err := s.plans.Create("", &Plan{
		ScenarioID: scenarioID,
		Params:     params,
		Seed:       seed,
		Result:     result,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store plan: %w", err)
	}

	return planInfo(plan), nil
}

// resolveParameters turns a request into validated engine parameters plus
// the scenario ID it came from (empty for raw-parameter requests).
func (s *patrolServiceImpl) resolveParameters(req *PlanRequest) (*engine.Parameters, string, error) {
	if req.Parameters != nil {
		if req.ScenarioID != "" {
			return nil, "", fmt.Errorf("request must carry either scenario_id or parameters, not both")
		}
		// Copy before applying overrides so the stored plan never aliases
		// the caller's request
		params := *req.Parameters
		if req.RangerCount > 0 {
			params.RangerCount = req.RangerCount
		}
		if req.MaxSteps > 0 {
			params.MaxSteps = req.MaxSteps
		}
		if err := engine.ValidateParameters(&params); err != nil {
			return nil, "", err
		}
		return &params, "", nil
	}

	var scenario *engine.Scenario
	scenarioID := req.ScenarioID
	if scenarioID != "" {
		loaded, err := s.scenarios.LoadScenario(scenarioID)
		if err != nil {
			// Provide a helpful error message with available options
			if strings.Contains(err.Error(), "scenario not found") {
				available, listErr := s.scenarios.ListScenarios()
				if listErr == nil && len(available) > 0 {
					var ids []string
					for _, sc := range available {
						ids = append(ids, sc.ScenarioID)
					}
					return nil, "", fmt.Errorf("scenario '%s' not found. Available scenarios: %v", scenarioID, ids)
				}
				return nil, "", fmt.Errorf("scenario '%s' not found. Use /api/scenarios to list available scenarios", scenarioID)
			}
			return nil, "", fmt.Errorf("failed to load scenario %s: %w", scenarioID, err)
		}
		scenario = loaded
	} else {
		scenario = s.scenarios.GetDefault()
		scenarioID = s.getScenarioID(scenario.Name)
	}

	params := engine.BuildParameters(scenario)
	if req.RangerCount > 0 {
		params.RangerCount = req.RangerCount
	}
	if req.MaxSteps > 0 {
		params.MaxSteps = req.MaxSteps
	}
	if err := engine.ValidateParameters(params); err != nil {
		return nil, "", err
	}

	return params, scenarioID, nil
}

// getScenarioID returns the scenario_id for a display name, for consistent
// API responses when the default scenario was used.
func (s *patrolServiceImpl) getScenarioID(displayName string) string {
	available, err := s.scenarios.ListScenarios()
	if err == nil {
		for _, sc := range available {
			if sc.Name == displayName {
				return sc.ScenarioID
			}
		}
	}
	if displayName == "" {
		return "default"
	}
	return displayName
}

// GetPlan retrieves plan information.
func (s *patrolServiceImpl) GetPlan(ctx context.Context, planID string) (*PlanInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, err := s.plans.Get(planID)
	if err != nil {
		return nil, fmt.Errorf("plan not found: %w", err)
	}

	s.plans.UpdateLastAccessed(planID)

	return planInfo(plan), nil
}

// ListPlans returns all stored plans.
func (s *patrolServiceImpl) ListPlans(ctx context.Context) ([]*PlanInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plans := s.plans.List()
	result := make([]*PlanInfo, 0, len(plans))
	for _, plan := range plans {
		result = append(result, planInfo(plan))
	}

	return result, nil
}

// DeletePlan removes a plan.
func (s *patrolServiceImpl) DeletePlan(ctx context.Context, planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.plans.Delete(planID)
}

// Recompute re-runs a stored plan's parameters with a new seed and replaces
// its result. A nil seed means a fresh time-derived one.
func (s *patrolServiceImpl) Recompute(ctx context.Context, planID string, seed *int64) (*PlanInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.plans.Get(planID)
	if err != nil {
		return nil, fmt.Errorf("plan not found: %w", err)
	}

	newSeed := time.Now().UnixNano()
	if seed != nil {
		newSeed = *seed
	}

	planner, err := engine.NewPlannerWithSeed(plan.Params, newSeed)
	if err != nil {
		return nil, err
	}

	result, err := planner.Generate()
	if err != nil {
		return nil, err
	}

	plan.Seed = newSeed
	plan.Result = result
	plan.LastAccessedAt = time.Now()
	if err := s.plans.Save(planID); err != nil {
		return nil, fmt.Errorf("failed to persist recomputed plan: %w", err)
	}

	return planInfo(plan), nil
}

// GetRoutes returns a plan's routes.
func (s *patrolServiceImpl) GetRoutes(ctx context.Context, planID string) ([]engine.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, err := s.plans.Get(planID)
	if err != nil {
		return nil, fmt.Errorf("plan not found: %w", err)
	}

	s.plans.UpdateLastAccessed(planID)
	return plan.Result.Routes, nil
}

// GetCoverage returns a plan's coverage grid.
func (s *patrolServiceImpl) GetCoverage(ctx context.Context, planID string) ([][]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, err := s.plans.Get(planID)
	if err != nil {
		return nil, fmt.Errorf("plan not found: %w", err)
	}

	s.plans.UpdateLastAccessed(planID)
	return plan.Result.Coverage, nil
}

// GetStats returns a plan's statistics record.
func (s *patrolServiceImpl) GetStats(ctx context.Context, planID string) (*engine.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, err := s.plans.Get(planID)
	if err != nil {
		return nil, fmt.Errorf("plan not found: %w", err)
	}

	s.plans.UpdateLastAccessed(planID)
	return &plan.Result.Stats, nil
}

// ListScenarios returns all available scenarios.
func (s *patrolServiceImpl) ListScenarios(ctx context.Context) ([]*ScenarioInfo, error) {
	return s.scenarios.ListScenarios()
}

// LoadScenario loads a scenario by name.
func (s *patrolServiceImpl) LoadScenario(ctx context.Context, name string) (*engine.Scenario, error) {
	return s.scenarios.LoadScenario(name)
}

// SaveScenario validates and persists a scenario.
func (s *patrolServiceImpl) SaveScenario(ctx context.Context, name string, scenario *engine.Scenario) error {
	return s.scenarios.SaveScenario(name, scenario)
}

// planInfo builds the wire representation of a stored plan.
func planInfo(plan *Plan) *PlanInfo {
	return &PlanInfo{
		ID:             plan.ID,
		ScenarioID:     plan.ScenarioID,
		Seed:           plan.Seed,
		GridSize:       plan.Params.GridSize,
		RangerCount:    plan.Params.RangerCount,
		MaxSteps:       plan.Params.MaxSteps,
		CreatedAt:      plan.CreatedAt,
		LastAccessedAt: plan.LastAccessedAt,
		Params:         plan.Params,
		Result:         plan.Result,
	}
}
