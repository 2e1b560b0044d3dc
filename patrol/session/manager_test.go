package session

import (
	"testing"
	"time"

	"github.com/wildgrid/patrolsim/patrol/engine"
	"github.com/wildgrid/patrolsim/patrol/service"
)

func sessionTestPlan() *service.Plan {
	return &service.Plan{
		ScenarioID: "savanna",
		Seed:       42,
		Params: &engine.Parameters{
			GridSize:    2,
			RangerCount: 1,
			MaxSteps:    2,
			RiskMap:     [][]float64{{0.5, 0.2}, {0.1, 0.0}},
			AnimalMap:   [][]bool{{false, true}, {false, false}},
			TerrainMap:  [][]int{{1, 1}, {1, 1}},
		},
		Result: &engine.Result{
			Routes: []engine.Route{
				{RangerID: 0, Path: []engine.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}}},
			},
			Coverage: [][]int{{1, 1}, {0, 0}},
			Stats: engine.Stats{
				BeforeRisk:       0.2,
				AfterRisk:        0.13,
				RiskReduction:    "35%",
				HighRiskCoverage: "100%",
			},
		},
	}
}

func TestCreateGeneratesID(t *testing.T) {
	manager := NewManager()

	plan, err := manager.Create("", sessionTestPlan())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(plan.ID) != 4 {
		t.Errorf("Expected 4-character plan ID, got %q", plan.ID)
	}

	for _, c := range plan.ID {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Errorf("Expected hex plan ID, got %q", plan.ID)
			break
		}
	}

	if plan.CreatedAt.IsZero() || plan.LastAccessedAt.IsZero() {
		t.Error("Expected timestamps to be set on create")
	}
}

func TestCreateWithExplicitID(t *testing.T) {
	manager := NewManager()

	plan, err := manager.Create("ab12", sessionTestPlan())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if plan.ID != "ab12" {
		t.Errorf("Expected plan ID ab12, got %s", plan.ID)
	}
}

func TestCreateDuplicateID(t *testing.T) {
	manager := NewManager()

	if _, err := manager.Create("ab12", sessionTestPlan()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := manager.Create("AB12", sessionTestPlan()); err != ErrPlanAlreadyExists {
		t.Errorf("Expected ErrPlanAlreadyExists for case-variant duplicate, got %v", err)
	}
}

func TestCreateRejectsIncompletePlan(t *testing.T) {
	manager := NewManager()

	if _, err := manager.Create("", nil); err != ErrInvalidPlan {
		t.Errorf("Expected ErrInvalidPlan for nil plan, got %v", err)
	}

	noResult := sessionTestPlan()
	noResult.Result = nil
	if _, err := manager.Create("", noResult); err != ErrInvalidPlan {
		t.Errorf("Expected ErrInvalidPlan for missing result, got %v", err)
	}

	noParams := sessionTestPlan()
	noParams.Params = nil
	if _, err := manager.Create("", noParams); err != ErrInvalidPlan {
		t.Errorf("Expected ErrInvalidPlan for missing params, got %v", err)
	}
}

func TestGetCaseInsensitive(t *testing.T) {
	manager := NewManager()

	if _, err := manager.Create("ab12", sessionTestPlan()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	plan, err := manager.Get("AB12")
	if err != nil {
		t.Fatalf("Get with uppercase ID failed: %v", err)
	}

	if plan.ID != "ab12" {
		t.Errorf("Expected plan ab12, got %s", plan.ID)
	}
}

func TestGetNotFound(t *testing.T) {
	manager := NewManager()

	if _, err := manager.Get("zz99"); err != ErrPlanNotFound {
		t.Errorf("Expected ErrPlanNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	manager := NewManager()

	for _, id := range []string{"ab12", "cd34", "ef56"} {
		if _, err := manager.Create(id, sessionTestPlan()); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}

	if got := len(manager.List()); got != 3 {
		t.Errorf("Expected 3 plans, got %d", got)
	}
}

func TestDelete(t *testing.T) {
	manager := NewManager()

	if _, err := manager.Create("ab12", sessionTestPlan()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := manager.Delete("AB12"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := manager.Get("ab12"); err != ErrPlanNotFound {
		t.Errorf("Expected plan to be gone, got %v", err)
	}

	if err := manager.Delete("ab12"); err != ErrPlanNotFound {
		t.Errorf("Expected ErrPlanNotFound on second delete, got %v", err)
	}
}

func TestDeleteFromMemory(t *testing.T) {
	dir := t.TempDir()
	persistence, err := NewFilePersistence(dir)
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}

	manager := NewManagerWithPersistence(persistence)

	if _, err := manager.Create("ab12", sessionTestPlan()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := manager.DeleteFromMemory("ab12"); err != nil {
		t.Fatalf("DeleteFromMemory failed: %v", err)
	}

	// The file is untouched, so Get reloads from disk
	if !persistence.Exists("ab12") {
		t.Error("Expected persisted file to survive DeleteFromMemory")
	}

	if _, err := manager.Get("ab12"); err != nil {
		t.Errorf("Expected reload from persistence, got %v", err)
	}
}

func TestUpdateLastAccessed(t *testing.T) {
	manager := NewManager()

	plan, err := manager.Create("ab12", sessionTestPlan())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before := plan.LastAccessedAt
	time.Sleep(10 * time.Millisecond)

	if err := manager.UpdateLastAccessed("ab12"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}

	if !plan.LastAccessedAt.After(before) {
		t.Error("Expected LastAccessedAt to advance")
	}

	if err := manager.UpdateLastAccessed("zz99"); err != ErrPlanNotFound {
		t.Errorf("Expected ErrPlanNotFound, got %v", err)
	}
}

func TestCleanupExpiredPlans(t *testing.T) {
	manager := NewManager()

	stale, err := manager.Create("ab12", sessionTestPlan())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	stale.LastAccessedAt = time.Now().Add(-48 * time.Hour)

	if _, err := manager.Create("cd34", sessionTestPlan()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	removed := manager.CleanupExpiredPlans(24 * time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 plan removed, got %d", removed)
	}

	if _, err := manager.Get("ab12"); err != ErrPlanNotFound {
		t.Errorf("Expected stale plan removed, got %v", err)
	}

	if _, err := manager.Get("cd34"); err != nil {
		t.Errorf("Expected fresh plan to survive, got %v", err)
	}
}

func TestLoadPersistedPlans(t *testing.T) {
	dir := t.TempDir()
	persistence, err := NewFilePersistence(dir)
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}

	seeded := NewManagerWithPersistence(persistence)
	for _, id := range []string{"ab12", "cd34"} {
		if _, err := seeded.Create(id, sessionTestPlan()); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}

	fresh := NewManagerWithPersistence(persistence)
	if err := fresh.LoadPersistedPlans(); err != nil {
		t.Fatalf("LoadPersistedPlans failed: %v", err)
	}

	if got := len(fresh.List()); got != 2 {
		t.Errorf("Expected 2 loaded plans, got %d", got)
	}

	plan, err := fresh.Get("ab12")
	if err != nil {
		t.Fatalf("Get after load failed: %v", err)
	}

	if plan.ScenarioID != "savanna" || plan.Seed != 42 {
		t.Errorf("Loaded plan lost fields: %+v", plan)
	}
}

func TestSaveWithoutPersistence(t *testing.T) {
	manager := NewManager()

	if _, err := manager.Create("ab12", sessionTestPlan()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// No-op without a persistence layer
	if err := manager.Save("ab12"); err != nil {
		t.Errorf("Save without persistence should be a no-op, got %v", err)
	}
}
