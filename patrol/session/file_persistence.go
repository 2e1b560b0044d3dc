package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wildgrid/patrolsim/patrol/service"
)

// FilePersistence implements PlanPersistence using file system storage.
type FilePersistence struct {
	plansDir string
}

// NewFilePersistence creates a new file-based plan persistence layer.
func NewFilePersistence(plansDir string) (*FilePersistence, error) {
	if err := os.MkdirAll(plansDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create plans directory: %w", err)
	}

	return &FilePersistence{
		plansDir: plansDir,
	}, nil
}

// Save persists a plan to a JSON file.
func (fp *FilePersistence) Save(plan *service.Plan) error {
	if plan == nil {
		return fmt.Errorf("plan cannot be nil")
	}

	data := PersistedPlanData{
		ID:             plan.ID,
		ScenarioID:     plan.ScenarioID,
		Seed:           plan.Seed,
		Params:         plan.Params,
		Result:         plan.Result,
		CreatedAt:      plan.CreatedAt,
		LastAccessedAt: plan.LastAccessedAt,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan data: %w", err)
	}

	filePath := fp.getFilePath(plan.ID)
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}

	return nil
}

// Load retrieves a plan from a JSON file.
func (fp *FilePersistence) Load(id string) (*service.Plan, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrPlanNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var data PersistedPlanData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan data: %w", err)
	}

	if data.Params == nil || data.Result == nil {
		return nil, fmt.Errorf("persisted plan %s is missing params or result", id)
	}

	return &service.Plan{
		ID:             data.ID,
		ScenarioID:     data.ScenarioID,
		Seed:           data.Seed,
		Params:         data.Params,
		Result:         data.Result,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a plan file.
func (fp *FilePersistence) Delete(id string) error {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return ErrPlanNotFound
	}

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete plan file: %w", err)
	}

	return nil
}

// ListAll returns all persisted plan IDs.
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.plansDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read plans directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}

	return ids, nil
}

// Exists checks if a plan file exists.
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the file path for a plan ID.
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.plansDir, strings.ToLower(id)+".json")
}
