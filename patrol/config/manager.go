package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/wildgrid/patrolsim/patrol/engine"
	"github.com/wildgrid/patrolsim/patrol/service"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrInvalidScenario  = errors.New("invalid scenario")
)

// Manager handles scenario loading and caching.
type Manager struct {
	scenarioDir     string
	defaultScenario *engine.Scenario
	scenarios       map[string]*engine.Scenario
	mu              sync.RWMutex
}

// NewManager creates a new scenario manager.
func NewManager(scenarioDir string) (*Manager, error) {
	if _, err := os.Stat(scenarioDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario directory does not exist: %s", scenarioDir)
	}

	m := &Manager{
		scenarioDir: scenarioDir,
		scenarios:   make(map[string]*engine.Scenario),
	}

	if err := m.loadDefaultScenario(); err != nil {
		return nil, fmt.Errorf("failed to load default scenario: %w", err)
	}

	return m, nil
}

// LoadScenario loads a scenario by name.
func (m *Manager) LoadScenario(name string) (*engine.Scenario, error) {
	m.mu.RLock()
	if scenario, exists := m.scenarios[name]; exists {
		m.mu.RUnlock()
		return scenario, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if scenario, exists := m.scenarios[name]; exists {
		return scenario, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	scenarioPath := filepath.Join(m.scenarioDir, filename)

	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrScenarioNotFound
		}
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario engine.Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	if err := engine.ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	m.scenarios[name] = &scenario
	return &scenario, nil
}

// ListScenarios returns information about all available scenarios.
func (m *Manager) ListScenarios() ([]*service.ScenarioInfo, error) {
	entries, err := os.ReadDir(m.scenarioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var scenarios []*service.ScenarioInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")

		scenario, err := m.LoadScenario(name)
		if err != nil {
			// Skip invalid scenarios
			continue
		}

		scenarios = append(scenarios, &service.ScenarioInfo{
			Filename:    entry.Name(),
			ScenarioID:  name, // identifier to use for plan creation
			Name:        scenario.Name,
			Description: scenario.Description,
			GridSize:    scenario.GridSize,
			RangerCount: scenario.RangerCount,
			MaxSteps:    scenario.MaxSteps,
		})
	}

	return scenarios, nil
}

// GetDefault returns the default scenario.
func (m *Manager) GetDefault() *engine.Scenario {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultScenario
}

// SetDefault sets the default scenario by name.
func (m *Manager) SetDefault(name string) error {
	scenario, err := m.LoadScenario(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultScenario = scenario
	return nil
}

// RefreshCache reloads all cached scenarios from disk. The cache is cleared
// under the lock, then released before reloading: loadDefaultScenario goes
// back through LoadScenario, which takes the lock itself.
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.scenarios = make(map[string]*engine.Scenario)
	m.mu.Unlock()

	return m.loadDefaultScenario()
}

// loadDefaultScenario picks the default: savanna if present, otherwise the
// first valid file on disk, otherwise a built-in minimal scenario. Loads
// happen before the lock is taken, like SetDefault.
func (m *Manager) loadDefaultScenario() error {
	scenario, err := m.LoadScenario("savanna")
	if err != nil {
		scenario = nil
		scenarios, listErr := m.ListScenarios()
		if listErr == nil && len(scenarios) > 0 {
			scenario, _ = m.LoadScenario(strings.TrimSuffix(scenarios[0].Filename, ".json"))
		}
		if scenario == nil {
			scenario = m.createMinimalScenario()
		}
	}

	m.mu.Lock()
	m.defaultScenario = scenario
	m.mu.Unlock()
	return nil
}

// SaveScenario saves a scenario to disk.
func (m *Manager) SaveScenario(name string, scenario *engine.Scenario) error {
	if err := engine.ValidateScenario(scenario); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	scenarioPath := filepath.Join(m.scenarioDir, filename)

	data, err := json.MarshalIndent(scenario, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	if err := os.WriteFile(scenarioPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}

	m.mu.Lock()
	m.scenarios[name] = scenario
	m.mu.Unlock()

	return nil
}

// createMinimalScenario builds a minimal valid scenario used when the
// scenario directory holds nothing loadable.
func (m *Manager) createMinimalScenario() *engine.Scenario {
	return &engine.Scenario{
		Name:        "default",
		Description: "Default minimal reserve",
		GridSize:    5,
		RangerCount: 2,
		MaxSteps:    10,
		Layout: []string{
			".....",
			".#.A.",
			".....",
			".A.#.",
			".....",
		},
		Legend: map[string]string{
			".": "open", "#": "blocked", "A": "animals",
		},
		RiskMap: [][]float64{
			{0.2, 0.1, 0.0, 0.0, 0.1},
			{0.3, 0.0, 0.5, 0.8, 0.2},
			{0.4, 0.6, 0.9, 0.5, 0.1},
			{0.2, 0.7, 0.4, 0.0, 0.0},
			{0.1, 0.2, 0.1, 0.0, 0.0},
		},
	}
}
