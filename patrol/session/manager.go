package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wildgrid/patrolsim/patrol/service"
)

var (
	ErrPlanNotFound      = errors.New("plan not found")
	ErrPlanAlreadyExists = errors.New("plan already exists")
	ErrInvalidPlan       = errors.New("invalid plan record")
)

// Manager handles stored plan lifecycle.
type Manager struct {
	plans       map[string]*service.Plan
	persistence PlanPersistence
	mu          sync.RWMutex
}

// NewManager creates a new plan manager.
func NewManager() *Manager {
	return &Manager{
		plans: make(map[string]*service.Plan),
	}
}

// NewManagerWithPersistence creates a new plan manager with persistence.
func NewManagerWithPersistence(persistence PlanPersistence) *Manager {
	return &Manager{
		plans:       make(map[string]*service.Plan),
		persistence: persistence,
	}
}

// Create stores a computed plan under the given ID, generating one when the
// ID is empty. The record must already carry parameters and a result; the
// manager owns only identity and timestamps.
func (m *Manager) Create(id string, plan *service.Plan) (*service.Plan, error) {
	if plan == nil || plan.Params == nil || plan.Result == nil {
		return nil, ErrInvalidPlan
	}

	if id == "" {
		id = m.generatePlanID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Check if plan already exists (case-insensitive)
	if m.planExists(id) {
		return nil, ErrPlanAlreadyExists
	}

	plan.ID = id
	plan.CreatedAt = time.Now()
	plan.LastAccessedAt = time.Now()

	m.plans[strings.ToLower(id)] = plan

	// Auto-save if persistence is enabled
	if m.persistence != nil {
		if err := m.persistence.Save(plan); err != nil {
			// Log error but don't fail the creation
			fmt.Printf("Warning: Failed to persist plan %s: %v\n", id, err)
		}
	}

	return plan, nil
}

// Get retrieves a plan by ID (case-insensitive).
func (m *Manager) Get(id string) (*service.Plan, error) {
	m.mu.RLock()
	plan, exists := m.plans[strings.ToLower(id)]
	m.mu.RUnlock()

	if exists {
		return plan, nil
	}

	// Try loading from persistence if not in memory
	if m.persistence != nil && m.persistence.Exists(id) {
		plan, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted plan: %w", err)
		}

		m.mu.Lock()
		m.plans[strings.ToLower(id)] = plan
		m.mu.Unlock()

		return plan, nil
	}

	return nil, ErrPlanNotFound
}

// List returns all plans currently in memory.
func (m *Manager) List() []*service.Plan {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Plan, 0, len(m.plans))
	for _, plan := range m.plans {
		result = append(result, plan)
	}

	return result
}

// Delete removes a plan from memory and persistence.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	inMemory := false

	if _, exists := m.plans[lowerID]; exists {
		delete(m.plans, lowerID)
		inMemory = true
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted plan: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrPlanNotFound
	}

	return nil
}

// DeleteFromMemory removes a plan from memory only, leaving any persisted
// file untouched. Used when the file was already removed externally.
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.plans[lowerID]; !exists {
		return ErrPlanNotFound
	}

	delete(m.plans, lowerID)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a plan.
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	plan, exists := m.plans[strings.ToLower(id)]
	if !exists {
		return ErrPlanNotFound
	}

	plan.LastAccessedAt = time.Now()
	return nil
}

// Save saves a specific plan to persistence.
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	m.mu.RLock()
	plan, exists := m.plans[strings.ToLower(id)]
	m.mu.RUnlock()

	if !exists {
		return ErrPlanNotFound
	}

	return m.persistence.Save(plan)
}

// CleanupExpiredPlans removes plans not accessed within the given duration.
// It returns the number of plans removed from memory.
func (m *Manager) CleanupExpiredPlans(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, plan := range m.plans {
		if plan.LastAccessedAt.Before(cutoff) {
			delete(m.plans, id)
			removed++
		}
	}

	return removed
}

// LoadPersistedPlans loads all persisted plans into memory.
func (m *Manager) LoadPersistedPlans() error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	planIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted plans: %w", err)
	}

	for _, id := range planIDs {
		plan, err := m.persistence.Load(id)
		if err != nil {
			fmt.Printf("Warning: Failed to load persisted plan %s: %v\n", id, err)
			continue
		}

		m.mu.Lock()
		m.plans[strings.ToLower(id)] = plan
		m.mu.Unlock()
	}

	return nil
}

// generatePlanID generates a random 4-character plan ID.
func (m *Manager) generatePlanID() string {
	// 2 random bytes become 4 hex characters
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// planExists checks if a plan exists (case-insensitive).
func (m *Manager) planExists(id string) bool {
	_, exists := m.plans[strings.ToLower(id)]
	return exists
}
