package store

import (
	"context"
	"sync"

	"github.com/jingfdev/pawhere/internal/registration/models"
	"github.com/jingfdev/pawhere/pkg/platform/sentinel"
)

// InMemory implements RegistrationStore with a mutex-guarded map. It backs
// handler and service tests and local development without a database.
type InMemory struct {
	mu      sync.RWMutex
	byEmail map[string]*models.Registration
	order   []string
}

// NewInMemory creates an empty in-memory registration store.
func NewInMemory() *InMemory {
	return &InMemory{byEmail: make(map[string]*models.Registration)}
}

// EnsureSchema is a no-op: there is no schema to provision.
func (s *InMemory) EnsureSchema(_ context.Context) error {
	return nil
}

func (s *InMemory) Create(_ context.Context, reg *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Email uniqueness is case-sensitive, matching the Postgres constraint.
	if _, exists := s.byEmail[reg.Email]; exists {
		return sentinel.ErrConflict
	}

	stored := cloneRegistration(reg)
	s.byEmail[reg.Email] = stored
	s.order = append(s.order, reg.Email)
	return nil
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, ok := s.byEmail[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneRegistration(reg), nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	regs := make([]*models.Registration, 0, len(s.order))
	for _, email := range s.order {
		regs = append(regs, cloneRegistration(s.byEmail[email]))
	}
	return regs, nil
}

// cloneRegistration copies the record so callers can't mutate stored state
// through returned pointers or the slices they share.
func cloneRegistration(reg *models.Registration) *models.Registration {
	clone := *reg
	clone.PetType = append([]string(nil), reg.PetType...)
	clone.SafetyWorries = append([]string(nil), reg.SafetyWorries...)
	clone.ImportantFeatures = append([]string(nil), reg.ImportantFeatures...)
	clone.ExpectedChallenges = append([]string(nil), reg.ExpectedChallenges...)
	return &clone
}
