// Package store provides registration persistence. Stores are interface
// driven so the service and handler tests can run against the in-memory
// implementation while deployments use PostgreSQL.
package store

import (
	"context"

	"github.com/jingfdev/pawhere/internal/registration/models"
)

// RegistrationStore is the persistence contract for the intake pipeline.
//
// Create must fail with sentinel.ErrConflict when a registration with the
// same email already exists; the email uniqueness constraint is the last
// line of defense against the check-then-insert race.
type RegistrationStore interface {
	// EnsureSchema provisions the backing table and any later-added columns.
	// It is idempotent: safe on every process start and before every write.
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, reg *models.Registration) error
	FindByEmail(ctx context.Context, email string) (*models.Registration, error)
	List(ctx context.Context) ([]*models.Registration, error)
}
