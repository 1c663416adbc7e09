// Package service orchestrates the intake pipeline: schema provisioning,
// invariant checks, duplicate detection and persistence.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jingfdev/pawhere/internal/registration/metrics"
	"github.com/jingfdev/pawhere/internal/registration/models"
	"github.com/jingfdev/pawhere/internal/registration/store"
	dErrors "github.com/jingfdev/pawhere/pkg/domainerrors"
	"github.com/jingfdev/pawhere/pkg/platform/sentinel"
)

// Service runs the server side of the intake pipeline against a
// RegistrationStore.
type Service struct {
	store   store.RegistrationStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(registrations store.RegistrationStore, opts ...Option) *Service {
	s := &Service{store: registrations}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register persists a new registration from a normalized answer set.
//
// The flow is ensure-schema, construct, dedup pre-check, insert. The
// pre-check gives duplicate submitters a friendly answer without touching the
// table; the store's unique constraint still backstops the race where two
// submissions pass the check concurrently, so a conflict from Create is
// translated to the same duplicate outcome rather than an internal error.
func (s *Service) Register(ctx context.Context, answers models.Answers) (*models.Registration, error) {
	start := time.Now()
	defer s.observeRegister(start)

	if err := s.store.EnsureSchema(ctx); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to provision registration schema")
	}

	reg, err := models.NewRegistration(uuid.New(), answers, time.Now().UTC())
	if err != nil {
		s.incrementInvalid()
		return nil, err
	}

	_, err = s.store.FindByEmail(ctx, reg.Email)
	switch {
	case err == nil:
		s.incrementDuplicate()
		return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
	case !errors.Is(err, sentinel.ErrNotFound):
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing registration")
	}

	if err := s.store.Create(ctx, reg); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Lost the check-then-insert race; the constraint caught it.
			s.incrementDuplicate()
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist registration")
	}

	s.incrementCreated()
	s.logInfo(ctx, "registration created",
		"registration_id", reg.ID,
		"is_vip", reg.IsVIP)

	return reg, nil
}

// ListRegistrations returns every stored registration in creation order.
// Unfiltered and unpaginated: this backs a low-volume administrative export.
func (s *Service) ListRegistrations(ctx context.Context) ([]*models.Registration, error) {
	if err := s.store.EnsureSchema(ctx); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to provision registration schema")
	}

	regs, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
	}
	return regs, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, msg, args...)
	}
}

func (s *Service) incrementCreated() {
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
}

func (s *Service) incrementDuplicate() {
	if s.metrics != nil {
		s.metrics.IncrementDuplicate()
	}
}

func (s *Service) incrementInvalid() {
	if s.metrics != nil {
		s.metrics.IncrementInvalid()
	}
}

func (s *Service) observeRegister(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveRegister(start)
	}
}
