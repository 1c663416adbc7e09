package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/jingfdev/pawhere/internal/registration/models"
	"github.com/jingfdev/pawhere/internal/registration/store"
	dErrors "github.com/jingfdev/pawhere/pkg/domainerrors"
	"github.com/jingfdev/pawhere/pkg/platform/sentinel"
)

type ServiceSuite struct {
	suite.Suite
	svc *Service
	ctx context.Context
}

func (s *ServiceSuite) SetupTest() {
	s.svc = New(store.NewInMemory())
	s.ctx = context.Background()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

// TestRegister covers the happy path and the server-assigned fields.
func (s *ServiceSuite) TestRegister() {
	ownsPet := models.No
	reg, err := s.svc.Register(s.ctx, models.Answers{
		Email:   "a@b.com",
		OwnsPet: &ownsPet,
	})
	s.Require().NoError(err)
	s.NotZero(reg.ID)
	s.False(reg.CreatedAt.IsZero())
	s.Equal("a@b.com", reg.Email)
	s.False(reg.IsVIP)
	s.Equal(models.No, *reg.OwnsPet)
}

// TestRegisterDuplicate verifies the second submission conflicts and leaves
// the first record untouched.
func (s *ServiceSuite) TestRegisterDuplicate() {
	first, err := s.svc.Register(s.ctx, models.Answers{Email: "dup@example.com"})
	s.Require().NoError(err)

	_, err = s.svc.Register(s.ctx, models.Answers{Email: "dup@example.com", IsVIP: true})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	regs, err := s.svc.ListRegistrations(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(regs, 1)
	s.Equal(first.ID, regs[0].ID)
	s.False(regs[0].IsVIP)
}

// TestRegisterValidation verifies hard invariants are rechecked server-side.
func (s *ServiceSuite) TestRegisterValidation() {
	s.Run("missing email", func() {
		_, err := s.svc.Register(s.ctx, models.Answers{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("malformed email", func() {
		_, err := s.svc.Register(s.ctx, models.Answers{Email: "not-an-email"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

// TestRegisterConstraintRace verifies a conflict raised by the store itself
// (the lost check-then-insert race) still surfaces as a duplicate, not as an
// internal error.
func (s *ServiceSuite) TestRegisterConstraintRace() {
	racing := &racingStore{RegistrationStore: store.NewInMemory()}
	svc := New(racing)

	_, err := svc.Register(s.ctx, models.Answers{Email: "race@example.com"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

// TestSchemaFailure verifies a provisioning failure is fatal and internal.
func (s *ServiceSuite) TestSchemaFailure() {
	svc := New(&brokenSchemaStore{RegistrationStore: store.NewInMemory()})

	_, err := svc.Register(s.ctx, models.Answers{Email: "a@b.com"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	_, err = svc.ListRegistrations(s.ctx)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

// racingStore reports no existing registration but conflicts on insert,
// simulating a concurrent submission winning between check and insert.
type racingStore struct {
	store.RegistrationStore
}

func (s *racingStore) FindByEmail(context.Context, string) (*models.Registration, error) {
	return nil, sentinel.ErrNotFound
}

func (s *racingStore) Create(context.Context, *models.Registration) error {
	return sentinel.ErrConflict
}

// brokenSchemaStore fails schema provisioning.
type brokenSchemaStore struct {
	store.RegistrationStore
}

func (s *brokenSchemaStore) EnsureSchema(context.Context) error {
	return errors.New("connection refused")
}
