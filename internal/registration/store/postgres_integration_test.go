//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/jingfdev/pawhere/internal/registration/models"
	"github.com/jingfdev/pawhere/internal/registration/store"
	"github.com/jingfdev/pawhere/pkg/platform/sentinel"
	"github.com/jingfdev/pawhere/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "registrations"))
}

func newTestRegistration(email string) *models.Registration {
	ownsPet := models.Yes
	frequency := models.OutdoorSometimes
	phone := "0123456789"
	rating := 8
	return &models.Registration{
		ID:               uuid.New(),
		Email:            email,
		Phone:            &phone,
		IsVIP:            true,
		OwnsPet:          &ownsPet,
		PetType:          []string{"Dog", "other"},
		OutdoorFrequency: &frequency,
		SafetyWorries:    []string{"Getting lost", "Stolen"},
		UsefulnessRating: &rating,
		CreatedAt:        time.Now().UTC().Truncate(time.Microsecond),
	}
}

// TestEnsureSchemaIdempotent verifies repeat provisioning never raises.
func (s *PostgresStoreSuite) TestEnsureSchemaIdempotent() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.store.EnsureSchema(ctx))
	}
}

// TestRoundTrip verifies a full record survives insert and lookup, including
// jsonb array ordering.
func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	reg := newTestRegistration("roundtrip@example.com")
	s.Require().NoError(s.store.Create(ctx, reg))

	found, err := s.store.FindByEmail(ctx, "roundtrip@example.com")
	s.Require().NoError(err)
	s.Equal(reg.ID, found.ID)
	s.Equal(reg.Email, found.Email)
	s.Equal(reg.Phone, found.Phone)
	s.True(found.IsVIP)
	s.Equal(models.Yes, *found.OwnsPet)
	s.Equal(models.OutdoorSometimes, *found.OutdoorFrequency)
	s.Equal([]string{"Dog", "other"}, found.PetType)
	s.Equal([]string{"Getting lost", "Stolen"}, found.SafetyWorries)
	s.Equal(8, *found.UsefulnessRating)
	s.Nil(found.HasLostPet)
	s.Nil(found.WishFeature)
	s.Nil(found.ImportantFeatures)
}

// TestDuplicateEmail verifies the unique constraint surfaces as ErrConflict
// and leaves the first record untouched.
func (s *PostgresStoreSuite) TestDuplicateEmail() {
	ctx := context.Background()
	first := newTestRegistration("dup@example.com")
	s.Require().NoError(s.store.Create(ctx, first))

	second := newTestRegistration("dup@example.com")
	err := s.store.Create(ctx, second)
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	found, err := s.store.FindByEmail(ctx, "dup@example.com")
	s.Require().NoError(err)
	s.Equal(first.ID, found.ID)
}

func (s *PostgresStoreSuite) TestFindByEmailNotFound() {
	_, err := s.store.FindByEmail(context.Background(), "ghost@example.com")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestList() {
	ctx := context.Background()
	for i, email := range []string{"l1@example.com", "l2@example.com"} {
		reg := newTestRegistration(email)
		reg.CreatedAt = reg.CreatedAt.Add(time.Duration(i) * time.Second)
		s.Require().NoError(s.store.Create(ctx, reg))
	}

	regs, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(regs, 2)
	s.Equal("l1@example.com", regs[0].Email)
	s.Equal("l2@example.com", regs[1].Email)
}
