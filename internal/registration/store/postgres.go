package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jingfdev/pawhere/internal/registration/models"
	"github.com/jingfdev/pawhere/pkg/platform/sentinel"
)

// uniqueViolation is the PostgreSQL error code raised when an insert breaks
// a unique constraint.
const uniqueViolation = "23505"

// Postgres implements RegistrationStore on top of database/sql with lib/pq.
// Array answers are stored as jsonb columns so insertion order survives the
// round trip.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed registration store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the registrations table and retrofits the survey
// columns that were added after the initial launch. Every statement is
// IF NOT EXISTS, so repeat calls leave the schema untouched.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	const createTable = `
		CREATE TABLE IF NOT EXISTS registrations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			phone TEXT,
			is_vip BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("create registrations table: %w", err)
	}

	// Survey fields arrived in a later schema revision; older deployments
	// carry a registrations table without them.
	const addSurveyColumns = `
		ALTER TABLE registrations
		ADD COLUMN IF NOT EXISTS owns_pet TEXT,
		ADD COLUMN IF NOT EXISTS pet_type JSONB,
		ADD COLUMN IF NOT EXISTS pet_type_other TEXT,
		ADD COLUMN IF NOT EXISTS outdoor_frequency TEXT,
		ADD COLUMN IF NOT EXISTS has_lost_pet TEXT,
		ADD COLUMN IF NOT EXISTS how_found_pet TEXT,
		ADD COLUMN IF NOT EXISTS uses_tracking_solution TEXT,
		ADD COLUMN IF NOT EXISTS tracking_solution_details TEXT,
		ADD COLUMN IF NOT EXISTS safety_worries JSONB,
		ADD COLUMN IF NOT EXISTS safety_worries_other TEXT,
		ADD COLUMN IF NOT EXISTS current_safety_methods TEXT,
		ADD COLUMN IF NOT EXISTS important_features JSONB,
		ADD COLUMN IF NOT EXISTS expected_challenges JSONB,
		ADD COLUMN IF NOT EXISTS expected_challenges_other TEXT,
		ADD COLUMN IF NOT EXISTS usefulness_rating INTEGER,
		ADD COLUMN IF NOT EXISTS wish_feature TEXT
	`
	if _, err := s.db.ExecContext(ctx, addSurveyColumns); err != nil {
		return fmt.Errorf("add survey columns: %w", err)
	}
	return nil
}

func (s *Postgres) Create(ctx context.Context, reg *models.Registration) error {
	const query = `
		INSERT INTO registrations (
			id, email, phone, is_vip,
			owns_pet, pet_type, pet_type_other, outdoor_frequency,
			has_lost_pet, how_found_pet,
			uses_tracking_solution, tracking_solution_details,
			safety_worries, safety_worries_other, current_safety_methods,
			important_features, expected_challenges, expected_challenges_other,
			usefulness_rating, wish_feature, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	petType, err := jsonbTags(reg.PetType)
	if err != nil {
		return err
	}
	worries, err := jsonbTags(reg.SafetyWorries)
	if err != nil {
		return err
	}
	features, err := jsonbTags(reg.ImportantFeatures)
	if err != nil {
		return err
	}
	challenges, err := jsonbTags(reg.ExpectedChallenges)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		reg.ID,
		reg.Email,
		reg.Phone,
		reg.IsVIP,
		yesNoValue(reg.OwnsPet),
		petType,
		reg.PetTypeOther,
		frequencyValue(reg.OutdoorFrequency),
		yesNoValue(reg.HasLostPet),
		reg.HowFoundPet,
		yesNoValue(reg.UsesTrackingSolution),
		reg.TrackingSolutionDetails,
		worries,
		reg.SafetyWorriesOther,
		reg.CurrentSafetyMethods,
		features,
		challenges,
		reg.ExpectedChallengesOther,
		reg.UsefulnessRating,
		reg.WishFeature,
		reg.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

const selectColumns = `
	id, email, phone, is_vip,
	owns_pet, pet_type, pet_type_other, outdoor_frequency,
	has_lost_pet, how_found_pet,
	uses_tracking_solution, tracking_solution_details,
	safety_worries, safety_worries_other, current_safety_methods,
	important_features, expected_challenges, expected_challenges_other,
	usefulness_rating, wish_feature, created_at
`

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.Registration, error) {
	query := `SELECT ` + selectColumns + ` FROM registrations WHERE email = $1`
	reg, err := scanRegistration(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find registration by email: %w", err)
	}
	return reg, nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Registration, error) {
	query := `SELECT ` + selectColumns + ` FROM registrations ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []*models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration row: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registration rows: %w", err)
	}
	return regs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*models.Registration, error) {
	var (
		reg        models.Registration
		phone      sql.NullString
		ownsPet    sql.NullString
		petType    []byte
		petOther   sql.NullString
		frequency  sql.NullString
		lostPet    sql.NullString
		howFound   sql.NullString
		usesTrack  sql.NullString
		trackDet   sql.NullString
		worries    []byte
		worryOther sql.NullString
		safety     sql.NullString
		features   []byte
		challenges []byte
		chalOther  sql.NullString
		rating     sql.NullInt64
		wish       sql.NullString
	)

	err := row.Scan(
		&reg.ID, &reg.Email, &phone, &reg.IsVIP,
		&ownsPet, &petType, &petOther, &frequency,
		&lostPet, &howFound,
		&usesTrack, &trackDet,
		&worries, &worryOther, &safety,
		&features, &challenges, &chalOther,
		&rating, &wish, &reg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	reg.Phone = nullString(phone)
	reg.OwnsPet = nullYesNo(ownsPet)
	reg.PetTypeOther = nullString(petOther)
	reg.OutdoorFrequency = nullFrequency(frequency)
	reg.HasLostPet = nullYesNo(lostPet)
	reg.HowFoundPet = nullString(howFound)
	reg.UsesTrackingSolution = nullYesNo(usesTrack)
	reg.TrackingSolutionDetails = nullString(trackDet)
	reg.SafetyWorriesOther = nullString(worryOther)
	reg.CurrentSafetyMethods = nullString(safety)
	reg.ExpectedChallengesOther = nullString(chalOther)
	reg.WishFeature = nullString(wish)
	if rating.Valid {
		v := int(rating.Int64)
		reg.UsefulnessRating = &v
	}

	if reg.PetType, err = tagsFromJSONB(petType); err != nil {
		return nil, err
	}
	if reg.SafetyWorries, err = tagsFromJSONB(worries); err != nil {
		return nil, err
	}
	if reg.ImportantFeatures, err = tagsFromJSONB(features); err != nil {
		return nil, err
	}
	if reg.ExpectedChallenges, err = tagsFromJSONB(challenges); err != nil {
		return nil, err
	}
	return &reg, nil
}

func jsonbTags(values []string) (any, error) {
	if values == nil {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	return data, nil
}

func tagsFromJSONB(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	return values, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullYesNo(v sql.NullString) *models.YesNo {
	if !v.Valid {
		return nil
	}
	value := models.YesNo(v.String)
	return &value
}

func nullFrequency(v sql.NullString) *models.OutdoorFrequency {
	if !v.Valid {
		return nil
	}
	value := models.OutdoorFrequency(v.String)
	return &value
}

func yesNoValue(v *models.YesNo) any {
	if v == nil {
		return nil
	}
	return string(*v)
}

func frequencyValue(v *models.OutdoorFrequency) any {
	if v == nil {
		return nil
	}
	return string(*v)
}
