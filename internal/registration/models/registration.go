package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "github.com/jingfdev/pawhere/pkg/domainerrors"
	"github.com/jingfdev/pawhere/pkg/email"
)

// YesNo is a two-valued survey answer stored as text.
type YesNo string

const (
	Yes YesNo = "yes"
	No  YesNo = "no"
)

func (v YesNo) Valid() bool {
	return v == Yes || v == No
}

// OutdoorFrequency describes how often a pet goes outdoors.
type OutdoorFrequency string

const (
	OutdoorRarely    OutdoorFrequency = "rarely"
	OutdoorSometimes OutdoorFrequency = "sometimes"
	OutdoorOften     OutdoorFrequency = "often"
)

func (v OutdoorFrequency) Valid() bool {
	switch v {
	case OutdoorRarely, OutdoorSometimes, OutdoorOften:
		return true
	}
	return false
}

// Registration is a single lead-capture record: an email plus optional survey
// answers and the acquisition flag (VIP tester vs. general early access).
//
// Invariants:
//   - Email is non-empty and a valid address; exactly one registration exists
//     per distinct email (case-sensitive, enforced by the store)
//   - Optional fields are nil when not answered, never empty-string stand-ins
//   - Array answers preserve insertion order and hold no duplicates
//   - ID and CreatedAt are assigned at creation and immutable
//
// A registration is created exactly once via the intake endpoint and is never
// updated or deleted afterwards.
type Registration struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Phone *string   `json:"phone"`
	IsVIP bool      `json:"isVip"`

	// Background information
	OwnsPet          *YesNo            `json:"ownsPet"`
	PetType          []string          `json:"petType"`
	PetTypeOther     *string           `json:"petTypeOther"`
	OutdoorFrequency *OutdoorFrequency `json:"outdoorFrequency"`
	HasLostPet       *YesNo            `json:"hasLostPet"`
	HowFoundPet      *string           `json:"howFoundPet"`

	// Current solutions and pain points
	UsesTrackingSolution    *YesNo   `json:"usesTrackingSolution"`
	TrackingSolutionDetails *string  `json:"trackingSolutionDetails"`
	SafetyWorries           []string `json:"safetyWorries"`
	SafetyWorriesOther      *string  `json:"safetyWorriesOther"`
	CurrentSafetyMethods    *string  `json:"currentSafetyMethods"`

	// Expectations
	ImportantFeatures       []string `json:"importantFeatures"`
	ExpectedChallenges      []string `json:"expectedChallenges"`
	ExpectedChallengesOther *string  `json:"expectedChallengesOther"`
	UsefulnessRating        *int     `json:"usefulnessRating"`
	WishFeature             *string  `json:"wishFeature"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewRegistration constructs a Registration from a normalized answer set,
// assigning the ID and creation timestamp. The answers must already have
// passed request validation; only hard invariants are rechecked here.
func NewRegistration(id uuid.UUID, answers Answers, now time.Time) (*Registration, error) {
	if answers.Email == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if !email.Valid(answers.Email) {
		return nil, dErrors.New(dErrors.CodeValidation, "email address is malformed")
	}

	return &Registration{
		ID:    id,
		Email: answers.Email,
		Phone: answers.Phone,
		IsVIP: answers.IsVIP,

		OwnsPet:          answers.OwnsPet,
		PetType:          answers.PetType,
		PetTypeOther:     answers.PetTypeOther,
		OutdoorFrequency: answers.OutdoorFrequency,
		HasLostPet:       answers.HasLostPet,
		HowFoundPet:      answers.HowFoundPet,

		UsesTrackingSolution:    answers.UsesTrackingSolution,
		TrackingSolutionDetails: answers.TrackingSolutionDetails,
		SafetyWorries:           answers.SafetyWorries,
		SafetyWorriesOther:      answers.SafetyWorriesOther,
		CurrentSafetyMethods:    answers.CurrentSafetyMethods,

		ImportantFeatures:       answers.ImportantFeatures,
		ExpectedChallenges:      answers.ExpectedChallenges,
		ExpectedChallengesOther: answers.ExpectedChallengesOther,
		UsefulnessRating:        answers.UsefulnessRating,
		WishFeature:             answers.WishFeature,

		CreatedAt: now,
	}, nil
}

// Answers is the normalized creation payload produced by the validation
// layer: every known field is present, with nil meaning "not answered".
type Answers struct {
	Email string
	Phone *string
	IsVIP bool

	OwnsPet          *YesNo
	PetType          []string
	PetTypeOther     *string
	OutdoorFrequency *OutdoorFrequency
	HasLostPet       *YesNo
	HowFoundPet      *string

	UsesTrackingSolution    *YesNo
	TrackingSolutionDetails *string
	SafetyWorries           []string
	SafetyWorriesOther      *string
	CurrentSafetyMethods    *string

	ImportantFeatures       []string
	ExpectedChallenges      []string
	ExpectedChallengesOther *string
	UsefulnessRating        *int
	WishFeature             *string
}
