package handler

import (
	"strings"

	"github.com/jingfdev/pawhere/internal/registration/models"
	"github.com/jingfdev/pawhere/pkg/email"
	tags "github.com/jingfdev/pawhere/pkg/platform/strings"
)

// RegisterRequest is the untrusted intake payload. Scalar survey answers are
// decoded loosely (strings, a float for the rating) so a malformed field
// yields a field-level error instead of aborting the whole decode; array
// answers use models.StringList, which nulls out non-array JSON. Unknown
// fields are ignored by the decoder.
type RegisterRequest struct {
	Email string  `json:"email"`
	Phone *string `json:"phone"`
	IsVIP *bool   `json:"isVip"`

	OwnsPet          *string           `json:"ownsPet"`
	PetType          models.StringList `json:"petType"`
	PetTypeOther     *string           `json:"petTypeOther"`
	OutdoorFrequency *string           `json:"outdoorFrequency"`
	HasLostPet       *string           `json:"hasLostPet"`
	HowFoundPet      *string           `json:"howFoundPet"`

	UsesTrackingSolution    *string           `json:"usesTrackingSolution"`
	TrackingSolutionDetails *string           `json:"trackingSolutionDetails"`
	SafetyWorries           models.StringList `json:"safetyWorries"`
	SafetyWorriesOther      *string           `json:"safetyWorriesOther"`
	CurrentSafetyMethods    *string           `json:"currentSafetyMethods"`

	ImportantFeatures       models.StringList `json:"importantFeatures"`
	ExpectedChallenges      models.StringList `json:"expectedChallenges"`
	ExpectedChallengesOther *string           `json:"expectedChallengesOther"`
	UsefulnessRating        *float64          `json:"usefulnessRating"`
	WishFeature             *string           `json:"wishFeature"`
}

// Normalize trims whitespace, collapses empty strings to nil and dedupes the
// array answers so the storage boundary never sees empty-string stand-ins.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)

	r.Phone = trimmed(r.Phone)
	r.OwnsPet = trimmed(r.OwnsPet)
	r.PetTypeOther = trimmed(r.PetTypeOther)
	r.OutdoorFrequency = trimmed(r.OutdoorFrequency)
	r.HasLostPet = trimmed(r.HasLostPet)
	r.HowFoundPet = trimmed(r.HowFoundPet)
	r.UsesTrackingSolution = trimmed(r.UsesTrackingSolution)
	r.TrackingSolutionDetails = trimmed(r.TrackingSolutionDetails)
	r.SafetyWorriesOther = trimmed(r.SafetyWorriesOther)
	r.CurrentSafetyMethods = trimmed(r.CurrentSafetyMethods)
	r.ExpectedChallengesOther = trimmed(r.ExpectedChallengesOther)
	r.WishFeature = trimmed(r.WishFeature)

	r.PetType = tags.NormalizeTags(r.PetType)
	r.SafetyWorries = tags.NormalizeTags(r.SafetyWorries)
	r.ImportantFeatures = tags.NormalizeTags(r.ImportantFeatures)
	r.ExpectedChallenges = tags.NormalizeTags(r.ExpectedChallenges)
}

// Validate checks the normalized request and returns every field-level
// failure at once, or nil when the payload is acceptable.
func (r *RegisterRequest) Validate() models.FieldErrors {
	var errs models.FieldErrors

	if r.Email == "" {
		errs = append(errs, models.FieldError{
			Path:    "email",
			Message: "Email is required",
			Code:    models.ErrCodeRequired,
		})
	} else if !email.Valid(r.Email) {
		errs = append(errs, models.FieldError{
			Path:    "email",
			Message: "Please enter a valid email address",
			Code:    models.ErrCodeInvalidEmail,
		})
	}

	errs = appendYesNoError(errs, "ownsPet", r.OwnsPet)
	errs = appendYesNoError(errs, "hasLostPet", r.HasLostPet)
	errs = appendYesNoError(errs, "usesTrackingSolution", r.UsesTrackingSolution)

	if r.OutdoorFrequency != nil && !models.OutdoorFrequency(*r.OutdoorFrequency).Valid() {
		errs = append(errs, models.FieldError{
			Path:    "outdoorFrequency",
			Message: "Must be one of: rarely, sometimes, often",
			Code:    models.ErrCodeInvalidEnum,
		})
	}

	if r.UsefulnessRating != nil {
		v := *r.UsefulnessRating
		if v != float64(int(v)) || v < 1 || v > 10 {
			errs = append(errs, models.FieldError{
				Path:    "usefulnessRating",
				Message: "Must be an integer between 1 and 10",
				Code:    models.ErrCodeOutOfRange,
			})
		}
	}

	return errs
}

// ToAnswers converts the validated request into the normalized creation
// payload. Call only after Normalize and a nil Validate result.
func (r *RegisterRequest) ToAnswers() models.Answers {
	answers := models.Answers{
		Email: r.Email,
		Phone: r.Phone,

		PetType:      r.PetType,
		PetTypeOther: r.PetTypeOther,
		HowFoundPet:  r.HowFoundPet,

		TrackingSolutionDetails: r.TrackingSolutionDetails,
		SafetyWorries:           r.SafetyWorries,
		SafetyWorriesOther:      r.SafetyWorriesOther,
		CurrentSafetyMethods:    r.CurrentSafetyMethods,

		ImportantFeatures:       r.ImportantFeatures,
		ExpectedChallenges:      r.ExpectedChallenges,
		ExpectedChallengesOther: r.ExpectedChallengesOther,
		WishFeature:             r.WishFeature,
	}

	if r.IsVIP != nil {
		answers.IsVIP = *r.IsVIP
	}
	if r.OwnsPet != nil {
		v := models.YesNo(*r.OwnsPet)
		answers.OwnsPet = &v
	}
	if r.OutdoorFrequency != nil {
		v := models.OutdoorFrequency(*r.OutdoorFrequency)
		answers.OutdoorFrequency = &v
	}
	if r.HasLostPet != nil {
		v := models.YesNo(*r.HasLostPet)
		answers.HasLostPet = &v
	}
	if r.UsesTrackingSolution != nil {
		v := models.YesNo(*r.UsesTrackingSolution)
		answers.UsesTrackingSolution = &v
	}
	if r.UsefulnessRating != nil {
		v := int(*r.UsefulnessRating)
		answers.UsefulnessRating = &v
	}

	return answers
}

func appendYesNoError(errs models.FieldErrors, path string, value *string) models.FieldErrors {
	if value != nil && !models.YesNo(*value).Valid() {
		errs = append(errs, models.FieldError{
			Path:    path,
			Message: "Must be one of: yes, no",
			Code:    models.ErrCodeInvalidEnum,
		})
	}
	return errs
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
