// Package intake implements the client side of the registration pipeline:
// a linear multi-step survey form and the submit client that delivers the
// accumulated answers to the API.
package intake

import (
	"context"
	"errors"

	"github.com/jingfdev/pawhere/internal/registration/models"
	"github.com/jingfdev/pawhere/pkg/email"
	tags "github.com/jingfdev/pawhere/pkg/platform/strings"
)

// Step identifies a position in the intake sequence.
type Step int

const (
	StepContactInfo Step = iota
	StepBackground
	StepCurrentSolutions
	StepExpectations
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepContactInfo:
		return "Contact Info"
	case StepBackground:
		return "Background"
	case StepCurrentSolutions:
		return "Current Solutions"
	case StepExpectations:
		return "Expectations"
	case StepConfirmation:
		return "Confirmation"
	}
	return "Unknown"
}

// ErrAtFirstStep is returned by Previous on the first step.
var ErrAtFirstStep = errors.New("already at the first step")

// Answers is the accumulated answer set carried across steps. Zero values
// mean "not yet answered".
type Answers struct {
	Email string
	Phone string
	IsVIP bool

	OwnsPet          models.YesNo
	PetType          []string
	PetTypeOther     string
	OutdoorFrequency models.OutdoorFrequency
	HasLostPet       models.YesNo
	HowFoundPet      string

	UsesTrackingSolution    models.YesNo
	TrackingSolutionDetails string
	SafetyWorries           []string
	SafetyWorriesOther      string
	CurrentSafetyMethods    string

	ImportantFeatures       []string
	ExpectedChallenges      []string
	ExpectedChallengesOther string
	UsefulnessRating        int
	WishFeature             string
}

// Form is the multi-step intake controller. Steps advance only when the
// current step's required fields are complete; Previous always works except
// on the first step. The terminal step submits over the network.
type Form struct {
	client  *Client
	step    Step
	answers Answers
	isVIP   bool
}

// NewForm constructs a form bound to a submit client. isVIP tags the
// acquisition channel (VIP tester vs. general early access).
func NewForm(client *Client, isVIP bool) *Form {
	return &Form{client: client, isVIP: isVIP, answers: Answers{IsVIP: isVIP}}
}

// Step returns the current step.
func (f *Form) Step() Step {
	return f.step
}

// Answers exposes the accumulated answer set for the UI to fill in.
func (f *Form) Answers() *Answers {
	return &f.answers
}

// Next advances to the following step when the current step's gate holds.
func (f *Form) Next() error {
	if f.step >= StepConfirmation {
		return errors.New("already at the final step")
	}
	if errs := f.validateStep(f.step); len(errs) > 0 {
		return errs
	}
	f.step++
	return nil
}

// Previous moves back one step. Edits made after going back are re-checked
// by Submit, which validates the whole answer set.
func (f *Form) Previous() error {
	if f.step == StepContactInfo {
		return ErrAtFirstStep
	}
	f.step--
	return nil
}

// TogglePetType adds or removes a pet type tag.
func (f *Form) TogglePetType(tag string) {
	f.answers.PetType = toggleTag(f.answers.PetType, tag)
}

// ToggleSafetyWorry adds or removes a safety worry tag.
func (f *Form) ToggleSafetyWorry(tag string) {
	f.answers.SafetyWorries = toggleTag(f.answers.SafetyWorries, tag)
}

// ToggleExpectedChallenge adds or removes an expected challenge tag.
func (f *Form) ToggleExpectedChallenge(tag string) {
	f.answers.ExpectedChallenges = toggleTag(f.answers.ExpectedChallenges, tag)
}

// ToggleImportantFeature adds or removes an important feature tag. Selecting
// a new feature while the cap is reached leaves the selection unchanged;
// deselecting always works.
func (f *Form) ToggleImportantFeature(tag string) {
	selected := f.answers.ImportantFeatures
	if tags.ContainsTag(selected, tag) {
		f.answers.ImportantFeatures = tags.RemoveTag(selected, tag)
		return
	}
	if len(selected) >= models.MaxImportantFeatures {
		return
	}
	f.answers.ImportantFeatures = append(selected, tag)
}

// validateStep checks the required-fields predicate for one step.
func (f *Form) validateStep(step Step) models.FieldErrors {
	var errs models.FieldErrors
	required := func(path, message string) {
		errs = append(errs, models.FieldError{Path: path, Message: message, Code: models.ErrCodeRequired})
	}

	a := &f.answers
	switch step {
	case StepContactInfo:
		if a.Email == "" {
			required("email", "Email is required")
		} else if !email.Valid(a.Email) {
			errs = append(errs, models.FieldError{
				Path:    "email",
				Message: "Please enter a valid email address",
				Code:    models.ErrCodeInvalidEmail,
			})
		}
		if a.Phone == "" {
			required("phone", "Phone number is required")
		}

	case StepBackground:
		if a.OwnsPet == "" {
			required("ownsPet", "Please select an option")
			break
		}
		// Respondents without a pet skip the rest of this step.
		if a.OwnsPet == models.No {
			break
		}
		if len(a.PetType) == 0 {
			required("petType", "Please select at least one pet type")
		}
		if a.OutdoorFrequency == "" {
			required("outdoorFrequency", "Please select an option")
		}
		if a.HasLostPet == "" {
			required("hasLostPet", "Please select an option")
		}

	case StepCurrentSolutions:
		if a.UsesTrackingSolution == "" {
			required("usesTrackingSolution", "Please select an option")
		}
		if len(a.SafetyWorries) == 0 {
			required("safetyWorries", "Please select at least one worry")
		}
		if a.CurrentSafetyMethods == "" {
			required("currentSafetyMethods", "Please describe your current methods")
		}

	case StepExpectations:
		if len(a.ImportantFeatures) == 0 {
			required("importantFeatures", "Please select at least one feature")
		}
		if len(a.ExpectedChallenges) == 0 {
			required("expectedChallenges", "Please select at least one challenge")
		}
		if a.UsefulnessRating < 1 || a.UsefulnessRating > 10 {
			errs = append(errs, models.FieldError{
				Path:    "usefulnessRating",
				Message: "Please rate from 1 to 10",
				Code:    models.ErrCodeOutOfRange,
			})
		}
		if a.WishFeature == "" {
			required("wishFeature", "Please tell us your wish feature")
		}
	}

	return errs
}

// validateAll re-checks every gated step. Step-level gating only proves
// step-local completeness; back-navigation edits can break earlier steps.
func (f *Form) validateAll() models.FieldErrors {
	var errs models.FieldErrors
	for step := StepContactInfo; step < StepConfirmation; step++ {
		errs = append(errs, f.validateStep(step)...)
	}
	return errs
}

// Submit delivers the full answer set from the confirmation step.
//
// On OutcomeCreated the form resets to the first step with cleared answers;
// the host page should close the form. On any other outcome the form stays
// on the confirmation step so the user can retry without re-entering
// everything. A duplicate email is a soft outcome, not an error.
func (f *Form) Submit(ctx context.Context) (*Result, error) {
	if f.step != StepConfirmation {
		return nil, errors.New("submit is only available from the confirmation step")
	}
	if errs := f.validateAll(); len(errs) > 0 {
		return &Result{Outcome: OutcomeInvalid, FieldErrors: errs}, nil
	}

	result, err := f.client.SubmitRegistration(ctx, f.answers)
	if err != nil {
		return nil, err
	}

	if result.Outcome == OutcomeCreated {
		f.Reset()
	}
	return result, nil
}

// Reset returns the form to the first step with a cleared answer set.
func (f *Form) Reset() {
	f.step = StepContactInfo
	f.answers = Answers{IsVIP: f.isVIP}
}

func toggleTag(values []string, tag string) []string {
	if tags.ContainsTag(values, tag) {
		return tags.RemoveTag(values, tag)
	}
	return append(values, tag)
}
