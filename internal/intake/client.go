package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jingfdev/pawhere/internal/registration/models"
)

// submitTimeout bounds worst-case network stalls; past it the submission
// surfaces as a network outcome the UI can explain.
const submitTimeout = 30 * time.Second

// Outcome classifies what happened to a submission.
type Outcome int

const (
	// OutcomeCreated: the registration was persisted.
	OutcomeCreated Outcome = iota
	// OutcomeAlreadyRegistered: the email is already on the list. Surfaced
	// as a friendly notice, not an error.
	OutcomeAlreadyRegistered
	// OutcomeInvalid: the server (or pre-submit validation) rejected the
	// answer set with field-level errors.
	OutcomeInvalid
	// OutcomeNetworkError: the request never produced a server response;
	// the UI should suggest checking the connection and retrying.
	OutcomeNetworkError
	// OutcomeFailed: the server replied with an unexpected error.
	OutcomeFailed
)

// Result is the typed outcome of a submission attempt.
type Result struct {
	Outcome     Outcome
	Message     string
	FieldErrors models.FieldErrors

	// Set only on OutcomeCreated.
	RegistrationID string
}

// Client submits registrations to the intake API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a submit client for the given API base URL,
// e.g. "https://pawhere.example.com".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: submitTimeout},
	}
}

// submitPayload mirrors the API's register request shape. Unanswered fields
// are omitted entirely rather than sent as empty strings.
type submitPayload struct {
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
	IsVIP bool    `json:"isVip"`

	OwnsPet          *string  `json:"ownsPet,omitempty"`
	PetType          []string `json:"petType,omitempty"`
	PetTypeOther     *string  `json:"petTypeOther,omitempty"`
	OutdoorFrequency *string  `json:"outdoorFrequency,omitempty"`
	HasLostPet       *string  `json:"hasLostPet,omitempty"`
	HowFoundPet      *string  `json:"howFoundPet,omitempty"`

	UsesTrackingSolution    *string  `json:"usesTrackingSolution,omitempty"`
	TrackingSolutionDetails *string  `json:"trackingSolutionDetails,omitempty"`
	SafetyWorries           []string `json:"safetyWorries,omitempty"`
	SafetyWorriesOther      *string  `json:"safetyWorriesOther,omitempty"`
	CurrentSafetyMethods    *string  `json:"currentSafetyMethods,omitempty"`

	ImportantFeatures       []string `json:"importantFeatures,omitempty"`
	ExpectedChallenges      []string `json:"expectedChallenges,omitempty"`
	ExpectedChallengesOther *string  `json:"expectedChallengesOther,omitempty"`
	UsefulnessRating        *int     `json:"usefulnessRating,omitempty"`
	WishFeature             *string  `json:"wishFeature,omitempty"`
}

// SubmitRegistration posts the answer set to POST /api/register and maps the
// response to a typed Result. Transport failures (DNS, refused connection,
// timeout) come back as OutcomeNetworkError rather than an error: they are
// expected outcomes the form must present, not programming faults.
func (c *Client) SubmitRegistration(ctx context.Context, answers Answers) (*Result, error) {
	body, err := json.Marshal(payloadFromAnswers(answers))
	if err != nil {
		return nil, fmt.Errorf("marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/register", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Result{
			Outcome: OutcomeNetworkError,
			Message: "Could not reach the registration service. Check your connection and try again.",
		}, nil
	}
	defer resp.Body.Close()

	return decodeSubmitResponse(resp)
}

type submitResponse struct {
	Message      string             `json:"message"`
	Error        string             `json:"error"`
	Errors       models.FieldErrors `json:"errors"`
	Registration *createdProjection `json:"registration"`
}

type createdProjection struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	IsVIP bool   `json:"isVip"`
}

func decodeSubmitResponse(resp *http.Response) (*Result, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &Result{
			Outcome: OutcomeNetworkError,
			Message: "The connection dropped before the response arrived. Try again.",
		}, nil
	}

	var body submitResponse
	// A non-JSON body (proxy error page) falls through to the status switch.
	_ = json.Unmarshal(raw, &body)

	switch resp.StatusCode {
	case http.StatusCreated:
		result := &Result{
			Outcome: OutcomeCreated,
			Message: "We'll contact you soon with early access details.",
		}
		if body.Registration != nil {
			result.RegistrationID = body.Registration.ID
		}
		return result, nil

	case http.StatusConflict:
		return &Result{
			Outcome: OutcomeAlreadyRegistered,
			Message: "This email is already registered. You'll be contacted soon!",
		}, nil

	case http.StatusBadRequest:
		return &Result{
			Outcome:     OutcomeInvalid,
			Message:     "Some answers need another look.",
			FieldErrors: body.Errors,
		}, nil

	default:
		return &Result{
			Outcome: OutcomeFailed,
			Message: "Something went wrong. Please try again.",
		}, nil
	}
}

func payloadFromAnswers(a Answers) submitPayload {
	p := submitPayload{
		Email: a.Email,
		IsVIP: a.IsVIP,

		PetType:            a.PetType,
		SafetyWorries:      a.SafetyWorries,
		ImportantFeatures:  a.ImportantFeatures,
		ExpectedChallenges: a.ExpectedChallenges,
	}

	p.Phone = optional(a.Phone)
	p.OwnsPet = optional(string(a.OwnsPet))
	p.PetTypeOther = optional(a.PetTypeOther)
	p.OutdoorFrequency = optional(string(a.OutdoorFrequency))
	p.HasLostPet = optional(string(a.HasLostPet))
	p.HowFoundPet = optional(a.HowFoundPet)
	p.UsesTrackingSolution = optional(string(a.UsesTrackingSolution))
	p.TrackingSolutionDetails = optional(a.TrackingSolutionDetails)
	p.SafetyWorriesOther = optional(a.SafetyWorriesOther)
	p.CurrentSafetyMethods = optional(a.CurrentSafetyMethods)
	p.ExpectedChallengesOther = optional(a.ExpectedChallengesOther)
	p.WishFeature = optional(a.WishFeature)
	if a.UsefulnessRating != 0 {
		rating := a.UsefulnessRating
		p.UsefulnessRating = &rating
	}

	return p
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
