package intake

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingfdev/pawhere/internal/registration"
	"github.com/jingfdev/pawhere/internal/registration/models"
	"github.com/jingfdev/pawhere/internal/registration/store"
)

// newIntakeServer runs the real handler and memory store behind httptest so
// the client exercises the full request/response cycle.
func newIntakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := registration.NewService(store.NewInMemory())
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	r := chi.NewRouter()
	registration.NewHandler(svc, logger).Register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func completeForm(t *testing.T, form *Form) {
	t.Helper()
	a := form.Answers()
	a.Email = "jane@example.com"
	a.Phone = "0123456789"
	require.NoError(t, form.Next())

	a.OwnsPet = models.No
	require.NoError(t, form.Next())

	a.UsesTrackingSolution = models.No
	form.ToggleSafetyWorry("Getting lost")
	a.CurrentSafetyMethods = "Fenced yard"
	require.NoError(t, form.Next())

	form.ToggleImportantFeature("Price")
	form.ToggleExpectedChallenge("Complicated setup")
	a.UsefulnessRating = 8
	a.WishFeature = "Live map sharing"
	require.NoError(t, form.Next())
}

func TestSubmitSuccessResetsForm(t *testing.T) {
	srv := newIntakeServer(t)
	form := NewForm(NewClient(srv.URL), true)
	completeForm(t, form)

	result, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, result.Outcome)
	assert.NotEmpty(t, result.RegistrationID)

	// Success clears the accumulated answers and returns to the first step,
	// keeping the acquisition channel.
	assert.Equal(t, StepContactInfo, form.Step())
	assert.Empty(t, form.Answers().Email)
	assert.True(t, form.Answers().IsVIP)
}

func TestSubmitDuplicateIsSoftOutcome(t *testing.T) {
	srv := newIntakeServer(t)

	first := NewForm(NewClient(srv.URL), false)
	completeForm(t, first)
	result, err := first.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, result.Outcome)

	second := NewForm(NewClient(srv.URL), false)
	completeForm(t, second)
	result, err = second.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyRegistered, result.Outcome)

	// The form stays on the confirmation step so the user can retry
	// without re-entering everything.
	assert.Equal(t, StepConfirmation, second.Step())
	assert.Equal(t, "jane@example.com", second.Answers().Email)
}

func TestSubmitNetworkError(t *testing.T) {
	srv := newIntakeServer(t)
	form := NewForm(NewClient(srv.URL), false)
	completeForm(t, form)

	// Tear the server down before submitting.
	srv.Close()

	result, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNetworkError, result.Outcome)
	assert.Equal(t, StepConfirmation, form.Step())
}

func TestSubmitServerFailure(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(broken.Close)

	form := NewForm(NewClient(broken.URL), false)
	completeForm(t, form)

	result, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, result.Outcome)
}
