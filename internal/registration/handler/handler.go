// Package handler exposes the registration intake endpoints over HTTP.
package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jingfdev/pawhere/internal/registration/models"
	"github.com/jingfdev/pawhere/internal/registration/service"
	dErrors "github.com/jingfdev/pawhere/pkg/domainerrors"
)

// maxBodyBytes bounds intake payloads; the full survey is well under this.
const maxBodyBytes = 1 << 20

// Handler wires the intake endpoints to the registration service.
type Handler struct {
	svc          *service.Service
	logger       *slog.Logger
	exposeErrors bool
}

type Option func(h *Handler)

// WithErrorDetails includes the underlying error text in 500 responses.
// Diagnostic builds only; never enable in production.
func WithErrorDetails() Option {
	return func(h *Handler) {
		h.exposeErrors = true
	}
}

// New constructs an HTTP handler for the intake endpoints.
func New(svc *service.Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{svc: svc, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the intake routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/register", h.handleRegister)
	r.Get("/api/registrations", h.handleListRegistrations)
}

// createdRegistration is the minimal projection echoed back on success; the
// survey answers are not returned to the caller.
type createdRegistration struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	IsVIP bool   `json:"isVip"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRegisterRequest(r)
	if err != nil {
		h.writeValidationError(w, models.FieldErrors{{
			Path:    "body",
			Message: "Request body must be a JSON object",
			Code:    models.ErrCodeRequired,
		}})
		return
	}

	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		h.writeValidationError(w, errs)
		return
	}

	reg, err := h.svc.Register(r.Context(), req.ToAnswers())
	if err != nil {
		h.writeRegisterError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Registration successful",
		"registration": createdRegistration{
			ID:    reg.ID.String(),
			Email: reg.Email,
			IsVIP: reg.IsVIP,
		},
	})
}

func (h *Handler) handleListRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.ListRegistrations(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list registrations failed", "error", err)
		h.writeInternalError(w, err)
		return
	}

	// Empty list marshals as [] rather than null.
	if regs == nil {
		regs = []*models.Registration{}
	}
	writeJSON(w, http.StatusOK, regs)
}

// decodeRegisterRequest parses the body, tolerating payloads that arrive as a
// string-encoded JSON document (some clients double-encode the submission).
func decodeRegisterRequest(r *http.Request) (*RegisterRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			return nil, err
		}
		trimmed = inner
	}

	var req RegisterRequest
	if err := json.Unmarshal([]byte(trimmed), &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *Handler) writeRegisterError(w http.ResponseWriter, r *http.Request, err error) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeValidation:
		h.writeValidationError(w, models.FieldErrors{{
			Path:    "email",
			Message: "Please enter a valid email address",
			Code:    models.ErrCodeInvalidEmail,
		}})
	case dErrors.CodeConflict:
		writeJSON(w, http.StatusConflict, map[string]any{
			"message": "Email already registered",
			"error":   "DUPLICATE_EMAIL",
		})
	default:
		h.logger.ErrorContext(r.Context(), "registration failed", "error", err)
		h.writeInternalError(w, err)
	}
}

func (h *Handler) writeValidationError(w http.ResponseWriter, errs models.FieldErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"message": "Invalid registration data",
		"errors":  errs,
	})
}

func (h *Handler) writeInternalError(w http.ResponseWriter, err error) {
	body := map[string]any{"message": "Internal server error"}
	if h.exposeErrors {
		body["error"] = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
