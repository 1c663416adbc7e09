package registration

import (
	"log/slog"

	"github.com/jingfdev/pawhere/internal/registration/handler"
	"github.com/jingfdev/pawhere/internal/registration/service"
	"github.com/jingfdev/pawhere/internal/registration/store"
)

// Service runs the server side of the intake pipeline.
type Service = service.Service

// Handler wires HTTP endpoints to the registration service.
type Handler = handler.Handler

// NewService constructs the registration service with required dependencies.
func NewService(registrations store.RegistrationStore, opts ...service.Option) *Service {
	return service.New(registrations, opts...)
}

// NewHandler constructs an HTTP handler for the intake routes.
func NewHandler(s *Service, logger *slog.Logger, opts ...handler.Option) *Handler {
	return handler.New(s, logger, opts...)
}
