// Package router assembles the public HTTP surface.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jingfdev/pawhere/internal/health"
	"github.com/jingfdev/pawhere/internal/registration"
)

// New builds the API router. The frontend and API may be served from
// different origins depending on deployment target, so every intake endpoint
// accepts cross-origin calls.
func New(intake *registration.Handler, probes *health.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	intake.Register(r)
	probes.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
