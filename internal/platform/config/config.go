package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	DatabaseURL string
	Environment string
}

// IsProduction gates diagnostics that must never leak to real callers.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

// FromEnv builds a Server config from environment variables so main stays
// lean. A local .env file is loaded when present; it is never required.
func FromEnv() Server {
	_ = godotenv.Load()

	addr := os.Getenv("PAWHERE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	return Server{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Environment: environment,
	}
}
