// Command server runs the PAWhere registration intake API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jingfdev/pawhere/internal/health"
	"github.com/jingfdev/pawhere/internal/platform/config"
	"github.com/jingfdev/pawhere/internal/platform/httpserver"
	"github.com/jingfdev/pawhere/internal/platform/logger"
	"github.com/jingfdev/pawhere/internal/platform/postgres"
	"github.com/jingfdev/pawhere/internal/registration"
	"github.com/jingfdev/pawhere/internal/registration/handler"
	regmetrics "github.com/jingfdev/pawhere/internal/registration/metrics"
	"github.com/jingfdev/pawhere/internal/registration/service"
	"github.com/jingfdev/pawhere/internal/registration/store"
	"github.com/jingfdev/pawhere/internal/router"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		registrations store.RegistrationStore
		dbHealth      health.Pinger
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		registrations = store.NewPostgres(db)
		dbHealth = db
	} else {
		// Local development without a database; nothing survives a restart.
		log.Warn("DATABASE_URL not set, using in-memory registration store")
		registrations = store.NewInMemory()
	}

	// Provision eagerly so a misconfigured database fails the boot, not the
	// first submission.
	if err := registrations.EnsureSchema(ctx); err != nil {
		log.Error("schema provisioning failed", "error", err)
		os.Exit(1)
	}

	svc := registration.NewService(registrations,
		service.WithLogger(log),
		service.WithMetrics(regmetrics.New()),
	)

	var handlerOpts []handler.Option
	if !cfg.IsProduction() {
		handlerOpts = append(handlerOpts, handler.WithErrorDetails())
	}
	intake := registration.NewHandler(svc, log, handlerOpts...)

	srv := httpserver.New(cfg.Addr, router.New(intake, health.New(dbHealth)))

	log.Info("starting pawhere intake api", "addr", cfg.Addr, "environment", cfg.Environment)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
