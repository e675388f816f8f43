package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/udeepa-des/StudyCountDown-backend/internal/auth"
	"github.com/udeepa-des/StudyCountDown-backend/internal/config"
	"github.com/udeepa-des/StudyCountDown-backend/internal/db"
	httpx "github.com/udeepa-des/StudyCountDown-backend/internal/http"
	"github.com/udeepa-des/StudyCountDown-backend/internal/observability"
	"github.com/udeepa-des/StudyCountDown-backend/internal/repo/postgres"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// trace-aware structured logger, also installed as the slog default for
	// the request logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	defer stop()

	// tracing is opt-in by endpoint
	tracing := false

	if cfg.OtelEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, "studycountdown-api", cfg.OtelEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
		} else {
			tracing = true

			defer func() {
				tctx, cancel := config.WithTimeout(5 * time.Second)
				defer cancel()

				_ = shutdownTracer(tctx)
			}()
		}
	}

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// The supervisor owns the database connection. The server starts serving
	// before the first connect succeeds; health reports the live state.
	supervisor := db.NewSupervisor(db.SupervisorConfig{
		DBURL:   cfg.DBURL,
		Backoff: cfg.DBRetryBackoff,
	}, log, prom)

	go supervisor.Run(ctx)

	usersRepo := postgres.NewUsersRepo(supervisor, prom)
	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	router := httpx.NewRouter(httpx.Deps{
		Cfg:     cfg,
		Log:     log,
		Users:   usersRepo,
		JWT:     jwtManager,
		DB:      supervisor,
		Prom:    prom,
		Metrics: reg,
		Tracing: tracing,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "addr", srv.Addr, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	<-ctx.Done()
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		sctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(sctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		supervisor.Shutdown()
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
