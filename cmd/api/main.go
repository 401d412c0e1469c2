package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/geocoder89/birthdays/internal/config"
	"github.com/geocoder89/birthdays/internal/domain/user"
	httpx "github.com/geocoder89/birthdays/internal/http"
	"github.com/geocoder89/birthdays/internal/observability"
	"github.com/geocoder89/birthdays/internal/repo"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("birthdays exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	// Load the config set up
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(reg)

	openCtx, cancel := config.WithTimeout(15 * time.Second)
	backend, err := repo.Open(openCtx, cfg, prom, log)
	cancel()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	router := httpx.NewRouter(log, cfg, httpx.Deps{
		Users:     backend.Users,
		Ready:     backend,
		Validator: user.NewValidator(),
		Prom:      prom,
		Gatherer:  reg,
		Now:       time.Now,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("server shutting down")

		shutdownCtx, cancel := config.WithTimeout(shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	runErr := g.Wait()

	closeCtx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	if err := backend.Close(); err != nil {
		log.Error("closing store failed", "err", err)
	}
	if err := shutdownTracer(closeCtx); err != nil {
		log.Error("tracer shutdown failed", "err", err)
	}

	if runErr == nil {
		log.Info("shutdown complete")
	}
	return runErr
}
