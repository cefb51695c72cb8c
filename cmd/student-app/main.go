// main is the entry point of the Student Management web application.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Choose the Record List backend (memory or sqlite)
//  4. Create the session registry and start the idle sweeper
//  5. Register all HTTP routes
//  6. Start the HTTP server in a separate goroutine
//  7. Block until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down: finish in-flight requests, unmount components
//
// RUNNING THE SERVER:
//
//	go run ./cmd/student-app --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/student-app
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hudairyounas/student-app/internal/config"
	"github.com/hudairyounas/student-app/internal/http/middleware"
	"github.com/hudairyounas/student-app/internal/http/router"
	"github.com/hudairyounas/student-app/internal/logger"
	"github.com/hudairyounas/student-app/internal/session"
	"github.com/hudairyounas/student-app/internal/storage"
	"github.com/hudairyounas/student-app/internal/storage/memory"
	"github.com/hudairyounas/student-app/internal/storage/sqlite"
	"github.com/hudairyounas/student-app/internal/validation"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := logger.Setup(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting student-app",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Record List Backend ────────────────────────────────────────────
	var open storage.Factory = memory.Factory
	if cfg.Storage.Driver == config.DriverSQLite {
		db, err := sqlite.New(cfg)
		if err != nil {
			log.Error("failed to initialise storage",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()
		open = db.Open
	}

	log.Info("storage initialised",
		slog.String("driver", cfg.Storage.Driver))

	// ── 4. Sessions ───────────────────────────────────────────────────────
	// One component per browser. Idle ones are swept every TTL/2.
	sessions := session.NewRegistry(open, validation.New(), cfg.Session.TTL, log)
	defer sessions.Close()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweep(sweepCtx, sessions, cfg.Session.TTL/2)

	// ── 5. Routes ─────────────────────────────────────────────────────────
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	handler := router.New(sessions, limiter)

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: handler,

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed after Shutdown().
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// sweep unmounts idle components until ctx ends.
func sweep(ctx context.Context, sessions *session.Registry, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.Sweep()
		}
	}
}
