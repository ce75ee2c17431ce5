/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the compensation engine HTTP server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration from the environment
  2. Build the zap logger and metrics registry
  3. Create the in-memory registry, optionally seeded from a scenario file
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PAYROLL_PORT)

ENVIRONMENT:
  PAYROLL_PORT              HTTP port (default 8080)
  PAYROLL_LOG_LEVEL         debug, info, warn, error (default info)
  PAYROLL_ALLOWED_ORIGINS   Comma-separated CORS origins
  PAYROLL_SCENARIO_FILE     YAML scenario applied at startup
  PAYROLL_SHUTDOWN_TIMEOUT  Graceful shutdown timeout (default 30s)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete
  3. Exit

EXAMPLES:
  # Run with a seeded roster
  PAYROLL_SCENARIO_FILE=./roster.yaml ./server

  # Run on different port
  ./server -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - config/config.go: Environment configuration
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/warp/compensation-engine/api"
	"github.com/warp/compensation-engine/config"
	"github.com/warp/compensation-engine/metrics"
	"github.com/warp/compensation-engine/registry"
	"github.com/warp/compensation-engine/scenario"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags
	port := flag.Int("port", cfg.Port, "HTTP server port")
	flag.Parse()

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize handler
	handler := api.NewHandler(registry.NewMemory(), logger, metrics.New())

	if cfg.ScenarioFile != "" {
		s, err := scenario.LoadFile(cfg.ScenarioFile)
		if err != nil {
			logger.Fatal("failed to load scenario file", zap.String("path", cfg.ScenarioFile), zap.Error(err))
		}
		if _, err := handler.ApplyScenario(s); err != nil {
			logger.Fatal("failed to apply scenario file", zap.String("path", cfg.ScenarioFile), zap.Error(err))
		}
	}

	// Create router
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting",
			zap.Int("port", *port),
			zap.String("api", fmt.Sprintf("http://localhost:%d/api", *port)))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
