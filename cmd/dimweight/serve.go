package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hapkiduki/dimweight/internal/application/port"
	"github.com/hapkiduki/dimweight/internal/application/usecase"
	"github.com/hapkiduki/dimweight/internal/infrastructure/config"
	"github.com/hapkiduki/dimweight/internal/infrastructure/metrics"
	"github.com/hapkiduki/dimweight/internal/infrastructure/persistance/memory"
	"github.com/hapkiduki/dimweight/internal/interfaces/http/handler"
	"github.com/hapkiduki/dimweight/pkg/logger"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Serves the calculator API (calculate, live preview, carrier catalog) with health and metrics endpoints.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.IsDevelopment(),
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	logger.SetGlobal(log)

	log.Info("Starting Dimensional Weight Calculator",
		"version", version,
		"environment", cfg.App.Environment,
	)

	// Create context that listens for shutdowns signals
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create a logger adapter that implements port.Logger
	logAdapter := &loggerAdapter{log}

	var recorder port.Metrics = port.NopMetrics{}
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		prom := metrics.NewPrometheus(cfg.Metrics.Namespace)
		recorder = prom
		metricsHandler = prom.Handler()
	}

	carriers := memory.NewCarrierRepository()
	calculator := usecase.NewCalculator(carriers, logAdapter.With("component", "calculator"), recorder)

	router := handler.NewRouter(handler.RouterDeps{
		Config:         cfg,
		Logger:         logAdapter,
		Metrics:        recorder,
		Calculator:     calculator,
		Carriers:       carriers,
		Version:        version,
		MetricsHandler: metricsHandler,
	})

	// ============================================================================
	// HTTP server
	// ============================================================================

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal or a listener failure
	select {
	case err := <-serverErr:
		if err != nil {
			log.Error("HTTP server failed", "error", err)
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Graceful shutdown
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		return err
	}
	log.Info("Server shutdown complete")

	return nil
}
