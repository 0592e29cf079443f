package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/VoidMesh/gridgen/internal/api"
	"github.com/VoidMesh/gridgen/internal/config"
	"github.com/VoidMesh/gridgen/internal/logging"
	"github.com/VoidMesh/gridgen/internal/pipeline"
	"github.com/VoidMesh/gridgen/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Debug("Configuration loaded", "server_port", cfg.Server.Port, "db_path", cfg.Database.Path, "log_level", cfg.Logging.Level)

	// Setup logging
	setupLogging(cfg.Logging)
	log.Debug("Logging configured", "level", cfg.Logging.Level, "format", cfg.Logging.Format)

	// Initialize database
	log.Debug("Initializing database connection", "path", cfg.Database.Path)
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close()
	log.Debug("Database connection established")

	// Run migrations
	log.Debug("Running database migrations")
	if err := store.Migrate(db); err != nil {
		log.Fatal("Failed to run database migrations", "error", err)
	}
	log.Debug("Database migrations completed successfully")

	log.Debug("Initializing pipeline executor", "max_cells", cfg.Generation.MaxCells, "max_layers", cfg.Generation.MaxLayers)
	executor := pipeline.NewExecutor(pipeline.WithLimits(cfg.Generation.MaxCells, cfg.Generation.MaxLayers))

	// Initialize API handlers
	log.Debug("Initializing API handlers", "generation_timeout", cfg.Generation.Timeout)
	handler := api.NewHandler(executor, store.New(db), cfg.Generation.Timeout)
	router := api.SetupRoutes(handler, api.RouteOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Concurrency:    cfg.Generation.Concurrency,
	})
	log.Debug("API routes configured", "allowed_origins", cfg.Server.AllowedOrigins, "concurrency", cfg.Generation.Concurrency)

	// Create HTTP server
	log.Debug("Creating HTTP server", "port", cfg.Server.Port, "read_timeout", cfg.Server.ReadTimeout, "write_timeout", cfg.Server.WriteTimeout, "idle_timeout", cfg.Server.IdleTimeout)
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Starting gridgen server", "port", cfg.Server.Port)
		log.Debug("Server listening on all interfaces", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
		log.Debug("Server stopped listening")
	}()

	// Wait for interrupt signal
	log.Debug("Server startup complete, waiting for shutdown signal")
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutting down server...", "signal", sig.String())

	// Create context for graceful shutdown
	log.Debug("Creating shutdown context", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown server
	log.Debug("Initiating server shutdown")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	} else {
		log.Debug("Server shutdown completed gracefully")
	}

	log.Info("Server exited")
}

func setupLogging(cfg config.LoggingConfig) {
	// Set log level
	switch cfg.Level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warn("Invalid log level, using info", "level", cfg.Level)
		log.SetLevel(log.InfoLevel)
	}
	logging.SetLevel(logging.ParseLevel(log.GetLevel().String()))

	// Configure output format
	if cfg.Format == "pretty" || !cfg.Structured {
		log.SetReportCaller(true)
		log.SetReportTimestamp(true)
	} else {
		log.SetFormatter(log.JSONFormatter)
	}

	// Add service info context
	log.SetPrefix("[gridgen] ")
}

func initializeDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	log.Debug("Opening database connection", "path", cfg.Path)
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	log.Debug("Configuring database connection pool", "max_open_conns", cfg.MaxOpenConns, "max_idle_conns", cfg.MaxIdleConns, "conn_max_lifetime", cfg.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Test connection
	log.Debug("Testing database connection")
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Debug("Database connection test successful")

	log.Info("Database initialized", "path", cfg.Path)
	return db, nil
}
