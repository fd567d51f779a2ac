package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carbook/internal/api"
	"carbook/internal/booking"
	"carbook/internal/config"
	"carbook/internal/geocode"
	"carbook/internal/jobs"
	"carbook/internal/logger"
	"carbook/internal/scheduler"
	"carbook/internal/service"
	"carbook/internal/store"
	"carbook/internal/web"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Carbook Gateway...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Backend configuration", "base_url", cfg.Backend.BaseURL)

	// Initialize durable storage
	st, err := store.OpenFileStore(cfg.Storage.Path)
	if err != nil {
		logger.Error("Failed to open storage", "error", err, "path", cfg.Storage.Path)
		log.Fatalf("Failed to open storage: %v", err)
	}
	logger.Info("Storage opened", "path", cfg.Storage.Path)

	// Initialize backend clients. The customer and admin surfaces authenticate
	// with separate token slots.
	backendTimeout := time.Duration(cfg.Backend.TimeoutSeconds) * time.Second
	userClient := api.NewClient(cfg.Backend.BaseURL, backendTimeout, st, store.KeyUserToken)
	adminClient := api.NewClient(cfg.Backend.BaseURL, backendTimeout, st, store.KeyAdminToken)

	// Initialize the reverse geocoder
	resolver := geocode.NewResolver(
		cfg.Geocoder.BaseURL,
		cfg.Geocoder.APIKey,
		cfg.Geocoder.Language,
		time.Duration(cfg.Geocoder.TimeoutSeconds)*time.Second,
		st,
	)

	// Initialize the booking workflow and services
	workflow := booking.NewWorkflow(userClient, resolver, st)
	catalogSvc := service.NewCatalogService(userClient)
	bookingSvc := service.NewBookingService(workflow, userClient)
	authSvc := service.NewAuthService(userClient, st, bookingSvc)
	locationSvc := service.NewLocationService(resolver, st)
	adminSvc := service.NewAdminService(adminClient)

	// Initialize the maintenance scheduler
	jobRunner := jobs.NewJobRunner(st, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()

	// Set up the HTTP server
	router := web.NewRouter(catalogSvc, bookingSvc, authSvc, locationSvc, adminSvc)
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down...")
	cronScheduler.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("Gateway stopped. Goodbye!")
}
