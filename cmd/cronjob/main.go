package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"carbook/internal/config"
	"carbook/internal/jobs"
	"carbook/internal/logger"
	"carbook/internal/scheduler"
	"carbook/internal/store"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'prune-geocode-cache', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Carbook Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize durable storage
	st, err := store.OpenFileStore(cfg.Storage.Path)
	if err != nil {
		logger.Error("Failed to open storage", "error", err, "path", cfg.Storage.Path)
		log.Fatalf("Failed to open storage: %v", err)
	}
	logger.Info("Storage opened", "path", cfg.Storage.Path)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(st, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "prune-geocode-cache":
		jobRunner.PruneGeocodeCache()
	case "expire-pending-booking":
		jobRunner.ExpirePendingBooking()
	case "all":
		jobRunner.RunAllMaintenanceJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - prune-geocode-cache\n")
		fmt.Printf("  - expire-pending-booking\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
