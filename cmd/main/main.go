package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chart-challenge/src/config"
	"chart-challenge/src/interfaces"
	"chart-challenge/src/logger"
	"chart-challenge/src/round"
	"chart-challenge/src/scheduler"
	"chart-challenge/src/server"
	"chart-challenge/src/storage"

	"github.com/joho/godotenv"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// Optional .env file for CHART_* overrides
	_ = godotenv.Load()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config.LogLevel, config.Name)

	// 2. Setup Storage
	var store interfaces.IRoundStore

	switch config.Storage.DBType {
	case "postgres":
		store, err = storage.NewPostgresStore(config.MConfig, appLogger)
	default:
		// Default to SQLite
		store, err = storage.NewSQLiteStore(config.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init store: %v", err)
	}
	if err := store.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate store: %v", err)
	}
	defer store.Close()

	// 3. Setup Components
	rounds := round.NewManager(config, appLogger, store)
	srv := server.NewAPIServer(config.MConfig, appLogger, rounds, store)
	sched := scheduler.NewScheduler(config.DailyCron, appLogger, rounds, srv)

	// 4. Daily challenge scheduler (also generates the first challenge)
	if err := sched.Start(); err != nil {
		appLogger.Critical("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// 5. Start Server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	appLogger.Info("Ready, serving on %s:%d", config.Host, config.Port)

	// 6. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")

	if err := store.CleanupOldOutcomes(); err != nil {
		appLogger.Warning("Cleanup on shutdown failed: %v", err)
	}
	if err := srv.Stop(); err != nil {
		appLogger.Warning("Server shutdown failed: %v", err)
	}
}
