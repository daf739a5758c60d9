// Command server runs the lingo API: a REST service for conversational
// language practice with background vocabulary extraction.
package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/lingokit/lingo-api/internal/config"
	"github.com/lingokit/lingo-api/internal/platform/logger"
)

func main() {
	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to assemble application: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up the process-wide logger.
// Everything before this point logs through the stdlib logger because
// slog is not configured yet.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		"server_port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_model", cfg.LLM.ModelName,
		"task_workers", cfg.Task.WorkerCount,
	)

	return cfg, appLogger, nil
}
