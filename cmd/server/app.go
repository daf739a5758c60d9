package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lingokit/lingo-api/internal/config"
	"github.com/lingokit/lingo-api/internal/platform/gemini"
	"github.com/lingokit/lingo-api/internal/platform/postgres"
	"github.com/lingokit/lingo-api/internal/service"
	"github.com/lingokit/lingo-api/internal/service/auth"
	"github.com/lingokit/lingo-api/internal/store"
	"github.com/lingokit/lingo-api/internal/task"
)

// application holds the assembled dependency graph for the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore       store.UserStore
	transcriptStore store.TranscriptStore
	vocabStore      store.VocabStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier

	generator *gemini.Generator

	taskQueue  *task.TaskQueue
	workerPool *task.WorkerPool

	transcriptService service.TranscriptService
	definitionService service.DefinitionService
	grammarService    service.GrammarService
}

// newApplication wires every component together: database, stores, the
// Gemini generator, the background extraction pipeline, and the services
// the HTTP handlers depend on.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	db, err := setupDatabase(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database setup failed: %w", err)
	}
	app.db = db

	if err := runMigrations(db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}

	app.userStore = postgres.NewUserStore(db, logger, cfg.Auth.BcryptCost)
	app.transcriptStore = postgres.NewTranscriptStore(db, logger)
	app.vocabStore = postgres.NewVocabStore(db, logger)

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("JWT service setup failed: %w", err)
	}
	app.passwordVerifier = auth.NewBcryptVerifier()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	app.generator, err = gemini.NewGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("generator setup failed: %w", err)
	}

	if err := app.setupTaskPipeline(); err != nil {
		db.Close()
		return nil, err
	}

	app.transcriptService, err = service.NewTranscriptService(
		app.transcriptStore,
		app.vocabStore,
		app.extractionFactory(),
		app.taskQueue,
		app.generator,
		logger,
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("transcript service setup failed: %w", err)
	}

	app.definitionService, err = service.NewDefinitionService(app.generator, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("definition service setup failed: %w", err)
	}

	app.grammarService, err = service.NewGrammarService(app.generator, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("grammar service setup failed: %w", err)
	}

	return app, nil
}

// setupTaskPipeline creates the in-memory queue and worker pool that run
// vocabulary extraction off the request path.
func (app *application) setupTaskPipeline() error {
	queueSize := app.config.Task.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}
	app.taskQueue = task.NewTaskQueue(queueSize, app.logger)

	poolCfg := task.DefaultWorkerPoolConfig()
	if app.config.Task.WorkerCount > 0 {
		poolCfg.WorkerCount = app.config.Task.WorkerCount
	}
	app.workerPool = task.NewWorkerPool(app.taskQueue, poolCfg, app.logger)
	app.workerPool.SetErrorHandler(func(t task.Task, err error) {
		app.logger.Error("background task failed",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"error", err,
		)
	})
	app.workerPool.Start()

	return nil
}

func (app *application) extractionFactory() *task.VocabExtractionTaskFactory {
	return task.NewVocabExtractionTaskFactory(
		service.NewTranscriptReaderAdapter(app.transcriptStore),
		app.generator,
		app.vocabStore,
		app.config.Task.ExtractDetail,
		app.logger,
	)
}

// Run starts the HTTP server and blocks until shutdown completes.
func (app *application) Run() error {
	router := app.setupRouter()
	return app.startHTTPServer(router)
}

// cleanup releases resources in reverse dependency order. Safe to call
// with a partially assembled application.
func (app *application) cleanup() {
	if app.taskQueue != nil {
		app.taskQueue.Close()
	}
	if app.workerPool != nil {
		app.workerPool.Stop()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
