// Package container provides dependency injection for the application.
// It centralizes the creation and wiring of all dependencies, making
// them explicit and testable.
package container

import (
	"fmt"

	"amifi/txn-pipeline/internal/classifier"
	"amifi/txn-pipeline/internal/config"
	"amifi/txn-pipeline/internal/extractor"
	"amifi/txn-pipeline/internal/goalimpact"
	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/pipeline"
	"amifi/txn-pipeline/internal/storage"
	"amifi/txn-pipeline/internal/store"
)

// Container holds all application dependencies. It is immutable after
// creation: fields are private and only reachable through getters, so
// components cannot swap each other's dependencies at runtime.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	extractor  *extractor.Extractor
	classifier *classifier.Classifier
	engine     *goalimpact.Engine
	storage    storage.Storage
	pipeline   *pipeline.Pipeline
}

// Options tweak container construction for specific entry points.
type Options struct {
	// SkipStorage builds a pipeline without persistence, for dry-run
	// CLI invocations.
	SkipStorage bool
}

// NewContainer creates and wires all application dependencies from the
// given configuration.
func NewContainer(cfg *config.Config, opts Options) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Logger first, everything else logs through it.
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format, cfg.Log.MaskPII)

	goalStore := store.NewGoalStore(cfg.Goals.File, logger)
	goals, err := goalStore.LoadGoals()
	if err != nil {
		return nil, fmt.Errorf("failed to load goal registry: %w", err)
	}

	engine, err := goalimpact.New(goals, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build goal impact engine: %w", err)
	}

	// The model predictor degrades to rules on any artifact problem,
	// so construction never fails here.
	rules := classifier.NewRulePredictor(logger)
	var predictor classifier.Predictor = rules
	if cfg.Classifier.ModelPath != "" {
		predictor = classifier.NewModelPredictor(cfg.Classifier.ModelPath, rules, logger)
	}
	cls := classifier.New(predictor, logger)

	var st storage.Storage
	if !opts.SkipStorage {
		st, err = storage.NewSQLiteStorage(cfg.Database.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
	}

	ext := extractor.New(logger)

	return &Container{
		logger:     logger,
		config:     cfg,
		extractor:  ext,
		classifier: cls,
		engine:     engine,
		storage:    st,
		pipeline:   pipeline.New(ext, cls, engine, st, logger),
	}, nil
}

// Close releases held resources, currently just storage.
func (c *Container) Close() error {
	if c.storage != nil {
		return c.storage.Close()
	}
	return nil
}

// GetLogger returns the shared logger.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the application configuration.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetPipeline returns the wired processing pipeline.
func (c *Container) GetPipeline() *pipeline.Pipeline {
	return c.pipeline
}

// GetEngine returns the goal impact engine.
func (c *Container) GetEngine() *goalimpact.Engine {
	return c.engine
}

// GetStorage returns the persistence layer; nil when built with
// SkipStorage.
func (c *Container) GetStorage() storage.Storage {
	return c.storage
}
