package main

import (
	"fmt"

	"doccloud/cloud"
	"doccloud/config"
	"doccloud/file"
	"doccloud/pipeline"
	"doccloud/text"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app is the wired object graph shared by every subcommand.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	pipeline *pipeline.Pipeline
}

func newApp() (*app, error) {
	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// =========
	// Logging
	// =========
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// =========
	// Word counting and rendering
	// =========
	counter, err := text.NewCounter(cfg.Render.CounterConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create word counter: %w", err)
	}
	options, err := cfg.Render.Options()
	if err != nil {
		return nil, err
	}
	renderer, err := cloud.NewRenderer(options, counter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	// =========
	// Extraction
	// =========
	core := file.NewCore(file.NewPDFExtractor(logger), file.NewDOCXExtractor(logger))

	return &app{
		cfg:      cfg,
		logger:   logger,
		pipeline: pipeline.New(core, renderer, logger),
	}, nil
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
