package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/specialistvlad/simforge/internal/action"
	"github.com/specialistvlad/simforge/internal/ctxlog"
	"github.com/specialistvlad/simforge/internal/factory"
	"github.com/specialistvlad/simforge/internal/objects"
	"github.com/specialistvlad/simforge/internal/parser"
	"github.com/specialistvlad/simforge/internal/registry"
	"github.com/specialistvlad/simforge/internal/syntax"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	ctx    context.Context
	runID  string
	config *Config

	registry  *registry.Registry
	warehouse *action.Warehouse
	parser    *parser.Parser

	httpServer *http.Server

	// published is the object graph once the build is done. The health-check
	// server reads it from another goroutine.
	mu        sync.RWMutex
	published *objects.Graph
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry. When
// no modules are given the core modules are registered.
func New(outW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW, runID)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = CoreModules(outW)
	}
	if err := registry.Load(reg, modules...); err != nil {
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	wh := action.NewWarehouse(reg.Stages, reg.Objects)
	return &App{
		outW:      outW,
		logger:    logger,
		ctx:       ctx,
		runID:     runID,
		config:    cfg,
		registry:  reg,
		warehouse: wh,
		parser:    parser.New(reg, wh),
	}, nil
}

// RunID returns the identifier attached to every log line of this run.
func (a *App) RunID() string { return a.runID }

// Config returns the configuration the app was built with.
func (a *App) Config() *Config { return a.config }

// Registry returns the application's registry.
func (a *App) Registry() *registry.Registry { return a.registry }

// Syntax returns the syntax associations.
func (a *App) Syntax() *syntax.Syntax { return a.registry.Syntax }

// Objects returns the object factory.
func (a *App) Objects() *factory.Registry[objects.Object, objects.Context] {
	return a.registry.Objects
}

// Actions returns the action factory.
func (a *App) Actions() *factory.Registry[action.Action, action.Spec] {
	return a.registry.Actions
}

// Parser returns the input parser.
func (a *App) Parser() *parser.Parser { return a.parser }

// Warehouse returns the action warehouse.
func (a *App) Warehouse() *action.Warehouse { return a.warehouse }

// Graph returns the object graph. It is only available once the build is
// done.
func (a *App) Graph() (*objects.Graph, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.published == nil {
		return nil, fmt.Errorf("object graph is not available: warehouse is %s", a.warehouse.State())
	}
	return a.published, nil
}

// Executioner returns the top-level driver of the built graph.
func (a *App) Executioner() (objects.Executioner, error) {
	if _, err := a.Graph(); err != nil {
		return nil, err
	}
	return a.warehouse.Executioner()
}
