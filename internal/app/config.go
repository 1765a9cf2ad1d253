package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/simforge/internal/block"
	"github.com/specialistvlad/simforge/internal/parser"
	"github.com/specialistvlad/simforge/internal/syntax"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath string
	// Overrides are `path/key=value` assignments applied on top of the input.
	Overrides []string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	// Unused is the unused-parameter policy: ignore, warn or error.
	Unused        string
	ErrorOverride bool

	SortAlpha  bool
	DumpSyntax bool
	MeshOnly   bool
}

var (
	logFormats = []string{"", "text", "json"}
	logLevels  = []string{"", "debug", "info", "warn", "error"}
)

// NewConfig validates cfg and returns a copy with defaults applied.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" && !cfg.DumpSyntax {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log format %q (must be text or json)", cfg.LogFormat)
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", cfg.LogLevel)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	if cfg.Unused == "" {
		cfg.Unused = parser.Warn.String()
	}
	if _, err := parser.ParseMode(cfg.Unused); err != nil {
		return nil, err
	}
	for _, o := range cfg.Overrides {
		if _, err := block.ParseOverride(o); err != nil {
			return nil, err
		}
	}
	cfg.Overrides = slices.Clone(cfg.Overrides)
	return &cfg, nil
}

// Policy returns the post-build checks the configuration asks for.
func (c *Config) Policy() parser.Policy {
	p := parser.DefaultPolicy()
	if m, err := parser.ParseMode(c.Unused); err == nil {
		p.Unused = m
	}
	if c.ErrorOverride {
		p.Overridden = parser.Error
	}
	return p
}

// SortOrder returns the order the syntax dump uses.
func (c *Config) SortOrder() syntax.SortOrder {
	if c.SortAlpha {
		return syntax.Alphabetical
	}
	return syntax.RegistrationOrder
}
