package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/simforge/internal/block"
	"github.com/specialistvlad/simforge/internal/ctxlog"
	"github.com/specialistvlad/simforge/internal/hclinput"
	"github.com/specialistvlad/simforge/internal/yamlinput"
)

// loaderFor picks the front-end by file extension. Anything that is not
// YAML is read as HCL.
func loaderFor(path string) block.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlinput.NewLoader()
	default:
		return hclinput.NewLoader()
	}
}

// LoadInput reads the configured input file and applies the command-line
// overrides.
func (a *App) LoadInput(ctx context.Context) (*block.Block, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading input...", "path", a.config.InputPath)

	root, err := loaderFor(a.config.InputPath).Load(ctx, a.config.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load input: %w", err)
	}

	overrides := make([]block.Override, 0, len(a.config.Overrides))
	for _, raw := range a.config.Overrides {
		o, err := block.ParseOverride(raw)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	if err := block.ApplyOverrides(root, overrides, hclinput.ParseValue); err != nil {
		return nil, fmt.Errorf("failed to apply overrides: %w", err)
	}

	logger.Info("Input loaded.", "path", a.config.InputPath, "overrides", len(overrides))
	return root, nil
}
