package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/simforge/internal/action"
	"github.com/specialistvlad/simforge/internal/block"
	"github.com/specialistvlad/simforge/internal/ctxlog"
)

// Setup builds the object graph from root: parse the tree into actions,
// order them, execute them and apply the post-build policy checks. In
// mesh-only mode execution stops after the mesh stage.
func (a *App) Setup(ctx context.Context, root *block.Block) error {
	logger := ctxlog.FromContext(ctx)

	if err := a.parser.Parse(ctx, root); err != nil {
		return err
	}
	logger.Debug("Actions created.", "count", len(a.warehouse.Actions()))

	if err := a.warehouse.Order(ctx); err != nil {
		return fmt.Errorf("failed to order actions: %w", err)
	}

	last := ""
	if a.config.MeshOnly {
		last = action.StageSetupMesh
	}
	if err := a.warehouse.ExecuteThrough(ctx, last); err != nil {
		return err
	}

	if err := a.parser.Check(ctx, a.config.Policy()); err != nil {
		return err
	}

	g, err := a.warehouse.Graph()
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.published = g
	a.mu.Unlock()

	logger.Info("Object graph constructed.", "objects", g.Len(), "actions", len(a.warehouse.Executed()))
	return nil
}

// Run executes the main application logic based on the configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.DumpSyntax {
		return a.DumpSyntax(a.outW)
	}

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
		defer a.closeHealthcheckServer()
	}

	root, err := a.LoadInput(ctx)
	if err != nil {
		return err
	}
	if err := a.Setup(ctx, root); err != nil {
		return err
	}

	if a.config.MeshOnly {
		a.logger.Info("Mesh-only mode, stopping after mesh setup.")
		return nil
	}

	exec, err := a.Executioner()
	if err != nil {
		return err
	}
	a.logger.Info("🚀 Handing off to executioner.", "name", exec.Name(), "type", exec.TypeName())
	if err := exec.Execute(ctx); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Execution finished.")

	a.logger.Debug("App.Run method finished.")
	return nil
}
