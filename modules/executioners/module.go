// Package executioners provides the drivers that take over once the object
// graph is complete.
package executioners

import (
	"context"
	"fmt"
	"math"

	"github.com/specialistvlad/simforge/internal/action"
	"github.com/specialistvlad/simforge/internal/ctxlog"
	"github.com/specialistvlad/simforge/internal/objects"
	"github.com/specialistvlad/simforge/internal/params"
	"github.com/specialistvlad/simforge/internal/registry"
	"github.com/specialistvlad/simforge/internal/syntax"
	"github.com/specialistvlad/simforge/modules/outputs"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

var solveTypes = map[string]bool{"NEWTON": true, "PJFNK": true, "JFNK": true, "LINEAR": true}

// SteadyInput defines the parameters of Steady.
type SteadyInput struct {
	SolveType string `param:"solve_type"`
}

// SteadySchema returns the schema of Steady.
func SteadySchema() *params.Schema {
	return params.NewSchema().
		Default("solve_type", cty.String, cty.StringVal("NEWTON"), "Nonlinear solve strategy: NEWTON, PJFNK, JFNK or LINEAR.")
}

// Steady runs a single solve.
type Steady struct {
	objects.Base
	cfg   SteadyInput
	graph *objects.Graph
}

// NewSteady builds a Steady executioner.
func NewSteady(c objects.Context, p *params.Set) (objects.Object, error) {
	var cfg SteadyInput
	if err := p.Decode(&cfg); err != nil {
		return nil, err
	}
	if !solveTypes[cfg.SolveType] {
		return nil, fmt.Errorf("unsupported solve_type %q", cfg.SolveType)
	}
	return &Steady{Base: objects.NewBase(c, p), cfg: cfg, graph: c.Graph}, nil
}

// Execute notifies the outputs of the initial state and of the single
// solve.
func (s *Steady) Execute(ctx context.Context) (err error) {
	logger := ctxlog.FromContext(ctx).With("executioner", s.Name())
	logger.Info("Steady execution started.", "solve_type", s.cfg.SolveType, "objects", s.graph.Len())
	defer func() {
		if cerr := outputs.CloseAll(s.graph); err == nil {
			err = cerr
		}
	}()

	for _, ev := range []outputs.Event{
		{Kind: outputs.Initial, Executioner: s.Name()},
		{Kind: outputs.Timestep, Step: 1, Time: 1, Executioner: s.Name()},
		{Kind: outputs.Final, Step: 1, Time: 1, Executioner: s.Name()},
	} {
		if err := outputs.Notify(ctx, s.graph, ev); err != nil {
			return err
		}
	}
	logger.Info("Steady execution finished.")
	return nil
}

// TransientInput defines the parameters of Transient.
type TransientInput struct {
	NumSteps  int     `param:"num_steps"`
	DT        float64 `param:"dt"`
	StartTime float64 `param:"start_time"`
	EndTime   float64 `param:"end_time"`
}

// TransientSchema returns the schema of Transient.
func TransientSchema() *params.Schema {
	return params.NewSchema().
		Default("num_steps", cty.Number, cty.NumberIntVal(1), "Maximum number of time steps.").
		Default("dt", cty.Number, cty.NumberIntVal(1), "Time step size.").
		Default("start_time", cty.Number, cty.NumberIntVal(0), "Simulation start time.").
		Optional("end_time", cty.Number, "Stop once this time is reached.")
}

// Transient advances a fixed time step.
type Transient struct {
	objects.Base
	cfg   TransientInput
	graph *objects.Graph
}

// NewTransient builds a Transient executioner.
func NewTransient(c objects.Context, p *params.Set) (objects.Object, error) {
	cfg := TransientInput{EndTime: math.Inf(1)}
	if err := p.Decode(&cfg); err != nil {
		return nil, err
	}
	if cfg.NumSteps < 1 {
		return nil, fmt.Errorf("num_steps must be at least 1, got %d", cfg.NumSteps)
	}
	if cfg.DT <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %g", cfg.DT)
	}
	if cfg.EndTime <= cfg.StartTime {
		return nil, fmt.Errorf("end_time (%g) must be after start_time (%g)", cfg.EndTime, cfg.StartTime)
	}
	return &Transient{Base: objects.NewBase(c, p), cfg: cfg, graph: c.Graph}, nil
}

// Execute steps time forward, notifying the outputs after every step. It
// stops early when ctx is cancelled.
func (t *Transient) Execute(ctx context.Context) (err error) {
	logger := ctxlog.FromContext(ctx).With("executioner", t.Name())
	logger.Info("Transient execution started.", "num_steps", t.cfg.NumSteps, "dt", t.cfg.DT)
	defer func() {
		if cerr := outputs.CloseAll(t.graph); err == nil {
			err = cerr
		}
	}()

	now := t.cfg.StartTime
	if err := outputs.Notify(ctx, t.graph, outputs.Event{Kind: outputs.Initial, Time: now, Executioner: t.Name()}); err != nil {
		return err
	}

	step := 0
	for step < t.cfg.NumSteps && now < t.cfg.EndTime {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("transient execution interrupted at step %d: %w", step, err)
		}
		step++
		now = math.Min(now+t.cfg.DT, t.cfg.EndTime)
		logger.Debug("Time step.", "step", step, "time", now)
		if err := outputs.Notify(ctx, t.graph, outputs.Event{Kind: outputs.Timestep, Step: step, Time: now, Executioner: t.Name()}); err != nil {
			return err
		}
	}

	if err := outputs.Notify(ctx, t.graph, outputs.Event{Kind: outputs.Final, Step: step, Time: now, Executioner: t.Name()}); err != nil {
		return err
	}
	logger.Info("Transient execution finished.", "steps", step, "time", now)
	return nil
}

// Register registers the executioner types, action and syntax.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterObject("Steady", registry.ObjectEntry{
		Schema: SteadySchema,
		New:    NewSteady,
		Params: SteadyInput{},
	})
	r.RegisterObject("Transient", registry.ObjectEntry{
		Schema: TransientSchema,
		New:    NewTransient,
		Params: TransientInput{},
	})
	r.RegisterAction("SetupExecutionerAction", registry.ActionEntry{
		Schema: params.NewSchema,
		New:    action.ObjectActionConstructor(action.StageSetupExecutioner),
	})
	r.RegisterSyntax("Executioner", "SetupExecutionerAction", syntax.AsObject())
}
