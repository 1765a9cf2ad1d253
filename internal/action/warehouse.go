package action

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/specialistvlad/simforge/internal/ctxlog"
	"github.com/specialistvlad/simforge/internal/dag"
	"github.com/specialistvlad/simforge/internal/objects"
)

// State is the lifecycle state of a Warehouse.
type State int

const (
	Collecting State = iota
	Ordered
	Executing
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Ordered:
		return "ordered"
	case Executing:
		return "executing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ExecutionerName is the object name the driver is looked up by first.
const ExecutionerName = "Executioner"

type entry struct {
	action Action
	stage  string
	index  int
}

// Warehouse collects actions, orders them and executes each exactly once.
type Warehouse struct {
	stages  *StageList
	objects ObjectFactory

	state    State
	entries  []*entry
	order    []*entry
	executed []string
	graph    *objects.Graph
}

// NewWarehouse creates a warehouse over the given stages. Actions that
// materialise objects build them through objs.
func NewWarehouse(stages *StageList, objs ObjectFactory) *Warehouse {
	return &Warehouse{
		stages:  stages,
		objects: objs,
		graph:   objects.NewGraph(),
	}
}

// State returns the current lifecycle state.
func (w *Warehouse) State() State { return w.state }

// Stages returns the stage list the warehouse orders by.
func (w *Warehouse) Stages() *StageList { return w.stages }

// Add registers an action. It is only allowed while collecting.
func (w *Warehouse) Add(a Action) error {
	if w.state != Collecting {
		return fmt.Errorf("cannot add action %q: warehouse is %s", ID(a), w.state)
	}
	stage := a.Stage()
	if stage == "" {
		stage = w.stages.Default()
	}
	if !w.stages.Has(stage) {
		return fmt.Errorf("action %q: unknown stage %q", ID(a), stage)
	}
	w.entries = append(w.entries, &entry{action: a, stage: stage, index: len(w.entries)})
	return nil
}

// Actions returns the collected actions in the order they were added.
func (w *Warehouse) Actions() []Action {
	out := make([]Action, len(w.entries))
	for i, e := range w.entries {
		out[i] = e.action
	}
	return out
}

// Order computes the execution order: stages in list order, and within a
// stage a dependency-respecting order with ties broken by insertion order.
func (w *Warehouse) Order(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if w.state != Collecting {
		return fmt.Errorf("cannot order actions: warehouse is %s", w.state)
	}

	order := make([]*entry, 0, len(w.entries))
	for _, stage := range w.stages.Names() {
		var members []*entry
		for _, e := range w.entries {
			if e.stage == stage {
				members = append(members, e)
			}
		}
		if len(members) == 0 {
			continue
		}
		sorted, err := w.orderStage(ctx, stage, members)
		if err != nil {
			w.state = Failed
			return err
		}
		logger.Debug("Ordered stage.", "stage", stage, "actions", len(sorted))
		order = append(order, sorted...)
	}

	w.order = order
	w.state = Ordered
	return nil
}

func matches(a Action, ref string) bool {
	return a.Name() == ref || ID(a) == ref || slices.Contains(a.Tags(), ref)
}

func (w *Warehouse) orderStage(ctx context.Context, stage string, members []*entry) ([]*entry, error) {
	logger := ctxlog.FromContext(ctx)
	key := func(e *entry) string { return strconv.Itoa(e.index) }

	g := dag.New()
	for _, e := range members {
		g.AddNode(key(e))
	}
	for _, e := range members {
		for _, ref := range e.action.Dependencies() {
			found := false
			for _, other := range members {
				if other == e || !matches(other.action, ref) {
					continue
				}
				found = true
				if err := g.AddEdge(key(other), key(e)); err != nil {
					return nil, fmt.Errorf("stage %q: %w", stage, err)
				}
			}
			if !found {
				logger.Debug("Dependency not in stage, ignoring.", "action", ID(e.action), "stage", stage, "dependency", ref)
			}
		}
	}

	ids, err := g.TopologicalSort()
	if err != nil {
		var cycleErr *dag.CycleError
		if !errors.As(err, &cycleErr) {
			return nil, err
		}
		out := &CycleError{Stage: stage}
		for _, c := range cycleErr.Cycles {
			names := make([]string, len(c))
			for i, id := range c {
				n, _ := strconv.Atoi(id)
				names[i] = ID(w.entries[n].action)
			}
			out.Cycles = append(out.Cycles, names)
		}
		return nil, out
	}

	sorted := make([]*entry, len(ids))
	for i, id := range ids {
		n, _ := strconv.Atoi(id)
		sorted[i] = w.entries[n]
	}
	return sorted, nil
}

// Sequence returns the ordered actions. It is empty before Order succeeds.
func (w *Warehouse) Sequence() []Action {
	out := make([]Action, len(w.order))
	for i, e := range w.order {
		out[i] = e.action
	}
	return out
}

// Execute runs every ordered action.
func (w *Warehouse) Execute(ctx context.Context) error {
	return w.ExecuteThrough(ctx, "")
}

// ExecuteThrough runs the ordered actions up to and including lastStage and
// stops. An empty lastStage runs everything. The first failure halts the
// build and is returned as a *ConstructionError.
func (w *Warehouse) ExecuteThrough(ctx context.Context, lastStage string) error {
	logger := ctxlog.FromContext(ctx)
	if w.state != Ordered {
		return fmt.Errorf("cannot execute actions: warehouse is %s", w.state)
	}
	limit := len(w.stages.Names()) - 1
	if lastStage != "" {
		i, ok := w.stages.Index(lastStage)
		if !ok {
			return fmt.Errorf("cannot execute through unknown stage %q", lastStage)
		}
		limit = i
	}

	w.state = Executing
	env := &Env{Graph: w.graph, Objects: w.objects}
	for _, e := range w.order {
		if i, _ := w.stages.Index(e.stage); i > limit {
			logger.Debug("Stopping before stage.", "stage", e.stage)
			break
		}
		id := ID(e.action)
		logger.Debug("Executing action.", "action", id, "stage", e.stage)
		if err := e.action.Act(ctx, env); err != nil {
			w.state = Failed
			return &ConstructionError{
				Action: e.action.Name(),
				Block:  e.action.Block().String(),
				Stage:  e.stage,
				Err:    err,
			}
		}
		w.executed = append(w.executed, id)
	}

	w.state = Done
	logger.Debug("All actions executed.", "executed", len(w.executed), "objects", w.graph.Len())
	return nil
}

// Executed returns the IDs of the actions that ran, in execution order.
func (w *Warehouse) Executed() []string {
	return slices.Clone(w.executed)
}

// Graph returns the object graph. It is only available once the build is
// done.
func (w *Warehouse) Graph() (*objects.Graph, error) {
	if w.state != Done {
		return nil, fmt.Errorf("object graph is not available: warehouse is %s", w.state)
	}
	return w.graph, nil
}

// Executioner returns the driver object: the object named Executioner if it
// can execute, otherwise the single object that can.
func (w *Warehouse) Executioner() (objects.Executioner, error) {
	g, err := w.Graph()
	if err != nil {
		return nil, err
	}
	if exec, err := objects.Lookup[objects.Executioner](g, ExecutionerName); err == nil {
		return exec, nil
	}
	found := objects.OfType[objects.Executioner](g)
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("no executioner was constructed")
	case 1:
		return found[0], nil
	default:
		names := make([]string, len(found))
		for i, e := range found {
			names[i] = e.Name()
		}
		return nil, fmt.Errorf("more than one executioner was constructed: %v", names)
	}
}
