package registry

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/simforge/internal/action"
	"github.com/specialistvlad/simforge/internal/factory"
	"github.com/specialistvlad/simforge/internal/objects"
	"github.com/specialistvlad/simforge/internal/syntax"
)

// Module is the interface that all plugin modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// ObjectEntry is what a module registers for an object type.
type ObjectEntry = factory.Entry[objects.Object, objects.Context]

// ActionEntry is what a module registers for an action.
type ActionEntry = factory.Entry[action.Action, action.Spec]

// Registry holds every registered type, action, association and stage for a
// single application instance.
type Registry struct {
	Objects *factory.Registry[objects.Object, objects.Context]
	Actions *factory.Registry[action.Action, action.Spec]
	Syntax  *syntax.Syntax
	Stages  *action.StageList
}

// New creates and initializes a new Registry with the default stages.
func New() *Registry {
	return &Registry{
		Objects: factory.New[objects.Object, objects.Context]("object"),
		Actions: factory.New[action.Action, action.Spec]("action"),
		Syntax:  syntax.New(),
		Stages:  action.DefaultStages(),
	}
}

// RegisterObject registers an object type. It panics on failure; Load
// recovers the panic into an error.
func (r *Registry) RegisterObject(name string, e ObjectEntry) {
	if err := r.Objects.Register(name, e); err != nil {
		panic(err)
	}
	slog.Debug("Registering object type.", "name", name)
}

// RegisterAction registers an action. It panics on failure.
func (r *Registry) RegisterAction(name string, e ActionEntry) {
	if err := r.Actions.Register(name, e); err != nil {
		panic(err)
	}
	slog.Debug("Registering action.", "name", name)
}

// RegisterSyntax associates a block path pattern with an action. It panics
// on failure.
func (r *Registry) RegisterSyntax(pattern, actionName string, opts ...syntax.Option) {
	if err := r.Syntax.Associate(pattern, actionName, opts...); err != nil {
		panic(err)
	}
	slog.Debug("Registering syntax.", "pattern", pattern, "action", actionName)
}

// RegisterStageBefore inserts a stage before an existing one. Registering a
// stage that already exists is a no-op, so several modules may share one.
func (r *Registry) RegisterStageBefore(before, name string) {
	if r.Stages.Has(name) {
		return
	}
	if err := r.Stages.InsertBefore(before, name); err != nil {
		panic(err)
	}
	slog.Debug("Registering stage.", "name", name, "before", before)
}

// Load registers every module in order. A panic during registration is
// returned as an error naming the module; errors raised by the registry keep
// their type.
func Load(r *Registry, modules ...Module) (err error) {
	for _, m := range modules {
		if err := load(r, m); err != nil {
			return err
		}
	}
	return nil
}

func load(r *Registry, m Module) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if e, ok := rec.(error); ok {
			err = fmt.Errorf("registering module %T: %w", m, e)
			return
		}
		err = fmt.Errorf("registering module %T: %v", m, rec)
	}()
	m.Register(r)
	return nil
}
