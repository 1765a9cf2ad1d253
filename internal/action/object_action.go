package action

import (
	"context"

	"github.com/specialistvlad/simforge/internal/ctxlog"
	"github.com/specialistvlad/simforge/internal/objects"
	"github.com/specialistvlad/simforge/internal/params"
)

// ObjectAction materialises the object its block describes. Plugins
// register it, or embed it, for every "add an object" block.
type ObjectAction struct {
	Base
	// Built is called with the new object once it is in the graph.
	Built func(ctx context.Context, obj objects.Object) error
}

// NewObjectAction creates an ObjectAction running in stage.
func NewObjectAction(spec Spec, p *params.Set, stage string) *ObjectAction {
	return &ObjectAction{Base: NewBase(spec, p, stage)}
}

// Act builds the object and adds it to the graph.
func (a *ObjectAction) Act(ctx context.Context, env *Env) error {
	obj, err := a.BuildObject(env)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Object constructed.", "name", obj.Name(), "type", obj.TypeName(), "block", a.Block().String())
	if a.Built != nil {
		return a.Built(ctx, obj)
	}
	return nil
}

// ObjectActionConstructor returns a constructor for plain ObjectActions in
// stage.
func ObjectActionConstructor(stage string) func(Spec, *params.Set) (Action, error) {
	return func(s Spec, p *params.Set) (Action, error) {
		return NewObjectAction(s, p, stage), nil
	}
}
