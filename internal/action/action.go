package action

import (
	"context"
	"fmt"

	"github.com/specialistvlad/simforge/internal/blockpath"
	"github.com/specialistvlad/simforge/internal/objects"
	"github.com/specialistvlad/simforge/internal/params"
)

// Spec is the shared construction context of every action constructor.
type Spec struct {
	// Name is the registered action name.
	Name  string
	Block blockpath.Path
	// Source is the file:line of the block.
	Source string
	// ObjectType and ObjectParams are set for actions that materialise an
	// object.
	ObjectType   string
	ObjectParams *params.Set
}

// ObjectFactory builds objects by registered type name.
type ObjectFactory interface {
	Build(name string, c objects.Context, p *params.Set) (objects.Object, error)
}

// Env is what an action sees while it runs.
type Env struct {
	Graph   *objects.Graph
	Objects ObjectFactory
}

// Action is one construction step bound to one block.
type Action interface {
	Name() string
	Block() blockpath.Path
	// Stage returns the stage the action runs in. Empty means the default
	// stage of the StageList.
	Stage() string
	// Dependencies lists action names or tags of same-stage actions that
	// must run first.
	Dependencies() []string
	Tags() []string
	Act(ctx context.Context, env *Env) error
}

// ID identifies an action instance in logs and errors.
func ID(a Action) string {
	return a.Name() + "@" + a.Block().String()
}

// Base implements everything in Action except Act. Concrete actions embed it.
type Base struct {
	spec   Spec
	params *params.Set
	stage  string
	deps   []string
	tags   []string
}

// NewBase binds an action to its spec and its own bound parameters. The
// block path is always a tag; object actions are also tagged with the
// object name.
func NewBase(spec Spec, p *params.Set, stage string) Base {
	b := Base{spec: spec, params: p, stage: stage}
	b.tags = append(b.tags, spec.Block.String())
	if spec.ObjectType != "" && !spec.Block.IsRoot() {
		b.tags = append(b.tags, spec.Block.Last())
	}
	return b
}

func (b *Base) Name() string           { return b.spec.Name }
func (b *Base) Block() blockpath.Path  { return b.spec.Block }
func (b *Base) Stage() string          { return b.stage }
func (b *Base) Dependencies() []string { return b.deps }
func (b *Base) Tags() []string         { return b.tags }

// Spec returns the construction spec.
func (b *Base) Spec() Spec { return b.spec }

// Params returns the action's own parameters.
func (b *Base) Params() *params.Set { return b.params }

// DependOn declares dependencies on same-stage actions by name or tag.
func (b *Base) DependOn(refs ...string) {
	for _, r := range refs {
		if r != "" {
			b.deps = append(b.deps, r)
		}
	}
}

// Tag adds tags other actions can depend on.
func (b *Base) Tag(tags ...string) {
	b.tags = append(b.tags, tags...)
}

// BuildObject constructs the object described by the spec, names it after
// the last block segment and adds it to the graph.
func (b *Base) BuildObject(env *Env) (objects.Object, error) {
	if b.spec.ObjectType == "" {
		return nil, fmt.Errorf("action %q has no object type", b.spec.Name)
	}
	if env == nil || env.Objects == nil || env.Graph == nil {
		return nil, fmt.Errorf("action %q: object factory and graph are required", b.spec.Name)
	}
	c := objects.Context{
		Name:  b.spec.Block.Last(),
		Type:  b.spec.ObjectType,
		Graph: env.Graph,
	}
	obj, err := env.Objects.Build(b.spec.ObjectType, c, b.spec.ObjectParams)
	if err != nil {
		return nil, err
	}
	if err := env.Graph.Add(obj); err != nil {
		return nil, err
	}
	return obj, nil
}
