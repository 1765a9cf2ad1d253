package objects

import (
	"context"

	"github.com/specialistvlad/simforge/internal/params"
)

// Object is the capability every constructed simulation object provides.
type Object interface {
	Name() string
	TypeName() string
	Parameters() *params.Set
}

// Executioner is the top-level driver that receives control once the graph
// is complete.
type Executioner interface {
	Object
	Execute(ctx context.Context) error
}

// Context is handed to every object constructor.
type Context struct {
	// Name is the object name, the last segment of its block path.
	Name string
	// Type is the registered type name the object was built from.
	Type string
	// Graph holds the objects built so far.
	Graph *Graph
}

// Base implements Object. Concrete objects embed it.
type Base struct {
	name     string
	typeName string
	params   *params.Set
}

// NewBase records the identity and parameters of an object.
func NewBase(c Context, p *params.Set) Base {
	return Base{name: c.Name, typeName: c.Type, params: p}
}

func (b Base) Name() string            { return b.name }
func (b Base) TypeName() string        { return b.typeName }
func (b Base) Parameters() *params.Set { return b.params }
