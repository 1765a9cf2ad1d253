// Package variables provides the solution variable object and the action
// that adds it.
package variables

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/simforge/internal/action"
	"github.com/specialistvlad/simforge/internal/objects"
	"github.com/specialistvlad/simforge/internal/params"
	"github.com/specialistvlad/simforge/internal/registry"
	"github.com/specialistvlad/simforge/internal/syntax"
	"github.com/specialistvlad/simforge/modules/mesh"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Variable is the capability kernels need from a variable.
type Variable interface {
	objects.Object
	Order() string
	Family() string
	InitialCondition() float64
	DOFs() int
}

// Input defines the parameters of a MooseVariable.
type Input struct {
	Order            string  `param:"order"`
	Family           string  `param:"family"`
	InitialCondition float64 `param:"initial_condition"`
}

var (
	orders   = []string{"CONSTANT", "FIRST", "SECOND"}
	families = []string{"LAGRANGE", "MONOMIAL"}
)

// Schema returns the schema of MooseVariable.
func Schema() *params.Schema {
	return params.NewSchema().
		Default("order", cty.String, cty.StringVal("FIRST"), "Order of the shape functions: CONSTANT, FIRST or SECOND.").
		Default("family", cty.String, cty.StringVal("LAGRANGE"), "Shape function family: LAGRANGE or MONOMIAL.").
		Default("initial_condition", cty.Number, cty.NumberIntVal(0), "Constant initial value.")
}

// MooseVariable is a field defined on the mesh.
type MooseVariable struct {
	objects.Base
	cfg  Input
	dofs int
}

// New builds a variable on the mesh already in the graph.
func New(c objects.Context, p *params.Set) (objects.Object, error) {
	var cfg Input
	if err := p.Decode(&cfg); err != nil {
		return nil, err
	}
	if !slices.Contains(orders, cfg.Order) {
		return nil, fmt.Errorf("unsupported order %q (must be one of %v)", cfg.Order, orders)
	}
	if !slices.Contains(families, cfg.Family) {
		return nil, fmt.Errorf("unsupported family %q (must be one of %v)", cfg.Family, families)
	}
	m, err := mesh.Find(c.Graph)
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", c.Name, err)
	}

	v := &MooseVariable{Base: objects.NewBase(c, p), cfg: cfg}
	switch {
	case cfg.Order == "CONSTANT" || cfg.Family == "MONOMIAL":
		v.dofs = m.ElementCount()
	default:
		v.dofs = m.NodeCount()
	}
	return v, nil
}

func (v *MooseVariable) Order() string             { return v.cfg.Order }
func (v *MooseVariable) Family() string            { return v.cfg.Family }
func (v *MooseVariable) InitialCondition() float64 { return v.cfg.InitialCondition }

// DOFs returns the number of degrees of freedom the variable has on the
// mesh.
func (v *MooseVariable) DOFs() int { return v.dofs }

// Find returns the variable called name.
func Find(g *objects.Graph, name string) (Variable, error) {
	return objects.Lookup[Variable](g, name)
}

// Register registers the variable type, action and syntax.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterObject("MooseVariable", registry.ObjectEntry{
		Schema: Schema,
		New:    New,
		Params: Input{},
	})
	r.RegisterAction("AddVariableAction", registry.ActionEntry{
		Schema: params.NewSchema,
		New:    action.ObjectActionConstructor(action.StageAddVariable),
	})
	r.RegisterSyntax("Variables/*", "AddVariableAction", syntax.WithDefaultType("MooseVariable"))
}
