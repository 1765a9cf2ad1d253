// Package kernels provides the sample kernel objects.
package kernels

import (
	"fmt"

	"github.com/specialistvlad/simforge/internal/action"
	"github.com/specialistvlad/simforge/internal/objects"
	"github.com/specialistvlad/simforge/internal/params"
	"github.com/specialistvlad/simforge/internal/registry"
	"github.com/specialistvlad/simforge/internal/syntax"
	"github.com/specialistvlad/simforge/modules/variables"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Kernel is a term of the equation of one variable.
type Kernel interface {
	objects.Object
	Variable() variables.Variable
}

func baseSchema() *params.Schema {
	return params.NewSchema().
		Required("variable", cty.String, "The variable this kernel acts on.")
}

// kernel implements Kernel for every type in this package.
type kernel struct {
	objects.Base
	variable variables.Variable
}

func newKernel(c objects.Context, p *params.Set) (kernel, error) {
	name := p.String("variable")
	v, err := variables.Find(c.Graph, name)
	if err != nil {
		return kernel{}, fmt.Errorf("kernel %q: %w", c.Name, err)
	}
	return kernel{Base: objects.NewBase(c, p), variable: v}, nil
}

func (k *kernel) Variable() variables.Variable { return k.variable }

// DiffusionInput defines the parameters of Diffusion.
type DiffusionInput struct {
	Variable    string  `param:"variable"`
	Diffusivity float64 `param:"diffusivity"`
}

// DiffusionSchema returns the schema of Diffusion.
func DiffusionSchema() *params.Schema {
	return baseSchema().
		Default("diffusivity", cty.Number, cty.NumberIntVal(1), "Diffusion coefficient.")
}

// Diffusion is the Laplacian term.
type Diffusion struct {
	kernel
	diffusivity float64
}

// NewDiffusion builds a Diffusion kernel.
func NewDiffusion(c objects.Context, p *params.Set) (objects.Object, error) {
	var in DiffusionInput
	if err := p.Decode(&in); err != nil {
		return nil, err
	}
	if in.Diffusivity <= 0 {
		return nil, fmt.Errorf("diffusivity must be positive, got %g", in.Diffusivity)
	}
	k, err := newKernel(c, p)
	if err != nil {
		return nil, err
	}
	return &Diffusion{kernel: k, diffusivity: in.Diffusivity}, nil
}

func (d *Diffusion) Diffusivity() float64 { return d.diffusivity }

// BodyForceInput defines the parameters of BodyForce.
type BodyForceInput struct {
	Variable string  `param:"variable"`
	Value    float64 `param:"value"`
}

// BodyForceSchema returns the schema of BodyForce.
func BodyForceSchema() *params.Schema {
	return baseSchema().
		Default("value", cty.Number, cty.NumberIntVal(1), "Constant source value.")
}

// BodyForce is a constant volumetric source.
type BodyForce struct {
	kernel
	value float64
}

// NewBodyForce builds a BodyForce kernel.
func NewBodyForce(c objects.Context, p *params.Set) (objects.Object, error) {
	var in BodyForceInput
	if err := p.Decode(&in); err != nil {
		return nil, err
	}
	k, err := newKernel(c, p)
	if err != nil {
		return nil, err
	}
	return &BodyForce{kernel: k, value: in.Value}, nil
}

func (b *BodyForce) Value() float64 { return b.value }

// Register registers the kernel types, action and syntax.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterObject("Diffusion", registry.ObjectEntry{
		Schema: DiffusionSchema,
		New:    NewDiffusion,
		Params: DiffusionInput{},
	})
	r.RegisterObject("BodyForce", registry.ObjectEntry{
		Schema: BodyForceSchema,
		New:    NewBodyForce,
		Params: BodyForceInput{},
	})
	r.RegisterAction("AddKernelAction", registry.ActionEntry{
		Schema: params.NewSchema,
		New:    action.ObjectActionConstructor(action.StageAddKernel),
	})
	r.RegisterSyntax("Kernels/*", "AddKernelAction", syntax.AsObject())
}
