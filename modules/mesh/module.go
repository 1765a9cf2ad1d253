// Package mesh provides the generated mesh object and the action that sets
// it up.
package mesh

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
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Mesh is the capability variables and kernels need from a mesh.
type Mesh interface {
	objects.Object
	Dim() int
	ElementCount() int
	NodeCount() int
}

// Input defines the parameters of a GeneratedMesh.
type Input struct {
	Dim      int     `param:"dim"`
	NX       int     `param:"nx"`
	NY       int     `param:"ny"`
	NZ       int     `param:"nz"`
	XMin     float64 `param:"xmin"`
	XMax     float64 `param:"xmax"`
	YMin     float64 `param:"ymin"`
	YMax     float64 `param:"ymax"`
	ZMin     float64 `param:"zmin"`
	ZMax     float64 `param:"zmax"`
	ElemType string  `param:"elem_type"`
}

// GeneratedSchema returns the schema of GeneratedMesh.
func GeneratedSchema() *params.Schema {
	one := cty.NumberIntVal(1)
	zero := cty.NumberIntVal(0)
	return params.NewSchema().
		Required("dim", cty.Number, "The dimension of the mesh (1, 2 or 3).").
		Default("nx", cty.Number, one, "Number of elements in the X direction.").
		Default("ny", cty.Number, one, "Number of elements in the Y direction.").
		Default("nz", cty.Number, one, "Number of elements in the Z direction.").
		Default("xmin", cty.Number, zero, "Lower X coordinate.").
		Default("xmax", cty.Number, one, "Upper X coordinate.").
		Default("ymin", cty.Number, zero, "Lower Y coordinate.").
		Default("ymax", cty.Number, one, "Upper Y coordinate.").
		Default("zmin", cty.Number, zero, "Lower Z coordinate.").
		Default("zmax", cty.Number, one, "Upper Z coordinate.").
		Optional("elem_type", cty.String, "Element type; defaults to the first order element of the dimension.")
}

// GeneratedMesh is a structured box mesh.
type GeneratedMesh struct {
	objects.Base
	cfg Input
}

var defaultElemTypes = map[int]string{1: "EDGE2", 2: "QUAD4", 3: "HEX8"}

// MaxNodes bounds the node count so element and node counts always fit in
// an int.
const MaxNodes = math.MaxInt32

// NewGeneratedMesh validates the parameters and builds the mesh.
func NewGeneratedMesh(c objects.Context, p *params.Set) (objects.Object, error) {
	var cfg Input
	if err := p.Decode(&cfg); err != nil {
		return nil, err
	}
	if cfg.Dim < 1 || cfg.Dim > 3 {
		return nil, fmt.Errorf("dim must be 1, 2 or 3, got %d", cfg.Dim)
	}
	counts := []int{cfg.NX, cfg.NY, cfg.NZ}[:cfg.Dim]
	for i, n := range counts {
		if n < 1 {
			return nil, fmt.Errorf("n%c must be at least 1, got %d", "xyz"[i], n)
		}
	}
	nodes := 1
	for _, n := range counts {
		if n >= MaxNodes || nodes > MaxNodes/(n+1) {
			return nil, fmt.Errorf("mesh too large: %v divisions exceed %d nodes", counts, MaxNodes)
		}
		nodes *= n + 1
	}
	bounds := [][2]float64{{cfg.XMin, cfg.XMax}, {cfg.YMin, cfg.YMax}, {cfg.ZMin, cfg.ZMax}}[:cfg.Dim]
	for i, b := range bounds {
		if b[0] >= b[1] {
			return nil, fmt.Errorf("%cmin must be less than %cmax", "xyz"[i], "xyz"[i])
		}
	}
	if cfg.ElemType == "" {
		cfg.ElemType = defaultElemTypes[cfg.Dim]
	}
	return &GeneratedMesh{Base: objects.NewBase(c, p), cfg: cfg}, nil
}

func (m *GeneratedMesh) Dim() int         { return m.cfg.Dim }
func (m *GeneratedMesh) ElemType() string { return m.cfg.ElemType }

func (m *GeneratedMesh) divisions() []int {
	return []int{m.cfg.NX, m.cfg.NY, m.cfg.NZ}[:m.cfg.Dim]
}

// ElementCount returns the number of elements.
func (m *GeneratedMesh) ElementCount() int {
	n := 1
	for _, d := range m.divisions() {
		n *= d
	}
	return n
}

// NodeCount returns the number of first order nodes.
func (m *GeneratedMesh) NodeCount() int {
	n := 1
	for _, d := range m.divisions() {
		n *= d + 1
	}
	return n
}

// Find returns the mesh in g.
func Find(g *objects.Graph) (Mesh, error) {
	found := objects.OfType[Mesh](g)
	if len(found) == 0 {
		return nil, fmt.Errorf("no mesh has been set up")
	}
	return found[0], nil
}

// NewSetupMeshAction logs the mesh once it is built.
func NewSetupMeshAction(s action.Spec, p *params.Set) (action.Action, error) {
	a := action.NewObjectAction(s, p, action.StageSetupMesh)
	a.Built = func(ctx context.Context, obj objects.Object) error {
		m, ok := obj.(Mesh)
		if !ok {
			return fmt.Errorf("object %q (type %s) is not a mesh", obj.Name(), obj.TypeName())
		}
		ctxlog.FromContext(ctx).Info("Mesh set up.", "dim", m.Dim(), "elements", m.ElementCount(), "nodes", m.NodeCount())
		return nil
	}
	return a, nil
}

// Register registers the mesh types, actions and syntax.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterObject("GeneratedMesh", registry.ObjectEntry{
		Schema: GeneratedSchema,
		New:    NewGeneratedMesh,
		Params: Input{},
	})
	r.RegisterAction("SetupMeshAction", registry.ActionEntry{
		Schema: params.NewSchema,
		New:    NewSetupMeshAction,
	})
	r.RegisterSyntax("Mesh", "SetupMeshAction", syntax.WithDefaultType("GeneratedMesh"))
}
