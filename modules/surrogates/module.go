// Package surrogates provides covariance functions and the Gaussian process
// surrogate built on them.
//
// Covariance functions and surrogates are both constructed in the
// add_surrogate stage. A surrogate declares a dependency on the covariance
// object it names, so the covariance is always built first regardless of
// input order.
package surrogates

import (
	"fmt"

	"github.com/specialistvlad/simforge/internal/action"
	"github.com/specialistvlad/simforge/internal/objects"
	"github.com/specialistvlad/simforge/internal/params"
	"github.com/specialistvlad/simforge/internal/registry"
	"github.com/specialistvlad/simforge/internal/syntax"
	"github.com/zclconf/go-cty/cty"
)

// StageAddSurrogate runs before outputs are added.
const StageAddSurrogate = "add_surrogate"

// Module implements the registry.Module interface for this package.
type Module struct{}

// GaussianProcessInput defines the parameters of GaussianProcess.
type GaussianProcessInput struct {
	CovarianceFunction string `param:"covariance_function"`
	StandardizeParams  bool   `param:"standardize_params"`
	StandardizeData    bool   `param:"standardize_data"`
}

// GaussianProcessSchema returns the schema of GaussianProcess.
func GaussianProcessSchema() *params.Schema {
	return params.NewSchema().
		Required("covariance_function", cty.String, "Name of the covariance function object.").
		Default("standardize_params", cty.Bool, cty.True, "Standardize the training parameters.").
		Default("standardize_data", cty.Bool, cty.True, "Standardize the training data.")
}

// GaussianProcess is a surrogate holding a covariance function.
type GaussianProcess struct {
	objects.Base
	cfg        GaussianProcessInput
	covariance Covariance
}

// NewGaussianProcess looks up the covariance function in the graph.
func NewGaussianProcess(c objects.Context, p *params.Set) (objects.Object, error) {
	var cfg GaussianProcessInput
	if err := p.Decode(&cfg); err != nil {
		return nil, err
	}
	cov, err := objects.Lookup[Covariance](c.Graph, cfg.CovarianceFunction)
	if err != nil {
		return nil, fmt.Errorf("surrogate %q: covariance_function: %w", c.Name, err)
	}
	return &GaussianProcess{Base: objects.NewBase(c, p), cfg: cfg, covariance: cov}, nil
}

func (g *GaussianProcess) Covariance() Covariance { return g.covariance }

// Standardize reports whether parameters and data are standardized.
func (g *GaussianProcess) Standardize() (inputs, data bool) {
	return g.cfg.StandardizeParams, g.cfg.StandardizeData
}

// NewAddSurrogateAction makes the surrogate depend on the covariance object
// it names.
func NewAddSurrogateAction(s action.Spec, p *params.Set) (action.Action, error) {
	a := action.NewObjectAction(s, p, StageAddSurrogate)
	if v, ok := s.ObjectParams.Get("covariance_function"); ok && v.Type() == cty.String {
		a.DependOn(v.AsString())
	}
	return a, nil
}

// Register registers the covariance and surrogate types, their actions,
// syntax and the add_surrogate stage.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStageBefore(action.StageAddOutput, StageAddSurrogate)

	r.RegisterObject("SquaredExponentialCovariance", registry.ObjectEntry{
		Schema: SquaredExponentialSchema,
		New:    NewSquaredExponential,
		Params: SquaredExponentialInput{},
	})
	r.RegisterObject("GaussianProcess", registry.ObjectEntry{
		Schema: GaussianProcessSchema,
		New:    NewGaussianProcess,
		Params: GaussianProcessInput{},
	})

	r.RegisterAction("AddCovarianceAction", registry.ActionEntry{
		Schema: params.NewSchema,
		New:    action.ObjectActionConstructor(StageAddSurrogate),
	})
	r.RegisterAction("AddSurrogateAction", registry.ActionEntry{
		Schema: params.NewSchema,
		New:    NewAddSurrogateAction,
	})

	r.RegisterSyntax("Covariance/*", "AddCovarianceAction", syntax.AsObject())
	r.RegisterSyntax("Surrogates/*", "AddSurrogateAction", syntax.AsObject())
}
