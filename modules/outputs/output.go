// Package outputs provides the objects that report executioner progress.
package outputs

import (
	"context"
	"slices"

	"github.com/specialistvlad/simforge/internal/objects"
	"github.com/zclconf/go-cty/cty"
)

// Event kinds, in the order an executioner emits them.
const (
	Initial  = "initial"
	Timestep = "timestep"
	Final    = "final"
)

var allKinds = []string{Initial, Timestep, Final}

// Event is one progress notification from an executioner.
type Event struct {
	Kind        string
	Step        int
	Time        float64
	Executioner string
}

// Output receives progress events.
type Output interface {
	objects.Object
	Output(ctx context.Context, ev Event) error
	Close() error
}

// Notify delivers ev to every output in g that is configured for its kind.
// The first failure stops delivery.
func Notify(ctx context.Context, g *objects.Graph, ev Event) error {
	for _, o := range objects.OfType[Output](g) {
		if f, ok := o.(interface{ ExecuteOn() []string }); ok && !slices.Contains(f.ExecuteOn(), ev.Kind) {
			continue
		}
		if err := o.Output(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// CloseAll closes every output in g and returns the first error.
func CloseAll(g *objects.Graph) error {
	var first error
	for _, o := range objects.OfType[Output](g) {
		if err := o.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func executeOnDefault() cty.Value {
	vals := make([]cty.Value, len(allKinds))
	for i, k := range allKinds {
		vals[i] = cty.StringVal(k)
	}
	return cty.ListVal(vals)
}

func checkExecuteOn(kinds []string) []string {
	var bad []string
	for _, k := range kinds {
		if !slices.Contains(allKinds, k) {
			bad = append(bad, k)
		}
	}
	return bad
}
