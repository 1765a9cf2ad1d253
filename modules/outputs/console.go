package outputs

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/simforge/internal/objects"
	"github.com/specialistvlad/simforge/internal/params"
	"github.com/zclconf/go-cty/cty"
)

// ConsoleInput defines the parameters of Console.
type ConsoleInput struct {
	ExecuteOn    []string `param:"execute_on"`
	PrintObjects bool     `param:"print_objects"`
}

// ConsoleSchema returns the schema of Console.
func ConsoleSchema() *params.Schema {
	return params.NewSchema().
		Default("execute_on", cty.List(cty.String), executeOnDefault(), "Event kinds to print: initial, timestep, final.").
		Default("print_objects", cty.Bool, cty.False, "List the constructed objects on the initial event.")
}

// Console prints progress lines to a writer.
type Console struct {
	objects.Base
	cfg   ConsoleInput
	out   io.Writer
	graph *objects.Graph
}

func newConsole(out io.Writer) func(c objects.Context, p *params.Set) (objects.Object, error) {
	return func(c objects.Context, p *params.Set) (objects.Object, error) {
		var cfg ConsoleInput
		if err := p.Decode(&cfg); err != nil {
			return nil, err
		}
		if bad := checkExecuteOn(cfg.ExecuteOn); len(bad) > 0 {
			return nil, fmt.Errorf("execute_on: unknown event kinds %v", bad)
		}
		return &Console{Base: objects.NewBase(c, p), cfg: cfg, out: out, graph: c.Graph}, nil
	}
}

func (o *Console) ExecuteOn() []string { return o.cfg.ExecuteOn }

// Output implements Output.
func (o *Console) Output(ctx context.Context, ev Event) error {
	var err error
	switch ev.Kind {
	case Initial:
		_, err = fmt.Fprintf(o.out, "[%s] initial: time = %g\n", ev.Executioner, ev.Time)
		if err == nil && o.cfg.PrintObjects {
			for _, obj := range o.graph.All() {
				if _, err = fmt.Fprintf(o.out, "  %s (%s)\n", obj.Name(), obj.TypeName()); err != nil {
					break
				}
			}
		}
	case Timestep:
		_, err = fmt.Fprintf(o.out, "[%s] time step %d: time = %g\n", ev.Executioner, ev.Step, ev.Time)
	case Final:
		_, err = fmt.Fprintf(o.out, "[%s] finished after %d steps: time = %g\n", ev.Executioner, ev.Step, ev.Time)
	}
	return err
}

func (o *Console) Close() error { return nil }
