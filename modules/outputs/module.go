package outputs

import (
	"io"
	"os"

	"github.com/specialistvlad/simforge/internal/action"
	"github.com/specialistvlad/simforge/internal/params"
	"github.com/specialistvlad/simforge/internal/registry"
	"github.com/specialistvlad/simforge/internal/syntax"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Out is where Console writes. It defaults to os.Stdout.
	Out io.Writer

	dial dialFunc
}

// Register registers the output types, action and syntax.
func (m *Module) Register(r *registry.Registry) {
	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	dial := m.dial
	if dial == nil {
		dial = dialSocketIO
	}

	r.RegisterObject("Console", registry.ObjectEntry{
		Schema: ConsoleSchema,
		New:    newConsole(out),
		Params: ConsoleInput{},
	})
	r.RegisterObject("SocketIO", registry.ObjectEntry{
		Schema: SocketIOSchema,
		New:    newSocketIO(dial),
		Params: SocketIOInput{},
	})
	r.RegisterAction("AddOutputAction", registry.ActionEntry{
		Schema: params.NewSchema,
		New:    action.ObjectActionConstructor(action.StageAddOutput),
	})
	r.RegisterSyntax("Outputs/*", "AddOutputAction", syntax.WithDefaultType("Console"))
}
