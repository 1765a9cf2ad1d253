package app

import (
	"io"

	"github.com/specialistvlad/simforge/internal/registry"
	"github.com/specialistvlad/simforge/modules/executioners"
	"github.com/specialistvlad/simforge/modules/kernels"
	"github.com/specialistvlad/simforge/modules/mesh"
	"github.com/specialistvlad/simforge/modules/outputs"
	"github.com/specialistvlad/simforge/modules/surrogates"
	"github.com/specialistvlad/simforge/modules/variables"
)

// CoreModules is the definitive list of all modules that are compiled into
// the simforge binary. Console output goes to out.
func CoreModules(out io.Writer) []registry.Module {
	return []registry.Module{
		&mesh.Module{},
		&variables.Module{},
		&kernels.Module{},
		&surrogates.Module{},
		&outputs.Module{Out: out},
		&executioners.Module{},
	}
}
