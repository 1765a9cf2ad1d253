package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/simforge/internal/ctxlog"
	"github.com/specialistvlad/simforge/internal/params"
	"github.com/specialistvlad/simforge/internal/syntax"
)

// Validate performs a strict parity check across the registry: syntax
// associations against actions, default types against objects, and every
// schema against its Go parameter struct.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, e := range r.Syntax.Entries(syntax.RegistrationOrder) {
		if !r.Actions.Has(e.Action) {
			errs = append(errs, fmt.Sprintf("syntax %q: action %q is not registered", e.Pattern.String(), e.Action))
		}
		if e.DefaultType != "" && !r.Objects.Has(e.DefaultType) {
			errs = append(errs, fmt.Sprintf("syntax %q: default object type %q is not registered", e.Pattern.String(), e.DefaultType))
		}
	}

	for _, name := range r.Actions.Names() {
		entry, _ := r.Actions.Entry(name)
		errs = append(errs, checkEntry("action", name, entry.Params, r.Actions.Schema)...)
	}
	for _, name := range r.Objects.Names() {
		entry, _ := r.Objects.Entry(name)
		schema, err := r.Objects.Schema(name)
		if err == nil && schema.Has(params.TypeParam) {
			errs = append(errs, fmt.Sprintf("object %q: parameter %q is reserved for type selection", name, params.TypeParam))
		}
		errs = append(errs, checkEntry("object", name, entry.Params, r.Objects.Schema)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validated.",
		"objects", len(r.Objects.Names()),
		"actions", len(r.Actions.Names()),
		"syntax", r.Syntax.Len(),
		"stages", r.Stages.Names(),
	)
	return nil
}

func checkEntry(kind, name string, prototype any, schemaOf func(string) (*params.Schema, error)) []string {
	schema, err := schemaOf(name)
	if err != nil {
		return []string{err.Error()}
	}
	if prototype == nil {
		return nil
	}
	var errs []string
	for _, msg := range params.CheckPrototype(schema, prototype) {
		errs = append(errs, fmt.Sprintf("%s %q: %s", kind, name, msg))
	}
	return errs
}
