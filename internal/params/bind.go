package params

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// TypeParam is the reserved parameter that selects the object type of a
// block.
const TypeParam = "type"

// RawValue is an unconverted assignment taken from the input.
type RawValue struct {
	Name   string
	Value  cty.Value
	Source string
	// Overridden marks a value that already replaced an earlier assignment
	// before binding, e.g. a command-line override of an input file value.
	Overridden bool
}

// Bind produces a Set for schema from raw. Values are applied in order on
// top of the schema defaults; a later value for a name already supplied by
// an earlier one marks the entry as overridden. Names the schema does not
// declare are skipped, the caller decides whether they are unused.
//
// All conversion failures and missing required parameters are returned
// together. The Set is still returned so callers can inspect partial
// results.
func Bind(block string, schema *Schema, raw []RawValue) (*Set, []error) {
	set := newSet(schema)
	var errs []error
	failed := make(map[string]bool)

	for _, r := range raw {
		def, ok := schema.Lookup(r.Name)
		if !ok {
			continue
		}
		if r.Value.IsNull() {
			continue
		}

		v, err := convert.Convert(r.Value, def.Type)
		if err != nil {
			errs = append(errs, &TypeError{Block: block, Param: r.Name, Want: def.Type, Source: r.Source, Err: err})
			failed[r.Name] = true
			continue
		}

		e := set.entry(r.Name)
		if (e.IsSet && !e.WasDefault) || r.Overridden {
			e.WasOverridden = true
		}
		e.Value = v
		e.IsSet = true
		e.WasDefault = false
		e.Source = r.Source
	}

	for _, d := range schema.Definitions() {
		if !d.Required || failed[d.Name] {
			continue
		}
		if !set.entry(d.Name).IsSet {
			errs = append(errs, &MissingRequiredError{Block: block, Param: d.Name})
		}
	}

	return set, errs
}
