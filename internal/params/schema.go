package params

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Definition declares a single accepted parameter.
type Definition struct {
	Name     string
	Type     cty.Type
	Default  *cty.Value
	Required bool
	Doc      string
}

// HasDefault reports whether the parameter is populated when absent from input.
func (d Definition) HasDefault() bool {
	return d.Default != nil
}

// Schema is the ordered set of parameters a type accepts. Schemas are built
// once by a type's schema function and never modified afterwards.
type Schema struct {
	defs  []*Definition
	index map[string]int
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{index: make(map[string]int)}
}

// Required declares a parameter that must be supplied by the input.
func (s *Schema) Required(name string, ty cty.Type, doc string) *Schema {
	return s.add(Definition{Name: name, Type: ty, Required: true, Doc: doc})
}

// Optional declares a parameter with no default. It stays unset unless the
// input provides it.
func (s *Schema) Optional(name string, ty cty.Type, doc string) *Schema {
	return s.add(Definition{Name: name, Type: ty, Doc: doc})
}

// Default declares an optional parameter populated with value when absent.
// It panics if value cannot be converted to ty, since that is a mistake in
// the schema function rather than in user input.
func (s *Schema) Default(name string, ty cty.Type, value cty.Value, doc string) *Schema {
	v, err := convert.Convert(value, ty)
	if err != nil {
		panic(fmt.Sprintf("params: invalid default value type for %q: %v", name, err))
	}
	return s.add(Definition{Name: name, Type: ty, Default: &v, Doc: doc})
}

func (s *Schema) add(d Definition) *Schema {
	if d.Name == "" {
		panic("params: parameter name cannot be empty")
	}
	if _, exists := s.index[d.Name]; exists {
		panic(fmt.Sprintf("params: duplicate parameter definition %q", d.Name))
	}
	s.index[d.Name] = len(s.defs)
	s.defs = append(s.defs, &d)
	return s
}

// Lookup returns the definition for name.
func (s *Schema) Lookup(name string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return Definition{}, false
	}
	return *s.defs[i], true
}

// Has reports whether the schema declares name.
func (s *Schema) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Definitions returns a copy of all definitions in declaration order.
func (s *Schema) Definitions() []Definition {
	if s == nil {
		return nil
	}
	out := make([]Definition, len(s.defs))
	for i, d := range s.defs {
		out[i] = *d
	}
	return out
}

// Names returns the declared parameter names in declaration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.defs))
	for i, d := range s.defs {
		out[i] = d.Name
	}
	return out
}

// Len returns the number of declared parameters.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.defs)
}

// Merge returns a new schema holding the definitions of s followed by the
// definitions of other that s does not already declare.
func (s *Schema) Merge(other *Schema) *Schema {
	out := NewSchema()
	for _, d := range s.Definitions() {
		out.add(d)
	}
	for _, d := range other.Definitions() {
		if !out.Has(d.Name) {
			out.add(d)
		}
	}
	return out
}
