package params

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Entry is one bound parameter.
type Entry struct {
	Name  string
	Type  cty.Type
	Value cty.Value
	// IsSet is false only for optional parameters without a default that the
	// input did not provide. Value is then a typed null.
	IsSet      bool
	WasDefault bool
	// WasOverridden is true when more than one source assigned the value.
	WasOverridden bool
	Source        string
}

// Set is the result of binding a block against a Schema.
type Set struct {
	entries []*Entry
	index   map[string]int
}

func newSet(schema *Schema) *Set {
	s := &Set{index: make(map[string]int)}
	for _, d := range schema.Definitions() {
		e := &Entry{Name: d.Name, Type: d.Type, Value: cty.NullVal(d.Type)}
		if d.Default != nil {
			e.Value = *d.Default
			e.IsSet = true
			e.WasDefault = true
		}
		s.index[d.Name] = len(s.entries)
		s.entries = append(s.entries, e)
	}
	return s
}

func (s *Set) entry(name string) *Entry {
	if s == nil {
		return nil
	}
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	return s.entries[i]
}

// Entry returns a copy of the bound entry for name.
func (s *Set) Entry(name string) (Entry, bool) {
	e := s.entry(name)
	if e == nil {
		return Entry{}, false
	}
	return *e, true
}

// Entries returns copies of all entries in schema order.
func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = *e
	}
	return out
}

// Names returns the bound parameter names in schema order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Name
	}
	return out
}

// Get returns the value of name if it is set.
func (s *Set) Get(name string) (cty.Value, bool) {
	e := s.entry(name)
	if e == nil || !e.IsSet {
		return cty.NilVal, false
	}
	return e.Value, true
}

// IsSet reports whether name holds a value.
func (s *Set) IsSet(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Overridden lists the parameters that were assigned more than once.
func (s *Set) Overridden() []string {
	var out []string
	for _, e := range s.Entries() {
		if e.WasOverridden {
			out = append(out, e.Name)
		}
	}
	return out
}

// Len returns the number of entries.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// String returns a string parameter, or "" when unset.
func (s *Set) String(name string) string {
	var out string
	s.mustGet(name, &out)
	return out
}

// Bool returns a bool parameter, or false when unset.
func (s *Set) Bool(name string) bool {
	var out bool
	s.mustGet(name, &out)
	return out
}

// Float returns a number parameter, or 0 when unset.
func (s *Set) Float(name string) float64 {
	var out float64
	s.mustGet(name, &out)
	return out
}

// Strings returns a list-of-string parameter, or nil when unset.
func (s *Set) Strings(name string) []string {
	var out []string
	s.mustGet(name, &out)
	return out
}

// Floats returns a list-of-number parameter, or nil when unset.
func (s *Set) Floats(name string) []float64 {
	var out []float64
	s.mustGet(name, &out)
	return out
}

// mustGet panics when name is not declared or when target does not match
// the declared type. Both are mistakes in plugin code.
func (s *Set) mustGet(name string, target any) {
	e := s.entry(name)
	if e == nil {
		panic(fmt.Sprintf("params: parameter %q is not declared", name))
	}
	if !e.IsSet || e.Value.IsNull() {
		return
	}
	if err := gocty.FromCtyValue(e.Value, target); err != nil {
		panic(fmt.Sprintf("params: parameter %q: %v", name, err))
	}
}
