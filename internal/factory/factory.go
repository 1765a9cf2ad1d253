package factory

import (
	"fmt"
	"sync"

	"github.com/specialistvlad/simforge/internal/params"
)

// SchemaFunc returns the parameter schema of a type. It must not depend on
// any instance state and must return an equivalent schema on every call.
type SchemaFunc func() *params.Schema

// Constructor builds a new instance from the shared context and the
// parameters bound against the type's schema.
type Constructor[T, C any] func(c C, p *params.Set) (T, error)

// Entry is everything registered for one type name.
type Entry[T, C any] struct {
	Schema SchemaFunc
	New    Constructor[T, C]
	// Params optionally holds a zero value of the struct New decodes its
	// parameters into. It is checked against Schema at startup.
	Params any
}

type registered[T, C any] struct {
	name  string
	entry Entry[T, C]

	once   sync.Once
	schema *params.Schema
	err    error
}

// Registry holds the entries for one family of types. Entries are written
// once during startup and only read afterwards.
type Registry[T, C any] struct {
	kind    string
	entries map[string]*registered[T, C]
	order   []string
}

// New creates an empty registry. kind names the family in error messages,
// e.g. "object" or "action".
func New[T, C any](kind string) *Registry[T, C] {
	return &Registry[T, C]{
		kind:    kind,
		entries: make(map[string]*registered[T, C]),
	}
}

// Kind returns the family name given to New.
func (r *Registry[T, C]) Kind() string {
	return r.kind
}

// Register adds a type under name.
func (r *Registry[T, C]) Register(name string, e Entry[T, C]) error {
	if name == "" {
		return fmt.Errorf("%s type name cannot be empty", r.kind)
	}
	if e.Schema == nil || e.New == nil {
		return fmt.Errorf("%s type %q: schema function and constructor are required", r.kind, name)
	}
	if _, exists := r.entries[name]; exists {
		return &DuplicateRegistrationError{Kind: r.kind, Name: name}
	}
	r.entries[name] = &registered[T, C]{name: name, entry: e}
	r.order = append(r.order, name)
	return nil
}

// Has reports whether name is registered.
func (r *Registry[T, C]) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns the registered names in registration order.
func (r *Registry[T, C]) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Entry returns what was registered under name.
func (r *Registry[T, C]) Entry(name string) (Entry[T, C], error) {
	reg, ok := r.entries[name]
	if !ok {
		return Entry[T, C]{}, &UnknownTypeError{Kind: r.kind, Name: name}
	}
	return reg.entry, nil
}

// Schema returns the schema of name. The schema function runs once per
// type; later calls return the cached result.
func (r *Registry[T, C]) Schema(name string) (*params.Schema, error) {
	reg, ok := r.entries[name]
	if !ok {
		return nil, &UnknownTypeError{Kind: r.kind, Name: name}
	}
	reg.once.Do(func() {
		reg.schema, reg.err = callSchema(r.kind, name, reg.entry.Schema)
	})
	return reg.schema, reg.err
}

// callSchema turns a panic in a schema function (e.g. an invalid default)
// into an error.
func callSchema(kind, name string, fn SchemaFunc) (s *params.Schema, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%s type %q: schema function panicked: %v", kind, name, rec)
		}
	}()
	s = fn()
	if s == nil {
		return nil, fmt.Errorf("%s type %q: schema function returned nil", kind, name)
	}
	return s, nil
}

// Build constructs a new instance of name.
func (r *Registry[T, C]) Build(name string, c C, p *params.Set) (T, error) {
	var zero T
	reg, ok := r.entries[name]
	if !ok {
		return zero, &UnknownTypeError{Kind: r.kind, Name: name}
	}
	return reg.entry.New(c, p)
}
