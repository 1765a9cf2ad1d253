package objects

import (
	"fmt"
	"sync"
)

// Graph is an ordered, add-only collection of objects keyed by name.
type Graph struct {
	mu      sync.RWMutex
	objects map[string]Object
	order   []string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{objects: make(map[string]Object)}
}

// Add stores obj under its name. Names are unique across the graph.
func (g *Graph) Add(obj Object) error {
	if obj == nil {
		return fmt.Errorf("cannot add a nil object")
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	name := obj.Name()
	if existing, ok := g.objects[name]; ok {
		return fmt.Errorf("object %q already exists (type %s)", name, existing.TypeName())
	}
	g.objects[name] = obj
	g.order = append(g.order, name)
	return nil
}

// Get returns the object called name.
func (g *Graph) Get(name string) (Object, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	obj, ok := g.objects[name]
	return obj, ok
}

// All returns every object in insertion order.
func (g *Graph) All() []Object {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Object, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.objects[name])
	}
	return out
}

// Names returns the object names in insertion order.
func (g *Graph) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of objects.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.order)
}

// Lookup returns the object called name as a T. It fails when the object is
// missing or does not provide T.
func Lookup[T any](g *Graph, name string) (T, error) {
	var zero T
	obj, ok := g.Get(name)
	if !ok {
		return zero, fmt.Errorf("object %q not found", name)
	}
	typed, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("object %q (type %s) does not provide %T", name, obj.TypeName(), (*T)(nil))
	}
	return typed, nil
}

// OfType returns every object that provides T, in insertion order.
func OfType[T any](g *Graph) []T {
	var out []T
	for _, obj := range g.All() {
		if typed, ok := obj.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
