// Package block defines the format-agnostic tree produced by the input
// front-ends and consumed by the parser.
package block

import (
	"context"
	"fmt"

	"github.com/specialistvlad/simforge/internal/blockpath"
	"github.com/zclconf/go-cty/cty"
)

// Param is a raw, unconverted assignment inside a block.
type Param struct {
	Name   string
	Value  cty.Value
	Source string
	// Overridden is set when the value replaced an earlier assignment of the
	// same name, e.g. from the command line. Previous holds the replaced
	// assignment's source.
	Overridden bool
	Previous   string
}

// Block is a node of the input tree.
type Block struct {
	Path     blockpath.Path
	Params   []Param
	Children []*Block
	Source   string
}

// Loader turns an input file into a block tree.
type Loader interface {
	Load(ctx context.Context, path string) (*Block, error)
}

// NewRoot returns an empty root block.
func NewRoot(source string) *Block {
	return &Block{Source: source}
}

// Child returns the direct child called name, or nil.
func (b *Block) Child(name string) *Block {
	for _, c := range b.Children {
		if c.Path.Last() == name {
			return c
		}
	}
	return nil
}

// AddChild appends a new child block. Sibling names must be unique.
func (b *Block) AddChild(name, source string) (*Block, error) {
	if existing := b.Child(name); existing != nil {
		return nil, fmt.Errorf("duplicate block %q at %s, first defined at %s", b.Path.Child(name), source, existing.Source)
	}
	c := &Block{Path: b.Path.Child(name), Source: source}
	b.Children = append(b.Children, c)
	return c, nil
}

// Param returns the assignment of name.
func (b *Block) Param(name string) (Param, bool) {
	for _, p := range b.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// AddParam appends a new assignment. Names must be unique within a block.
func (b *Block) AddParam(name string, v cty.Value, source string) error {
	if existing, ok := b.Param(name); ok {
		return fmt.Errorf("block %q: parameter %q redefined at %s, first defined at %s", b.Path, name, source, existing.Source)
	}
	b.Params = append(b.Params, Param{Name: name, Value: v, Source: source})
	return nil
}

// SetParam assigns name, replacing any existing assignment in place. It
// reports whether an existing value was replaced.
func (b *Block) SetParam(name string, v cty.Value, source string) bool {
	for i := range b.Params {
		if b.Params[i].Name == name {
			b.Params[i].Previous = b.Params[i].Source
			b.Params[i].Value = v
			b.Params[i].Source = source
			b.Params[i].Overridden = true
			return true
		}
	}
	b.Params = append(b.Params, Param{Name: name, Value: v, Source: source})
	return false
}

// Find returns the descendant at path, or nil. An empty path returns b.
func (b *Block) Find(path blockpath.Path) *Block {
	cur := b
	for _, name := range path {
		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Walk visits b and its descendants in pre-order. A non-nil error from fn
// stops the walk.
func (b *Block) Walk(fn func(*Block) error) error {
	if err := fn(b); err != nil {
		return err
	}
	for _, c := range b.Children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}
