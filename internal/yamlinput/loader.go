// Package yamlinput reads YAML input files into a block tree.
//
// A mapping value opens a nested block; scalars and sequences are
// parameters. An empty value (`u:`) is an empty block, which is how leaf
// blocks without parameters are written:
//
//	Mesh:
//	  type: GeneratedMesh
//	  dim: 2
//	Variables:
//	  u:
//
// Numbers are parsed from their source text so that a tree read from YAML
// is value-for-value identical to the same tree read from HCL.
package yamlinput

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/specialistvlad/simforge/internal/block"
	"github.com/specialistvlad/simforge/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Loader implements block.Loader for YAML files.
type Loader struct{}

// NewLoader creates a new YAML loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes the YAML file at path.
func (l *Loader) Load(ctx context.Context, path string) (*block.Block, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return l.Parse(ctx, src, path)
}

// Parse decodes YAML source. filename is only used in source locations.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (*block.Block, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing YAML input.", "file", filename)

	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	root := block.NewRoot(filename)
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return root, nil
	}

	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to decode %s: line %d: top level must be a mapping of blocks", filename, top.Line)
	}

	d := &decoder{filename: filename}
	if err := d.decodeMapping(root, top); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	logger.Debug("YAML input decoded.", "file", filename, "top_level_blocks", len(root.Children))
	return root, nil
}

type decoder struct {
	filename string
}

func (d *decoder) source(n *yaml.Node) string {
	return fmt.Sprintf("%s:%d", d.filename, n.Line)
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func (d *decoder) decodeMapping(target *block.Block, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], resolve(node.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: block and parameter names must be scalars", key.Line)
		}
		name := key.Value

		switch {
		case val.Kind == yaml.MappingNode:
			child, err := target.AddChild(name, d.source(key))
			if err != nil {
				return err
			}
			if err := d.decodeMapping(child, val); err != nil {
				return err
			}
		case val.Kind == yaml.ScalarNode && val.ShortTag() == "!!null":
			if _, err := target.AddChild(name, d.source(key)); err != nil {
				return err
			}
		default:
			v, err := d.value(val)
			if err != nil {
				return fmt.Errorf("line %d: parameter %q: %w", val.Line, name, err)
			}
			if err := target.AddParam(name, v, d.source(key)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *decoder) value(n *yaml.Node) (cty.Value, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		return scalar(n)
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := d.value(c)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, v)
		}
		return cty.TupleVal(elems), nil
	default:
		return cty.NilVal, fmt.Errorf("nested mappings are not allowed inside parameter values")
	}
}

func scalar(n *yaml.Node) (cty.Value, error) {
	switch n.ShortTag() {
	case "!!str":
		return cty.StringVal(n.Value), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return cty.NilVal, err
		}
		return cty.BoolVal(b), nil
	case "!!int", "!!float":
		if v, err := cty.ParseNumberVal(n.Value); err == nil {
			return v, nil
		}
		// Forms such as 0x1F or 1_000 that YAML accepts but the decimal
		// parser does not.
		var f float64
		if err := n.Decode(&f); err != nil {
			return cty.NilVal, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return cty.NilVal, fmt.Errorf("%q is not a finite number", n.Value)
		}
		return cty.NumberFloatVal(f), nil
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	default:
		return cty.StringVal(n.Value), nil
	}
}
