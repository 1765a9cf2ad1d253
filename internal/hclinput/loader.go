package hclinput

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/simforge/internal/block"
	"github.com/specialistvlad/simforge/internal/ctxlog"
)

// Loader implements block.Loader for HCL files.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes the HCL file at path.
func (l *Loader) Load(ctx context.Context, path string) (*block.Block, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return l.Parse(ctx, src, path)
}

// Parse decodes HCL source. filename is only used in source locations.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (*block.Block, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing HCL input.", "file", filename)

	// A fresh parser per call: hclparse caches files by name.
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("failed to parse %s: unexpected body type %T", filename, file.Body)
	}

	d := &decoder{implicit: make(map[*block.Block]bool)}
	root := block.NewRoot(filename)
	if diags := d.decodeBody(root, body); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, diags)
	}

	logger.Debug("HCL input decoded.", "file", filename, "top_level_blocks", len(root.Children))
	return root, nil
}

type decoder struct {
	// implicit records blocks created for a label path rather than written
	// out, so a later explicit block of the same name merges into them.
	implicit map[*block.Block]bool
}

func source(rng hcl.Range) string {
	return fmt.Sprintf("%s:%d", rng.Filename, rng.Start.Line)
}

func (d *decoder) decodeBody(target *block.Block, body *hclsyntax.Body) hcl.Diagnostics {
	var diags hcl.Diagnostics

	// Attributes come from a map; restore source order.
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	for _, attr := range attrs {
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		if err := target.AddParam(attr.Name, val, source(attr.SrcRange)); err != nil {
			rng := attr.NameRange
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate parameter",
				Detail:   err.Error(),
				Subject:  &rng,
			})
		}
	}

	for _, blk := range body.Blocks {
		child, blkDiags := d.openBlock(target, blk)
		diags = append(diags, blkDiags...)
		if child == nil {
			continue
		}
		diags = append(diags, d.decodeBody(child, blk.Body)...)
	}

	return diags
}

// openBlock returns the tree node an HCL block decodes into, creating the
// intermediate nodes its labels imply.
func (d *decoder) openBlock(parent *block.Block, blk *hclsyntax.Block) (*block.Block, hcl.Diagnostics) {
	names := append([]string{blk.Type}, blk.Labels...)
	src := source(blk.TypeRange)

	cur := parent
	for i, name := range names {
		last := i == len(names)-1
		existing := cur.Child(name)

		switch {
		case existing == nil:
			child, err := cur.AddChild(name, src)
			if err != nil {
				return nil, duplicateBlock(blk, err)
			}
			if !last {
				d.implicit[child] = true
			}
			cur = child
		case !last:
			cur = existing
		case d.implicit[existing]:
			delete(d.implicit, existing)
			existing.Source = src
			cur = existing
		default:
			_, err := cur.AddChild(name, src)
			return nil, duplicateBlock(blk, err)
		}
	}
	return cur, nil
}

func duplicateBlock(blk *hclsyntax.Block, err error) hcl.Diagnostics {
	rng := blk.TypeRange
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Duplicate block",
		Detail:   err.Error(),
		Subject:  &rng,
	}}
}
