package hclinput

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/simforge/internal/block"
	"github.com/zclconf/go-cty/cty"
)

// ParseValue interprets a command-line override value as an HCL literal,
// so `3`, `true` and `[1, 2]` keep their types. Anything that is not a
// literal, such as a bare word, is taken as a string.
func ParseValue(raw string) cty.Value {
	expr, diags := hclsyntax.ParseExpression([]byte(raw), block.OverrideSource, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return cty.StringVal(raw)
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() || !val.IsWhollyKnown() {
		return cty.StringVal(raw)
	}
	return val
}
