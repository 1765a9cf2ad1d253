package app

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/specialistvlad/simforge/internal/params"
	"github.com/specialistvlad/simforge/internal/syntax"
)

// DumpSyntax writes every syntax association followed by every object type
// and its parameters, in the configured sort order.
func (a *App) DumpSyntax(w io.Writer) error {
	order := a.config.SortOrder()
	var b strings.Builder

	b.WriteString("# Syntax\n")
	for _, e := range a.registry.Syntax.Entries(order) {
		fmt.Fprintf(&b, "[%s]\n", e.Pattern.String())
		fmt.Fprintf(&b, "  action = %s\n", e.Action)
		if e.IsObject {
			fmt.Fprintf(&b, "  object = true\n")
		}
		if e.DefaultType != "" {
			fmt.Fprintf(&b, "  default_type = %s\n", e.DefaultType)
		}
	}

	b.WriteString("\n# Object types\n")
	names := a.registry.Objects.Names()
	if order == syntax.Alphabetical {
		slices.Sort(names)
	}
	for _, name := range names {
		schema, err := a.registry.Objects.Schema(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "[%s]\n", name)
		for _, d := range schema.Definitions() {
			b.WriteString("  " + describe(d) + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func describe(d params.Definition) string {
	s := fmt.Sprintf("%s (%s)", d.Name, d.Type.FriendlyName())
	switch {
	case d.Required:
		s += " required"
	case d.HasDefault():
		s += " = " + params.FormatValue(*d.Default)
	default:
		s += " optional"
	}
	if d.Doc != "" {
		s += ": " + d.Doc
	}
	return s
}
