package block

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/simforge/internal/blockpath"
	"github.com/zclconf/go-cty/cty"
)

// OverrideSource is the source recorded for command-line assignments.
const OverrideSource = "<command line>"

// Override is a `path/key=value` assignment given outside the input file.
type Override struct {
	Path blockpath.Path
	Name string
	Raw  string
}

// ParseOverride parses `Block/Sub/key=value`.
func ParseOverride(arg string) (Override, error) {
	lhs, raw, ok := strings.Cut(arg, "=")
	if !ok {
		return Override{}, fmt.Errorf("invalid override %q: expected path/key=value", arg)
	}
	idx := strings.LastIndex(lhs, "/")
	if idx <= 0 || idx == len(lhs)-1 {
		return Override{}, fmt.Errorf("invalid override %q: expected path/key=value", arg)
	}
	path, err := blockpath.Parse(lhs[:idx])
	if err != nil {
		return Override{}, fmt.Errorf("invalid override %q: %w", arg, err)
	}
	return Override{Path: path, Name: lhs[idx+1:], Raw: raw}, nil
}

// ApplyOverrides assigns every override onto the tree, creating missing
// blocks. parse turns the raw text into a value.
func ApplyOverrides(root *Block, overrides []Override, parse func(string) cty.Value) error {
	for _, o := range overrides {
		target := root
		for _, name := range o.Path {
			next := target.Child(name)
			if next == nil {
				var err error
				if next, err = target.AddChild(name, OverrideSource); err != nil {
					return err
				}
			}
			target = next
		}
		target.SetParam(o.Name, parse(o.Raw), OverrideSource)
	}
	return nil
}
