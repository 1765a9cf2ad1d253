package blockpath

import (
	"fmt"
	"regexp"
	"strings"
)

// Wildcard is the pattern segment matching any single block name.
const Wildcard = "*"

// segmentRegex matches a single block name.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// Path is the address of a block: the names of every block from the root
// down to it. The root block has an empty path.
type Path []string

// isValidSegmentName checks for undesirable but technically valid names.
func isValidSegmentName(name string) bool {
	if name == "." || name == ".." || name == "-" {
		return false
	}
	return true
}

func validateSegment(segment string) error {
	if segment == "" {
		return fmt.Errorf("path contains empty segment")
	}
	if !segmentRegex.MatchString(segment) {
		return fmt.Errorf("invalid path segment format: %q", segment)
	}
	if !isValidSegmentName(segment) {
		return fmt.Errorf("invalid segment name: %q", segment)
	}
	return nil
}

// Parse creates a Path from its canonical string form.
func Parse(raw string) (Path, error) {
	if raw == "" {
		return nil, fmt.Errorf("block path cannot be empty")
	}

	var p Path
	for _, segment := range strings.Split(raw, "/") {
		if err := validateSegment(segment); err != nil {
			return nil, err
		}
		p = append(p, segment)
	}
	return p, nil
}

// ParsePattern is like Parse but also accepts wildcard segments.
func ParsePattern(raw string) (Path, error) {
	if raw == "" {
		return nil, fmt.Errorf("block path pattern cannot be empty")
	}

	var p Path
	for _, segment := range strings.Split(raw, "/") {
		if segment != Wildcard {
			if err := validateSegment(segment); err != nil {
				return nil, err
			}
		}
		p = append(p, segment)
	}
	return p, nil
}

// String serializes the path into its canonical slash-separated form.
func (p Path) String() string {
	return strings.Join(p, "/")
}

// Child returns a new path one level below p. The receiver is not modified.
func (p Path) Child(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

// Last returns the name of the addressed block, or "" for the root.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// IsRoot reports whether p addresses the root block.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Equal reports whether both paths name the same block.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Matches reports whether p is matched by pattern. Segments are compared
// exactly except for wildcard segments in the pattern.
func (p Path) Matches(pattern Path) bool {
	if len(p) != len(pattern) {
		return false
	}
	for i := range pattern {
		if pattern[i] != Wildcard && pattern[i] != p[i] {
			return false
		}
	}
	return true
}
