// Package syntax associates block path patterns in the input with the
// names of the actions that handle those blocks.
package syntax

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/simforge/internal/blockpath"
)

// Entry is one association of a path pattern with an action name.
type Entry struct {
	Pattern blockpath.Path
	Action  string
	// IsObject marks actions that materialise a simulation object whose type
	// is chosen by the block's "type" parameter.
	IsObject bool
	// DefaultType is used when an object block has no "type" parameter.
	DefaultType string
}

// Option configures an Entry at association time.
type Option func(*Entry)

// AsObject marks the association as materialising a simulation object.
func AsObject() Option {
	return func(e *Entry) { e.IsObject = true }
}

// WithDefaultType marks the association as materialising an object and sets
// the type used when the block does not name one.
func WithDefaultType(typeName string) Option {
	return func(e *Entry) {
		e.IsObject = true
		e.DefaultType = typeName
	}
}

// Syntax is the registry of path associations.
type Syntax struct {
	entries []Entry
}

// New returns an empty Syntax registry.
func New() *Syntax {
	return &Syntax{}
}

// Associate registers action as a handler for blocks matching pattern.
// Several actions may share a pattern; they resolve in association order.
func (s *Syntax) Associate(pattern, action string, opts ...Option) error {
	p, err := blockpath.ParsePattern(pattern)
	if err != nil {
		return fmt.Errorf("invalid syntax pattern %q: %w", pattern, err)
	}
	if action == "" {
		return fmt.Errorf("syntax pattern %q: action name cannot be empty", pattern)
	}
	for _, existing := range s.entries {
		if existing.Action == action && existing.Pattern.Equal(p) {
			return fmt.Errorf("action %q is already associated with %q", action, pattern)
		}
	}

	e := Entry{Pattern: p, Action: action}
	for _, opt := range opts {
		opt(&e)
	}
	s.entries = append(s.entries, e)
	return nil
}

// Resolve returns every entry whose pattern matches path, in association
// order. An unmatched path returns nil.
func (s *Syntax) Resolve(path blockpath.Path) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if path.Matches(e.Pattern) {
			out = append(out, e)
		}
	}
	return out
}

// Entries returns all associations in the requested order. Alphabetical
// order sorts by pattern; associations sharing a pattern keep their
// relative registration order.
func (s *Syntax) Entries(order SortOrder) []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	if order == Alphabetical {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Pattern.String() < out[j].Pattern.String()
		})
	}
	return out
}

// Len returns the number of associations.
func (s *Syntax) Len() int {
	return len(s.entries)
}

// SortOrder selects how Entries orders associations.
type SortOrder int

const (
	RegistrationOrder SortOrder = iota
	Alphabetical
)

func (o SortOrder) String() string {
	switch o {
	case Alphabetical:
		return "alphabetical"
	default:
		return "registration"
	}
}

// ParseSortOrder parses "registration" or "alphabetical".
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(s) {
	case "", "registration":
		return RegistrationOrder, nil
	case "alphabetical", "alpha":
		return Alphabetical, nil
	default:
		return RegistrationOrder, fmt.Errorf("invalid syntax sort order %q: must be 'registration' or 'alphabetical'", s)
	}
}
