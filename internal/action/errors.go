package action

import (
	"fmt"
	"strings"
)

// CycleError reports actions in one stage whose dependencies form a cycle.
type CycleError struct {
	Stage string
	// Cycles holds one entry per strongly connected component, each listing
	// action IDs in registration order.
	Cycles [][]string
}

// Members returns every action ID involved in a cycle.
func (e *CycleError) Members() []string {
	var out []string
	for _, c := range e.Cycles {
		out = append(out, c...)
	}
	return out
}

func (e *CycleError) Error() string {
	groups := make([]string, len(e.Cycles))
	for i, c := range e.Cycles {
		groups[i] = "[" + strings.Join(c, ", ") + "]"
	}
	return fmt.Sprintf("cyclic dependency in stage %q among actions %s", e.Stage, strings.Join(groups, ", "))
}

// ConstructionError reports the action whose execution failed.
type ConstructionError struct {
	Action string
	Block  string
	Stage  string
	Err    error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construction failed in action %q for block %q (stage %s): %v", e.Action, e.Block, e.Stage, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }
