package dag

import (
	"fmt"
	"strings"
)

// CycleError reports the members of every cycle found in a graph.
type CycleError struct {
	Cycles [][]string
}

// Members returns every node on any cycle.
func (e *CycleError) Members() []string {
	var out []string
	for _, c := range e.Cycles {
		out = append(out, c...)
	}
	return out
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Cycles))
	for i, c := range e.Cycles {
		parts[i] = "[" + strings.Join(c, ", ") + "]"
	}
	return fmt.Sprintf("cycle detected among nodes %s", strings.Join(parts, ", "))
}
