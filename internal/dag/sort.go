package dag

// TopologicalSort returns every node ordered so that each node comes after
// all of its dependencies. Among nodes that are ready at the same time the
// earliest inserted goes first, which makes the result a pure function of
// the insertion order and the edges.
//
// If the graph has a cycle, a *CycleError is returned naming the members
// of every cycle among the nodes that could not be ordered.
func (g *Graph) TopologicalSort() ([]string, error) {
	pending := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		pending[id] = len(n.deps)
	}

	emitted := make(map[string]bool, len(g.nodes))
	out := make([]string, 0, len(g.order))

	for len(out) < len(g.order) {
		next := ""
		for _, id := range g.order {
			if !emitted[id] && pending[id] == 0 {
				next = id
				break
			}
		}
		if next == "" {
			return nil, &CycleError{Cycles: g.cycles(emitted)}
		}

		emitted[next] = true
		out = append(out, next)
		for depID := range g.nodes[next].dependents {
			pending[depID]--
		}
	}

	return out, nil
}
