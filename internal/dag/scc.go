package dag

import "sort"

// cycles finds the strongly connected components with more than one node
// among the nodes not in skip. Members of each component and the
// components themselves are ordered by insertion order.
func (g *Graph) cycles(skip map[string]bool) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range sortedIDs(g.nodes[v].dependents) {
			if skip[w] {
				continue
			}
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		// v is the root of a component: pop it off the stack.
		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, id := range g.order {
		if skip[id] {
			continue
		}
		if _, visited := indices[id]; !visited {
			strongConnect(id)
		}
	}

	var out [][]string
	for _, scc := range sccs {
		// Self-edges are rejected by AddEdge, so single nodes are never cycles.
		if len(scc) < 2 {
			continue
		}
		sort.Slice(scc, func(i, j int) bool { return g.nodes[scc[i]].index < g.nodes[scc[j]].index })
		out = append(out, scc)
	}
	sort.Slice(out, func(i, j int) bool { return g.nodes[out[i][0]].index < g.nodes[out[j][0]].index })
	return out
}
