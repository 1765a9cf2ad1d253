package dag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.NotNil(t, nodeA.deps)
	assert.NotNil(t, nodeA.dependents)

	g.AddNode("a") // Test idempotency
	assert.Len(t, g.nodes, 1)

	g.AddNode("b")
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("a", "b") // b depends on a
		require.NoError(t, err)

		deps, err := g.Dependencies("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, deps)

		dependents, err := g.Dependents("a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, dependents)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge("a", "a")
		assert.ErrorContains(t, err, "self-referential edge")

		_, err = g.Dependencies("dne")
		assert.ErrorContains(t, err, "node not found")
	})
}

func TestDependencies_InsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"z", "y", "x", "target"} {
		g.AddNode(id)
	}
	require.NoError(t, g.AddEdge("x", "target"))
	require.NoError(t, g.AddEdge("z", "target"))
	require.NoError(t, g.AddEdge("y", "target"))

	deps, err := g.Dependencies("target")
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "y", "x"}, deps)
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("a", "c")) // Transitive edge
		require.NoError(t, g.AddEdge("c", "d"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("three node cycle names every member", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("tail")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "a"))
		require.NoError(t, g.AddEdge("c", "tail"))

		err := g.DetectCycles()
		var cycleErr *CycleError
		require.True(t, errors.As(err, &cycleErr))
		assert.Equal(t, [][]string{{"a", "b", "c"}}, cycleErr.Cycles)
		assert.ErrorContains(t, err, "cycle detected among nodes [a, b, c]")
	})

	t.Run("cycles in disjoint components are all reported", func(t *testing.T) {
		g := New()
		for _, id := range []string{"a", "b", "x", "y", "z"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))
		require.NoError(t, g.AddEdge("x", "y"))
		require.NoError(t, g.AddEdge("y", "z"))
		require.NoError(t, g.AddEdge("z", "y"))

		var cycleErr *CycleError
		require.True(t, errors.As(g.DetectCycles(), &cycleErr))
		assert.Equal(t, [][]string{{"a", "b"}, {"y", "z"}}, cycleErr.Cycles)
		assert.Equal(t, []string{"a", "b", "y", "z"}, cycleErr.Members())
	})
}

func TestTopologicalSort(t *testing.T) {
	t.Run("independent nodes keep insertion order", func(t *testing.T) {
		g := New()
		for _, id := range []string{"c", "a", "b"} {
			g.AddNode(id)
		}
		order, err := g.TopologicalSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, order)
	})

	t.Run("dependencies come first, earliest ready node wins", func(t *testing.T) {
		g := New()
		for _, id := range []string{"surrogate", "mesh", "cov", "output"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("cov", "surrogate"))
		require.NoError(t, g.AddEdge("surrogate", "output"))

		order, err := g.TopologicalSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"mesh", "cov", "surrogate", "output"}, order)
	})

	t.Run("released node precedes later independent nodes", func(t *testing.T) {
		g := New()
		for _, id := range []string{"b", "a", "c"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("a", "b"))

		order, err := g.TopologicalSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, order)
	})

	t.Run("repeated sorts are identical", func(t *testing.T) {
		build := func() *Graph {
			g := New()
			for _, id := range []string{"n1", "n2", "n3", "n4", "n5"} {
				g.AddNode(id)
			}
			require.NoError(t, g.AddEdge("n4", "n1"))
			require.NoError(t, g.AddEdge("n5", "n2"))
			require.NoError(t, g.AddEdge("n1", "n3"))
			return g
		}
		first, err := build().TopologicalSort()
		require.NoError(t, err)
		for i := 0; i < 20; i++ {
			again, err := build().TopologicalSort()
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
		assert.Equal(t, []string{"n4", "n1", "n3", "n5", "n2"}, first)
	})

	t.Run("cycle is reported without the nodes that could be ordered", func(t *testing.T) {
		g := New()
		for _, id := range []string{"root", "a", "b", "c", "after"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("root", "a"))
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "a"))
		require.NoError(t, g.AddEdge("c", "after"))

		_, err := g.TopologicalSort()
		var cycleErr *CycleError
		require.True(t, errors.As(err, &cycleErr))
		assert.Equal(t, []string{"a", "b", "c"}, cycleErr.Members())
	})
}
