package objects

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plain struct{ Base }

type driver struct{ Base }

func (d *driver) Execute(ctx context.Context) error { return nil }

func newPlain(name string) *plain {
	return &plain{Base: NewBase(Context{Name: name, Type: "Plain"}, nil)}
}

func TestGraph_AddAndGet(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.Add(newPlain("u")))
	require.NoError(t, g.Add(newPlain("v")))

	obj, ok := g.Get("u")
	require.True(t, ok)
	assert.Equal(t, "u", obj.Name())
	assert.Equal(t, "Plain", obj.TypeName())

	_, ok = g.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"u", "v"}, g.Names())
	assert.Equal(t, 2, g.Len())
}

func TestGraph_AddErrors(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.Add(newPlain("u")))

	err := g.Add(newPlain("u"))
	assert.ErrorContains(t, err, `object "u" already exists`)

	assert.Error(t, g.Add(nil))
}

func TestLookupAndOfType(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.Add(newPlain("mesh")))
	require.NoError(t, g.Add(&driver{Base: NewBase(Context{Name: "exec", Type: "Steady"}, nil)}))

	exec, err := Lookup[Executioner](g, "exec")
	require.NoError(t, err)
	assert.Equal(t, "Steady", exec.TypeName())

	_, err = Lookup[Executioner](g, "mesh")
	assert.ErrorContains(t, err, "does not provide")

	_, err = Lookup[Executioner](g, "nope")
	assert.ErrorContains(t, err, `object "nope" not found`)

	drivers := OfType[Executioner](g)
	require.Len(t, drivers, 1)
	assert.Equal(t, "exec", drivers[0].Name())
	assert.Len(t, OfType[Object](g), 2)
}

func TestGraph_ConcurrentReads(t *testing.T) {
	g := NewGraph()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		require.NoError(t, g.Add(newPlain(fmt.Sprintf("obj%d", i))))
	}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, g.All(), 10)
		}()
	}
	wg.Wait()
}
