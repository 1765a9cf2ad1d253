package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertExecuted checks that exactly the given actions ran, in order.
// Actions are named "ActionName@block/path".
func AssertExecuted(t *testing.T, result *HarnessResult, want ...string) {
	t.Helper()
	require.NotNil(t, result.App, "app was not created: %v", result.Err)
	assert.Equal(t, want, result.App.Warehouse().Executed())
}

// AssertObject checks that the built graph holds an object called name of
// the given type.
func AssertObject(t *testing.T, result *HarnessResult, name, typeName string) {
	t.Helper()
	require.NotNil(t, result.App, "app was not created: %v", result.Err)
	g, err := result.App.Graph()
	require.NoError(t, err)
	obj, ok := g.Get(name)
	require.True(t, ok, "object %q not found, have %v", name, g.Names())
	assert.Equal(t, typeName, obj.TypeName())
}
