package syntax

import (
	"testing"

	"github.com/specialistvlad/simforge/internal/blockpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPath(t *testing.T, raw string) blockpath.Path {
	t.Helper()
	p, err := blockpath.Parse(raw)
	require.NoError(t, err)
	return p
}

func actions(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Action)
	}
	return out
}

func TestSyntax_Resolve(t *testing.T) {
	s := New()
	require.NoError(t, s.Associate("Mesh", "SetupMeshAction", AsObject()))
	require.NoError(t, s.Associate("Kernels/*", "AddKernelAction", AsObject()))
	require.NoError(t, s.Associate("Variables/*", "AddVariableAction", WithDefaultType("MooseVariable")))
	require.NoError(t, s.Associate("Kernels/*", "CheckKernelAction"))

	t.Run("exact path", func(t *testing.T) {
		got := s.Resolve(mustPath(t, "Mesh"))
		require.Len(t, got, 1)
		assert.Equal(t, "SetupMeshAction", got[0].Action)
		assert.True(t, got[0].IsObject)
	})

	t.Run("wildcard keeps registration order", func(t *testing.T) {
		got := s.Resolve(mustPath(t, "Kernels/diff"))
		assert.Equal(t, []string{"AddKernelAction", "CheckKernelAction"}, actions(got))
	})

	t.Run("default type implies object", func(t *testing.T) {
		got := s.Resolve(mustPath(t, "Variables/u"))
		require.Len(t, got, 1)
		assert.True(t, got[0].IsObject)
		assert.Equal(t, "MooseVariable", got[0].DefaultType)
	})

	t.Run("unmatched path", func(t *testing.T) {
		assert.Empty(t, s.Resolve(mustPath(t, "Kernels")))
		assert.Empty(t, s.Resolve(mustPath(t, "Postprocessors/p")))
		assert.Empty(t, s.Resolve(nil))
	})
}

func TestSyntax_AssociateErrors(t *testing.T) {
	s := New()
	require.NoError(t, s.Associate("Mesh", "SetupMeshAction"))

	assert.ErrorContains(t, s.Associate("Mesh", "SetupMeshAction"), "already associated")
	assert.Error(t, s.Associate("", "X"))
	assert.Error(t, s.Associate("Mesh//x", "X"))
	assert.Error(t, s.Associate("Mesh", ""))
	assert.Equal(t, 1, s.Len())
}

func TestSyntax_Entries(t *testing.T) {
	s := New()
	require.NoError(t, s.Associate("Variables/*", "AddVariableAction"))
	require.NoError(t, s.Associate("Mesh", "SetupMeshAction"))
	require.NoError(t, s.Associate("Executioner", "SetupExecutionerAction"))
	require.NoError(t, s.Associate("Mesh", "CheckMeshAction"))

	assert.Equal(t,
		[]string{"AddVariableAction", "SetupMeshAction", "SetupExecutionerAction", "CheckMeshAction"},
		actions(s.Entries(RegistrationOrder)))

	assert.Equal(t,
		[]string{"SetupExecutionerAction", "SetupMeshAction", "CheckMeshAction", "AddVariableAction"},
		actions(s.Entries(Alphabetical)))
}

func TestParseSortOrder(t *testing.T) {
	o, err := ParseSortOrder("alphabetical")
	require.NoError(t, err)
	assert.Equal(t, Alphabetical, o)

	o, err = ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, RegistrationOrder, o)

	_, err = ParseSortOrder("random")
	assert.Error(t, err)
}
