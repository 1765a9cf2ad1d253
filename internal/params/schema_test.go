package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func meshSchema() *Schema {
	return NewSchema().
		Required("dim", cty.Number, "Mesh dimension").
		Default("nx", cty.Number, cty.NumberIntVal(1), "Elements in x").
		Default("elem_type", cty.String, cty.StringVal("QUAD4"), "Element type").
		Optional("file", cty.String, "Mesh file")
}

func TestSchema_Definitions(t *testing.T) {
	s := meshSchema()

	assert.Equal(t, []string{"dim", "nx", "elem_type", "file"}, s.Names())
	assert.Equal(t, 4, s.Len())

	dim, ok := s.Lookup("dim")
	require.True(t, ok)
	assert.True(t, dim.Required)
	assert.False(t, dim.HasDefault())

	nx, ok := s.Lookup("nx")
	require.True(t, ok)
	require.True(t, nx.HasDefault())
	assert.True(t, nx.Default.RawEquals(cty.NumberIntVal(1)))

	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestSchema_DefaultIsConverted(t *testing.T) {
	s := NewSchema().Default("n", cty.Number, cty.StringVal("4"), "")
	d, ok := s.Lookup("n")
	require.True(t, ok)
	assert.True(t, d.Default.Type().Equals(cty.Number))
}

func TestSchema_Panics(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		assert.PanicsWithValue(t, `params: duplicate parameter definition "dim"`, func() {
			NewSchema().Required("dim", cty.Number, "").Optional("dim", cty.String, "")
		})
	})

	t.Run("invalid default", func(t *testing.T) {
		assert.Panics(t, func() {
			NewSchema().Default("dim", cty.Number, cty.StringVal("two"), "")
		})
	})

	t.Run("empty name", func(t *testing.T) {
		assert.Panics(t, func() {
			NewSchema().Optional("", cty.String, "")
		})
	})
}

func TestSchema_Merge(t *testing.T) {
	a := NewSchema().Required("type", cty.String, "").Optional("x", cty.Number, "")
	b := NewSchema().Optional("x", cty.String, "ignored").Optional("y", cty.Bool, "")

	merged := a.Merge(b)
	assert.Equal(t, []string{"type", "x", "y"}, merged.Names())

	x, _ := merged.Lookup("x")
	assert.True(t, x.Type.Equals(cty.Number), "the receiver's definition wins")

	// Neither input is modified.
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, b.Len())
}

func TestSchema_NilIsEmpty(t *testing.T) {
	var s *Schema
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Names())
	assert.False(t, s.Has("x"))
}
