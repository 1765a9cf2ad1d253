package factory

import (
	"errors"
	"testing"

	"github.com/specialistvlad/simforge/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type shape interface{ Area() float64 }

type square struct{ side float64 }

func (s square) Area() float64 { return s.side * s.side }

type scale struct{ factor float64 }

func squareEntry() Entry[shape, scale] {
	return Entry[shape, scale]{
		Schema: func() *params.Schema {
			return params.NewSchema().Default("side", cty.Number, cty.NumberIntVal(1), "Side length")
		},
		New: func(c scale, p *params.Set) (shape, error) {
			return square{side: p.Float("side") * c.factor}, nil
		},
	}
}

func bind(t *testing.T, s *params.Schema, raw ...params.RawValue) *params.Set {
	t.Helper()
	set, errs := params.Bind("test", s, raw)
	require.Empty(t, errs)
	return set
}

func TestRegistry_Build(t *testing.T) {
	r := New[shape, scale]("shape")
	require.NoError(t, r.Register("Square", squareEntry()))

	s, err := r.Schema("Square")
	require.NoError(t, err)

	got, err := r.Build("Square", scale{factor: 2}, bind(t, s, params.RawValue{Name: "side", Value: cty.NumberIntVal(3)}))
	require.NoError(t, err)
	assert.Equal(t, 36.0, got.Area())
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	for _, names := range [][]string{{"Square", "Circle", "Square"}, {"Circle", "Square", "Square"}} {
		r := New[shape, scale]("shape")
		var err error
		for _, name := range names {
			if err = r.Register(name, squareEntry()); err != nil {
				break
			}
		}

		var dup *DuplicateRegistrationError
		require.True(t, errors.As(err, &dup), "order %v", names)
		assert.Equal(t, "Square", dup.Name)
		assert.Equal(t, `shape type "Square" is already registered`, err.Error())
	}
}

func TestRegistry_UnknownType(t *testing.T) {
	r := New[shape, scale]("shape")

	_, err := r.Build("Hexagon", scale{}, nil)
	var unknown *UnknownTypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Hexagon", unknown.Name)

	_, err = r.Schema("Hexagon")
	require.True(t, errors.As(err, &unknown))

	_, err = r.Entry("Hexagon")
	require.True(t, errors.As(err, &unknown))
}

func TestRegistry_SchemaIsCached(t *testing.T) {
	calls := 0
	e := squareEntry()
	inner := e.Schema
	e.Schema = func() *params.Schema {
		calls++
		return inner()
	}

	r := New[shape, scale]("shape")
	require.NoError(t, r.Register("Square", e))

	first, err := r.Schema("Square")
	require.NoError(t, err)
	second, err := r.Schema("Square")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestRegistry_SchemaPanicBecomesError(t *testing.T) {
	r := New[shape, scale]("shape")
	require.NoError(t, r.Register("Broken", Entry[shape, scale]{
		Schema: func() *params.Schema {
			return params.NewSchema().Default("side", cty.Number, cty.StringVal("wide"), "")
		},
		New: squareEntry().New,
	}))

	_, err := r.Schema("Broken")
	assert.ErrorContains(t, err, "schema function panicked")
}

func TestRegistry_InvalidRegistrations(t *testing.T) {
	r := New[shape, scale]("shape")
	assert.Error(t, r.Register("", squareEntry()))
	assert.Error(t, r.Register("NoCtor", Entry[shape, scale]{Schema: squareEntry().Schema}))
	assert.Empty(t, r.Names())
}

func TestRegistry_NamesKeepRegistrationOrder(t *testing.T) {
	r := New[shape, scale]("shape")
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		require.NoError(t, r.Register(name, squareEntry()))
	}
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, r.Names())
	assert.True(t, r.Has("Alpha"))
	assert.False(t, r.Has("alpha"))
	assert.Equal(t, "shape", r.Kind())
}
