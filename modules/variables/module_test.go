package variables_test

import (
	"testing"

	"github.com/specialistvlad/simforge/internal/testutil"
	"github.com/specialistvlad/simforge/modules/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMooseVariable_DOFs(t *testing.T) {
	result := testutil.RunSimulation(t, map[string]string{"input.hcl": `
Mesh {
  dim = 2
  nx  = 4
  ny  = 3
}
Variables {
  u {}
  c {
    order = "CONSTANT"
    family = "MONOMIAL"
    initial_condition = 300
  }
}
Executioner {
  type = "Steady"
}
`}, "input.hcl")
	require.NoError(t, result.Err)

	g, err := result.App.Graph()
	require.NoError(t, err)

	u, err := variables.Find(g, "u")
	require.NoError(t, err)
	assert.Equal(t, "FIRST", u.Order())
	assert.Equal(t, "LAGRANGE", u.Family())
	assert.Equal(t, 20, u.DOFs())

	c, err := variables.Find(g, "c")
	require.NoError(t, err)
	assert.Equal(t, 12, c.DOFs())
	assert.Equal(t, 300.0, c.InitialCondition())
}

func TestMooseVariable_Errors(t *testing.T) {
	t.Run("unsupported order", func(t *testing.T) {
		result := testutil.RunSimulation(t, map[string]string{"input.hcl": `
Mesh {
  dim = 1
}
Variables "u" {
  order = "THIRD"
}
`}, "input.hcl")
		assert.ErrorContains(t, result.Err, `unsupported order "THIRD"`)
	})

	t.Run("no mesh", func(t *testing.T) {
		result := testutil.RunSimulation(t, map[string]string{"input.hcl": `
Variables "u" {}
`}, "input.hcl")
		assert.ErrorContains(t, result.Err, "no mesh has been set up")
		assert.ErrorContains(t, result.Err, `block "Variables/u"`)
	})
}
