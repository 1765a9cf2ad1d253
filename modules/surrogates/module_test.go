package surrogates_test

import (
	"testing"

	"github.com/specialistvlad/simforge/internal/app"
	"github.com/specialistvlad/simforge/internal/objects"
	"github.com/specialistvlad/simforge/internal/testutil"
	"github.com/specialistvlad/simforge/modules/surrogates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurrogateIsBuiltAfterItsCovariance(t *testing.T) {
	result := testutil.RunSimulation(t, map[string]string{"input.hcl": `
Mesh {
  dim = 1
}
Surrogates "gp" {
  type                = "GaussianProcess"
  covariance_function = "sqexp"
  standardize_data    = false
}
Covariance "sqexp" {
  type          = "SquaredExponentialCovariance"
  length_factor = [0.5, 1.5]
}
Executioner {
  type = "Steady"
}
`}, "input.hcl")
	require.NoError(t, result.Err)

	testutil.AssertExecuted(t, result,
		"SetupMeshAction@Mesh",
		"AddCovarianceAction@Covariance/sqexp",
		"AddSurrogateAction@Surrogates/gp",
		"SetupExecutionerAction@Executioner",
	)

	g, err := result.App.Graph()
	require.NoError(t, err)
	gp, err := objects.Lookup[*surrogates.GaussianProcess](g, "gp")
	require.NoError(t, err)
	assert.Equal(t, "sqexp", gp.Covariance().Name())
	assert.Equal(t, [][]float64{{0.5, 1.5}, {1}, {0}}, gp.Covariance().HyperParameters())
	inputs, data := gp.Standardize()
	assert.True(t, inputs)
	assert.False(t, data)
}

func TestSurrogate_MissingCovariance(t *testing.T) {
	result := testutil.RunSimulation(t, map[string]string{"input.hcl": `
Surrogates "gp" {
  type                = "GaussianProcess"
  covariance_function = "nope"
}
`}, "input.hcl")
	assert.ErrorContains(t, result.Err, `covariance_function: object "nope" not found`)
}

func TestStageIsInsertedBeforeOutputs(t *testing.T) {
	result := testutil.RunSimulation(t, map[string]string{"input.hcl": "Mesh {\n  dim = 1\n}\n"}, "input.hcl",
		func(c *app.Config) { c.MeshOnly = true })
	require.NoError(t, result.Err)

	stages := result.App.Registry().Stages.Names()
	i := indexOf(stages, surrogates.StageAddSurrogate)
	j := indexOf(stages, "add_output")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, j-1, i)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
