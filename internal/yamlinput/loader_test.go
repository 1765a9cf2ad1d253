package yamlinput

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/simforge/internal/block"
	"github.com/specialistvlad/simforge/internal/hclinput"
	"github.com/specialistvlad/simforge/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// flatten renders a tree as path -> param -> value, ignoring source locations.
func flatten(t *testing.T, root *block.Block) map[string]map[string]string {
	t.Helper()
	out := make(map[string]map[string]string)
	require.NoError(t, root.Walk(func(b *block.Block) error {
		vals := make(map[string]string)
		for _, p := range b.Params {
			vals[p.Name] = params.FormatValue(p.Value)
		}
		out[b.Path.String()] = vals
		return nil
	}))
	return out
}

func TestLoader_Parse(t *testing.T) {
	src := `
Mesh:
  type: GeneratedMesh
  dim: 2
  xmax: 2.5
Variables:
  u:
  v:
    order: SECOND
Covariance:
  cov:
    type: SquaredExponentialCovariance
    length_factor: [1, 0.5]
    enabled: true
`
	root, err := NewLoader().Parse(context.Background(), []byte(src), "input.yaml")
	require.NoError(t, err)

	mesh := root.Child("Mesh")
	require.NotNil(t, mesh)
	assert.Equal(t, "input.yaml:2", mesh.Source)

	dim, ok := mesh.Param("dim")
	require.True(t, ok)
	assert.True(t, dim.Value.RawEquals(cty.NumberIntVal(2)))
	assert.Equal(t, "input.yaml:4", dim.Source)

	u := root.Child("Variables").Child("u")
	require.NotNil(t, u, "an empty value is an empty block")
	assert.Empty(t, u.Params)

	cov := root.Child("Covariance").Child("cov")
	lf, _ := cov.Param("length_factor")
	assert.True(t, lf.Value.Type().IsTupleType())
	enabled, _ := cov.Param("enabled")
	assert.True(t, enabled.Value.RawEquals(cty.True))
}

func TestLoader_IsomorphicToHCL(t *testing.T) {
	hclSrc := `
Mesh {
  type = "GeneratedMesh"
  dim  = 2
  xmax = 0.1
}
Kernels "diff" {
  type     = "Diffusion"
  variable = "u"
  coef     = [1, 2.5]
}
`
	yamlSrc := `
Mesh:
  type: GeneratedMesh
  dim: 2
  xmax: 0.1
Kernels:
  diff:
    type: Diffusion
    variable: "u"
    coef:
      - 1
      - 2.5
`
	ctx := context.Background()
	fromHCL, err := hclinput.NewLoader().Parse(ctx, []byte(hclSrc), "input.hcl")
	require.NoError(t, err)
	fromYAML, err := NewLoader().Parse(ctx, []byte(yamlSrc), "input.yaml")
	require.NoError(t, err)

	if diff := cmp.Diff(flatten(t, fromHCL), flatten(t, fromYAML)); diff != "" {
		t.Errorf("trees differ (-hcl +yaml):\n%s", diff)
	}

	x1, _ := fromHCL.Child("Mesh").Param("xmax")
	x2, _ := fromYAML.Child("Mesh").Param("xmax")
	assert.True(t, x1.Value.RawEquals(x2.Value), "numbers parse to identical values")
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"not yaml", "Mesh: [", "failed to parse"},
		{"top level list", "- Mesh\n", "top level must be a mapping"},
		{"mapping inside list", "Mesh:\n  coords:\n    - {a: 1}\n", "nested mappings"},
		{"duplicate key", "Mesh:\n  dim: 1\n  dim: 2\n", `parameter "dim" redefined`},
		{"nan", "Mesh:\n  dim: .nan\n", "not a finite number"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().Parse(context.Background(), []byte(tc.src), "input.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Executioner:\n  type: Steady\n"), 0600))

	root, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, root.Child("Executioner"))

	empty, err := NewLoader().Parse(context.Background(), nil, "empty.yaml")
	require.NoError(t, err)
	assert.Empty(t, empty.Children)
}
