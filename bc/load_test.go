package bc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/geometry"
)

func loadContext(t *testing.T, text string) *config.Context {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.cfg")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	ctx, err := config.Load(path)
	require.NoError(t, err)
	return ctx
}

func patchMesh() *geometry.Mesh {
	return &geometry.Mesh{
		Patches: []geometry.Patch{
			{Name: "inlet", Start: 0, End: 1},
			{Name: "outlet", Start: 1, End: 2},
			{Name: "wall", Start: 2, End: 3},
		},
	}
}

func TestLoadScalar_ReadsExplicitTypeAndValuePerPatch(t *testing.T) {
	ctx := loadContext(t, `
inlet {
	p_type fixedValue;
	p_value 5;
}
outlet {
	p_type fixedGradient;
	p_value 0;
}
`)

	reg := LoadScalar(ctx, patchMesh(), "p")

	in, err := reg.Resolve("inlet")
	require.NoError(t, err)
	assert.Equal(t, Dirichlet, in.Kind)
	assert.Equal(t, 5.0, in.Value)

	out, err := reg.Resolve("outlet")
	require.NoError(t, err)
	assert.Equal(t, Neumann, out.Kind)
	assert.Equal(t, 0.0, out.Gradient)

	wall, err := reg.Resolve("wall")
	require.NoError(t, err)
	assert.Equal(t, Wall, wall.Kind, "a patch with no explicit type falls back to the name-based default")
}

func TestLoadVector3_ReadsRobinCoeffWhenKindIsRobin(t *testing.T) {
	ctx := loadContext(t, `
inlet {
	U_type robin;
	U_value 1 2 3;
	U_robin_coeff 0.25;
}
`)

	reg := LoadVector3(ctx, patchMesh(), "U")
	in, err := reg.Resolve("inlet")
	require.NoError(t, err)
	assert.Equal(t, Robin, in.Kind)
	assert.Equal(t, [3]float64{1, 2, 3}, in.Gradient)
	assert.Equal(t, 0.25, in.RobinCoeff)
}
