package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcore/fvpiso/bc"
	"github.com/flowcore/fvpiso/field"
)

func TestToVectorRegistry_ConvertsComponentsAndPreservesKind(t *testing.T) {
	src := bc.NewRegistry[[3]float64]()
	src.Add(&bc.Condition[[3]float64]{
		Patch: "inlet", Kind: bc.Dirichlet,
		Value: [3]float64{1, 2, 3}, FaceStart: 0, FaceEnd: 4,
	})

	out := toVectorRegistry(src)
	c, err := out.Resolve("inlet")
	require.NoError(t, err)
	assert.Equal(t, bc.Dirichlet, c.Kind)
	assert.Equal(t, field.Vector{X: 1, Y: 2, Z: 3}, c.Value)
	assert.Equal(t, 0, c.FaceStart)
	assert.Equal(t, 4, c.FaceEnd)
}

func TestToScalarRegistry_ConvertsValueAndGradient(t *testing.T) {
	src := bc.NewRegistry[float64]()
	src.Add(&bc.Condition[float64]{Patch: "wall", Kind: bc.Neumann, Gradient: 0.5, RobinCoeff: 0.3})

	out := toScalarRegistry(src)
	c, err := out.Resolve("wall")
	require.NoError(t, err)
	assert.Equal(t, bc.Neumann, c.Kind)
	assert.Equal(t, field.Scalar(0.5), c.Gradient)
	assert.Equal(t, 0.3, c.RobinCoeff)
}
