package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcore/fvpiso/field"
)

func TestGradScalar_ConstantGradientOfLinearField(t *testing.T) {
	const n = 10
	const dx = 0.1
	mesh := lineMesh(n, dx)
	phi := dirichletScalar(mesh, 0, 5)
	L := float64(n) * dx
	slope := 5 / L
	for c := 0; c < n; c++ {
		x := (float64(c) + 0.5) * dx
		phi.Internal[c] = field.Scalar(slope * x)
	}
	require.NoError(t, phi.UpdateExplicitBCs(false))

	grad := GradScalar(phi)
	for c := 0; c < n; c++ {
		assert.InDelta(t, slope, grad.Internal[c].X, 1e-9, "cell %d", c)
		assert.InDelta(t, 0, grad.Internal[c].Y, 1e-12)
		assert.InDelta(t, 0, grad.Internal[c].Z, 1e-12)
	}
}
