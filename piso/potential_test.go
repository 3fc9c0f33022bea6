package piso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcore/fvpiso/bc"
	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/halo"
)

// With matching uniform inflow and outflow, potential flow's only
// divergence-free solution is the uniform field itself, so correcting from a
// zeroed start should recover it.
func TestPotentialFlow_RecoversUniformFlowBetweenMatchedInletOutlet(t *testing.T) {
	const n = 10
	const dx = 0.1
	mesh := newLineMesh(n, dx)

	uReg := bc.NewRegistry[field.Vector]()
	uReg.Add(&bc.Condition[field.Vector]{Patch: "left", Kind: bc.Dirichlet, Value: field.Vector{X: 1}})
	uReg.Add(&bc.Condition[field.Vector]{Patch: "right", Kind: bc.Dirichlet, Value: field.Vector{X: 1}})
	u := field.New[field.Vector]("U", field.ReadWrite, mesh)
	u.SetBCs(uReg)

	pReg := bc.NewRegistry[field.Scalar]()
	pReg.Add(&bc.Condition[field.Scalar]{Patch: "left", Kind: bc.Neumann})
	pReg.Add(&bc.Condition[field.Scalar]{Patch: "right", Kind: bc.Neumann})
	p := field.New[field.Scalar]("p", field.ReadWrite, mesh)
	p.SetBCs(pReg)

	ctx := &config.Context{
		General: config.General{Density: 1},
		Controls: config.Controls{
			SolverTolerance: 1e-10,
			SolverMaxIters:  2000,
		},
	}

	require.NoError(t, PotentialFlow(ctx, mesh, u, p, halo.Local{}))

	for c := 0; c < n; c++ {
		assert.InDelta(t, 1, u.Internal[c].X, 1e-6, "cell %d", c)
		assert.InDelta(t, 0, u.Internal[c].Y, 1e-9, "cell %d", c)
	}
}
