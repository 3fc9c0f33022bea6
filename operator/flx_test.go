package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcore/fvpiso/bc"
	"github.com/flowcore/fvpiso/field"
)

func TestFlx_UniformVelocityGivesConstantMassFlux(t *testing.T) {
	const n = 5
	mesh := lineMesh(n, 0.2)
	u := field.New[field.Vector]("U", field.ReadWrite, mesh)
	reg := bc.NewRegistry[field.Vector]()
	reg.Add(&bc.Condition[field.Vector]{Patch: "left", Kind: bc.Dirichlet, Value: field.Vector{X: 2}})
	reg.Add(&bc.Condition[field.Vector]{Patch: "right", Kind: bc.Dirichlet, Value: field.Vector{X: 2}})
	u.SetBCs(reg)
	for c := range u.Internal[:n] {
		u.Internal[c] = field.Vector{X: 2}
	}
	require.NoError(t, u.UpdateExplicitBCs(false))

	flux := Flx(u, 3)
	for i := 0; i < mesh.NumInternalFaces; i++ {
		assert.InDelta(t, 6, float64(flux.Internal(i)), 1e-9, "internal face %d", i)
	}
	for b := 0; b < mesh.NumBoundaryFaces; b++ {
		got := float64(flux.Boundary(b))
		assert.InDelta(t, 6*mesh.BoundaryFaceArea[b].X/1, got, 1e-9, "boundary face %d", b)
	}
}
