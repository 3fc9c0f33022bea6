package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
	"github.com/flowcore/fvpiso/halo"
	"github.com/flowcore/fvpiso/matrix"
)

func tridiagMesh() *geometry.Mesh {
	return &geometry.Mesh{
		NumCells:         3,
		NumInternalFaces: 2,
		Owner:            []int{0, 1},
		Neighbor:         []int{1, 2},
	}
}

// tridiagSystem builds the SPD matrix [[2,-1,0],[-1,2,-1],[0,-1,2]] with an
// Su chosen so x=(1,1,1) is the exact solution.
func tridiagSystem() *matrix.MeshMatrix[field.Scalar] {
	mesh := tridiagMesh()
	m := matrix.New[field.Scalar](mesh, matrix.Symmetric)
	for c := range m.Ap {
		m.Ap[c] = 2
	}
	m.An[0] = [2]field.Scalar{-1, -1}
	m.An[1] = [2]field.Scalar{-1, -1}
	m.Su = []field.Scalar{1, 0, 1}
	return m
}

func TestCG_ConvergesToKnownSolution(t *testing.T) {
	m := tridiagSystem()
	x := make([]field.Scalar, 3)

	res := CG(m, x, 1e-10, 100, Jacobi{}, halo.Local{})

	assert.True(t, res.Converged)
	for c, v := range x {
		assert.InDelta(t, 1.0, float64(v), 1e-6, "cell %d", c)
	}
}

func TestSolveScalar_DispatchesOnFlags(t *testing.T) {
	sym := tridiagSystem()
	x := make([]field.Scalar, 3)
	res := SolveScalar(sym, x, 1e-10, 100, Jacobi{}, halo.Local{})
	assert.True(t, res.Converged)

	asym := matrix.Clone(sym)
	asym.Flags = matrix.Asymmetric
	x2 := make([]field.Scalar, 3)
	res2 := SolveScalar(asym, x2, 1e-10, 200, Jacobi{}, halo.Local{})
	assert.True(t, res2.Converged)
}
