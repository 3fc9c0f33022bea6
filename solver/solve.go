package solver

import (
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/halo"
	"github.com/flowcore/fvpiso/matrix"
)

// SolveScalar dispatches a scalar MeshMatrix to CG when the matrix is
// flagged SYMMETRIC (the pressure-correction and diffusion equations) and
// to BiCGStab otherwise (upwind/TVD-convected scalar transport), matching
// §4.4's "CG for symmetric matrices, BiCGStab for asymmetric" split. x is
// solved in place.
func SolveScalar(m *matrix.MeshMatrix[field.Scalar], x []field.Scalar, tol float64, maxIters int, precond Preconditioner, r halo.Exchanger) Result {
	if m.Flags == matrix.Symmetric {
		return CG(m, x, tol, maxIters, precond, r)
	}
	return BiCGStab(m, x, tol, maxIters, ScalarDot, r)
}

// SolveVector solves a vector MeshMatrix (the momentum predictor, always
// ASYMMETRIC once convection is assembled) with BiCGStab.
func SolveVector(m *matrix.MeshMatrix[field.Vector], x []field.Vector, tol float64, maxIters int, r halo.Exchanger) Result {
	return BiCGStab(m, x, tol, maxIters, VectorDot, r)
}
