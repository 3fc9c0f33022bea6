// Package solver implements the matrix-free Krylov linear solver of §4.4:
// CG for SYMMETRIC matrices, BiCGStab otherwise, operating purely through
// matrix.MatVec so a MeshMatrix is never assembled into a dense or CSR
// form on the production solve path. Grounded in the teacher's
// FVSystem.SolveCG (Jedsonofnel-CFD25-project1/fvm.go), generalized from a
// float64 tridiagonal system to matrix.MeshMatrix[T] over any
// field.Algebraic element type and a Rank-aware inner product via
// halo.Exchanger.
package solver

import "github.com/flowcore/fvpiso/matrix"
import "github.com/flowcore/fvpiso/field"

// Preconditioner approximates M^-1 for a MeshMatrix<Scalar>, applied once
// per Krylov iteration to precondition the residual (§4.4: "with Jacobi or
// SOR preconditioning").
type Preconditioner interface {
	Apply(m *matrix.MeshMatrix[field.Scalar], r []field.Scalar) []field.Scalar
}

// Jacobi preconditions by dividing each residual entry by the local
// diagonal, the cheapest preconditioner and the default when none is
// configured.
type Jacobi struct{}

func (Jacobi) Apply(m *matrix.MeshMatrix[field.Scalar], r []field.Scalar) []field.Scalar {
	z := make([]field.Scalar, len(r))
	for c, ap := range m.Ap {
		if ap == 0 {
			z[c] = r[c]
			continue
		}
		z[c] = r[c] / ap
	}
	return z
}

// SOR applies one forward sweep of successive over-relaxation as a
// preconditioner: a single pass over faces, each applying its
// lower-triangular contribution (the side with the smaller cell index) to
// the running z, followed by a diagonal scale. This is an approximation of
// a true sequential Gauss-Seidel sweep rather than an exact triangular
// solve — good enough as a preconditioner, where only an approximate M^-1
// is required.
type SOR struct {
	Omega float64
}

func NewSOR(omega float64) SOR { return SOR{Omega: omega} }

func (s SOR) Apply(m *matrix.MeshMatrix[field.Scalar], r []field.Scalar) []field.Scalar {
	omega := s.Omega
	if omega <= 0 {
		omega = 1
	}
	z := make([]field.Scalar, len(r))
	for c := range z {
		z[c] = r[c]
	}
	for i, conn := range m.An {
		o, n := m.Mesh.Owner[i], m.Mesh.Neighbor[i]
		if o < n {
			z[n] -= field.Scalar(omega) * conn[1] * z[o] / m.Ap[n]
		} else {
			z[o] -= field.Scalar(omega) * conn[0] * z[n] / m.Ap[o]
		}
	}
	for c := range z {
		z[c] = field.Scalar(omega) * z[c] / m.Ap[c]
	}
	return z
}
