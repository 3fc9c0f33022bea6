package matrix

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/flowcore/fvpiso/field"
)

// ToCSR materializes a scalar MeshMatrix as a gonum-compatible sparse
// matrix, adapted from the teacher's utils/sparse.go DOK/CSR wrapper. This
// bridge exists only for diagnostics and tests — e.g. checking the
// Laplacian-symmetry property (§8 property 3) with mat.Equal — and is never
// on the production solve path, which stays matrix-free per §4.4 and the
// spec's non-goal of pulling in general-purpose linear algebra.
func ToCSR(m *MeshMatrix[field.Scalar]) *sparse.CSR {
	n := len(m.Ap)
	dok := sparse.NewDOK(n, n)
	for c, ap := range m.Ap {
		dok.Set(c, c, float64(ap))
	}
	for i, conn := range m.An {
		o, nb := m.Mesh.Owner[i], m.Mesh.Neighbor[i]
		// an[0] is the coefficient of phi[neighbor] in the owner's row,
		// an[1] is the coefficient of phi[owner] in the neighbor's row.
		dok.Set(o, nb, float64(conn[0]))
		dok.Set(nb, o, float64(conn[1]))
	}
	return dok.ToCSR()
}

// IsSymmetric checks M[i,j] == M[j,i] on the assembled sparsity pattern to
// within tol, the discrete form of §8 property 3.
func IsSymmetric(m *MeshMatrix[field.Scalar], tol float64) bool {
	csr := ToCSR(m)
	var t mat.Dense
	t.CloneFrom(csr.T())
	r, c := csr.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if diff := csr.At(i, j) - t.At(i, j); diff > tol || diff < -tol {
				return false
			}
		}
	}
	return true
}
