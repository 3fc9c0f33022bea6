package solver

import (
	"math"

	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/halo"
	"github.com/flowcore/fvpiso/matrix"
)

// Result reports how a Krylov solve terminated (§4.4: "solvers report the
// number of iterations and the final scaled residual").
type Result struct {
	Iterations int
	Residual   float64
	Converged  bool
}

// CG solves m.Ap/An/Su · x = against x in place for a SYMMETRIC scalar
// MeshMatrix, generalizing the teacher's FVSystem.SolveCG from a 1-D
// tridiagonal float64 system to the unstructured matrix-free MatVec
// (§4.4), with the global inner products folded across ranks through r
// instead of being a plain local sum.
func CG(m *matrix.MeshMatrix[field.Scalar], x []field.Scalar, tol float64, maxIters int, precond Preconditioner, r halo.Exchanger) Result {
	if precond == nil {
		precond = Jacobi{}
	}
	n := len(x)
	res := make([]field.Scalar, n)
	d := make([]field.Scalar, n)

	Ax := matrix.MatVec(m, x)
	for i := range res {
		res[i] = m.Su[i] - Ax[i]
	}
	z := precond.Apply(m, res)
	copy(d, z)

	rDotZ := dotScalar(res, z, r)
	su0 := dotScalar(m.Su, m.Su, r)
	threshold := tol * tol * math.Max(float64(su0), 1e-30)

	recomputeInterval := 50
	iter := 0
	for ; iter < maxIters; iter++ {
		resNorm := dotScalar(res, res, r)
		if float64(resNorm) <= threshold {
			break
		}

		Ad := matrix.MatVec(m, d)
		dDotAd := dotScalar(d, Ad, r)
		if dDotAd == 0 {
			break
		}
		alpha := float64(rDotZ) / float64(dDotAd)

		for i := range x {
			x[i] += field.Scalar(alpha) * d[i]
		}

		if iter > 0 && iter%recomputeInterval == 0 {
			Ax = matrix.MatVec(m, x)
			for i := range res {
				res[i] = m.Su[i] - Ax[i]
			}
		} else {
			for i := range res {
				res[i] -= field.Scalar(alpha) * Ad[i]
			}
		}

		z = precond.Apply(m, res)
		rDotZOld := rDotZ
		rDotZ = dotScalar(res, z, r)
		beta := float64(rDotZ) / float64(rDotZOld)

		for i := range d {
			d[i] = z[i] + field.Scalar(beta)*d[i]
		}
	}

	finalResidual := math.Sqrt(float64(dotScalar(res, res, r)) / math.Max(float64(su0), 1e-30))
	return Result{Iterations: iter, Residual: finalResidual, Converged: finalResidual <= tol}
}

func dotScalar(a, b []field.Scalar, r halo.Exchanger) field.Scalar {
	var local float64
	for i := range a {
		local += float64(a[i]) * float64(b[i])
	}
	return field.Scalar(r.AllreduceSum(local))
}
