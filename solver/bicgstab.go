package solver

import (
	"math"

	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/halo"
	"github.com/flowcore/fvpiso/matrix"
)

// BiCGStab solves an ASYMMETRIC MeshMatrix<T> (§4.4: "BiCGStab for
// asymmetric matrices"), generic over any field.Algebraic element type so
// the same routine serves both scalar transport equations and the vector
// momentum predictor. dot computes the scalar inner product of two T
// values (field.Scalar multiplication or field.Vector.Dot), since the
// Algebraic constraint alone has no notion of an inner product.
func BiCGStab[T field.Algebraic[T]](m *matrix.MeshMatrix[T], x []T, tol float64, maxIters int, dot func(a, b T) float64, r halo.Exchanger) Result {
	n := len(x)
	res := make([]T, n)
	rHat := make([]T, n)
	p := make([]T, n)
	v := make([]T, n)

	Ax := matrix.MatVec(m, x)
	for i := range res {
		res[i] = m.Su[i].Sub(Ax[i])
		rHat[i] = res[i]
	}

	rho, alpha, omega := 1.0, 1.0, 1.0
	su0 := sumDot(m.Su, m.Su, dot, r)
	threshold := tol * tol * math.Max(su0, 1e-30)

	iter := 0
	for ; iter < maxIters; iter++ {
		resNorm := sumDot(res, res, dot, r)
		if resNorm <= threshold {
			break
		}

		rhoNew := sumDot(rHat, res, dot, r)
		if rhoNew == 0 {
			break
		}
		if iter == 0 {
			copy(p, res)
		} else {
			beta := (rhoNew / rho) * (alpha / omega)
			for i := range p {
				p[i] = res[i].Add(p[i].Sub(v[i].Scale(omega)).Scale(beta))
			}
		}
		rho = rhoNew

		v = matrix.MatVec(m, p)
		rHatDotV := sumDot(rHat, v, dot, r)
		if rHatDotV == 0 {
			break
		}
		alpha = rho / rHatDotV

		s := make([]T, n)
		for i := range s {
			s[i] = res[i].Sub(v[i].Scale(alpha))
		}

		sNorm := sumDot(s, s, dot, r)
		if sNorm <= threshold {
			for i := range x {
				x[i] = x[i].Add(p[i].Scale(alpha))
			}
			res = s
			iter++
			break
		}

		t := matrix.MatVec(m, s)
		tDotT := sumDot(t, t, dot, r)
		if tDotT == 0 {
			break
		}
		omega = sumDot(t, s, dot, r) / tDotT

		for i := range x {
			x[i] = x[i].Add(p[i].Scale(alpha)).Add(s[i].Scale(omega))
		}
		for i := range res {
			res[i] = s[i].Sub(t[i].Scale(omega))
		}
	}

	finalResidual := math.Sqrt(sumDot(res, res, dot, r) / math.Max(su0, 1e-30))
	return Result{Iterations: iter, Residual: finalResidual, Converged: finalResidual <= tol}
}

func sumDot[T field.Algebraic[T]](a, b []T, dot func(x, y T) float64, r halo.Exchanger) float64 {
	var local float64
	for i := range a {
		local += dot(a[i], b[i])
	}
	return r.AllreduceSum(local)
}

// ScalarDot and VectorDot are the two dot functions solver callers pass to
// BiCGStab for the element types the core actually transports.
func ScalarDot(a, b field.Scalar) float64 { return float64(a) * float64(b) }
func VectorDot(a, b field.Vector) float64 { return a.Dot(b) }
