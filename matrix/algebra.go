package matrix

import "github.com/flowcore/fvpiso/field"

// combineFlags mirrors the source's rule that a sum of matrices inherits
// SYMMETRIC only when every summand is (§4.3: "Matrices inherit SYMMETRIC
// when all summands are; Laplacian is SYMMETRIC, convection ASYMMETRIC").
func combineFlags(a, b Flags) Flags {
	if a == Symmetric && b == Symmetric {
		return Symmetric
	}
	return Asymmetric
}

// Add returns M1 + M2 (§4.3). Both matrices must share the same mesh.
func Add[T field.Algebraic[T]](m1, m2 *MeshMatrix[T]) *MeshMatrix[T] {
	out := New[T](m1.Mesh, combineFlags(m1.Flags, m2.Flags))
	for c := range out.Ap {
		out.Ap[c] = m1.Ap[c] + m2.Ap[c]
		out.Su[c] = m1.Su[c].Add(m2.Su[c])
	}
	for i := range out.An {
		out.An[i] = [2]field.Scalar{m1.An[i][0] + m2.An[i][0], m1.An[i][1] + m2.An[i][1]}
	}
	return out
}

// AddSource returns M with an additional explicit source added to Su
// (`M ± field_source`, §4.3); it does not mutate m.
func AddSource[T field.Algebraic[T]](m *MeshMatrix[T], src []T) *MeshMatrix[T] {
	out := Clone(m)
	for c := range out.Su {
		out.Su[c] = out.Su[c].Add(src[c])
	}
	return out
}

// Scale returns c*M (§4.3).
func Scale[T field.Algebraic[T]](m *MeshMatrix[T], c float64) *MeshMatrix[T] {
	out := Clone(m)
	for i := range out.Ap {
		out.Ap[i] = field.Scalar(float64(out.Ap[i]) * c)
		out.Su[i] = out.Su[i].Scale(c)
	}
	for i := range out.An {
		out.An[i][0] = field.Scalar(float64(out.An[i][0]) * c)
		out.An[i][1] = field.Scalar(float64(out.An[i][1]) * c)
	}
	return out
}

// CrankNicolson applies the theta-blending rewrite to a spatial
// (convection+diffusion+turbulence) matrix before an unscaled ddt term is
// added to it: Ap and An are scaled by theta, and Su <- Su - (1-theta)*(M*phiOld)
// with Su itself left unscaled and the pre-scale M used for the explicit
// term, so a steady state still satisfies A*phi = Su. theta==1 leaves m
// unchanged (a clone), recovering plain backward Euler; theta==0.5 is
// Crank-Nicolson.
func CrankNicolson[T field.Algebraic[T]](m *MeshMatrix[T], phiOld []T, theta float64) *MeshMatrix[T] {
	old := MatVec(m, phiOld)
	out := Scale(m, theta)
	for c := range out.Su {
		out.Su[c] = m.Su[c].Sub(old[c].Scale(1 - theta))
	}
	return out
}

func Clone[T field.Algebraic[T]](m *MeshMatrix[T]) *MeshMatrix[T] {
	out := &MeshMatrix[T]{Mesh: m.Mesh, Flags: m.Flags}
	out.Ap = append([]field.Scalar(nil), m.Ap...)
	out.Su = append([]T(nil), m.Su...)
	out.An = append([][2]field.Scalar(nil), m.An...)
	return out
}

// MatVec is the matrix-free apply `M·x`: (A·x)_c = ap_c*x_c + sum over
// faces of the off-diagonal contribution from the neighboring cell. This is
// the operator the Krylov solver calls every iteration without ever
// materializing A explicitly (§4.4).
func MatVec[T field.Algebraic[T]](m *MeshMatrix[T], x []T) []T {
	out := make([]T, len(x))
	for c := range x {
		out[c] = x[c].Scale(float64(m.Ap[c]))
	}
	for i, conn := range m.An {
		o, n := m.Mesh.Owner[i], m.Mesh.Neighbor[i]
		out[o] = out[o].Add(x[n].Scale(float64(conn[0])))
		out[n] = out[n].Add(x[o].Scale(float64(conn[1])))
	}
	return out
}

// GetRHS computes Su + off_diag·phi_current (§4.3), the H(U) operator used
// by the PISO corrector's `U_a = H(U) / ap` step (§4.5.e).
func GetRHS[T field.Algebraic[T]](m *MeshMatrix[T], phi []T) []T {
	out := make([]T, len(phi))
	copy(out, m.Su)
	for i, conn := range m.An {
		o, n := m.Mesh.Owner[i], m.Mesh.Neighbor[i]
		out[o] = out[o].Add(phi[n].Scale(float64(conn[0])))
		out[n] = out[n].Add(phi[o].Scale(float64(conn[1])))
	}
	return out
}

// Relax applies standard implicit under-relaxation (§4.3): divide the
// diagonal by alpha, and add (1-alpha)/alpha * ap_old * phi_current to Su.
// It mutates m in place, matching the source's `M.Relax(velocity_UR)` call
// convention.
func Relax[T field.Algebraic[T]](m *MeshMatrix[T], alpha float64, phiCurrent []T) {
	for c := range m.Ap {
		apOld := m.Ap[c]
		m.Ap[c] = field.Scalar(float64(apOld) / alpha)
		correction := phiCurrent[c].Scale(float64(apOld) * (1 - alpha) / alpha)
		m.Su[c] = m.Su[c].Add(correction)
	}
}

// Solve moves rhs into Su with the canonical sign convention A·phi = Su
// (`Solve(M == rhs)` in the source, §4.3/§9). It returns a new matrix and
// does not mutate m.
func Solve[T field.Algebraic[T]](m *MeshMatrix[T], rhs []T) *MeshMatrix[T] {
	out := Clone(m)
	for c := range out.Su {
		out.Su[c] = out.Su[c].Add(rhs[c])
	}
	return out
}

// ScaledResidual returns ||Ax - Su|| / ||SuNorm|| per cell, used by the
// linear solver's convergence test (§4.4) and by the outer driver's
// divergence check (§7).
func ScaledResidual[T field.Algebraic[T]](m *MeshMatrix[T], x []T, norm func(T) float64) []float64 {
	Ax := MatVec(m, x)
	r := make([]float64, len(x))
	var suNorm float64
	for c := range x {
		r[c] = norm(Ax[c].Sub(m.Su[c]))
		if n := norm(m.Su[c]); n > suNorm {
			suNorm = n
		}
	}
	if suNorm == 0 {
		suNorm = 1
	}
	for c := range r {
		r[c] /= suNorm
	}
	return r
}
