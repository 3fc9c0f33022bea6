package operator

import (
	"math"
	"testing"

	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/matrix"
)

func TestLap_IsSymmetricAndSatisfiesExactLinearSolution(t *testing.T) {
	const n = 8
	const dx = 0.25
	mesh := lineMesh(n, dx)
	phi := dirichletScalar(mesh, 0, 10)
	L := float64(n) * dx
	for c := 0; c < n; c++ {
		x := (float64(c) + 0.5) * dx
		phi.Internal[c] = field.Scalar(10 * x / L)
	}
	if err := phi.UpdateExplicitBCs(false); err != nil {
		t.Fatal(err)
	}

	gamma := field.Uniform[field.Scalar]("gamma", mesh, 1)
	m := Lap(phi, gamma)

	if m.Flags != matrix.Symmetric {
		t.Errorf("Lap matrix flags = %v, want Symmetric", m.Flags)
	}

	residual := matrix.ScaledResidual(m, phi.Internal[:n], func(v field.Scalar) float64 { return math.Abs(float64(v)) })
	for c, r := range residual {
		if r > 1e-9 {
			t.Errorf("cell %d: scaled residual = %g, want ~0 for an exact harmonic solution", c, r)
		}
	}
}

func TestLap_NegativeDiagonalPositiveOffDiagonal(t *testing.T) {
	mesh := lineMesh(5, 0.2)
	phi := dirichletScalar(mesh, 0, 1)
	gamma := field.Uniform[field.Scalar]("gamma", mesh, 2)
	m := Lap(phi, gamma)

	for c, ap := range m.Ap {
		if ap >= 0 {
			t.Errorf("Ap[%d] = %v, want < 0 (un-negated Poisson convention)", c, ap)
		}
	}
	for i, conn := range m.An {
		if conn[0] <= 0 || conn[1] <= 0 {
			t.Errorf("An[%d] = %v, want both entries > 0", i, conn)
		}
	}
}
