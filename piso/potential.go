package piso

import (
	"fmt"

	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
	"github.com/flowcore/fvpiso/halo"
	"github.com/flowcore/fvpiso/matrix"
	"github.com/flowcore/fvpiso/operator"
	"github.com/flowcore/fvpiso/solver"
)

// PotentialFlow implements §4.7: starting from a zeroed velocity field,
// solve div(grad(p)) = div(U) for n_ORTHO passes and correct
// U <- U - grad(p), the irrotational initialization used to seed PISO with
// a divergence-free starting guess instead of an arbitrary uniform flow.
func PotentialFlow(ctx *config.Context, mesh *geometry.Mesh, u *field.Field[field.Vector], p *field.Field[field.Scalar], r halo.Exchanger) error {
	nc := mesh.NumCells
	for c := 0; c < nc; c++ {
		u.Internal[c] = field.Vector{}
	}
	if err := u.UpdateExplicitBCs(false); err != nil {
		return fmt.Errorf("piso: potential flow: %w", err)
	}

	params, err := ParseParams(ctx)
	if err != nil {
		return err
	}
	ctrl := ctx.Controls
	gammaOne := field.Uniform[field.Scalar]("unitDiffusivity", mesh, 1)

	for pass := 0; pass <= params.NOrtho; pass++ {
		m := operator.Lap(p, gammaOne)
		divU := DivExplicitRaw(mesh, u)
		solved := matrix.Solve(m, divU)
		solver.SolveScalar(solved, p.Internal[:nc], ctrl.SolverTolerance, ctrl.SolverMaxIters, solver.Jacobi{}, r)
		if err := p.UpdateExplicitBCs(false); err != nil {
			return fmt.Errorf("piso: potential flow: %w", err)
		}
	}

	gradP := operator.GradScalar(p)
	for c := 0; c < nc; c++ {
		u.Internal[c] = u.Internal[c].Sub(gradP.Internal[c])
	}
	return u.UpdateExplicitBCs(false)
}

// DivExplicitRaw is rawFluxDivergence specialized to rho=1, the un-normalized
// divergence the potential-flow Poisson equation's RHS needs (§4.7).
func DivExplicitRaw(mesh *geometry.Mesh, u *field.Field[field.Vector]) []field.Scalar {
	return rawFluxDivergence(mesh, u, 1)
}
