// Package piso implements the PISO pressure-velocity coupling driver of
// §4.5 and its specialized cousins (§4.6-4.8): wall distance, potential
// flow, diffusion, and passive-scalar transport. All four share the same
// deferred-correction outer loop and under-relaxation mechanics, composed
// from the field/operator/matrix/solver vocabulary rather than a
// solver-specific code path.
package piso

import (
	"errors"
	"fmt"

	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
	"github.com/flowcore/fvpiso/halo"
	"github.com/flowcore/fvpiso/matrix"
	"github.com/flowcore/fvpiso/operator"
	"github.com/flowcore/fvpiso/solver"
	"github.com/flowcore/fvpiso/turbulence"
)

// ErrDiverged is the sentinel the CLI maps to a nonzero exit code (§7
// "Numerical divergence").
var ErrDiverged = errors.New("piso: solution diverged")

// Params is the `piso { ... }` configuration block (§6): under-relaxation
// factors, PISO/outer-correction loop counts, and the turbulence-model
// selector.
type Params struct {
	VelocityUR   float64
	PressureUR   float64
	NPiso        int
	NOrtho       int
	NDeferred    int
	Turbulence   turbulence.Kind
	LESAverage   bool
}

// ParseParams reads the `piso` block, matching the source's enrolled-key
// defaults (§6: velocity_UR, pressure_UR, n_PISO, n_ORTHO, n_DEFERRED,
// turbulence_model, les_average).
func ParseParams(ctx *config.Context) (Params, error) {
	b := ctx.Block("piso")
	p := Params{
		VelocityUR: b.Float("velocity_ur", 0.7),
		PressureUR: b.Float("pressure_ur", 0.3),
		NPiso:      b.Int("n_piso", 2),
		NOrtho:     b.Int("n_ortho", 1),
		NDeferred:  b.Int("n_deferred", 0),
		LESAverage: b.Bool("les_average", false),
	}
	idx, err := b.Option("turbulence_model", 0,
		"NONE", "MIXING_LENGTH", "KEPSILON", "RNG_KEPSILON", "REALIZABLE_KEPSILON", "KOMEGA", "LES")
	if err != nil {
		return p, fmt.Errorf("piso: %w", err)
	}
	p.Turbulence = turbulence.Kind(idx)
	return p, nil
}

// Driver owns the momentum/pressure fields and drives the PISO loop
// described in §4.5. Callers construct U and P (with boundary conditions
// already registered, per §3's ownership rules) and hand them to
// NewDriver.
type Driver struct {
	Mesh *geometry.Mesh
	Ctx  *config.Context
	R    halo.Exchanger

	U    *field.Field[field.Vector]
	P    *field.Field[field.Scalar]
	Flux *field.FaceField[field.Scalar]

	Turb   turbulence.Model
	Params Params
	LES    *LESAverage

	divergenceHistory []float64
}

// NewDriver wires a PISO run over an already-constructed mesh/field set.
func NewDriver(ctx *config.Context, mesh *geometry.Mesh, u *field.Field[field.Vector], p *field.Field[field.Scalar], r halo.Exchanger) (*Driver, error) {
	params, err := ParseParams(ctx)
	if err != nil {
		return nil, err
	}
	turb := turbulence.New(params.Turbulence, mesh, ctx.General.Viscosity)
	flux := operator.Flx(u, ctx.General.Density)

	d := &Driver{
		Mesh: mesh, Ctx: ctx, R: r,
		U: u, P: p, Flux: flux,
		Turb: turb, Params: params,
	}
	if params.LESAverage {
		d.LES = NewLESAverage(mesh)
	}
	return d, nil
}

// Step advances the coupled system by one outer iteration or time step
// (§4.5, steps 1-3 minus the I/O emission, which the caller drives since
// write_interval gating is a CLI/orchestration concern).
func (d *Driver) Step() error {
	ctrl := d.Ctx.Controls
	rho := d.Ctx.General.Density
	mu := d.Ctx.General.Viscosity
	nc := d.Mesh.NumCells

	uOld := append([]field.Vector(nil), d.U.Internal[:nc]...)

	for n := 0; n <= d.Params.NDeferred; n++ {
		gammaEff := effectiveViscosity(d.Mesh, rho, mu, d.Turb.EddyViscosity())

		M := operator.Div(d.U, d.Flux, gammaEff, ctrl)
		d.Turb.AddTurbulentStress(M)

		if ctrl.State == config.Steady {
			matrix.Relax(M, d.Params.VelocityUR, d.U.Internal[:nc])
		} else {
			M = matrix.CrankNicolson(M, uOld, ctrl.TimeSchemeFactor)
			M = matrix.Add(M, operator.DdtVector(d.Mesh, rho, uOld, ctrl))
		}

		gradP := operator.GradScalar(d.P)
		for c := 0; c < nc; c++ {
			M.Su[c] = M.Su[c].Sub(gradP.Internal[c].Scale(d.Mesh.CellVolume[c]))
		}

		if res := solver.SolveVector(M, d.U.Internal[:nc], ctrl.SolverTolerance, ctrl.SolverMaxIters, d.R); !res.Converged {
			// Non-convergence is a logged warning per §7; the driver
			// proceeds with the best iterate obtained.
		}
		if err := d.U.UpdateExplicitBCs(false); err != nil {
			return fmt.Errorf("piso: velocity BCs: %w", err)
		}

		api := make([]float64, nc)
		for c := range api {
			api[c] = 1 / float64(M.Ap[c])
		}

		pOld := d.P.Clone()
		for k := 0; k < d.Params.NPiso; k++ {
			ua := matrix.GetRHS(M, d.U.Internal[:nc])
			for c := range ua {
				ua[c] = ua[c].Scale(api[c])
			}
			uaField := field.New[field.Vector]("U_a", field.None, d.Mesh)
			copy(uaField.Internal, ua)
			uaField.SetBCs(d.U.BCs())
			if err := uaField.UpdateExplicitBCs(false); err != nil {
				return fmt.Errorf("piso: U_a BCs: %w", err)
			}

			for pk := 0; pk <= d.Params.NOrtho; pk++ {
				apiV := make([]field.Scalar, nc)
				for c := range apiV {
					apiV[c] = field.Scalar(rho * api[c] * d.Mesh.CellVolume[c])
				}
				gammaP := cellToFace(d.Mesh, apiV)
				pEq := operator.Lap(d.P, gammaP)
				rhsFlux := rawFluxDivergence(d.Mesh, uaField, rho)
				solved := matrix.Solve(pEq, rhsFlux)

				x := d.P.Internal[:nc]
				solver.SolveScalar(solved, x, ctrl.SolverTolerance, ctrl.SolverMaxIters, solver.Jacobi{}, d.R)
			}

			if ctrl.State == config.Steady {
				relaxed := field.Relax(d.P, pOld, d.Params.PressureUR)
				copy(d.P.Internal, relaxed.Internal)
			}
			if err := d.P.UpdateExplicitBCs(false); err != nil {
				return fmt.Errorf("piso: pressure BCs: %w", err)
			}

			gradPNeg := operator.GradScalar(d.P)
			for c := 0; c < nc; c++ {
				corr := gradPNeg.Internal[c].Scale(-api[c])
				d.U.Internal[c] = uaField.Internal[c].Add(corr)
			}
			if err := d.U.UpdateExplicitBCs(false); err != nil {
				return fmt.Errorf("piso: velocity BCs: %w", err)
			}
		}

		d.Flux = operator.Flx(d.U, rho)

		if err := d.Turb.Solve(d.Ctx, d.U, d.Flux, mu, rho); err != nil {
			return fmt.Errorf("piso: turbulence solve: %w", err)
		}
	}

	if d.LES != nil {
		d.LES.Accumulate(d.U, d.P)
	}

	return d.checkDivergence()
}

// checkDivergence implements §7's "Numerical divergence": a NaN/Inf
// residual, or no decrease across a configurable window of iterations,
// is fatal.
func (d *Driver) checkDivergence() error {
	maxU := float64(field.MaxAbsScalar(componentMagnitude(d.U), d.R))
	if isNanOrInf(maxU) {
		return fmt.Errorf("%w: velocity magnitude is NaN/Inf", ErrDiverged)
	}
	d.divergenceHistory = append(d.divergenceHistory, maxU)
	window := d.Ctx.Controls.DivergenceWindow
	if window > 0 && len(d.divergenceHistory) > window {
		recent := d.divergenceHistory[len(d.divergenceHistory)-window:]
		min := recent[0]
		for _, v := range recent[1:] {
			if v < min {
				min = v
			}
		}
		if min >= recent[0] {
			return fmt.Errorf("%w: no residual decrease over %d iterations", ErrDiverged, window)
		}
	}
	return nil
}
