package piso

import (
	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
	"github.com/flowcore/fvpiso/halo"
	"github.com/flowcore/fvpiso/matrix"
	"github.com/flowcore/fvpiso/operator"
	"github.com/flowcore/fvpiso/solver"
)

// DiffusionParams is the `diffusion { ... }` configuration block (§6/§8),
// matching the original source's diffusion() enrolled keys DT/t_UR/
// n_DEFERRED.
type DiffusionParams struct {
	DT        float64
	TUR       float64
	NDeferred int
}

// ParseDiffusionParams reads the `diffusion` block, defaulting DT to 1 as
// the original source's diffusion() does.
func ParseDiffusionParams(ctx *config.Context) DiffusionParams {
	b := ctx.Block("diffusion")
	return DiffusionParams{
		DT:        b.Float("dt", 1),
		TUR:       b.Float("t_ur", 1),
		NDeferred: b.Int("n_deferred", 0),
	}
}

// DiffusionDriver solves pure diffusion, §4.8's
//
//	ddt(T, rho) = lap(T, rho*DT)
//
// for a scalar T with no convective term, the simplest of the specialized
// drivers and the one most directly comparable to §8 scenario A (1-D
// conduction). It shares PISO's deferred-correction outer loop and
// under-relaxation mechanics (§4.8).
type DiffusionDriver struct {
	Mesh *geometry.Mesh
	Ctx  *config.Context
	R    halo.Exchanger

	T      *field.Field[field.Scalar]
	Params DiffusionParams
}

func NewDiffusionDriver(ctx *config.Context, mesh *geometry.Mesh, t *field.Field[field.Scalar], params DiffusionParams, r halo.Exchanger) *DiffusionDriver {
	return &DiffusionDriver{Mesh: mesh, Ctx: ctx, R: r, T: t, Params: params}
}

func (d *DiffusionDriver) Step() error {
	ctrl := d.Ctx.Controls
	rho := d.Ctx.General.Density
	nc := d.Mesh.NumCells

	tOld := append([]field.Scalar(nil), d.T.Internal[:nc]...)
	gamma := field.Uniform[field.Scalar]("rhoDT", d.Mesh, field.Scalar(rho*d.Params.DT))

	nDeferred := d.Params.NDeferred
	if ctrl.State == config.Steady {
		nDeferred = 0
	}

	for n := 0; n <= nDeferred; n++ {
		// Lap is the un-negated Laplacian, so ddt - lap = 0 takes it negated.
		M := matrix.Scale(operator.Lap(d.T, gamma), -1)

		if ctrl.State == config.Steady {
			matrix.Relax(M, d.Params.TUR, d.T.Internal[:nc])
		} else {
			M = matrix.CrankNicolson(M, tOld, ctrl.TimeSchemeFactor)
			M = matrix.Add(M, operator.Ddt(d.Mesh, rho, tOld, ctrl))
		}

		solver.SolveScalar(M, d.T.Internal[:nc], ctrl.SolverTolerance, ctrl.SolverMaxIters, solver.Jacobi{}, d.R)
	}
	return d.T.UpdateExplicitBCs(false)
}
