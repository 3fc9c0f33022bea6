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

// TransportParams is the `transport { ... }` configuration block (§6/§8),
// matching the original source's transport() enrolled keys DT/t_UR/
// n_DEFERRED (DT defaults to 4e-2 there, distinct from diffusion's default
// of 1).
type TransportParams struct {
	DT        float64
	TUR       float64
	NDeferred int
}

// ParseTransportParams reads the `transport` block.
func ParseTransportParams(ctx *config.Context) TransportParams {
	b := ctx.Block("transport")
	return TransportParams{
		DT:        b.Float("dt", 4e-2),
		TUR:       b.Float("t_ur", 1),
		NDeferred: b.Int("n_deferred", 0),
	}
}

// TransportDriver solves passive-scalar transport, §4.8's
//
//	ddt(T, rho) + div(T, F, rho*DT) = lap(T, rho*DT)
//
// against a caller-supplied, already-converged mass flux F (typically
// d.Flux from a PISO Driver run to steady state, or a frozen field for a
// one-way-coupled scalar). div(T,F,gamma) assembles convection and
// diffusion in the same pass Lap would use for the diffusion term alone, so
// adding it to ddt already gives the full implicit equation with no
// separate lap term to subtract. It shares PISO's deferred-correction
// outer loop and under-relaxation mechanics (§4.8).
type TransportDriver struct {
	Mesh *geometry.Mesh
	Ctx  *config.Context
	R    halo.Exchanger

	T      *field.Field[field.Scalar]
	Flux   *field.FaceField[field.Scalar]
	Params TransportParams
}

func NewTransportDriver(ctx *config.Context, mesh *geometry.Mesh, t *field.Field[field.Scalar], flux *field.FaceField[field.Scalar], params TransportParams, r halo.Exchanger) *TransportDriver {
	return &TransportDriver{Mesh: mesh, Ctx: ctx, R: r, T: t, Flux: flux, Params: params}
}

func (d *TransportDriver) Step() error {
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
		M := operator.Div(d.T, d.Flux, gamma, ctrl)

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
