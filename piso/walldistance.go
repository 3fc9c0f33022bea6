package piso

import (
	"fmt"
	"math"

	"github.com/flowcore/fvpiso/bc"
	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
	"github.com/flowcore/fvpiso/halo"
	"github.com/flowcore/fvpiso/matrix"
	"github.com/flowcore/fvpiso/operator"
	"github.com/flowcore/fvpiso/solver"
)

// wallDistanceOrthoPasses is the number of times Lap is reassembled against
// the latest phi to resolve its non-orthogonal correction (§4.2), the same
// reassemble-and-resolve pattern the PISO pressure loop uses for n_ORTHO.
const wallDistanceOrthoPasses = 3

// WallDistance implements §4.6's auxiliary field: solve div(grad(phi)) = -1
// with phi = 0 on WALL patches and zero-gradient everywhere else, then
// recover the approximate wall distance
//
//	y = sqrt(|grad(phi)|^2 + 2*phi) - |grad(phi)|
//
// the Spalding formula used to turn the Poisson solution into a distance
// field without tracing rays to the nearest wall face.
func WallDistance(ctx *config.Context, mesh *geometry.Mesh, r halo.Exchanger) (*field.Field[field.Scalar], error) {
	phi := field.New[field.Scalar]("wallDistancePhi", field.None, mesh)

	reg := bc.NewRegistry[field.Scalar]()
	for _, p := range mesh.Patches {
		kind := bc.KindForPatch(p.Name)
		c := &bc.Condition[field.Scalar]{Patch: p.Name, FaceStart: p.Start, FaceEnd: p.End}
		if kind == bc.Wall {
			c.Kind = bc.Dirichlet
			c.Value = 0
		} else {
			c.Kind = bc.Neumann
			c.Gradient = 0
		}
		reg.Add(c)
	}
	phi.SetBCs(reg)
	if err := phi.UpdateExplicitBCs(false); err != nil {
		return nil, fmt.Errorf("piso: wall distance: %w", err)
	}

	gammaOne := field.Uniform[field.Scalar]("unitDiffusivity", mesh, 1)
	ctrl := ctx.Controls

	rhs := make([]field.Scalar, mesh.NumCells)
	for c := 0; c < mesh.NumCells; c++ {
		rhs[c] = field.Scalar(-mesh.CellVolume[c])
	}
	for pass := 0; pass < wallDistanceOrthoPasses; pass++ {
		m := operator.Lap(phi, gammaOne)
		solved := matrix.Solve(m, rhs)
		solver.SolveScalar(solved, phi.Internal[:mesh.NumCells], ctrl.SolverTolerance, ctrl.SolverMaxIters, solver.Jacobi{}, r)
		if err := phi.UpdateExplicitBCs(false); err != nil {
			return nil, fmt.Errorf("piso: wall distance: %w", err)
		}
	}

	gradPhi := operator.GradScalar(phi)
	y := field.New[field.Scalar]("y", field.ReadWrite, mesh)
	for c := 0; c < mesh.NumCells; c++ {
		g := gradPhi.Internal[c].Mag()
		p := float64(phi.Internal[c])
		y.Internal[c] = field.Scalar(sqrtNonNeg(g*g+2*p) - g)
	}
	return y, nil
}

func sqrtNonNeg(v float64) float64 {
	if v < 0 {
		return 0
	}
	return math.Sqrt(v)
}
