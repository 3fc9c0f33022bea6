package piso

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcore/fvpiso/bc"
	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/halo"
)

// Scenario A (§8): steady 1-D conduction between two fixed temperatures must
// converge to the analytic linear profile T(x) = T_left + (T_right-T_left)*x/L.
func TestDiffusionDriver_SteadyConductionIsLinear(t *testing.T) {
	const n = 10
	const dx = 0.1
	mesh := newLineMesh(n, dx)

	reg := bc.NewRegistry[field.Scalar]()
	reg.Add(&bc.Condition[field.Scalar]{Patch: "left", Kind: bc.Dirichlet, Value: 0})
	reg.Add(&bc.Condition[field.Scalar]{Patch: "right", Kind: bc.Dirichlet, Value: 100})

	tField := field.New[field.Scalar]("T", field.ReadWrite, mesh)
	tField.SetBCs(reg)
	require.NoError(t, tField.UpdateExplicitBCs(false))

	ctx := &config.Context{
		General: config.General{Density: 1},
		Controls: config.Controls{
			State:           config.Steady,
			SolverTolerance: 1e-10,
			SolverMaxIters:  1000,
		},
	}

	drv := NewDiffusionDriver(ctx, mesh, tField, DiffusionParams{DT: 1.0, TUR: 1}, halo.Local{})
	require.NoError(t, drv.Step())

	L := float64(n) * dx
	for c := 0; c < n; c++ {
		x := (float64(c) + 0.5) * dx
		want := 100 * x / L
		assert.InDelta(t, want, float64(tField.Internal[c]), 1e-6, "cell %d", c)
	}
}

// Transient conduction with both ends held at the same temperature and an
// elevated initial condition must monotonically decay toward that common
// boundary value (no overshoot, no oscillation) as it marches forward.
func TestDiffusionDriver_TransientDecaysTowardBoundary(t *testing.T) {
	const n = 8
	const dx = 0.1
	mesh := newLineMesh(n, dx)

	reg := bc.NewRegistry[field.Scalar]()
	reg.Add(&bc.Condition[field.Scalar]{Patch: "left", Kind: bc.Dirichlet, Value: 0})
	reg.Add(&bc.Condition[field.Scalar]{Patch: "right", Kind: bc.Dirichlet, Value: 0})

	tField := field.New[field.Scalar]("T", field.ReadWrite, mesh)
	tField.SetBCs(reg)
	for c := 0; c < n; c++ {
		tField.Internal[c] = 10
	}
	require.NoError(t, tField.UpdateExplicitBCs(false))

	ctx := &config.Context{
		General: config.General{Density: 1},
		Controls: config.Controls{
			State:            config.Transient,
			Dt:               0.01,
			TimeSchemeFactor: 1,
			SolverTolerance:  1e-10,
			SolverMaxIters:   1000,
		},
	}

	drv := NewDiffusionDriver(ctx, mesh, tField, DiffusionParams{DT: 1.0, TUR: 1}, halo.Local{})

	prevMax := math.Inf(1)
	for step := 0; step < 20; step++ {
		require.NoError(t, drv.Step())
		maxVal := 0.0
		for c := 0; c < n; c++ {
			if v := float64(tField.Internal[c]); v > maxVal {
				maxVal = v
			}
		}
		assert.LessOrEqual(t, maxVal, prevMax+1e-9, "step %d: peak temperature increased", step)
		prevMax = maxVal
	}
	assert.Less(t, prevMax, 10.0)
}
