package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/field"
)

func TestDdt_DiagonalAndSourceScaleWithVolumeOverDt(t *testing.T) {
	mesh := lineMesh(4, 0.5)
	phiOld := []field.Scalar{1, 2, 3, 4}
	ctrl := config.Controls{Dt: 0.1, TimeSchemeFactor: 1}

	m := Ddt(mesh, 2, phiOld, ctrl)

	want := 2 * 0.5 / 0.1
	for c := range m.Ap {
		assert.InDelta(t, want, float64(m.Ap[c]), 1e-9, "cell %d", c)
		assert.InDelta(t, float64(phiOld[c])*want, float64(m.Su[c]), 1e-9, "cell %d", c)
	}
}

func TestDdt_IsIndependentOfTimeSchemeFactor(t *testing.T) {
	mesh := lineMesh(2, 1)
	phiOld := []field.Scalar{3, -1}
	euler := Ddt(mesh, 1, phiOld, config.Controls{Dt: 1, TimeSchemeFactor: 1})
	cn := Ddt(mesh, 1, phiOld, config.Controls{Dt: 1, TimeSchemeFactor: 0.5})
	for c := range euler.Ap {
		assert.InDelta(t, float64(euler.Ap[c]), float64(cn.Ap[c]), 1e-9, "cell %d", c)
		assert.InDelta(t, float64(euler.Su[c]), float64(cn.Su[c]), 1e-9, "cell %d", c)
	}
}

func TestDdtVector_ScalesOldVelocityByDiagonalCoeff(t *testing.T) {
	mesh := lineMesh(2, 1)
	uOld := []field.Vector{{X: 1}, {X: -2}}
	ctrl := config.Controls{Dt: 1, TimeSchemeFactor: 1}
	m := DdtVector(mesh, 3, uOld, ctrl)
	for c := range m.Ap {
		assert.InDelta(t, float64(uOld[c].X)*float64(m.Ap[c]), m.Su[c].X, 1e-9, "cell %d", c)
	}
}
