package operator

import (
	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
	"github.com/flowcore/fvpiso/matrix"
)

// Ddt builds the implicit time-derivative MeshMatrix<T> for rho*V/dt on the
// diagonal and rho*V/dt*phi_old on Su (§4.2): ddt(rho, phi) discretizes
// d(rho*phi)/dt as plain backward Euler. Crank-Nicolson blending (§9:
// ctrl.TimeSchemeFactor, theta of 1 is backward Euler, 0.5 is
// Crank-Nicolson) is applied by the caller to the spatial
// (convection+diffusion+turbulence) matrix via matrix.CrankNicolson before
// this unscaled ddt term is added to it; ddt itself never sees theta.
func Ddt(mesh *geometry.Mesh, rho float64, phiOld []field.Scalar, ctrl config.Controls) *matrix.MeshMatrix[field.Scalar] {
	m := matrix.New[field.Scalar](mesh, matrix.Symmetric)

	for c := 0; c < mesh.NumCells; c++ {
		coeff := field.Scalar(rho * mesh.CellVolume[c] / ctrl.Dt)
		m.Ap[c] = coeff
		m.Su[c] = phiOld[c] * coeff
	}
	return m
}

// DdtVector is Ddt's vector overload, used by the momentum predictor.
func DdtVector(mesh *geometry.Mesh, rho float64, uOld []field.Vector, ctrl config.Controls) *matrix.MeshMatrix[field.Vector] {
	m := matrix.New[field.Vector](mesh, matrix.Symmetric)

	for c := 0; c < mesh.NumCells; c++ {
		coeff := field.Scalar(rho * mesh.CellVolume[c] / ctrl.Dt)
		m.Ap[c] = coeff
		m.Su[c] = uOld[c].Scale(float64(coeff))
	}
	return m
}
