package turbulence

import (
	"math"

	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
	"github.com/flowcore/fvpiso/matrix"
	"github.com/flowcore/fvpiso/operator"
)

// lesModel is a Smagorinsky sub-grid closure: mu_t = rho*(Cs*Delta)^2*|S|,
// with the filter width Delta taken as the cube root of cell volume — the
// same cell-size proxy mixingLengthModel uses, since both are
// algebraic-strain closures differing only in their length-scale
// constant and physical interpretation (§4.9).
type lesModel struct {
	mesh  *geometry.Mesh
	mut   *field.Field[field.Scalar]
	delta []float64
	Cs    float64
}

func newLESModel(mesh *geometry.Mesh, nu float64) *lesModel {
	m := &lesModel{
		mesh:  mesh,
		mut:   field.New[field.Scalar]("mu_t", field.None, mesh),
		delta: make([]float64, mesh.NumCells),
		Cs:    0.17,
	}
	registerZeroGradient(m.mut, mesh)
	for c := range m.delta {
		m.delta[c] = math.Cbrt(mesh.CellVolume[c])
	}
	_ = nu
	return m
}

func (m *lesModel) Kind() Kind                              { return LES }
func (m *lesModel) EddyViscosity() *field.Field[field.Scalar] { return m.mut }

func (m *lesModel) AddTurbulentStress(*matrix.MeshMatrix[field.Vector]) {
	// Like mixingLengthModel, the sub-grid stress is realized entirely
	// through mu_t feeding the momentum diffusion operator; there is no
	// separate isotropic source term for a Smagorinsky closure.
}

func (m *lesModel) Solve(ctx *config.Context, u *field.Field[field.Vector], flux *field.FaceField[field.Scalar], mu, rho float64) error {
	gradU := operator.GradVector(u)
	for c := 0; c < m.mesh.NumCells; c++ {
		s := gradU.Internal[c].Symm()
		sDotS := s.XX*s.XX + s.YY*s.YY + s.ZZ*s.ZZ + 2*(s.XY*s.XY+s.YZ*s.YZ+s.XZ*s.XZ)
		strainMag := math.Sqrt(2 * sDotS)
		ls := m.Cs * m.delta[c]
		m.mut.Internal[c] = field.Scalar(rho * ls * ls * strainMag)
	}
	m.mut.UpdateExplicitBCs(false)
	return nil
}
