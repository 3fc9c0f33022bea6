package turbulence

import (
	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
	"github.com/flowcore/fvpiso/matrix"
	"github.com/flowcore/fvpiso/operator"
)

// kOmegaModel is Wilcox k-omega, sharing the k-epsilon family's
// production/isotropic-stress machinery but closing on k and specific
// dissipation rate omega instead of epsilon, with mu_t = rho*k/omega
// replacing ke.h's eddy_mu formula (§4.9: "compute an eddy viscosity from
// the same mixing-length/k-epsilon family of closures with model-specific
// constants").
type kOmegaModel struct {
	mesh       *geometry.Mesh
	k, omega   *field.Field[field.Scalar]
	mut        *field.Field[field.Scalar]
	BetaStar   float64
	Alpha      float64
	Beta       float64
	SigmaK     float64
	SigmaOmega float64
	rho        float64
}

func newKOmega(mesh *geometry.Mesh, nu float64) *kOmegaModel {
	m := &kOmegaModel{
		mesh: mesh,
		k:    field.New[field.Scalar]("k", field.ReadWrite, mesh),
		omega: field.New[field.Scalar]("omega", field.ReadWrite, mesh),
		mut:  field.New[field.Scalar]("mu_t", field.None, mesh),

		BetaStar: 0.09, Alpha: 5.0 / 9.0, Beta: 3.0 / 40.0, SigmaK: 0.5, SigmaOmega: 0.5,
		rho: 1,
	}
	registerZeroGradient(m.k, mesh)
	registerZeroGradient(m.omega, mesh)
	registerZeroGradient(m.mut, mesh)
	for c := range m.k.Internal {
		m.k.Internal[c] = field.Scalar(1.5 * (0.05 * nu) * (0.05 * nu))
		m.omega.Internal[c] = field.Scalar(nu / m.BetaStar)
	}
	m.calcEddyMu()
	return m
}

func (m *kOmegaModel) Kind() Kind                              { return KOmega }
func (m *kOmegaModel) EddyViscosity() *field.Field[field.Scalar] { return m.mut }

func (m *kOmegaModel) calcEddyMu() {
	for c := range m.mut.Internal {
		w := m.omega.Internal[c]
		if w <= 0 {
			m.mut.Internal[c] = 0
			continue
		}
		m.mut.Internal[c] = field.Scalar(m.rho) * m.k.Internal[c] / w
	}
}

func (m *kOmegaModel) AddTurbulentStress(mm *matrix.MeshMatrix[field.Vector]) {
	twoThirdsK := m.k.Clone()
	for c := range twoThirdsK.Internal {
		twoThirdsK.Internal[c] = twoThirdsK.Internal[c].Scale(2.0 / 3.0)
	}
	twoThirdsK.UpdateExplicitBCs(false)
	gradK := operator.GradScalar(twoThirdsK)
	for c := 0; c < m.mesh.NumCells; c++ {
		mm.Su[c] = mm.Su[c].Sub(gradK.Internal[c].Scale(m.mesh.CellVolume[c]))
	}
}

// Solve advances k and omega explicitly from the production/destruction
// balance cell-by-cell (a simplified algebraic update rather than a full
// convection-diffusion solve), appropriate for a closure that is carried as
// a swappable, non-primary concern (§4.9).
func (m *kOmegaModel) Solve(ctx *config.Context, u *field.Field[field.Vector], flux *field.FaceField[field.Scalar], mu, rho float64) error {
	m.rho = rho
	prod := production(u, m.mut, rho)
	dt := ctx.Controls.Dt
	for c := 0; c < m.mesh.NumCells; c++ {
		dk := float64(prod[c]) - m.BetaStar*float64(rho)*float64(m.k.Internal[c])*float64(m.omega.Internal[c])
		m.k.Internal[c] += field.Scalar(dk * dt / (rho * m.mesh.CellVolume[c]))
		if m.k.Internal[c] < 1e-12 {
			m.k.Internal[c] = 1e-12
		}

		domega := m.Alpha*float64(prod[c])/float64(m.mut.Internal[c]+1e-12) - m.Beta*float64(rho)*float64(m.omega.Internal[c])*float64(m.omega.Internal[c])
		m.omega.Internal[c] += field.Scalar(domega * dt / (rho * m.mesh.CellVolume[c]))
		if m.omega.Internal[c] < 1e-12 {
			m.omega.Internal[c] = 1e-12
		}
	}
	m.k.UpdateExplicitBCs(false)
	m.omega.UpdateExplicitBCs(false)
	m.calcEddyMu()
	return nil
}
