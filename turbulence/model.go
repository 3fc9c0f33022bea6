// Package turbulence is the closure collaborator described in §4.9: a
// tagged variant of turbulence models sharing one fixed capability set
// (AddTurbulentStress, Solve) instead of a virtual base class, grounded in
// original_source/turbulence/ke/ke.h's KE_Model (itself a KX_Model
// subclass in the source) generalized to every tag Design Notes §9 names.
package turbulence

import (
	"github.com/flowcore/fvpiso/bc"
	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
	"github.com/flowcore/fvpiso/matrix"
)

// Kind tags which closure a run uses, read from `turbulence_model` in the
// case configuration (§4.9).
type Kind int

const (
	None Kind = iota
	MixingLength
	KEpsilon
	RNGKEpsilon
	RealizableKEpsilon
	KOmega
	LES
)

func (k Kind) String() string {
	switch k {
	case MixingLength:
		return "MIXING_LENGTH"
	case KEpsilon:
		return "KEPSILON"
	case RNGKEpsilon:
		return "RNG_KEPSILON"
	case RealizableKEpsilon:
		return "REALIZABLE_KEPSILON"
	case KOmega:
		return "KOMEGA"
	case LES:
		return "LES"
	default:
		return "NONE"
	}
}

// Model is the fixed capability set every closure implements (§4.9):
// contribute an explicit turbulent-stress source to the momentum matrix,
// and advance its own internal state (transport equations, algebraic
// closure, whatever the model needs) by one outer step.
type Model interface {
	Kind() Kind
	EddyViscosity() *field.Field[field.Scalar]
	AddTurbulentStress(m *matrix.MeshMatrix[field.Vector])
	Solve(ctx *config.Context, u *field.Field[field.Vector], flux *field.FaceField[field.Scalar], mu, rho float64) error
}

// New builds the Model for kind over mesh, with nu (molecular kinematic
// viscosity) seeding the initial eddy-viscosity estimate for the transport
// models.
func New(kind Kind, mesh *geometry.Mesh, nu float64) Model {
	switch kind {
	case KEpsilon, RNGKEpsilon, RealizableKEpsilon:
		return newKEpsilon(kind, mesh, nu)
	case KOmega:
		return newKOmega(mesh, nu)
	case MixingLength:
		return newMixingLength(mesh, nu)
	case LES:
		return newLESModel(mesh, nu)
	default:
		return &noneModel{mesh: mesh}
	}
}

// noneModel is the laminar closure: zero eddy viscosity, no momentum
// source, nothing to solve.
type noneModel struct {
	mesh *geometry.Mesh
	mut  *field.Field[field.Scalar]
}

func (m *noneModel) Kind() Kind { return None }

func (m *noneModel) EddyViscosity() *field.Field[field.Scalar] {
	if m.mut == nil {
		m.mut = field.New[field.Scalar]("mu_t", field.None, m.mesh)
	}
	return m.mut
}

func (m *noneModel) AddTurbulentStress(*matrix.MeshMatrix[field.Vector]) {}

func (m *noneModel) Solve(*config.Context, *field.Field[field.Vector], *field.FaceField[field.Scalar], float64, float64) error {
	return nil
}

// registerZeroGradient attaches a Neumann zero-gradient condition to every
// patch on f's mesh. Turbulence quantities (k, epsilon, omega, mu_t) are
// internal to the closure rather than case-file-configured fields, so they
// get a uniform default instead of reading `boundary { ... }` blocks the
// way the primary solved fields do (§4.1's BC-mismatch contract still
// requires every patch to resolve to something before UpdateExplicitBCs
// runs).
func registerZeroGradient(f *field.Field[field.Scalar], mesh *geometry.Mesh) {
	reg := bc.NewRegistry[field.Scalar]()
	for _, p := range mesh.Patches {
		reg.Add(&bc.Condition[field.Scalar]{
			Patch:     p.Name,
			Kind:      bc.Neumann,
			Gradient:  0,
			FaceStart: p.Start,
			FaceEnd:   p.End,
		})
	}
	f.SetBCs(reg)
}
