package turbulence

import (
	"testing"

	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
	"github.com/flowcore/fvpiso/matrix"
)

func oneCellMesh() *geometry.Mesh {
	return &geometry.Mesh{
		NumCells:     1,
		CellVolume:   []float64{1},
		CellCentroid: []geometry.Vec3{{}},
		Patches:      []geometry.Patch{{Name: "wall", Start: 0, End: 0}},
	}
}

func TestNoneModel_ZeroEverywhere(t *testing.T) {
	mesh := oneCellMesh()
	m := New(None, mesh, 1e-5)
	if m.Kind() != None {
		t.Fatalf("Kind() = %v, want None", m.Kind())
	}
	mut := m.EddyViscosity()
	for _, v := range mut.Internal {
		if v != 0 {
			t.Errorf("laminar model should have zero eddy viscosity, got %v", v)
		}
	}
	stress := matrix.New[field.Vector](mesh, matrix.Symmetric)
	m.AddTurbulentStress(stress)
	for _, v := range stress.Su {
		if v != (field.Vector{}) {
			t.Errorf("noneModel.AddTurbulentStress must not add any source, got %v", v)
		}
	}
	if err := m.Solve(nil, nil, nil, 0, 0); err != nil {
		t.Errorf("noneModel.Solve returned %v, want nil", err)
	}
}

func TestNew_DispatchesOnKind(t *testing.T) {
	mesh := oneCellMesh()
	cases := []Kind{KEpsilon, RNGKEpsilon, RealizableKEpsilon, KOmega, MixingLength, LES}
	for _, k := range cases {
		m := New(k, mesh, 1e-5)
		if m == nil {
			t.Fatalf("New(%v) returned nil", k)
		}
		if m.EddyViscosity() == nil {
			t.Errorf("New(%v).EddyViscosity() returned nil", k)
		}
	}
}
