package operator

import (
	"github.com/flowcore/fvpiso/bc"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
)

// lineMesh builds an orthogonal 1-D mesh of n unit-cross-section cells of
// length dx, with "left"/"right" boundary patches — the same fixture shape
// used throughout the piso package's tests, duplicated here since operator
// exercises the same faceValue/nonOrthoCoeff machinery directly.
func lineMesh(n int, dx float64) *geometry.Mesh {
	m := &geometry.Mesh{
		NumCells: n, NumInternalFaces: n - 1, NumBoundaryFaces: 2,
		CellVolume: make([]float64, n), CellCentroid: make([]geometry.Vec3, n),
		Owner: make([]int, n-1), Neighbor: make([]int, n-1),
		FaceArea: make([]geometry.Vec3, n-1), FaceCentroid: make([]geometry.Vec3, n-1),
		OwnerDist: make([]geometry.Vec3, n-1),
		BoundaryOwner: []int{0, n - 1},
		BoundaryFaceArea: []geometry.Vec3{{X: -1}, {X: 1}},
		BoundaryCentroid: []geometry.Vec3{{X: 0}, {X: float64(n) * dx}},
		Patches: []geometry.Patch{{Name: "left", Start: 0, End: 1}, {Name: "right", Start: 1, End: 2}},
	}
	for c := 0; c < n; c++ {
		m.CellVolume[c] = dx
		m.CellCentroid[c] = geometry.Vec3{X: (float64(c) + 0.5) * dx}
	}
	for i := 0; i < n-1; i++ {
		m.Owner[i] = i
		m.Neighbor[i] = i + 1
		m.FaceArea[i] = geometry.Vec3{X: 1}
		m.FaceCentroid[i] = geometry.Vec3{X: float64(i+1) * dx}
		m.OwnerDist[i] = m.CellCentroid[i+1].Sub(m.CellCentroid[i])
	}
	return m
}

// dirichletScalar builds a scalar field over mesh with Dirichlet BCs lo/hi
// on its left/right patches, its ghosts already updated.
func dirichletScalar(mesh *geometry.Mesh, lo, hi float64) *field.Field[field.Scalar] {
	f := field.New[field.Scalar]("phi", field.ReadWrite, mesh)
	reg := bc.NewRegistry[field.Scalar]()
	reg.Add(&bc.Condition[field.Scalar]{Patch: "left", Kind: bc.Dirichlet, Value: field.Scalar(lo)})
	reg.Add(&bc.Condition[field.Scalar]{Patch: "right", Kind: bc.Dirichlet, Value: field.Scalar(hi)})
	f.SetBCs(reg)
	for c := range f.Internal[:mesh.NumCells] {
		f.Internal[c] = field.Scalar(lo)
	}
	_ = f.UpdateExplicitBCs(false)
	return f
}
