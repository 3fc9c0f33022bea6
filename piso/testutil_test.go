package piso

import "github.com/flowcore/fvpiso/geometry"

// newLineMesh builds a 1-D orthogonal mesh of n unit-cross-section cells of
// width dx laid out along X, with two boundary patches ("left", "right") of
// one face each. Being perfectly orthogonal (every OwnerDist is parallel to
// its face area vector), the non-orthogonal correction terms in operator.Lap
// vanish exactly, making this a convenient fixture for scenario A/E's single-
// or few-pass Poisson solves.
func newLineMesh(n int, dx float64) *geometry.Mesh {
	m := &geometry.Mesh{
		NumCells:         n,
		NumInternalFaces: n - 1,
		NumBoundaryFaces: 2,
		CellVolume:       make([]float64, n),
		CellCentroid:     make([]geometry.Vec3, n),
		Owner:            make([]int, n-1),
		Neighbor:         make([]int, n-1),
		FaceArea:         make([]geometry.Vec3, n-1),
		FaceCentroid:     make([]geometry.Vec3, n-1),
		OwnerDist:        make([]geometry.Vec3, n-1),
		BoundaryOwner:    []int{0, n - 1},
		BoundaryFaceArea: []geometry.Vec3{{X: -1}, {X: 1}},
		BoundaryCentroid: []geometry.Vec3{{X: 0}, {X: float64(n) * dx}},
		Patches: []geometry.Patch{
			{Name: "left", Start: 0, End: 1},
			{Name: "right", Start: 1, End: 2},
		},
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

// newWallLineMesh is newLineMesh but both boundary patches are named so
// bc.KindForPatch resolves them to Wall, for walldistance_test.go.
func newWallLineMesh(n int, dx float64) *geometry.Mesh {
	m := newLineMesh(n, dx)
	m.Patches = []geometry.Patch{
		{Name: "leftWall", Start: 0, End: 1},
		{Name: "rightWall", Start: 1, End: 2},
	}
	return m
}
