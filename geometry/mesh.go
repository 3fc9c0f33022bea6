// Package geometry is the read-only geometry view described in §4.1 of the
// specification: cell volumes, face area vectors, owner/neighbor indices,
// centroids, and boundary patch descriptors. Mesh file parsing and geometry
// precomputation are, per §1, "deliberately out of scope" for the PDE core
// and are treated as an external collaborator — but a module has to run
// end-to-end, so this package is a real (if intentionally simple) adapter
// behind that interface rather than a left-out stub.
package geometry

import (
	"fmt"
	"math"
)

// Patch describes a contiguous run of boundary faces sharing a name; it
// carries no physical kind (bc.KindForPatch derives a default kind from the
// name). The face range for a patch is
// always contiguous because boundary faces are grouped by patch at mesh
// load time (§3).
type Patch struct {
	Name  string
	Start int // index into boundary face arrays, 0-based
	End   int // half-open
}

// Vec3 is a bare 3-vector used only for geometric bookkeeping (face area
// vectors, centroids); field.Vector is the algebra-carrying counterpart used
// by the field/operator layers.
type Vec3 struct{ X, Y, Z float64 }

func (a Vec3) Add(b Vec3) Vec3    { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3    { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Mesh is the core's read-only geometry handle. It is passed explicitly into
// every operator and driver call instead of living behind a file-scope
// mesh singleton (Design Notes §9).
type Mesh struct {
	NumCells         int
	NumInternalFaces int
	NumBoundaryFaces int // NumBoundaryFaces == ghost-cell count Nb

	CellVolume   []float64 // len NumCells
	CellCentroid []Vec3    // len NumCells

	// Internal-face geometry, len NumInternalFaces.
	Owner        []int // owner cell of face i
	Neighbor     []int // neighbor cell of face i
	FaceArea     []Vec3 // outward-from-owner area vector S_f
	FaceCentroid []Vec3
	OwnerDist    []Vec3 // centroid(neighbor) - centroid(owner), for non-orthogonal correction

	// Boundary-face geometry, len NumBoundaryFaces. Boundary face b's "owner"
	// cell is BoundaryOwner[b], and its ghost cell index in a Field's
	// internal array is NumCells+b.
	BoundaryOwner    []int
	BoundaryFaceArea []Vec3
	BoundaryCentroid []Vec3

	Patches []Patch
}

// GhostIndex converts a boundary-face index into the position of its ghost
// value inside a Field's Internal array (§3: "ghost cells follow internal
// cells").
func (m *Mesh) GhostIndex(boundaryFace int) int { return m.NumCells + boundaryFace }

// PatchOf returns the patch owning boundary face b.
func (m *Mesh) PatchOf(b int) (Patch, error) {
	for _, p := range m.Patches {
		if b >= p.Start && b < p.End {
			return p, nil
		}
	}
	return Patch{}, fmt.Errorf("geometry: boundary face %d belongs to no patch", b)
}

// CheckClosure validates the conservation invariant from §3/§8 property 2:
// for every cell, the sum of signed face-area vectors over its faces is
// zero to within 1e-10 * max|Sf|.
func (m *Mesh) CheckClosure() error {
	sum := make([]Vec3, m.NumCells)
	maxArea := 0.0
	for i := 0; i < m.NumInternalFaces; i++ {
		sf := m.FaceArea[i]
		sum[m.Owner[i]] = sum[m.Owner[i]].Add(sf)
		sum[m.Neighbor[i]] = sum[m.Neighbor[i]].Sub(sf)
		if mag := vecMag(sf); mag > maxArea {
			maxArea = mag
		}
	}
	for b := 0; b < m.NumBoundaryFaces; b++ {
		sf := m.BoundaryFaceArea[b]
		sum[m.BoundaryOwner[b]] = sum[m.BoundaryOwner[b]].Add(sf)
		if mag := vecMag(sf); mag > maxArea {
			maxArea = mag
		}
	}
	tol := 1e-10 * maxArea
	for c, s := range sum {
		if vecMag(s) > tol {
			return fmt.Errorf("geometry: cell %d fails closure invariant: |sum Sf| = %g > tol %g", c, vecMag(s), tol)
		}
	}
	return nil
}

func vecMag(v Vec3) float64 {
	return math.Sqrt(v.Dot(v))
}
