package operator

import (
	"github.com/flowcore/fvpiso/field"
)

// GradScalar computes ∇φ by the Gauss divergence theorem (§4.2):
// ∇φ_c = (1/V_c) Σ_faces φ_f · Ŝ_f, φ_f from linear face interpolation.
// Boundary faces use the field's already-evaluated ghost value, so callers
// must have called phi.UpdateExplicitBCs beforehand (§4.1 contract).
func GradScalar(phi *field.Field[field.Scalar]) *field.Field[field.Vector] {
	mesh := phi.Mesh
	out := field.New[field.Vector]("grad("+phi.Name+")", field.None, mesh)

	for i := 0; i < mesh.NumInternalFaces; i++ {
		phiF := faceValueScalar(phi, i)
		sf := mesh.FaceArea[i]
		contrib := field.Vector{X: sf.X, Y: sf.Y, Z: sf.Z}.Scale(float64(phiF))
		o, n := mesh.Owner[i], mesh.Neighbor[i]
		out.Internal[o] = out.Internal[o].Add(contrib)
		out.Internal[n] = out.Internal[n].Sub(contrib)
	}
	for b := 0; b < mesh.NumBoundaryFaces; b++ {
		phiF := phi.Ghost(b)
		sf := mesh.BoundaryFaceArea[b]
		contrib := field.Vector{X: sf.X, Y: sf.Y, Z: sf.Z}.Scale(float64(phiF))
		owner := mesh.BoundaryOwner[b]
		out.Internal[owner] = out.Internal[owner].Add(contrib)
	}
	for c := 0; c < mesh.NumCells; c++ {
		out.Internal[c] = out.Internal[c].Scale(1 / mesh.CellVolume[c])
	}
	return out
}

// GradVector computes ∇U as a Tensor field, the vector-input overload of
// the same Gauss-theorem operator (§4.2).
func GradVector(u *field.Field[field.Vector]) *field.Field[field.Tensor] {
	mesh := u.Mesh
	out := field.New[field.Tensor]("grad("+u.Name+")", field.None, mesh)

	for i := 0; i < mesh.NumInternalFaces; i++ {
		uF := faceValueVector(u, i)
		sf := u.Mesh.FaceArea[i]
		contrib := field.VectorOuter(uF, field.Vector{X: sf.X, Y: sf.Y, Z: sf.Z})
		o, n := mesh.Owner[i], mesh.Neighbor[i]
		out.Internal[o] = out.Internal[o].Add(contrib)
		out.Internal[n] = out.Internal[n].Sub(contrib)
	}
	for b := 0; b < mesh.NumBoundaryFaces; b++ {
		uF := u.Ghost(b)
		sf := mesh.BoundaryFaceArea[b]
		contrib := field.VectorOuter(uF, field.Vector{X: sf.X, Y: sf.Y, Z: sf.Z})
		owner := mesh.BoundaryOwner[b]
		out.Internal[owner] = out.Internal[owner].Add(contrib)
	}
	for c := 0; c < mesh.NumCells; c++ {
		out.Internal[c] = out.Internal[c].Scale(1 / mesh.CellVolume[c])
	}
	return out
}
