package operator

import "github.com/flowcore/fvpiso/field"

// Flx builds the signed mass-flux FaceField F = rho * (U . Sf) (§4.2),
// linearly interpolating the already pressure-corrected momentum field to
// each face and dotting with the face area vector. Per the Rhie-Chow
// resolution recorded in §9, this performs plain linear interpolation: the
// source rebuilds F from the corrected U *after* the `U -= gradP*api`
// velocity correction, with no separate face-reconstructed pressure-gradient
// term computed inside flx itself, so Flx never touches a pressure field or
// the api (1/ap) field directly.
func Flx(u *field.Field[field.Vector], rho float64) *field.FaceField[field.Scalar] {
	mesh := u.Mesh
	out := field.NewFaceField[field.Scalar]("flx("+u.Name+")", mesh)

	for i := 0; i < mesh.NumInternalFaces; i++ {
		uf := faceValueVector(u, i)
		sf := mesh.FaceArea[i]
		out.Vals[i] = field.Scalar(rho * uf.Dot(field.Vector{X: sf.X, Y: sf.Y, Z: sf.Z}))
	}
	for b := 0; b < mesh.NumBoundaryFaces; b++ {
		uf := u.Ghost(b)
		sf := mesh.BoundaryFaceArea[b]
		out.SetBoundary(b, field.Scalar(rho*uf.Dot(field.Vector{X: sf.X, Y: sf.Y, Z: sf.Z})))
	}
	return out
}
