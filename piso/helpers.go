package piso

import (
	"math"

	"github.com/flowcore/fvpiso/diag"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
)

// effectiveViscosity builds mu_eff = rho*nu + mu_t as a FaceField,
// interpolating the turbulence model's (already dynamic) eddy viscosity to
// faces and densifying the molecular kinematic viscosity to match, so the
// diffusion term stays dimensionally consistent with the convective mass
// flux F = rho*U*Sf (§4.5.a).
func effectiveViscosity(mesh *geometry.Mesh, rho, nu float64, mut *field.Field[field.Scalar]) *field.FaceField[field.Scalar] {
	mu := field.Scalar(rho * nu)
	out := field.NewFaceField[field.Scalar]("mu_eff", mesh)
	for i := 0; i < mesh.NumInternalFaces; i++ {
		o, n := mesh.Owner[i], mesh.Neighbor[i]
		avg := (mut.Internal[o] + mut.Internal[n]) * 0.5
		out.Vals[i] = mu + avg
	}
	for b := 0; b < mesh.NumBoundaryFaces; b++ {
		owner := mesh.BoundaryOwner[b]
		out.SetBoundary(b, mu+mut.Internal[owner])
	}
	return out
}

// cellToFace interpolates a per-cell Scalar slice to a FaceField as the
// plain average of owner and neighbor (0.5 each, with no distance weighting;
// boundary faces take the owner value), built here since the Poisson coefficient rho*api*V is built fresh each
// non-orthogonal pass and is not itself a field.Field.
func cellToFace(mesh *geometry.Mesh, cellVals []field.Scalar) *field.FaceField[field.Scalar] {
	out := field.NewFaceField[field.Scalar]("face("+"cellVals"+")", mesh)
	for i := 0; i < mesh.NumInternalFaces; i++ {
		o, n := mesh.Owner[i], mesh.Neighbor[i]
		out.Vals[i] = (cellVals[o] + cellVals[n]) * 0.5
	}
	for b := 0; b < mesh.NumBoundaryFaces; b++ {
		owner := mesh.BoundaryOwner[b]
		out.SetBoundary(b, cellVals[owner])
	}
	return out
}

// rawFluxDivergence returns, per cell, rho times the net outward face-area
// flux of u — the un-normalized (not divided by cell volume) divergence
// that lap's flux-based coefficients are dimensionally consistent with,
// used as the pressure-equation RHS in div(rho*U_a) (§4.5.e).
func rawFluxDivergence(mesh *geometry.Mesh, u *field.Field[field.Vector], rho float64) []field.Scalar {
	out := make([]field.Scalar, mesh.NumCells)
	for i := 0; i < mesh.NumInternalFaces; i++ {
		o, n := mesh.Owner[i], mesh.Neighbor[i]
		uf := faceAverageVector(u, i)
		sf := mesh.FaceArea[i]
		flux := field.Scalar(rho * uf.Dot(field.Vector{X: sf.X, Y: sf.Y, Z: sf.Z}))
		out[o] += flux
		out[n] -= flux
	}
	for b := 0; b < mesh.NumBoundaryFaces; b++ {
		owner := mesh.BoundaryOwner[b]
		uf := u.Ghost(b)
		sf := mesh.BoundaryFaceArea[b]
		out[owner] += field.Scalar(rho * uf.Dot(field.Vector{X: sf.X, Y: sf.Y, Z: sf.Z}))
	}
	return out
}

func faceAverageVector(u *field.Field[field.Vector], i int) field.Vector {
	mesh := u.Mesh
	o, n := mesh.Owner[i], mesh.Neighbor[i]
	return u.Internal[o].Add(u.Internal[n]).Scale(0.5)
}

// componentMagnitude returns |U| per cell as a Scalar field, used by the
// divergence check (§7).
func componentMagnitude(u *field.Field[field.Vector]) *field.Field[field.Scalar] {
	out := field.New[field.Scalar]("|U|", field.None, u.Mesh)
	for c := 0; c < u.Mesh.NumCells; c++ {
		out.Internal[c] = field.Scalar(u.Internal[c].Mag())
	}
	return out
}

func isNanOrInf(v float64) bool {
	return diag.IsNan([]float64{v}) || math.IsInf(v, 0)
}
