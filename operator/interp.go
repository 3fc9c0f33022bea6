// Package operator implements the differential operators of §4.2: each is
// overloaded (in spirit — Go has no operator overloading, so each gets an
// explicit name) to return either a Field (explicit) or a MeshMatrix
// (implicit) result.
package operator

import (
	"math"

	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
)

// ownerWeight returns the linear-interpolation weight applied to the
// owner-side cell value when building a face value: phi_f = w*phi_owner +
// (1-w)*phi_neighbor, weighted by inverse distance to the face.
func ownerWeight(mesh *geometry.Mesh, i int) float64 {
	co := mesh.CellCentroid[mesh.Owner[i]]
	cn := mesh.CellCentroid[mesh.Neighbor[i]]
	cf := mesh.FaceCentroid[i]
	do := mag(cf.Sub(co))
	dn := mag(cn.Sub(cf))
	if do+dn == 0 {
		return 0.5
	}
	return dn / (do + dn)
}

func mag(v geometry.Vec3) float64 { return math.Sqrt(v.Dot(v)) }

// toVec3 converts a field.Vector (algebra-carrying) to a geometry.Vec3
// (bare geometric vector), needed wherever a gradient or flux value must be
// dotted against face geometry.
func toVec3(v field.Vector) geometry.Vec3 { return geometry.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// faceValueScalar linearly interpolates a cell Scalar field to internal
// face i (§4.2: "uses linear face interpolation").
func faceValueScalar(phi *field.Field[field.Scalar], i int) field.Scalar {
	w := ownerWeight(phi.Mesh, i)
	o, n := phi.Mesh.Owner[i], phi.Mesh.Neighbor[i]
	return phi.Internal[o].Scale(w).Add(phi.Internal[n].Scale(1 - w))
}

func faceValueVector(u *field.Field[field.Vector], i int) field.Vector {
	w := ownerWeight(u.Mesh, i)
	o, n := u.Mesh.Owner[i], u.Mesh.Neighbor[i]
	return u.Internal[o].Scale(w).Add(u.Internal[n].Scale(1 - w))
}

// nonOrthoCoeff implements the face-normal diffusion split from §4.2/§9:
// the orthogonal part gamma*(Sf.Sf)/(Sf.d) is routed into an/ap, and the
// remainder direction Tf = Sf - (Sf.Sf/Sf.d)*d carries the non-orthogonal
// correction, explicitly into Su.
func nonOrthoCoeff(sf, d geometry.Vec3) (orthoCoeff float64, tf geometry.Vec3) {
	sfDotD := sf.Dot(d)
	if sfDotD == 0 {
		return 0, sf
	}
	magE := sf.Dot(sf) / sfDotD
	e := d.Scale(magE)
	return magE, sf.Sub(e)
}

// schemeWeight chooses the convective face weight per the global scheme
// selector (§4.2): upwind uses 0/1 depending on flux sign, central uses the
// linear interpolation weight, TVD uses the central weight implicitly and
// contributes its higher-order part through Su by the caller (deferred
// correction), never into the diagonal coefficient.
func schemeWeight(ctrl config.Controls, linW float64, flux float64) float64 {
	switch ctrl.ConvectionScheme {
	case config.Central, config.TVD:
		return linW
	default: // Upwind
		if flux >= 0 {
			return 1
		}
		return 0
	}
}
