package operator

import (
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/matrix"
)

// Lap builds the implicit Laplacian MeshMatrix<T> for face diffusivity
// gamma (§4.2): face-normal diffusion gamma_f*(Sf.Sf)/(Sf.d) on the
// owner/neighbor off-diagonals, with the non-orthogonal remainder routed
// explicitly into Su rather than folded into the diagonal (§9: "Implementers
// must preserve the distinction between the orthogonal part of face
// gradients (routed into an) and the skewness correction (routed into Su);
// tests 2 and 3 above fail otherwise.").
//
// phi supplies the current field value, used only to evaluate the
// non-orthogonal correction via its already-computed gradient; the outer
// n_ORTHO loop in the PISO driver re-invokes Lap with the latest phi each
// pass (§4.2).
func Lap(phi *field.Field[field.Scalar], gamma *field.FaceField[field.Scalar]) *matrix.MeshMatrix[field.Scalar] {
	mesh := phi.Mesh
	m := matrix.New[field.Scalar](mesh, matrix.Symmetric)

	grad := GradScalar(phi)

	for i := 0; i < mesh.NumInternalFaces; i++ {
		sf := mesh.FaceArea[i]
		d := mesh.OwnerDist[i]
		orthoCoeff, tf := nonOrthoCoeff(sf, d)
		g := gamma.Internal(i)
		coeff := field.Scalar(float64(g) * orthoCoeff)

		o, n := mesh.Owner[i], mesh.Neighbor[i]
		m.An[i] = [2]field.Scalar{coeff, coeff}
		m.Ap[o] -= coeff
		m.Ap[n] -= coeff

		// Non-orthogonal correction: the component of the diffusive flux
		// not captured by the orthogonal coefficient, evaluated from the
		// interpolated cell gradient at the face.
		gradF := faceValueVector(grad, i)
		corr := field.Scalar(g.Mul(field.Scalar(tf.Dot(toVec3(gradF)))))
		m.Su[o] = m.Su[o].Add(corr)
		m.Su[n] = m.Su[n].Sub(corr)
	}

	for b := 0; b < mesh.NumBoundaryFaces; b++ {
		sf := mesh.BoundaryFaceArea[b]
		owner := mesh.BoundaryOwner[b]
		cf := mesh.BoundaryCentroid[b]
		co := mesh.CellCentroid[owner]
		d := cf.Sub(co) // the ghost holds the face value, so the distance is owner-to-face
		orthoCoeff, tf := nonOrthoCoeff(sf, d)
		g := gamma.Boundary(b)
		coeff := field.Scalar(float64(g) * orthoCoeff)

		ghost := phi.Ghost(b)
		m.Ap[owner] -= coeff
		m.Su[owner] = m.Su[owner].Sub(coeff.Scale(float64(ghost)))

		gradF := grad.Internal[owner]
		corr := field.Scalar(g.Mul(field.Scalar(tf.Dot(toVec3(gradF)))))
		m.Su[owner] = m.Su[owner].Add(corr)
	}

	return m
}
