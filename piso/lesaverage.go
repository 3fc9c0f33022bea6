package piso

import (
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
)

// LESAverage accumulates the running first and second moments of U and p
// across steps (§4.5.2), the statistics an LES run reports since individual
// time steps of a resolved turbulent field are not themselves meaningful
// output.
type LESAverage struct {
	mesh *geometry.Mesh

	Count  int
	SumU   []field.Vector
	SumUU  []field.SymTensor
	SumP   []field.Scalar
	SumPP  []field.Scalar
}

func NewLESAverage(mesh *geometry.Mesh) *LESAverage {
	return &LESAverage{
		mesh:  mesh,
		SumU:  make([]field.Vector, mesh.NumCells),
		SumUU: make([]field.SymTensor, mesh.NumCells),
		SumP:  make([]field.Scalar, mesh.NumCells),
		SumPP: make([]field.Scalar, mesh.NumCells),
	}
}

// Accumulate folds one step's U and p, and their squares, into the running
// sums. MeanU/MeanP report Sum/Count; no variance or standard deviation is
// computed from the SumUU/SumPP sums.
func (a *LESAverage) Accumulate(u *field.Field[field.Vector], p *field.Field[field.Scalar]) {
	a.Count++
	for c := 0; c < a.mesh.NumCells; c++ {
		uc := u.Internal[c]
		a.SumU[c] = a.SumU[c].Add(uc)
		a.SumUU[c] = a.SumUU[c].Add(field.VectorOuter(uc, uc).Symm())

		pc := p.Internal[c]
		a.SumP[c] += pc
		a.SumPP[c] += pc * pc
	}
}

// MeanU returns the running average velocity field.
func (a *LESAverage) MeanU() []field.Vector {
	out := make([]field.Vector, a.mesh.NumCells)
	if a.Count == 0 {
		return out
	}
	inv := 1.0 / float64(a.Count)
	for c := range out {
		out[c] = a.SumU[c].Scale(inv)
	}
	return out
}

// MeanP returns the running average pressure field.
func (a *LESAverage) MeanP() []field.Scalar {
	out := make([]field.Scalar, a.mesh.NumCells)
	if a.Count == 0 {
		return out
	}
	inv := field.Scalar(1.0 / float64(a.Count))
	for c := range out {
		out[c] = a.SumP[c] * inv
	}
	return out
}
