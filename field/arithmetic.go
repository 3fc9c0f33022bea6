package field

// Reducer is the minimal surface the halo collaborator must provide for
// Field reductions (§4.1: "Reductions ... return a Scalar/Vector/etc.,
// reduced across ranks via the halo collaborator"). It is defined here,
// not imported from package halo, to avoid a field->halo->field import
// cycle; halo.Exchanger satisfies it structurally.
type Reducer interface {
	AllreduceSum(float64) float64
	AllreduceMax(float64) float64
}

// Add returns a new field holding the pointwise sum over internal cells
// (ghosts are copied unchanged from a; callers call UpdateExplicitBCs
// afterwards per the §4.1 contract).
func Add[T Algebraic[T]](a, b *Field[T]) *Field[T] {
	out := a.Clone()
	for i := range out.Internal {
		out.Internal[i] = a.Internal[i].Add(b.Internal[i])
	}
	return out
}

func Sub[T Algebraic[T]](a, b *Field[T]) *Field[T] {
	out := a.Clone()
	for i := range out.Internal {
		out.Internal[i] = a.Internal[i].Sub(b.Internal[i])
	}
	return out
}

func Scale[T Algebraic[T]](a *Field[T], c float64) *Field[T] {
	out := a.Clone()
	for i := range out.Internal {
		out.Internal[i] = a.Internal[i].Scale(c)
	}
	return out
}

func Mul[T Algebraic[T]](a, b *Field[T]) *Field[T] {
	out := a.Clone()
	for i := range out.Internal {
		out.Internal[i] = a.Internal[i].Mul(b.Internal[i])
	}
	return out
}

// AddInPlace mutates a in place, the common pattern for accumulating LES
// running sums (§4.5.2) without reallocating every step.
func AddInPlace[T Algebraic[T]](a, b *Field[T]) {
	for i := range a.Internal {
		a.Internal[i] = a.Internal[i].Add(b.Internal[i])
	}
}

// Relax blends a field with its previous value: out = old + alpha*(new-old),
// the explicit under-relaxation `p.Relax(po, pressure_UR)` form used on the
// pressure field in the PISO corrector (§4.5.e), distinct from
// MeshMatrix.Relax's implicit diagonal scaling (§4.3).
func Relax[T Algebraic[T]](newField, oldField *Field[T], alpha float64) *Field[T] {
	out := newField.Clone()
	for i := range out.Internal {
		delta := newField.Internal[i].Sub(oldField.Internal[i]).Scale(alpha)
		out.Internal[i] = oldField.Internal[i].Add(delta)
	}
	return out
}

// SumScalar reduces a Scalar field's internal cells to a single rank-local
// sum, then folds across ranks through r.
func SumScalar(f *Field[Scalar], r Reducer) Scalar {
	var local float64
	for i := 0; i < f.Mesh.NumCells; i++ {
		local += float64(f.Internal[i])
	}
	return Scalar(r.AllreduceSum(local))
}

// MaxAbsScalar returns max(|f|) across all cells and all ranks, used for
// residual-normalization and divergence checks.
func MaxAbsScalar(f *Field[Scalar], r Reducer) Scalar {
	local := 0.0
	for i := 0; i < f.Mesh.NumCells; i++ {
		if v := float64(f.Internal[i].Abs()); v > local {
			local = v
		}
	}
	return Scalar(r.AllreduceMax(local))
}

// DotVector computes sum_c U1_c . U2_c * V_c across all ranks, the volume-
// weighted inner product used e.g. for LES statistics.
func DotVector(a, b *Field[Vector], r Reducer) float64 {
	local := 0.0
	for i := 0; i < a.Mesh.NumCells; i++ {
		local += a.Internal[i].Dot(b.Internal[i]) * a.Mesh.CellVolume[i]
	}
	return r.AllreduceSum(local)
}
