package field

import "github.com/flowcore/fvpiso/geometry"

// FaceField is an array of length |Fi|+|Fb| (§3), with internal faces
// stored first and boundary faces following in the mesh's boundary-face
// order. Values are derived by interpolation from cell fields (e.g. a
// diffusivity) or prescribed directly (e.g. the mass flux F).
type FaceField[T Algebraic[T]] struct {
	Name string
	Mesh *geometry.Mesh
	Vals []T
}

func NewFaceField[T Algebraic[T]](name string, mesh *geometry.Mesh) *FaceField[T] {
	return &FaceField[T]{
		Name: name,
		Mesh: mesh,
		Vals: make([]T, mesh.NumInternalFaces+mesh.NumBoundaryFaces),
	}
}

// Uniform builds a FaceField with every entry set to v, the common pattern
// for a constant diffusivity (ScalarFacetField one = Scalar(1) in the
// source).
func Uniform[T Algebraic[T]](name string, mesh *geometry.Mesh, v T) *FaceField[T] {
	ff := NewFaceField[T](name, mesh)
	for i := range ff.Vals {
		ff.Vals[i] = v
	}
	return ff
}

func (ff *FaceField[T]) Internal(i int) T  { return ff.Vals[i] }
func (ff *FaceField[T]) Boundary(b int) T  { return ff.Vals[ff.Mesh.NumInternalFaces+b] }
func (ff *FaceField[T]) SetBoundary(b int, v T) {
	ff.Vals[ff.Mesh.NumInternalFaces+b] = v
}

func (ff *FaceField[T]) Clone() *FaceField[T] {
	out := &FaceField[T]{Name: ff.Name, Mesh: ff.Mesh}
	out.Vals = append([]T(nil), ff.Vals...)
	return out
}
