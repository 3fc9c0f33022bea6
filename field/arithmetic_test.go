package field

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowcore/fvpiso/geometry"
)

func twoCellMesh() *geometry.Mesh {
	return &geometry.Mesh{NumCells: 2, NumBoundaryFaces: 0}
}

type fakeReducer struct{}

func (fakeReducer) AllreduceSum(v float64) float64 { return v }
func (fakeReducer) AllreduceMax(v float64) float64 { return v }

func TestAddSubScale(t *testing.T) {
	mesh := twoCellMesh()
	a := New[Scalar]("a", None, mesh)
	b := New[Scalar]("b", None, mesh)
	a.Internal[0], a.Internal[1] = 1, 2
	b.Internal[0], b.Internal[1] = 10, 20

	sum := Add(a, b)
	assert.Equal(t, Scalar(11), sum.Internal[0])
	assert.Equal(t, Scalar(22), sum.Internal[1])

	diff := Sub(b, a)
	assert.Equal(t, Scalar(9), diff.Internal[0])

	scaled := Scale(a, 3)
	assert.Equal(t, Scalar(3), scaled.Internal[0])

	// Add must not mutate its operands.
	assert.Equal(t, Scalar(1), a.Internal[0])
}

func TestRelax_BlendsTowardNewByAlpha(t *testing.T) {
	mesh := twoCellMesh()
	oldF := New[Scalar]("old", None, mesh)
	newF := New[Scalar]("new", None, mesh)
	oldF.Internal[0] = 0
	newF.Internal[0] = 10

	out := Relax(newF, oldF, 0.3)
	assert.InDelta(t, 3, float64(out.Internal[0]), 1e-12)
}

func TestSumScalarAndMaxAbsScalar(t *testing.T) {
	mesh := &geometry.Mesh{NumCells: 3}
	f := New[Scalar]("f", None, mesh)
	f.Internal[0], f.Internal[1], f.Internal[2] = -5, 2, 3

	assert.Equal(t, Scalar(0), SumScalar(f, fakeReducer{}))
	assert.Equal(t, Scalar(5), MaxAbsScalar(f, fakeReducer{}))
}

func TestClone_IsIndependentStorage(t *testing.T) {
	mesh := twoCellMesh()
	f := New[Scalar]("f", None, mesh)
	f.Internal[0] = 1

	c := f.Clone()
	c.Internal[0] = 99
	assert.Equal(t, Scalar(1), f.Internal[0])
}
