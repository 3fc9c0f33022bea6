package field

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcore/fvpiso/bc"
	"github.com/flowcore/fvpiso/geometry"
)

func ioTestMesh(n int) *geometry.Mesh {
	return &geometry.Mesh{NumCells: n, NumBoundaryFaces: 0}
}

func TestWriteScalarThenReadScalar_RoundTrips(t *testing.T) {
	mesh := ioTestMesh(3)
	f := New[Scalar]("p", ReadWrite, mesh)
	reg := bc.NewRegistry[Scalar]()
	reg.Add(&bc.Condition[Scalar]{Patch: "inlet", Kind: bc.Dirichlet, Value: 5})
	f.SetBCs(reg)
	f.Internal[0], f.Internal[1], f.Internal[2] = 1.5, -2.25, 3

	path := filepath.Join(t.TempDir(), "p")
	require.NoError(t, WriteScalar(path, f))

	got, err := ReadScalar(path, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2.25, 3}, got)
}

func TestReadScalar_RejectsMismatchedCellCount(t *testing.T) {
	mesh := ioTestMesh(2)
	f := New[Scalar]("p", ReadWrite, mesh)
	f.SetBCs(bc.NewRegistry[Scalar]())
	path := filepath.Join(t.TempDir(), "p")
	require.NoError(t, WriteScalar(path, f))

	_, err := ReadScalar(path, 3)
	assert.Error(t, err)
}

func TestWriteVectorThenReadVector_RoundTrips(t *testing.T) {
	mesh := ioTestMesh(2)
	f := New[Vector]("U", ReadWrite, mesh)
	f.SetBCs(bc.NewRegistry[Vector]())
	f.Internal[0] = Vector{X: 1, Y: 2, Z: 3}
	f.Internal[1] = Vector{X: -1}

	path := filepath.Join(t.TempDir(), "U")
	require.NoError(t, WriteVector(path, f))

	got, err := ReadVector(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []Vector{{X: 1, Y: 2, Z: 3}, {X: -1}}, got)
}
