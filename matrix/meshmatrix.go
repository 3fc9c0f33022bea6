// Package matrix implements MeshMatrix[T], the sparse FV operator
// A·x + Su described in §3-4.3: a diagonal per cell, two off-diagonal
// coefficients per internal face (the stencil is face-local), and an
// explicit source. Matrices are created by operators and owned by whoever
// receives them (§3: "Matrices are created by operators, destroyed when
// the expression composition completes").
package matrix

import (
	"github.com/flowcore/fvpiso/field"
	"github.com/flowcore/fvpiso/geometry"
)

// Flags records the symmetry class an assembled matrix belongs to (§3).
type Flags uint8

const (
	Symmetric Flags = iota
	SymmetricStructure
	Asymmetric
)

// MeshMatrix is the LDU-style sparse operator used throughout the FV core,
// grounded directly in the owner/neighbor-indexed LDUMatrix from
// Jedsonofnel-CFD25-project1's fvm.go, generalized from a 1-D tridiagonal
// mesh to the unstructured owner/neighbor connectivity of geometry.Mesh and
// from a scalar-only equation to any field.Algebraic element type.
type MeshMatrix[T field.Algebraic[T]] struct {
	Mesh  *geometry.Mesh
	Ap    []field.Scalar    // diagonal, one per cell
	An    [][2]field.Scalar // off-diagonal pair per internal face: [ownerCoeff, neighborCoeff]
	Su    []T               // explicit source, one per cell
	Flags Flags
}

// New allocates a zeroed MeshMatrix over mesh.
func New[T field.Algebraic[T]](mesh *geometry.Mesh, flags Flags) *MeshMatrix[T] {
	return &MeshMatrix[T]{
		Mesh:  mesh,
		Ap:    make([]field.Scalar, mesh.NumCells),
		An:    make([][2]field.Scalar, mesh.NumInternalFaces),
		Su:    make([]T, mesh.NumCells),
		Flags: flags,
	}
}
