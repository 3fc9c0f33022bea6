package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowcore/fvpiso/field"
)

func TestToCSR_AndIsSymmetric(t *testing.T) {
	mesh := threeCellMesh()
	m := New[field.Scalar](mesh, Symmetric)
	for c := range m.Ap {
		m.Ap[c] = 2
	}
	m.An[0] = [2]field.Scalar{-1, -1}
	m.An[1] = [2]field.Scalar{-1, -1}

	csr := ToCSR(m)
	r, c := csr.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 2.0, csr.At(0, 0))
	assert.Equal(t, -1.0, csr.At(0, 1))
	assert.Equal(t, -1.0, csr.At(1, 0))

	assert.True(t, IsSymmetric(m, 1e-12))

	m.An[0] = [2]field.Scalar{-1, -2} // owner/neighbor coefficients now differ
	assert.False(t, IsSymmetric(m, 1e-12))
}
