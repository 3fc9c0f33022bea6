package diag

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemUsage_ReportsTheExpectedFields(t *testing.T) {
	s := MemUsage()
	for _, field := range []string{"alloc=", "totalAlloc=", "sys=", "numGC="} {
		assert.True(t, strings.Contains(s, field), "MemUsage() = %q, want it to contain %q", s, field)
	}
}

func TestIsNan(t *testing.T) {
	assert.False(t, IsNan([]float64{1, 2, 3}))
	assert.True(t, IsNan([]float64{1, math.NaN(), 3}))
	assert.False(t, IsNan(nil))
}

func TestIsNanPanic(t *testing.T) {
	assert.NotPanics(t, func() { IsNanPanic([]float64{1, 2}) })
	assert.Panics(t, func() { IsNanPanic([]float64{math.NaN()}) })
}
