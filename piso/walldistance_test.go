package piso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcore/fvpiso/config"
	"github.com/flowcore/fvpiso/halo"
)

// Scenario E (§8): wall distance between two parallel walls must be
// symmetric about the midline, increase monotonically away from each wall,
// and stay positive everywhere (a cell can never be farther from every wall
// than the channel half-width would allow).
func TestWallDistance_SymmetricChannel(t *testing.T) {
	const n = 10
	const dx = 0.1
	mesh := newWallLineMesh(n, dx)

	ctx := &config.Context{
		Controls: config.Controls{
			SolverTolerance: 1e-10,
			SolverMaxIters:  1000,
		},
	}

	y, err := WallDistance(ctx, mesh, halo.Local{})
	require.NoError(t, err)

	for c := 0; c < n; c++ {
		assert.Greater(t, float64(y.Internal[c]), 0.0, "cell %d", c)
	}
	for c := 0; c < n/2; c++ {
		mirror := n - 1 - c
		assert.InDelta(t, float64(y.Internal[c]), float64(y.Internal[mirror]), 1e-6, "cell %d vs mirror %d", c, mirror)
	}
	for c := 0; c < n/2-1; c++ {
		assert.Greater(t, float64(y.Internal[c+1]), float64(y.Internal[c]), "distance should increase moving away from the left wall")
	}
}
