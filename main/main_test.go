package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrokit/snappot"
	"github.com/astrokit/snappot/snap"
)

func testPotential(t *testing.T) *snappot.InterpPotential {
	cfg := snappot.Config{
		RGrid:     snappot.GridSpec{Min: 0.5, Max: 2, N: 21},
		ZGrid:     snappot.GridSpec{Min: 0, Max: 0.2, N: 11},
		ZSym:      true,
		InterpPot: true,
	}
	pot, err := snappot.New(snap.PointMass(1), cfg)
	require.NoError(t, err)
	return pot
}

func TestSampleCurve(t *testing.T) {
	pot := testPotential(t)

	for _, samples := range []int{2, 5, 40} {
		rs, vcs, err := sampleCurve(pot, samples)
		require.NoError(t, err)
		require.Len(t, rs, samples)
		require.Len(t, vcs, samples)

		assert.Equal(t, 0.5, rs[0], "first sample radius")
		assert.Equal(t, 2.0, rs[samples-1], "last sample radius")
		for i := range vcs {
			assert.False(t, math.IsNaN(vcs[i]), "vcirc at R = %g", rs[i])
		}
	}
}

func TestDefaultConfigSamples(t *testing.T) {
	cfg := defaultRotationCurveConfig()
	assert.GreaterOrEqual(t, cfg.RotationCurve.Samples, 2)
}
