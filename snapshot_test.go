package snappot

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrokit/snappot/gravity"
	"github.com/astrokit/snappot/snap"
)

// keplerOracle is an analytic Newtonian oracle for a point mass M at the
// origin: phi = -GM/r, a = -GM/r^2 rhat, with G = 1. It ignores the
// ensemble's particles.
type keplerOracle struct {
	M float64
}

func (k *keplerOracle) Compute(
	e *snap.Ensemble, points []gravity.Vec,
) ([]float64, []gravity.Vec, error) {
	pot := make([]float64, len(points))
	acc := make([]gravity.Vec, len(points))
	for i, p := range points {
		r := math.Sqrt(p.Dot(p))
		pot[i] = -k.M / r
		s := -k.M / (r * r * r)
		acc[i] = gravity.Vec{s * p[0], s * p[1], s * p[2]}
	}
	return pot, acc, nil
}

// countingOracle counts batched calls through to an inner oracle.
type countingOracle struct {
	inner gravity.Oracle
	calls int
}

func (c *countingOracle) Compute(
	e *snap.Ensemble, points []gravity.Vec,
) ([]float64, []gravity.Vec, error) {
	c.calls++
	return c.inner.Compute(e, points)
}

type failingOracle struct{}

var errOracle = errors.New("oracle exploded")

func (f *failingOracle) Compute(
	e *snap.Ensemble, points []gravity.Vec,
) ([]float64, []gravity.Vec, error) {
	return nil, nil, errOracle
}

func TestEvaluatePointMass(t *testing.T) {
	s := NewSnapshotOracle(snap.PointMass(1), &keplerOracle{M: 2})

	pot, err := s.Potential(2, 0)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, pot, 1e-14, "phi = -GM/R in the midplane")

	fr, err := s.RForce(2, 0)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, fr, 1e-14, "F_R = -GM/R^2")

	fz, err := s.ZForce(2, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, fz, 1e-14, "no vertical pull in the midplane")
}

func TestEvaluateCacheHit(t *testing.T) {
	co := &countingOracle{inner: &keplerOracle{M: 1}}
	s := NewSnapshotOracle(snap.PointMass(1), co)

	Rs, zs := []float64{0.5, 1, 1.5}, []float64{0, 0.1}
	pot1, fr1, fz1, err := s.Evaluate(Rs, zs)
	require.NoError(t, err)
	assert.Equal(t, 1, co.calls)

	pot2, fr2, fz2, err := s.Evaluate(Rs, zs)
	require.NoError(t, err)
	assert.Equal(t, 1, co.calls, "second evaluation must come from the cache")

	assert.Equal(t, pot1, pot2, "cached potential is bitwise identical")
	assert.Equal(t, fr1, fr2)
	assert.Equal(t, fz1, fz2)
	assert.Equal(t, 1, s.CacheLen())

	// A different batch is a miss.
	_, _, _, err = s.Evaluate([]float64{0.5}, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, 2, co.calls)
	assert.Equal(t, 2, s.CacheLen())
}

func TestEvaluateProductLayout(t *testing.T) {
	s := NewSnapshotOracle(snap.PointMass(1), &keplerOracle{M: 3})

	Rs, zs := []float64{1, 2}, []float64{0, 0.5}
	pot, fr, fz, err := s.Evaluate(Rs, zs)
	require.NoError(t, err)
	require.Len(t, pot, 4)
	require.Len(t, fr, 4)
	require.Len(t, fz, 4)

	// Row-major: index i*len(zs)+j holds the pair (Rs[i], zs[j]).
	want, err := s.Potential(2, 0.5)
	require.NoError(t, err)
	assert.Equal(t, want, pot[3])

	r := math.Sqrt(1 + 0.25)
	assert.InDelta(t, -3/r, pot[1], 1e-14, "(R, z) = (1, 0.5)")
}

func TestEvaluateLengthsDistinguished(t *testing.T) {
	s := NewSnapshotOracle(snap.PointMass(1), &keplerOracle{M: 1})

	// Both batches concatenate to the same numbers but split differently,
	// so they must hash to different cache entries.
	potA, _, _, err := s.Evaluate([]float64{1, 2}, []float64{3})
	require.NoError(t, err)
	potB, _, _, err := s.Evaluate([]float64{1}, []float64{2, 3})
	require.NoError(t, err)

	assert.Equal(t, 2, s.CacheLen())
	assert.NotEqual(t, potA, potB)
}

func TestEvaluateOracleFailure(t *testing.T) {
	s := NewSnapshotOracle(snap.PointMass(1), &failingOracle{})

	_, _, _, err := s.Evaluate([]float64{1}, []float64{0})
	assert.ErrorIs(t, err, errOracle, "oracle failures pass through unchanged")
	assert.Equal(t, 0, s.CacheLen(), "failed batches are never cached")
}

func TestSnapshotAgainstDirect(t *testing.T) {
	// The on-demand evaluator over a real single-particle ensemble has to
	// agree with the analytic oracle.
	e := snap.PointMass(5)
	s := NewSnapshot(e, 2)

	pot, err := s.Potential(1.5, 0.3)
	require.NoError(t, err)

	r := math.Sqrt(1.5*1.5 + 0.3*0.3)
	assert.InDelta(t, -5/r, pot, 1e-12)
}
