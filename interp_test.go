package snappot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrokit/snappot/gravity"
	"github.com/astrokit/snappot/snap"
)

// keplerConfig grids R in [1, 4] with a log-radial basis, which puts exact
// nodes at R = 1, 2 and 4.
func keplerConfig() Config {
	return Config{
		RGrid: GridSpec{0, math.Log(4), 41},
		LogR:  true,
		ZGrid: GridSpec{0, 0.2, 11},
		ZSym:  true,

		InterpPot: true,
		Oracle:    &keplerOracle{M: 2},
	}
}

func newKepler(t *testing.T, cfg Config) *InterpPotential {
	t.Helper()
	p, err := New(snap.PointMass(2), cfg)
	require.NoError(t, err)
	return p
}

func TestInterpPointMassGrid(t *testing.T) {
	p := newKepler(t, keplerConfig())
	GM := 2.0

	// R = 2, z = 0 is an exact grid node, so only spline fitting error
	// remains.
	pot, err := p.Potential(2, 0, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, -GM/2, pot, 1e-6, "phi(2, 0) = -GM/2")

	fr, err := p.RForce(2, 0, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, -GM/4, fr, 1e-6, "F_R(2, 0) = -GM/4")

	fz, err := p.ZForce(2, 0, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0, fz, 1e-10, "midplane vertical force")

	// The on-demand companion reproduces the same values without the
	// grid.
	rawPot, err := p.OnDemand().Potential(2, 0)
	require.NoError(t, err)
	assert.InDelta(t, rawPot, pot, 1e-6, "grid path vs on-demand path")
}

func TestInterpOffNode(t *testing.T) {
	p := newKepler(t, keplerConfig())
	GM := 2.0

	// The natural boundary condition degrades accuracy within the
	// outermost grid cells, so queries there get a looser bound.
	queries := []struct {
		R, z, tol float64
	}{
		{1.3, 0, 1e-5},
		{2.7, 0.08, 1e-5},
		{3.9, 0.15, 1e-4},
	}

	for _, q := range queries {
		r := math.Sqrt(q.R*q.R + q.z*q.z)

		pot, err := p.Potential(q.R, q.z, 0, 0)
		require.NoError(t, err)
		assert.InDelta(t, -GM/r, pot, q.tol, "phi(%g, %g)", q.R, q.z)
	}
}

func TestZSymmetry(t *testing.T) {
	p := newKepler(t, keplerConfig())

	for _, R := range []float64{1, 1.7, 2.9, 4} {
		for _, z := range []float64{0.02, 0.1, 0.19} {
			up, err := p.Potential(R, z, 0, 0)
			require.NoError(t, err)
			down, err := p.Potential(R, -z, 0, 0)
			require.NoError(t, err)
			assert.Equal(t, up, down, "phi(%g, %g) mirror", R, z)
		}
	}
}

func TestVCircConsistency(t *testing.T) {
	p := newKepler(t, keplerConfig())

	for _, R := range []float64{1, 2, 4} {
		vc, err := p.VCirc(R)
		require.NoError(t, err)
		fr, err := p.RForce(R, 0, 0, 0)
		require.NoError(t, err)

		assert.InDelta(t, math.Sqrt(R*-fr), vc, 1e-8,
			"vcirc(%g) vs sqrt(R |F_R|)", R)
	}
}

func TestUnsupportedQueries(t *testing.T) {
	cfg := keplerConfig()
	cfg.InterpEpiFreq = true
	cfg.InterpVerticalFreq = true
	p := newKepler(t, cfg)

	queries := []func(phi, t float64) error{
		func(phi, tt float64) error {
			_, err := p.Potential(2, 0, phi, tt)
			return err
		},
		func(phi, tt float64) error {
			_, err := p.RForce(2, 0, phi, tt)
			return err
		},
		func(phi, tt float64) error {
			_, err := p.ZForce(2, 0, phi, tt)
			return err
		},
		func(phi, tt float64) error {
			_, err := p.R2Deriv(2, 0, phi, tt)
			return err
		},
		func(phi, tt float64) error {
			_, err := p.Z2Deriv(2, 0, phi, tt)
			return err
		},
	}

	for i, q := range queries {
		assert.ErrorIs(t, q(0.1, 0), ErrNonAxisymmetric, "phi != 0, query %d", i)
		assert.ErrorIs(t, q(0, -2), ErrNonAxisymmetric, "t != 0, query %d", i)
		assert.NoError(t, q(0, 0), "query %d at phi = t = 0", i)
	}
}

func TestFrequencies(t *testing.T) {
	cfg := keplerConfig()
	cfg.InterpEpiFreq = true
	cfg.InterpVerticalFreq = true
	p := newKepler(t, cfg)
	GM := 2.0

	// For a point mass d a_z/dz = -GM/R^3 in the midplane, so the
	// vertical frequency is sqrt(GM/R^3).
	nu, err := p.VerticalFreq(2)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(GM/8), nu, 1e-3, "Keplerian vertical frequency")

	// The epicyclic curve is defined by the grid identity
	// kappa^2 = d(dPhi/dR)/dR - 3/R F_R evaluated in the midplane.
	for _, R := range []float64{1, 2, 4} {
		kappa, err := p.EpiFreq(R)
		require.NoError(t, err)
		r2, err := p.R2Deriv(R, 0, 0, 0)
		require.NoError(t, err)
		fr, err := p.RForce(R, 0, 0, 0)
		require.NoError(t, err)

		assert.InDelta(t, math.Sqrt(r2-3/R*fr), kappa, 1e-8,
			"kappa(%g) vs grid identity", R)
	}
}

func TestDisabledQuantities(t *testing.T) {
	p := newKepler(t, keplerConfig())

	_, err := p.R2Deriv(2, 0, 0, 0)
	assert.Error(t, err, "epicyclic surfaces start disabled")
	_, err = p.Z2Deriv(2, 0, 0, 0)
	assert.Error(t, err)
	_, err = p.EpiFreq(2)
	assert.Error(t, err)
	_, err = p.VerticalFreq(2)
	assert.Error(t, err)
}

func TestFlagCoupling(t *testing.T) {
	// Asking for any force alone still builds the whole potential family.
	cfg := keplerConfig()
	cfg.InterpPot = false
	cfg.InterpZForce = true
	p := newKepler(t, cfg)

	_, err := p.Potential(2, 0, 0, 0)
	assert.NoError(t, err)
	_, err = p.RForce(2, 0, 0, 0)
	assert.NoError(t, err)
	_, err = p.VCirc(2)
	assert.NoError(t, err)
}

func TestPKDGravRejected(t *testing.T) {
	cfg := keplerConfig()
	cfg.UsePKDGrav = true

	_, err := New(snap.PointMass(1), cfg)
	assert.ErrorIs(t, err, gravity.ErrNotImplemented)
}

func TestConfigValidation(t *testing.T) {
	cfg := keplerConfig()
	cfg.RGrid.N = 2
	_, err := New(snap.PointMass(1), cfg)
	assert.Error(t, err, "too few radial nodes")

	cfg = keplerConfig()
	cfg.LogR = false
	cfg.RGrid = GridSpec{-1, 2, 11}
	_, err = New(snap.PointMass(1), cfg)
	assert.Error(t, err, "linear radial axis crossing R = 0")

	cfg = keplerConfig()
	cfg.ZGrid = GridSpec{0.2, 0.0, 11}
	_, err = New(snap.PointMass(1), cfg)
	assert.Error(t, err, "decreasing z range")

	_, err = New(&snap.Ensemble{}, keplerConfig())
	assert.Error(t, err, "empty ensemble")
}

func TestInterpWithDirectSolver(t *testing.T) {
	// End to end over a real ensemble: a Plummer sphere's rotation curve
	// approaches Keplerian far outside its scale radius.
	e := snap.Plummer(400, 3.0, 0.05, 11)
	cfg := Config{
		RGrid:     GridSpec{0.5, 3, 21},
		ZGrid:     GridSpec{0, 0.2, 6},
		ZSym:      true,
		InterpPot: true,
		Threads:   2,
	}
	p, err := New(e, cfg)
	require.NoError(t, err)

	vc, err := p.VCirc(2)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(3.0/2), vc, 0.1, "near-Keplerian vcirc")
}
