package snappot

import (
	"fmt"
	"math"

	"github.com/astrokit/snappot/gravity"
	"github.com/astrokit/snappot/interpolate"
	"github.com/astrokit/snappot/snap"
)

// InterpPotential is an axisymmetric potential sampled from an ensemble
// over an (R, z) grid once, at construction, and interpolated with bicubic
// splines afterwards. Midplane curves (circular velocity and, when enabled,
// the epicyclic and vertical frequencies) use 1D cubic splines over the
// radial basis.
//
// Queries outside the grid extrapolate with the boundary spline
// polynomials: they stay finite and smooth but degrade in accuracy, so
// grids should cover the region an orbit will visit.
type InterpPotential struct {
	cfg   Config
	feats features

	ens    *snap.Ensemble
	oracle gravity.Oracle
	orig   *SnapshotPotential

	// amp is the global amplitude applied to the potential, forces and
	// second derivatives. Normalize divides it by Phi0.
	amp float64

	rgrid, zgrid []float64
	// logrgrid shadows rgrid in log space when the radial basis is
	// logarithmic.
	logrgrid []float64

	potGrid, rforceGrid, zforceGrid [][]float64
	r2derivGrid, z2derivGrid        [][]float64

	vcircGrid, epifreqGrid, vertfreqGrid []float64

	splines splineSet
	norm    *normState
}

// splineSet holds the live interpolants, one per published quantity.
// Normalize swaps the whole set; Denormalize swaps the saved one back.
type splineSet struct {
	pot, rforce, zforce *interpolate.BiCubic
	r2deriv, z2deriv    *interpolate.BiCubic

	vcirc, epifreq, vertfreq *interpolate.Spline
}

// New builds an interpolated potential for the ensemble. The ensemble is
// borrowed: Normalize and Denormalize rescale its units in place.
func New(e *snap.Ensemble, cfg Config) (*InterpPotential, error) {
	if cfg.UsePKDGrav {
		return nil, gravity.ErrNotImplemented
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	if cfg.DR == 0 {
		cfg.DR = 0.01
	}

	p := &InterpPotential{
		cfg:   cfg,
		feats: cfg.resolve(),
		ens:   e,
		amp:   1,
	}

	p.oracle = cfg.Oracle
	if p.oracle == nil {
		p.oracle = gravity.NewDirect(cfg.Threads)
	}
	// Keep the uninterpolated potential around for spot checks against
	// the grid.
	p.orig = NewSnapshotOracle(e, p.oracle)

	axis := cfg.RGrid.axis()
	if cfg.LogR {
		p.logrgrid = axis
		p.rgrid = make([]float64, len(axis))
		for i, x := range axis {
			p.rgrid[i] = math.Exp(x)
		}
	} else {
		p.rgrid = axis
	}
	p.zgrid = cfg.ZGrid.axis()

	if err := p.buildGrids(); err != nil {
		return nil, err
	}
	p.buildMidplaneCurves()
	p.rebuildSplines(1)

	return p, nil
}

// rbasis returns the radial coordinate basis the splines are fit over.
func (p *InterpPotential) rbasis() []float64 {
	if p.cfg.LogR {
		return p.logrgrid
	}
	return p.rgrid
}

// toBasis maps a query radius onto the radial basis.
func (p *InterpPotential) toBasis(R float64) float64 {
	if p.cfg.LogR {
		return math.Log(R)
	}
	return R
}

// foldZ maps a query height onto the grid for z-mirrored fields.
func (p *InterpPotential) foldZ(z float64) float64 {
	if p.cfg.ZSym {
		return math.Abs(z)
	}
	return z
}

// checkQuery rejects non-axisymmetric or time-dependent queries.
func checkQuery(phi, t float64) error {
	if phi != 0 || t != 0 {
		return ErrNonAxisymmetric
	}
	return nil
}

// Potential evaluates the interpolated potential at (R, z). phi and t must
// be zero.
func (p *InterpPotential) Potential(R, z, phi, t float64) (float64, error) {
	if err := checkQuery(phi, t); err != nil {
		return 0, err
	}
	if p.splines.pot == nil {
		return 0, fmt.Errorf("snappot: potential surface not interpolated")
	}
	return p.amp * p.splines.pot.Eval(p.toBasis(R), p.foldZ(z)), nil
}

// RForce evaluates the interpolated radial force at (R, z). phi and t must
// be zero.
func (p *InterpPotential) RForce(R, z, phi, t float64) (float64, error) {
	if err := checkQuery(phi, t); err != nil {
		return 0, err
	}
	if p.splines.rforce == nil {
		return 0, fmt.Errorf("snappot: radial force surface not interpolated")
	}
	return p.amp * p.splines.rforce.Eval(p.toBasis(R), p.foldZ(z)), nil
}

// ZForce evaluates the interpolated vertical force at (R, z). phi and t
// must be zero.
func (p *InterpPotential) ZForce(R, z, phi, t float64) (float64, error) {
	if err := checkQuery(phi, t); err != nil {
		return 0, err
	}
	if p.splines.zforce == nil {
		return 0, fmt.Errorf("snappot: vertical force surface not interpolated")
	}
	return p.amp * p.splines.zforce.Eval(p.toBasis(R), p.foldZ(z)), nil
}

// R2Deriv evaluates the interpolated second radial derivative at (R, z).
// Available when the epicyclic frequency was requested at construction.
func (p *InterpPotential) R2Deriv(R, z, phi, t float64) (float64, error) {
	if err := checkQuery(phi, t); err != nil {
		return 0, err
	}
	if p.splines.r2deriv == nil {
		return 0, fmt.Errorf(
			"snappot: second radial derivative not interpolated " +
				"(set InterpEpiFreq)",
		)
	}
	return p.amp * p.splines.r2deriv.Eval(p.toBasis(R), p.foldZ(z)), nil
}

// Z2Deriv evaluates the interpolated second vertical derivative at (R, z).
// Available when the vertical frequency was requested at construction.
func (p *InterpPotential) Z2Deriv(R, z, phi, t float64) (float64, error) {
	if err := checkQuery(phi, t); err != nil {
		return 0, err
	}
	if p.splines.z2deriv == nil {
		return 0, fmt.Errorf(
			"snappot: second vertical derivative not interpolated " +
				"(set InterpVerticalFreq)",
		)
	}
	return p.amp * p.splines.z2deriv.Eval(p.toBasis(R), p.foldZ(z)), nil
}

// VCirc evaluates the circular velocity curve at R.
func (p *InterpPotential) VCirc(R float64) (float64, error) {
	if p.splines.vcirc == nil {
		return 0, fmt.Errorf("snappot: circular velocity not interpolated")
	}
	return p.splines.vcirc.Eval(p.toBasis(R)), nil
}

// EpiFreq evaluates the epicyclic frequency curve at R.
func (p *InterpPotential) EpiFreq(R float64) (float64, error) {
	if p.splines.epifreq == nil {
		return 0, fmt.Errorf(
			"snappot: epicyclic frequency not interpolated " +
				"(set InterpEpiFreq)",
		)
	}
	return p.splines.epifreq.Eval(p.toBasis(R)), nil
}

// VerticalFreq evaluates the vertical frequency curve at R.
func (p *InterpPotential) VerticalFreq(R float64) (float64, error) {
	if p.splines.vertfreq == nil {
		return 0, fmt.Errorf(
			"snappot: vertical frequency not interpolated " +
				"(set InterpVerticalFreq)",
		)
	}
	return p.splines.vertfreq.Eval(p.toBasis(R)), nil
}

// OnDemand returns the uninterpolated companion potential over the same
// ensemble and solver. Its results bypass the grid entirely.
func (p *InterpPotential) OnDemand() *SnapshotPotential { return p.orig }

// RGrid returns a copy of the radial grid nodes in their current units.
func (p *InterpPotential) RGrid() []float64 {
	out := make([]float64, len(p.rgrid))
	copy(out, p.rgrid)
	return out
}

// ZGrid returns a copy of the vertical grid nodes in their current units.
func (p *InterpPotential) ZGrid() []float64 {
	out := make([]float64, len(p.zgrid))
	copy(out, p.zgrid)
	return out
}
