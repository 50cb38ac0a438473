package snappot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/astrokit/snappot/interpolate"
)

// normState records the scale factors of an outstanding normalization and
// the spline set that was live before it. Denormalize reinstates the saved
// splines verbatim instead of refitting, so a normalize/denormalize cycle
// does not accumulate fitting drift.
type normState struct {
	r0, vc0, phi0 float64
	saved         splineSet
}

// Normalize rescales the potential to dimensionless units: lengths by R0,
// velocities by the circular velocity at R0, and the potential amplitude
// by the magnitude of the midplane radial force at R0.
//
// The borrowed ensemble's position and velocity units are rescaled in
// place as a side effect. Call Denormalize to undo everything.
func (p *InterpPotential) Normalize(R0 float64) error {
	if p.norm != nil {
		return fmt.Errorf(
			"snappot: already normalized at R0 = %g, call Denormalize() first",
			p.norm.r0,
		)
	}

	vc0, err := p.VCirc(R0)
	if err != nil {
		return err
	}
	fr, err := p.RForce(R0, 0, 0, 0)
	if err != nil {
		return err
	}
	phi0 := math.Abs(fr)

	if err := p.ens.RescaleUnits(R0, vc0); err != nil {
		return err
	}

	p.norm = &normState{r0: R0, vc0: vc0, phi0: phi0, saved: p.splines}

	floats.Scale(1/R0, p.rgrid)
	floats.Scale(1/R0, p.zgrid)
	if p.cfg.LogR {
		logR0 := math.Log(R0)
		for i := range p.logrgrid {
			p.logrgrid[i] -= logR0
		}
	}
	p.amp /= phi0

	p.rebuildSplines(vc0)
	return nil
}

// Denormalize undoes the outstanding Normalize call exactly: the axes and
// amplitude are scaled back and the pre-normalize splines are reinstated.
func (p *InterpPotential) Denormalize() error {
	if p.norm == nil {
		return ErrNotNormalized
	}
	ns := p.norm

	if err := p.ens.RestoreUnits(); err != nil {
		return err
	}

	floats.Scale(ns.r0, p.rgrid)
	floats.Scale(ns.r0, p.zgrid)
	if p.cfg.LogR {
		logR0 := math.Log(ns.r0)
		for i := range p.logrgrid {
			p.logrgrid[i] += logR0
		}
	}
	p.amp *= ns.phi0

	p.splines = ns.saved
	p.norm = nil
	return nil
}

// Normalized reports whether a normalization is outstanding.
func (p *InterpPotential) Normalized() bool { return p.norm != nil }

// rebuildSplines refits every enabled interpolant against the current
// coordinate basis. The value grids are never rescaled; the amplitude
// carries the potential's scale, and the circular velocity curve is the
// one dimensionally velocity-valued quantity, so only it divides by vcDiv.
func (p *InterpPotential) rebuildSplines(vcDiv float64) {
	rs := p.rbasis()
	var set splineSet

	if p.feats.pot {
		set.pot = interpolate.NewBiCubic(rs, p.zgrid, p.potGrid)
		set.rforce = interpolate.NewBiCubic(rs, p.zgrid, p.rforceGrid)
		set.zforce = interpolate.NewBiCubic(rs, p.zgrid, p.zforceGrid)

		vcirc := make([]float64, len(p.vcircGrid))
		for i, v := range p.vcircGrid {
			vcirc[i] = v / vcDiv
		}
		set.vcirc = interpolate.NewSpline(rs, vcirc)
	}

	if p.feats.epifreq {
		set.r2deriv = interpolate.NewBiCubic(rs, p.zgrid, p.r2derivGrid)
		set.epifreq = interpolate.NewSpline(rs, p.epifreqGrid)
	}

	if p.feats.vertfreq {
		set.z2deriv = interpolate.NewBiCubic(rs, p.zgrid, p.z2derivGrid)
		set.vertfreq = interpolate.NewSpline(rs, p.vertfreqGrid)
	}

	p.splines = set
}
