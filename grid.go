package snappot

import (
	"math"

	"github.com/astrokit/snappot/gravity"
)

// buildGrids samples the oracle over the full R x z product and fills the
// potential, force and, when requested, second-derivative grids. Grid
// construction always recomputes; the on-demand cache is not consulted.
func (p *InterpPotential) buildGrids() error {
	points := samplePoints(p.rgrid, p.zgrid)

	if p.feats.pot {
		pot, acc, err := p.oracle.Compute(p.ens, points)
		if err != nil {
			return err
		}
		pots, rforces, zforces := averageSamples(pot, acc)

		p.potGrid = reshape(pots, len(p.rgrid), len(p.zgrid))
		p.rforceGrid = reshape(rforces, len(p.rgrid), len(p.zgrid))
		p.zforceGrid = reshape(zforces, len(p.rgrid), len(p.zgrid))
	}

	if p.feats.vertfreq {
		grid, err := p.gradGrid(points, zOffset)
		if err != nil {
			return err
		}
		p.z2derivGrid = grid
	}

	if p.feats.epifreq {
		grid, err := p.gradGrid(points, rOffset)
		if err != nil {
			return err
		}
		p.r2derivGrid = grid
	}

	return nil
}

// offsetFunc displaces a sample point by +-dr along one direction and
// returns the unit vector the acceleration difference is projected onto.
type offsetFunc func(pt gravity.Vec, dr float64) (lo, hi, dir gravity.Vec)

// zOffset straddles a sample vertically.
func zOffset(pt gravity.Vec, dr float64) (lo, hi, dir gravity.Vec) {
	lo, hi = pt, pt
	lo[2] -= dr
	hi[2] += dr
	return lo, hi, gravity.Vec{0, 0, 1}
}

// rOffset straddles a sample along its own in-plane radial direction.
func rOffset(pt gravity.Vec, dr float64) (lo, hi, dir gravity.Vec) {
	r := math.Sqrt(pt[0]*pt[0] + pt[1]*pt[1])
	dir = gravity.Vec{pt[0] / r, pt[1] / r, 0}

	lo, hi = pt, pt
	lo[0] -= dir[0] * dr
	lo[1] -= dir[1] * dr
	hi[0] += dir[0] * dr
	hi[1] += dir[1] * dr
	return lo, hi, dir
}

// gradGrid estimates a directional acceleration derivative at every sample
// point with a centered finite difference over +-dr, then averages the four
// azimuthal samples of each (R, z) pair into a grid.
func (p *InterpPotential) gradGrid(
	points []gravity.Vec, offset offsetFunc,
) ([][]float64, error) {
	dr := p.cfg.DR

	straddled := make([]gravity.Vec, 2*len(points))
	dirs := make([]gravity.Vec, len(points))
	for i, pt := range points {
		lo, hi, dir := offset(pt, dr)
		straddled[2*i] = lo
		straddled[2*i+1] = hi
		dirs[i] = dir
	}

	_, acc, err := p.oracle.Compute(p.ens, straddled)
	if err != nil {
		return nil, err
	}

	grads := make([]float64, len(points)/4)
	for i := range dirs {
		d := (acc[2*i+1].Dot(dirs[i]) - acc[2*i].Dot(dirs[i])) / (2 * dr)
		grads[i/4] += d / 4
	}

	return reshape(grads, len(p.rgrid), len(p.zgrid)), nil
}

// buildMidplaneCurves derives the circular velocity and frequency curves
// from the midplane row of the grids. They are computed once; Normalize
// rescales the splines fit to them, not the curves themselves.
func (p *InterpPotential) buildMidplaneCurves() {
	if p.feats.pot {
		p.vcircGrid = make([]float64, len(p.rgrid))
		for i, R := range p.rgrid {
			p.vcircGrid[i] = math.Sqrt(R * -p.rforceGrid[i][0])
		}
	}

	if p.feats.epifreq {
		p.epifreqGrid = make([]float64, len(p.rgrid))
		for i, R := range p.rgrid {
			p.epifreqGrid[i] = math.Sqrt(
				p.r2derivGrid[i][0] - 3/R*p.rforceGrid[i][0],
			)
		}
	}

	if p.feats.vertfreq {
		p.vertfreqGrid = make([]float64, len(p.rgrid))
		for i := range p.rgrid {
			p.vertfreqGrid[i] = math.Sqrt(math.Abs(p.z2derivGrid[i][0]))
		}
	}
}

func reshape(flat []float64, nr, nz int) [][]float64 {
	grid := make([][]float64, nr)
	for i := 0; i < nr; i++ {
		grid[i] = flat[i*nz : (i+1)*nz]
	}
	return grid
}
