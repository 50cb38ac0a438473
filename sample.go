/*Package snappot derives smooth, queryable gravitational potentials from
N-body snapshots, so orbit integration and dynamics code can treat a
discrete particle distribution as a continuous axisymmetric field.

Two modes are available. SnapshotPotential evaluates the field on demand
and caches results per coordinate batch. InterpPotential samples the field
once over an (R, z) grid at construction and answers every later query
from bicubic spline surfaces.

Neither mode is safe for concurrent use from multiple goroutines; a
potential instance expects a single logical caller. Only the gravity
solver parallelizes internally.*/
package snappot

import (
	"gonum.org/v1/gonum/floats"

	"github.com/astrokit/snappot/gravity"
)

// rhats holds the in-plane unit radial direction of each of the four
// azimuthal samples.
var rhats = [4]gravity.Vec{
	{1, 0, 0},
	{0, 1, 0},
	{-1, 0, 0},
	{0, -1, 0},
}

// samplePoints expands every (R, z) pair of the Rs x zs product into four
// 3D points at azimuths 0, 90, 180 and 270 degrees. Averaging the field
// over the four rotated copies stands in for the azimuthal average of a
// truly axisymmetric mass distribution.
//
// Pairs are laid out row-major: pair (i, j) owns points [4*(i*len(zs)+j),
// 4*(i*len(zs)+j)+4).
func samplePoints(Rs, zs []float64) []gravity.Vec {
	points := make([]gravity.Vec, 0, 4*len(Rs)*len(zs))
	for _, R := range Rs {
		for _, z := range zs {
			points = append(points,
				gravity.Vec{R, 0, z},
				gravity.Vec{0, R, z},
				gravity.Vec{-R, 0, z},
				gravity.Vec{0, -R, z},
			)
		}
	}
	return points
}

// averageSamples folds each pair's four azimuthal samples into its mean
// potential, radial force and vertical force. The radial force projects
// each sample's acceleration onto that sample's own radial direction.
func averageSamples(
	pot []float64, acc []gravity.Vec,
) (pots, rforces, zforces []float64) {
	n := len(pot) / 4
	pots = make([]float64, n)
	rforces = make([]float64, n)
	zforces = make([]float64, n)

	for i := 0; i < n; i++ {
		pots[i] = floats.Sum(pot[4*i:4*i+4]) / 4

		var fr, fz float64
		for j := 0; j < 4; j++ {
			a := acc[4*i+j]
			fr += a.Dot(rhats[j])
			fz += a[2]
		}
		rforces[i] = fr / 4
		zforces[i] = fz / 4
	}
	return pots, rforces, zforces
}
