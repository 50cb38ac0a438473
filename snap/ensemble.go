/*Package snap holds the particle ensembles that the potential engine is
built on top of: a fixed collection of point masses taken from one output
of an N-body simulation.*/
package snap

import (
	"fmt"
)

// Ensemble is a single snapshot of point masses. Positions and velocities
// use whatever unit system the snapshot was written in; the engine treats
// them as dimensionless numbers.
//
// An Ensemble is borrowed, not owned, by the potentials built from it.
// RescaleUnits changes it in place.
type Ensemble struct {
	Pos  [][3]float64
	Vel  [][3]float64
	Mass []float64

	// Eps is the Plummer softening length used by gravity solvers. Zero
	// means unsoftened point masses.
	Eps float64

	lengthDiv, velDiv float64
}

// Len returns the number of particles.
func (e *Ensemble) Len() int { return len(e.Mass) }

// Validate checks that the particle arrays are consistent with one another.
func (e *Ensemble) Validate() error {
	if len(e.Pos) != len(e.Mass) {
		return fmt.Errorf(
			"snap: ensemble has %d positions but %d masses",
			len(e.Pos), len(e.Mass),
		)
	}
	if e.Vel != nil && len(e.Vel) != len(e.Mass) {
		return fmt.Errorf(
			"snap: ensemble has %d velocities but %d masses",
			len(e.Vel), len(e.Mass),
		)
	}
	if len(e.Mass) == 0 {
		return fmt.Errorf("snap: ensemble is empty")
	}
	return nil
}

// RescaleUnits divides every position (and the softening length) by
// lengthDiv and every velocity by velDiv, in place. The factors are kept so
// RestoreUnits can undo the rescaling exactly once.
//
// A second rescale without an intervening restore is rejected so that the
// stored factors cannot be silently overwritten.
func (e *Ensemble) RescaleUnits(lengthDiv, velDiv float64) error {
	if e.lengthDiv != 0 {
		return fmt.Errorf("snap: ensemble units already rescaled")
	}
	if lengthDiv == 0 || velDiv == 0 {
		return fmt.Errorf(
			"snap: invalid unit divisors (%g, %g)", lengthDiv, velDiv,
		)
	}

	for i := range e.Pos {
		for k := 0; k < 3; k++ {
			e.Pos[i][k] /= lengthDiv
		}
	}
	for i := range e.Vel {
		for k := 0; k < 3; k++ {
			e.Vel[i][k] /= velDiv
		}
	}
	e.Eps /= lengthDiv

	e.lengthDiv, e.velDiv = lengthDiv, velDiv
	return nil
}

// RestoreUnits undoes the outstanding RescaleUnits call.
func (e *Ensemble) RestoreUnits() error {
	if e.lengthDiv == 0 {
		return fmt.Errorf("snap: ensemble units have not been rescaled")
	}

	for i := range e.Pos {
		for k := 0; k < 3; k++ {
			e.Pos[i][k] *= e.lengthDiv
		}
	}
	for i := range e.Vel {
		for k := 0; k < 3; k++ {
			e.Vel[i][k] *= e.velDiv
		}
	}
	e.Eps *= e.lengthDiv

	e.lengthDiv, e.velDiv = 0, 0
	return nil
}
