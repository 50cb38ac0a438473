/*Package gravity evaluates the gravitational field of a particle ensemble
at batches of points. The engine treats a solver as a black box which maps
field points to potentials and accelerations.*/
package gravity

import (
	"github.com/astrokit/snappot/snap"
)

// Vec is a 3D position or acceleration.
type Vec [3]float64

// Dot returns the inner product of two vectors.
func (v Vec) Dot(u Vec) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Oracle computes the potential and acceleration of an ensemble at every
// point in a batch. Implementations must accept batches of any size,
// including a single point.
type Oracle interface {
	Compute(e *snap.Ensemble, points []Vec) (pot []float64, acc []Vec, err error)
}
