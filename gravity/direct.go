package gravity

import (
	"math"

	"github.com/astrokit/snappot/snap"
)

// Direct is a direct-summation gravity solver. Every point is summed over
// every particle with Plummer softening taken from the ensemble.
//
// Points are split across Threads workers. Summation order over particles
// is the same regardless of the thread count, so results do not depend
// on it.
type Direct struct {
	// G is the gravitational constant. The zero value is replaced by 1,
	// matching simulation units.
	G float64
	// Threads is the number of workers used for a batch. The zero value
	// is replaced by DefaultThreads.
	Threads int
}

const DefaultThreads = 4

// NewDirect creates a direct-summation solver with G = 1 and the given
// thread count.
func NewDirect(threads int) *Direct {
	return &Direct{Threads: threads}
}

// Compute evaluates the softened Newtonian potential and acceleration of e
// at every point. The call blocks until the whole batch is done.
func (d *Direct) Compute(e *snap.Ensemble, points []Vec) ([]float64, []Vec, error) {
	if err := e.Validate(); err != nil {
		return nil, nil, err
	}

	pot := make([]float64, len(points))
	acc := make([]Vec, len(points))
	if len(points) == 0 {
		return pot, acc, nil
	}

	g := d.G
	if g == 0 {
		g = 1
	}
	workers := d.Threads
	if workers <= 0 {
		workers = DefaultThreads
	}
	if workers > len(points) {
		workers = len(points)
	}

	out := make(chan int, workers)
	for id := 0; id < workers-1; id++ {
		go d.chanSum(id, workers, g, e, points, pot, acc, out)
	}
	d.chanSum(workers-1, workers, g, e, points, pot, acc, out)

	for i := 0; i < workers; i++ {
		<-out
	}
	return pot, acc, nil
}

// chanSum sums the field at every point congruent to id modulo the worker
// count, then reports on out.
func (d *Direct) chanSum(
	id, workers int, g float64, e *snap.Ensemble,
	points []Vec, pot []float64, acc []Vec, out chan<- int,
) {
	eps2 := e.Eps * e.Eps

	for pi := id; pi < len(points); pi += workers {
		p := points[pi]
		var phi, ax, ay, az float64

		for i := range e.Mass {
			dx := e.Pos[i][0] - p[0]
			dy := e.Pos[i][1] - p[1]
			dz := e.Pos[i][2] - p[2]

			r2 := dx*dx + dy*dy + dz*dz + eps2
			rInv := 1 / math.Sqrt(r2)
			r3Inv := rInv * rInv * rInv

			gm := g * e.Mass[i]
			phi -= gm * rInv
			ax += gm * r3Inv * dx
			ay += gm * r3Inv * dy
			az += gm * r3Inv * dz
		}

		pot[pi] = phi
		acc[pi] = Vec{ax, ay, az}
	}

	out <- id
}
