package snap

import (
	"math"
	"math/rand"
)

// PointMass returns an ensemble holding a single particle of mass m at the
// origin. Useful as an analytically solvable test system.
func PointMass(m float64) *Ensemble {
	return &Ensemble{
		Pos:  [][3]float64{{0, 0, 0}},
		Vel:  [][3]float64{{0, 0, 0}},
		Mass: []float64{m},
	}
}

// Plummer samples n particles from a Plummer sphere with the given total
// mass and scale radius. Velocities are left at zero: the potential engine
// only reads positions and masses.
func Plummer(n int, totalMass, scale float64, seed int64) *Ensemble {
	rng := rand.New(rand.NewSource(seed))

	e := &Ensemble{
		Pos:  make([][3]float64, n),
		Vel:  make([][3]float64, n),
		Mass: make([]float64, n),
	}

	for i := 0; i < n; i++ {
		// Invert the cumulative mass profile M(r)/M = (1 + a^2/r^2)^(-3/2).
		u := rng.Float64()
		for u == 0 {
			u = rng.Float64()
		}
		r := scale / math.Sqrt(math.Pow(u, -2.0/3.0)-1)

		cosTheta := 2*rng.Float64() - 1
		sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
		phi := 2 * math.Pi * rng.Float64()

		e.Pos[i] = [3]float64{
			r * sinTheta * math.Cos(phi),
			r * sinTheta * math.Sin(phi),
			r * cosTheta,
		}
		e.Mass[i] = totalMass / float64(n)
	}

	return e
}
