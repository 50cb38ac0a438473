package snappot

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/astrokit/snappot/gravity"
)

// GridSpec describes one axis of the interpolation grid: N points evenly
// spaced over [Min, Max].
type GridSpec struct {
	Min, Max float64
	N        int
}

func (g GridSpec) axis() []float64 {
	xs := make([]float64, g.N)
	floats.Span(xs, g.Min, g.Max)
	return xs
}

func (g GridSpec) validate(name string) error {
	if g.N < 4 {
		return fmt.Errorf(
			"snappot: %s grid needs at least 4 points, got %d", name, g.N,
		)
	}
	if !(g.Max > g.Min) {
		return fmt.Errorf(
			"snappot: %s grid range [%g, %g] is not increasing",
			name, g.Min, g.Max,
		)
	}
	return nil
}

// Config selects what an interpolated potential computes and how.
type Config struct {
	// RGrid is the radial axis. When LogR is set, Min and Max are in log
	// radius and the grid nodes are exp-spaced.
	RGrid GridSpec
	LogR  bool

	// ZGrid is the vertical axis. With ZSym the grid only needs to cover
	// z >= 0; queries at negative z are folded onto it.
	ZGrid GridSpec
	ZSym  bool

	// InterpPot enables the potential and force surfaces. The potential
	// and forces are always computed together, so setting any of these
	// three enables all of them, along with the circular velocity curve.
	InterpPot    bool
	InterpRForce bool
	InterpZForce bool

	// InterpEpiFreq and InterpVerticalFreq enable the second-derivative
	// surfaces and the midplane frequency curves derived from them. They
	// need extra offset-point batches, so they are off by default.
	InterpEpiFreq      bool
	InterpVerticalFreq bool

	// DR is the offset used for the finite-difference second derivatives.
	// The zero value is replaced by 0.01.
	DR float64

	// Threads is the worker count handed to the direct solver. The zero
	// value is replaced by gravity.DefaultThreads.
	Threads int

	// UsePKDGrav selects the external tree-code backend, which is not
	// implemented. Construction fails up front when it is set.
	UsePKDGrav bool

	// Oracle overrides the gravity solver. Nil means direct summation
	// with Threads workers.
	Oracle gravity.Oracle
}

// DefaultConfig mirrors the grid layout the engine was tuned on: a disk
// sampled out to twice the characteristic radius and a fifth of it in
// height.
func DefaultConfig() Config {
	return Config{
		RGrid:     GridSpec{0.01, 2.0, 101},
		ZGrid:     GridSpec{0.0, 0.2, 101},
		ZSym:      true,
		InterpPot: true,
	}
}

// features is the resolved form of the interpolation flags. The config's
// coupled booleans collapse into these three once, at construction.
type features struct {
	pot      bool // potential, both forces, circular velocity
	epifreq  bool
	vertfreq bool
}

func (c *Config) resolve() features {
	return features{
		// The epicyclic curve folds the radial force into kappa, so it
		// drags the whole potential family in with it.
		pot: c.InterpPot || c.InterpRForce || c.InterpZForce ||
			c.InterpEpiFreq,
		epifreq:  c.InterpEpiFreq,
		vertfreq: c.InterpVerticalFreq,
	}
}

func (c *Config) validate() error {
	if err := c.RGrid.validate("R"); err != nil {
		return err
	}
	if err := c.ZGrid.validate("z"); err != nil {
		return err
	}
	if !c.LogR && c.RGrid.Min <= 0 {
		return fmt.Errorf(
			"snappot: R grid must start above the symmetry axis, got Min = %g",
			c.RGrid.Min,
		)
	}
	if c.DR < 0 {
		return fmt.Errorf("snappot: negative finite-difference offset %g", c.DR)
	}
	return nil
}
