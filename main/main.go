package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/guptarohit/asciigraph"
	"gopkg.in/gcfg.v1"

	"github.com/astrokit/snappot"
	"github.com/astrokit/snappot/snap"
)

const ExampleRotationCurveFile = `[RotationCurve]

#######################
# Required Parameters #
#######################

# Whitespace-separated particle table with the columns
# mass x y z vx vy vz. Lines starting with # are skipped.
Snapshot = path/to/snapshot.txt

#######################
# Optional Parameters #
#######################

# Radial range and sampling of the interpolation grid. With LogR the
# bounds are given in log radius and the grid is exp-spaced.
# RMin = 0.01
# RMax = 2.0
# RBins = 101
# LogR = false

# Vertical extent and sampling. The field is assumed mirror-symmetric
# about the midplane, so the grid covers z >= 0 only.
# ZMax = 0.2
# ZBins = 101

# Plummer softening length applied by the direct solver.
# Eps = 0

# Worker threads for the gravity computation.
# Threads = 4

# Rescale to dimensionless units with R0 at this radius before sampling
# the curve. Zero leaves physical units alone.
# NormalizeAt = 0

# Number of radii the rotation curve is sampled at. At least 2.
# Samples = 80

# File the sampled curve is written to, one "R vcirc" pair per line.
# Omitting it prints the terminal plot only.
# Output = rotation_curve.txt`

type RotationCurveConfig struct {
	RotationCurve struct {
		Snapshot string
		Output   string

		RMin  float64
		RMax  float64
		RBins int
		LogR  bool

		ZMax  float64
		ZBins int

		Eps         float64
		Threads     int
		NormalizeAt float64
		Samples     int
	}
}

func defaultRotationCurveConfig() *RotationCurveConfig {
	cfg := &RotationCurveConfig{}
	rc := &cfg.RotationCurve
	rc.RMin, rc.RMax, rc.RBins = 0.01, 2.0, 101
	rc.ZMax, rc.ZBins = 0.2, 101
	rc.Samples = 80
	return cfg
}

func main() {
	var (
		rotCurve      string
		exampleConfig string
	)

	flag.StringVar(
		&rotCurve, "RotationCurve", "",
		"Configuration file for [RotationCurve] mode.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'RotationCurve'.",
	)
	flag.Parse()

	switch {
	case exampleConfig != "":
		if exampleConfig != "RotationCurve" {
			log.Fatalf("Unknown config type '%s'.", exampleConfig)
		}
		fmt.Println(ExampleRotationCurveFile)
	case rotCurve != "":
		rotationCurveMain(rotCurve)
	default:
		log.Fatal("No mode flag given. Try -RotationCurve or -ExampleConfig.")
	}
}

func rotationCurveMain(file string) {
	cfg := defaultRotationCurveConfig()
	if err := gcfg.ReadFileInto(cfg, file); err != nil {
		log.Fatalf("Error parsing config file %s: %s", file, err.Error())
	}
	rc := &cfg.RotationCurve

	if rc.Snapshot == "" {
		log.Fatalf("Config file %s does not set Snapshot.", file)
	}
	if rc.Samples < 2 {
		log.Fatalf("Config file %s sets Samples = %d. At least 2 are "+
			"required.", file, rc.Samples)
	}

	ens, err := snap.ReadTable(rc.Snapshot)
	if err != nil {
		log.Fatalf("Error reading snapshot %s: %s", rc.Snapshot, err.Error())
	}
	ens.Eps = rc.Eps
	log.Printf("Read %d particles from %s", ens.Len(), rc.Snapshot)

	pcfg := snappot.Config{
		RGrid:     snappot.GridSpec{Min: rc.RMin, Max: rc.RMax, N: rc.RBins},
		LogR:      rc.LogR,
		ZGrid:     snappot.GridSpec{Min: 0, Max: rc.ZMax, N: rc.ZBins},
		ZSym:      true,
		InterpPot: true,
		Threads:   rc.Threads,
	}

	pot, err := snappot.New(ens, pcfg)
	if err != nil {
		log.Fatalf("Error building potential: %s", err.Error())
	}
	log.Printf("Sampled %d x %d field grid", rc.RBins, rc.ZBins)

	if rc.NormalizeAt != 0 {
		if err := pot.Normalize(rc.NormalizeAt); err != nil {
			log.Fatalf("Error normalizing at R0 = %g: %s",
				rc.NormalizeAt, err.Error())
		}
		log.Printf("Normalized to R0 = %g units", rc.NormalizeAt)
	}

	rs, vcs, err := sampleCurve(pot, rc.Samples)
	if err != nil {
		log.Fatalf("Error sampling rotation curve: %s", err.Error())
	}

	graph := asciigraph.Plot(vcs,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf(
			"vcirc over R = [%.3g, %.3g]", rs[0], rs[len(rs)-1],
		)),
	)
	fmt.Println(graph)

	if rc.Output != "" {
		if err := writeCurve(rc.Output, rs, vcs); err != nil {
			log.Fatalf("Error writing %s: %s", rc.Output, err.Error())
		}
		log.Printf("Wrote rotation curve to %s", rc.Output)
	}
}

// sampleCurve reads the circular velocity over the grid's radial range.
// The sampling is uniform in the current units of the potential.
func sampleCurve(
	pot *snappot.InterpPotential, samples int,
) (rs, vcs []float64, err error) {
	grid := pot.RGrid()
	lo, hi := grid[0], grid[len(grid)-1]

	rs = make([]float64, samples)
	vcs = make([]float64, samples)
	for i := range rs {
		rs[i] = lo + (hi-lo)*float64(i)/float64(samples-1)
		vcs[i], err = pot.VCirc(rs[i])
		if err != nil {
			return nil, nil, err
		}
		if math.IsNaN(vcs[i]) {
			return nil, nil, fmt.Errorf(
				"circular velocity is NaN at R = %g", rs[i],
			)
		}
	}
	return rs, vcs, nil
}

func writeCurve(file string, rs, vcs []float64) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "# R vcirc")
	for i := range rs {
		fmt.Fprintf(f, "%.10g %.10g\n", rs[i], vcs[i])
	}
	return nil
}
