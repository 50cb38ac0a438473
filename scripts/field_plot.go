package main

import (
	"fmt"
	"log"
	"os"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/astrokit/snappot"
	"github.com/astrokit/snappot/snap"
)

const (
	rMin, rMax = 0.05, 2.0
	rBins      = 101
	zMax       = 0.2
	zBins      = 51
	samples    = 200
)

// Plots the midplane potential, radial force and rotation curve of a
// snapshot table. Usage: field_plot snapshot.txt out_dir
func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s snapshot.txt out_dir\n", os.Args[0])
		os.Exit(1)
	}
	snapFile, outDir := os.Args[1], os.Args[2]

	ens, err := snap.ReadTable(snapFile)
	if err != nil {
		log.Fatal(err.Error())
	}

	cfg := snappot.Config{
		RGrid:     snappot.GridSpec{Min: rMin, Max: rMax, N: rBins},
		ZGrid:     snappot.GridSpec{Min: 0, Max: zMax, N: zBins},
		ZSym:      true,
		InterpPot: true,
	}
	pot, err := snappot.New(ens, cfg)
	if err != nil {
		log.Fatal(err.Error())
	}

	rs := make([]float64, samples)
	phis := make([]float64, samples)
	frs := make([]float64, samples)
	vcs := make([]float64, samples)
	for i := range rs {
		rs[i] = rMin + (rMax-rMin)*float64(i)/float64(samples-1)

		phis[i], err = pot.Potential(rs[i], 0, 0, 0)
		if err != nil {
			log.Fatal(err.Error())
		}
		frs[i], err = pot.RForce(rs[i], 0, 0, 0)
		if err != nil {
			log.Fatal(err.Error())
		}
		vcs[i], err = pot.VCirc(rs[i])
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	plt.Figure()
	plt.Plot(rs, phis, "b", plt.LW(2))
	plt.XLabel(`$R$`, plt.FontSize(16))
	plt.YLabel(`$\Phi(R, 0)$`, plt.FontSize(16))
	plt.SaveFig(outDir + "/potential.png")

	plt.Figure()
	plt.Plot(rs, frs, "r", plt.LW(2))
	plt.XLabel(`$R$`, plt.FontSize(16))
	plt.YLabel(`$F_R(R, 0)$`, plt.FontSize(16))
	plt.SaveFig(outDir + "/rforce.png")

	plt.Figure()
	plt.Plot(rs, vcs, "k", plt.LW(2))
	plt.XLabel(`$R$`, plt.FontSize(16))
	plt.YLabel(`$v_c(R)$`, plt.FontSize(16))
	plt.SaveFig(outDir + "/vcirc.png")

	plt.Execute()
}
