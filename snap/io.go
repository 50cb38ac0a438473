package snap

import (
	"fmt"

	"github.com/phil-mansfield/table"
)

// Table column layout for ReadTable.
const (
	massCol = iota
	xCol
	yCol
	zCol
	vxCol
	vyCol
	vzCol
)

// ReadTable reads an ensemble from a whitespace-separated text table with
// the columns
//
//	mass x y z vx vy vz
//
// one particle per row. Lines starting with # are skipped.
func ReadTable(file string) (e *Ensemble, err error) {
	// The table library reports failures by panicking; convert them back
	// into the error return this function promises.
	defer func() {
		if r := recover(); r != nil {
			e, err = nil, fmt.Errorf("snap: reading table %s: %v", file, r)
		}
	}()
	colIdxs := []int{massCol, xCol, yCol, zCol, vxCol, vyCol, vzCol}
	cols := table.TextFile(file).ReadFloat64s(colIdxs)

	ms := cols[0]
	if len(ms) == 0 {
		return nil, fmt.Errorf("snap: table %s contains no particles", file)
	}

	e = &Ensemble{
		Pos:  make([][3]float64, len(ms)),
		Vel:  make([][3]float64, len(ms)),
		Mass: ms,
	}
	for i := range ms {
		e.Pos[i] = [3]float64{cols[1][i], cols[2][i], cols[3][i]}
		e.Vel[i] = [3]float64{cols[4][i], cols[5][i], cols[6][i]}
	}
	return e, nil
}
