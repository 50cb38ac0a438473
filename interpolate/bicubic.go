package interpolate

import (
	"fmt"
)

// BiCubic is a bicubic surface fit over the Cartesian product of two
// monotonically increasing axes. It is built as a spline of splines: one
// spline along y per x node, with the cross spline at a fixed y cached
// between evaluations.
type BiCubic struct {
	xs, ys []float64

	ySplines []*Spline

	lastY   float64
	haveY   bool
	xVals   []float64
	xSpline *Spline
}

// NewBiCubic creates a bicubic surface from vals, where vals[i][j] is the
// value at (xs[i], ys[j]). Both axes must be sorted in increasing order.
// All inputs are copied.
func NewBiCubic(xs, ys []float64, vals [][]float64) *BiCubic {
	if len(vals) != len(xs) {
		panic(fmt.Sprintf(
			"len(vals) = %d, but len(xs) = %d", len(vals), len(xs),
		))
	}
	for i := range vals {
		if len(vals[i]) != len(ys) {
			panic(fmt.Sprintf(
				"len(vals[%d]) = %d, but len(ys) = %d",
				i, len(vals[i]), len(ys),
			))
		}
	}

	bi := &BiCubic{}
	bi.xs = make([]float64, len(xs))
	bi.ys = make([]float64, len(ys))
	copy(bi.xs, xs)
	copy(bi.ys, ys)

	bi.ySplines = make([]*Spline, len(xs))
	for xi := range bi.xs {
		bi.ySplines[xi] = NewSpline(ys, vals[xi])
	}
	bi.xVals = make([]float64, len(xs))

	return bi
}

// Eval computes the value of the surface at the given point. Points outside
// the fitted domain extrapolate with the boundary polynomials.
func (bi *BiCubic) Eval(x, y float64) float64 {
	bi.setY(y)
	return bi.xSpline.Eval(x)
}

// EvalAll evaluates the surface at every (xs[i], ys[i]) pair. The result is
// written to out if it is given and appended to a new slice otherwise.
func (bi *BiCubic) EvalAll(xs, ys []float64, out ...[]float64) []float64 {
	if len(xs) != len(ys) {
		panic(fmt.Sprintf("len(xs) = %d, but len(ys) = %d", len(xs), len(ys)))
	}
	var res []float64
	if len(out) > 0 {
		res = out[0]
	} else {
		res = make([]float64, len(xs))
	}
	for i := range xs {
		res[i] = bi.Eval(xs[i], ys[i])
	}
	return res
}

func (bi *BiCubic) setY(y float64) {
	if bi.haveY && y == bi.lastY {
		return
	}
	for i := range bi.ySplines {
		bi.xVals[i] = bi.ySplines[i].Eval(y)
	}
	bi.xSpline = NewSpline(bi.xs, bi.xVals)
	bi.lastY, bi.haveY = y, true
}
