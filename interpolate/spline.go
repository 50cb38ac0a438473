package interpolate

import (
	"log"
)

// Spline is a natural cubic spline fit to a table of x and y values.
type Spline struct {
	xs, ys, y2s []float64

	// Usually the input data is uniform. This is our estimate of the point
	// spacing.
	dx float64
}

// NewSpline creates a spline from a table of x and y values. The x values
// must be sorted in increasing order.
//
// The input slices are copied, so rescaling them after the fit does not
// change the spline.
func NewSpline(xs, ys []float64) *Spline {
	if len(xs) != len(ys) {
		log.Fatalf(
			"Table given to NewSpline() has len(xs) = %d but len(ys) = %d.",
			len(xs), len(ys),
		)
	} else if len(xs) <= 1 {
		log.Fatalf("Table given to NewSpline() has length of %d.", len(xs))
	}
	for i := 0; i < len(xs)-1; i++ {
		if xs[i+1] <= xs[i] {
			log.Fatal("Table given to NewSpline() not sorted.")
		}
	}

	sp := new(Spline)
	sp.xs = make([]float64, len(xs))
	sp.ys = make([]float64, len(ys))
	sp.y2s = make([]float64, len(xs))
	copy(sp.xs, xs)
	copy(sp.ys, ys)

	sp.dx = (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)

	sp.calcY2s()
	return sp
}

// Eval computes the value of the spline at the given point. Points outside
// the fitted range are extrapolated with the boundary segment's polynomial.
func (sp *Spline) Eval(x float64) float64 {
	lo := sp.bsearch(x)
	hi := lo + 1

	h := sp.xs[hi] - sp.xs[lo]
	a := (sp.xs[hi] - x) / h
	b := 1 - a
	c := (a*a*a - a) * h * h / 6
	d := (b*b*b - b) * h * h / 6
	return a*sp.ys[lo] + b*sp.ys[hi] + c*sp.y2s[lo] + d*sp.y2s[hi]
}

// Diff computes the derivative of the spline at the given point to the
// specified order. Orders above two are zero piecewise.
func (sp *Spline) Diff(x float64, order int) float64 {
	lo := sp.bsearch(x)
	hi := lo + 1

	h := sp.xs[hi] - sp.xs[lo]
	a := (sp.xs[hi] - x) / h
	b := 1 - a

	switch order {
	case 0:
		return sp.Eval(x)
	case 1:
		return (sp.ys[hi]-sp.ys[lo])/h +
			h/6*((3*b*b-1)*sp.y2s[hi]-(3*a*a-1)*sp.y2s[lo])
	case 2:
		return a*sp.y2s[lo] + b*sp.y2s[hi]
	default:
		return 0
	}
}

// Ref returns the x and y tables the spline was fit to.
func (sp *Spline) Ref() (xs, ys []float64) { return sp.xs, sp.ys }

// bsearch returns the index of the segment containing x, clamped to the
// boundary segments when x is out of range.
func (sp *Spline) bsearch(x float64) int {
	// Guess under the assumption of uniform spacing.
	guess := int((x - sp.xs[0]) / sp.dx)
	if guess >= 0 && guess < len(sp.xs)-1 &&
		sp.xs[guess] <= x && x <= sp.xs[guess+1] {

		return guess
	}

	if x <= sp.xs[0] {
		return 0
	} else if x >= sp.xs[len(sp.xs)-1] {
		return len(sp.xs) - 2
	}

	// Binary search.
	lo, hi := 0, len(sp.xs)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x >= sp.xs[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// calcY2s computes the second derivative at every point in the table given
// to NewSpline. The boundary second derivatives are set to zero.
func (sp *Spline) calcY2s() {
	n := len(sp.xs)
	sp.y2s[0], sp.y2s[n-1] = 0, 0
	if n == 2 {
		return
	}

	as, bs := make([]float64, n-2), make([]float64, n-2)
	cs, rs := make([]float64, n-2), make([]float64, n-2)

	xs, ys := sp.xs, sp.ys
	for i := range rs {
		// j indexes into xs and ys.
		j := i + 1

		as[i] = (xs[j] - xs[j-1]) / 6
		bs[i] = (xs[j+1] - xs[j-1]) / 3
		cs[i] = (xs[j+1] - xs[j]) / 6
		rs[i] = ((ys[j+1] - ys[j]) / (xs[j+1] - xs[j])) -
			((ys[j] - ys[j-1]) / (xs[j] - xs[j-1]))
	}

	TriDiagAt(as, bs, cs, rs, sp.y2s[1:n-1])
}
