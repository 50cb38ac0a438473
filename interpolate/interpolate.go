/*Package interpolate supplies the spline primitives used by the potential
engine: natural cubic splines over a single monotonic axis and bicubic
surfaces over the Cartesian product of two monotonic axes.

Evaluation outside the fitted domain does not fail. The nearest boundary
polynomial is extended instead, so off-grid results degrade smoothly in
accuracy rather than erroring. Callers which need hard bounds must check
them themselves.*/
package interpolate

type Interpolator interface {
	Eval(x float64) float64
	Diff(x float64, order int) float64
}

var (
	_ Interpolator = &Spline{}
)

type BiInterpolator interface {
	Eval(x, y float64) float64
}

var (
	_ BiInterpolator = &BiCubic{}
)
