// Package numeric implements the small amount of 1-D numerics the mesh
// pipeline needs: interpolating B-splines and clustered parameter spacings.
package numeric

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrOutOfRange is returned when a spline is evaluated outside its knots.
	ErrOutOfRange = errors.New("outside interpolation range")
	// ErrDuplicateAbscissa is returned when two samples share an x value.
	ErrDuplicateAbscissa = errors.New("duplicate abscissa")
	// ErrTooFewSamples is returned when there are not enough samples for the degree.
	ErrTooFewSamples = errors.New("too few samples")
)

// BSpline is an interpolating B-spline of fixed degree.
type BSpline struct {
	degree int
	knots  []float64
	coefs  []float64
	lo, hi float64
}

// Interpolate fits a B-spline of the given degree through (xs[i], ys[i]).
// Samples are sorted by x first; x values must be distinct.
//
// Knot placement: degree 2 puts interior knots at the midpoints between
// samples, skipping the first and last midpoint; odd degrees use the
// not-a-knot condition.
func Interpolate(xs, ys []float64, degree int) (*BSpline, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	if degree < 1 {
		return nil, fmt.Errorf("unsupported degree %d", degree)
	}
	n := len(xs)
	if n < degree+1 {
		return nil, fmt.Errorf("%w: need %d for degree %d, got %d", ErrTooFewSamples, degree+1, degree, n)
	}

	x, y := sortedCopy(xs, ys)
	for i := 1; i < n; i++ {
		if x[i] == x[i-1] {
			return nil, fmt.Errorf("%w: x=%g", ErrDuplicateAbscissa, x[i])
		}
	}

	t := interpolationKnots(x, degree)

	a := mat.NewDense(n, n, nil)
	basis := make([]float64, degree+1)
	for i, xi := range x {
		span := findSpan(t, degree, n, xi)
		basisFuncs(t, degree, span, xi, basis)
		for r, v := range basis {
			a.Set(i, span-degree+r, v)
		}
	}

	var c mat.VecDense
	if err := c.SolveVec(a, mat.NewVecDense(n, y)); err != nil {
		return nil, fmt.Errorf("collocation solve: %w", err)
	}

	coefs := make([]float64, n)
	for i := range coefs {
		coefs[i] = c.AtVec(i)
	}

	return &BSpline{
		degree: degree,
		knots:  t,
		coefs:  coefs,
		lo:     x[0],
		hi:     x[n-1],
	}, nil
}

// Domain returns the closed interval the spline may be evaluated on.
func (s *BSpline) Domain() (lo, hi float64) {
	return s.lo, s.hi
}

// Degree returns the polynomial degree.
func (s *BSpline) Degree() int {
	return s.degree
}

// Eval evaluates the spline at x. Values outside Domain are rejected.
func (s *BSpline) Eval(x float64) (float64, error) {
	if x < s.lo || x > s.hi {
		return 0, fmt.Errorf("%w: x=%g not in [%g, %g]", ErrOutOfRange, x, s.lo, s.hi)
	}
	n := len(s.coefs)
	span := findSpan(s.knots, s.degree, n, x)
	basis := make([]float64, s.degree+1)
	basisFuncs(s.knots, s.degree, span, x, basis)

	var sum float64
	for r, b := range basis {
		sum += b * s.coefs[span-s.degree+r]
	}
	return sum, nil
}

// EvalAll evaluates the spline at every x, stopping at the first error.
func (s *BSpline) EvalAll(xs []float64) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		v, err := s.Eval(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func sortedCopy(xs, ys []float64) ([]float64, []float64) {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	x := make([]float64, len(xs))
	y := make([]float64, len(ys))
	for i, j := range idx {
		x[i] = xs[j]
		y[i] = ys[j]
	}
	return x, y
}

// interpolationKnots builds a clamped knot vector of length len(x)+degree+1.
func interpolationKnots(x []float64, degree int) []float64 {
	n := len(x)
	t := make([]float64, 0, n+degree+1)
	for i := 0; i <= degree; i++ {
		t = append(t, x[0])
	}

	if degree%2 == 0 {
		// Midpoints of consecutive samples, minus the first and last one.
		for i := 1; i < n-2; i++ {
			t = append(t, (x[i]+x[i+1])/2)
		}
	} else {
		h := (degree - 1) / 2
		for i := h + 1; i < n-h-1; i++ {
			t = append(t, x[i])
		}
	}

	for i := 0; i <= degree; i++ {
		t = append(t, x[n-1])
	}
	return t
}

// findSpan returns m with t[m] <= x < t[m+1], clamped to [degree, n-1].
func findSpan(t []float64, degree, n int, x float64) int {
	if x >= t[n] {
		return n - 1
	}
	if x <= t[degree] {
		return degree
	}
	lo, hi := degree, n
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x < t[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// basisFuncs fills out with the degree+1 non-zero basis functions at x.
func basisFuncs(t []float64, degree, span int, x float64, out []float64) {
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)
	out[0] = 1
	for d := 1; d <= degree; d++ {
		left[d] = x - t[span+1-d]
		right[d] = t[span+d] - x
		saved := 0.0
		for r := 0; r < d; r++ {
			tmp := out[r] / (right[r+1] + left[d-r])
			out[r] = saved + right[r+1]*tmp
			saved = left[d-r] * tmp
		}
		out[d] = saved
	}
}
