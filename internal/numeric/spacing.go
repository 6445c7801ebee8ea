package numeric

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, stop)
}

// CosineSpacing returns n chordwise stations in [0, 1], starting at 1 and
// ending at 0, clustered toward 0 (the leading edge):
//
//	x = reverse(cos(linspace(-π, -3π/2, n)) + 1)
func CosineSpacing(n int) []float64 {
	theta := Linspace(-math.Pi, -3*math.Pi/2, n)
	x := make([]float64, len(theta))
	for i, th := range theta {
		x[len(theta)-1-i] = math.Cos(th) + 1
	}
	return x
}
