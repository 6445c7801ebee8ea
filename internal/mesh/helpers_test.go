package mesh

import (
	"math"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/paulmach/orb"
)

// circleHalves samples a unit circle centred on (1, 0) with n points per
// half. The upper half runs from the leading edge (0, 0) to (2, 0); the lower
// half is its mirror image.
func circleHalves(n int) (upper, lower domain.SurfaceSample) {
	for i := 0; i < n; i++ {
		th := math.Pi - math.Pi*float64(i)/float64(n-1)
		x := 1 + math.Cos(th)
		y := math.Sin(th)
		upper = append(upper, orb.Point{x, y})
		lower = append(lower, orb.Point{x, -y})
	}
	return upper, lower
}

// parabolicSurfaces builds resampled-style curves on x = x0 + k·y², ordered
// like the pipeline orders them: upper from the trailing edge to the leading
// edge, lower from the leading edge to the trailing edge.
func parabolicSurfaces(x0, k float64, ys []float64) (upper, lower domain.ResampledCurve) {
	for _, y := range ys {
		upper = append(upper, orb.Point{x0 + k*y*y, y})
	}
	for i := len(ys) - 1; i >= 0; i-- {
		y := -ys[i]
		lower = append(lower, orb.Point{x0 + k*y*y, y})
	}
	return upper, lower
}
