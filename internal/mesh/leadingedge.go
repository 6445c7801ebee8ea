package mesh

import (
	"math"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/numeric"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/floats"
)

const (
	// closureNeighbours is the number of points taken from each surface.
	closureNeighbours = 3
	closureSplineDeg  = 3
	// coincidenceTol is the distance, relative to the chord, under which two
	// trailing-edge points are treated as the same point.
	coincidenceTol = 1e-12
)

// CloseLeadingEdge merges an upper surface (trailing edge to leading edge)
// and a lower surface (leading edge to trailing edge) into one contour.
//
// The x = 0 sample of each surface is replaced by a single point on y = 0
// whose x comes from a cubic x(y) through the three nearest interior points
// on each side. A blunt trailing edge is closed with a point at the upper
// trailing-edge x and the mean trailing-edge y. Trailing-edge coincidence is
// judged relative to the chord, so the input units do not matter.
func CloseLeadingEdge(upper, lower domain.ResampledCurve) (domain.ClosedContour, float64, error) {
	const op = "mesh.close_leading_edge"

	if len(upper) < closureNeighbours+1 || len(lower) < closureNeighbours+1 {
		return domain.ClosedContour{}, 0, domain.NewOpError(op, domain.KindDegenerateGeometry,
			"need at least %d points per surface, got upper=%d lower=%d",
			closureNeighbours+1, len(upper), len(lower))
	}

	n := len(upper)
	cloud := make([]orb.Point, 0, 2*closureNeighbours)
	cloud = append(cloud, upper[n-closureNeighbours-1:n-1]...)
	cloud = append(cloud, lower[1:closureNeighbours+1]...)

	ys := make([]float64, len(cloud))
	xs := make([]float64, len(cloud))
	for i, p := range cloud {
		xs[i], ys[i] = p.X(), p.Y()
	}

	spline, err := numeric.Interpolate(ys, xs, closureSplineDeg)
	if err != nil {
		return domain.ClosedContour{}, 0, &domain.OpError{Op: op, Kind: domain.KindDegenerateGeometry, Err: err}
	}
	if lo, hi := spline.Domain(); lo > 0 || hi < 0 {
		return domain.ClosedContour{}, 0, domain.NewOpError(op, domain.KindDegenerateGeometry,
			"y=0 is outside the leading-edge neighbourhood [%g, %g]", lo, hi)
	}
	xLE, err := spline.Eval(0)
	if err != nil {
		return domain.ClosedContour{}, 0, &domain.OpError{Op: op, Kind: domain.KindDegenerateGeometry, Err: err}
	}
	// The solved point may sit ahead of its neighbours, but never behind the
	// aftmost of them nor more than one neighbourhood width ahead.
	xMin, xMax := floats.Min(xs), floats.Max(xs)
	if xLE >= xMax || xLE < xMin-(xMax-xMin) {
		return domain.ClosedContour{}, 0, domain.NewOpError(op, domain.KindDegenerateGeometry,
			"leading edge x=%g is outside the neighbourhood x range [%g, %g]", xLE, xMin, xMax)
	}

	upperTE := upper[0]
	lowerTE := lower[len(lower)-1]
	tol := coincidenceTol * math.Abs(upperTE.X()-xLE)
	closing := orb.Point{upperTE.X(), (upperTE.Y() + lowerTE.Y()) / 2}

	points := make([]orb.Point, 0, n+len(lower))
	points = append(points, upper[:n-1]...)
	le := len(points)
	points = append(points, orb.Point{xLE, 0})
	points = append(points, lower[1:]...)

	if coincident(lowerTE, upperTE, tol) {
		// Sharp trailing edge: the loop closes straight back to upper[0].
		points = points[:len(points)-1]
		return domain.ClosedContour{Points: points, LeadingEdge: le, SharpTrailingEdge: true}, xLE, nil
	}

	closure := !coincident(closing, upperTE, tol) && !coincident(closing, lowerTE, tol)
	if closure {
		points = append(points, closing)
	}
	return domain.ClosedContour{Points: points, LeadingEdge: le, Closure: closure}, xLE, nil
}

// LeadingEdgeKink returns the turning angle in degrees between the segment
// arriving at the solved leading-edge point and the one leaving it. A smooth
// closure turns by roughly the local angular resolution of the contour.
func LeadingEdgeKink(c domain.ClosedContour) float64 {
	i := c.LeadingEdge
	if i <= 0 || i >= len(c.Points)-1 {
		return 0
	}
	a, p, b := c.Points[i-1], c.Points[i], c.Points[i+1]
	in := math.Atan2(p.Y()-a.Y(), p.X()-a.X())
	out := math.Atan2(b.Y()-p.Y(), b.X()-p.X())

	turn := math.Abs(out - in)
	if turn > math.Pi {
		turn = 2*math.Pi - turn
	}
	return turn * 180 / math.Pi
}

func coincident(a, b orb.Point, tol float64) bool {
	return planar.Distance(a, b) <= tol
}
