package mesh

import (
	"math"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/paulmach/orb"
)

// DefaultFarfieldPoints is the default farfield resolution.
const DefaultFarfieldPoints = 100

// Ring discretizes a circle of the given radius, centred on the origin, into
// count points; point j sits at angle 2πj/count.
func Ring(radius float64, count int) (domain.FarfieldLoop, error) {
	const op = "mesh.farfield_ring"

	if !(radius > 0) {
		return domain.FarfieldLoop{}, domain.NewOpError(op, domain.KindInvalidInput, "radius must be positive, got %g", radius)
	}
	if count < 3 {
		return domain.FarfieldLoop{}, domain.NewOpError(op, domain.KindInvalidInput, "need at least 3 farfield points, got %d", count)
	}

	pts := make([]orb.Point, count)
	for j := range pts {
		angle := 2 * math.Pi * float64(j) / float64(count)
		pts[j] = orb.Point{radius * math.Cos(angle), radius * math.Sin(angle)}
	}
	return domain.FarfieldLoop{Radius: radius, Points: pts}, nil
}
