package mesh

import (
	"errors"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/numeric"
	"github.com/paulmach/orb"
)

const (
	minSamples        = 3
	minResampleCount  = 3
	resampleSplineDeg = 2
)

// Resample evaluates a quadratic interpolant of samples (y as a function of
// x) at count cosine-clustered stations running from x = 1 to x = 0.
func Resample(samples domain.SurfaceSample, count int) (domain.ResampledCurve, error) {
	const op = "mesh.resample"

	if len(samples) < minSamples {
		return nil, domain.NewOpError(op, domain.KindInvalidInput,
			"need at least %d samples, got %d", minSamples, len(samples))
	}
	if count < minResampleCount {
		return nil, domain.NewOpError(op, domain.KindInvalidInput,
			"resample count must be at least %d, got %d", minResampleCount, count)
	}

	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, p := range samples {
		xs[i], ys[i] = p.X(), p.Y()
	}

	spline, err := numeric.Interpolate(xs, ys, resampleSplineDeg)
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindInvalidInput, Err: err}
	}

	targets := numeric.CosineSpacing(count)
	values, err := spline.EvalAll(targets)
	if err != nil {
		kind := domain.KindInterpolationDomain
		if !errors.Is(err, numeric.ErrOutOfRange) {
			kind = domain.KindInvalidInput
		}
		return nil, &domain.OpError{Op: op, Kind: kind, Err: err}
	}

	out := make(domain.ResampledCurve, count)
	for i := range targets {
		out[i] = orb.Point{targets[i], values[i]}
	}
	return out, nil
}
