package domain

import "github.com/paulmach/orb"

// SurfaceSample is a raw sequence of surface coordinates as read from disk.
// Order is not guaranteed to be monotonic in x.
type SurfaceSample []orb.Point

// ResampledCurve is a fixed-count resampling of one airfoil surface, ordered
// from the trailing edge (x = 1) to the leading edge (x = 0).
// Treat it as immutable once produced.
type ResampledCurve []orb.Point

// Reversed returns a copy with the point order flipped.
func (c ResampledCurve) Reversed() ResampledCurve {
	out := make(ResampledCurve, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

// ClosedContour is the merged airfoil loop: upper surface, solved leading-edge
// point, lower surface and, for blunt trailing edges, an averaged closing point.
// The loop is closed implicitly by a final segment back to Points[0].
type ClosedContour struct {
	Points            []orb.Point
	LeadingEdge       int  // index of the solved leading-edge point
	Closure           bool // true when the last point is the averaged trailing-edge closure
	SharpTrailingEdge bool // true when both surfaces end on the same point
}

// Ring returns the contour as a closed orb ring (first point repeated at the end).
func (c ClosedContour) Ring() orb.Ring {
	if len(c.Points) == 0 {
		return nil
	}
	r := make(orb.Ring, 0, len(c.Points)+1)
	r = append(r, c.Points...)
	return append(r, c.Points[0])
}

// FarfieldLoop is a circle discretized into equally spaced points.
type FarfieldLoop struct {
	Radius float64
	Points []orb.Point
}

// Ring returns the farfield as a closed orb ring.
func (f FarfieldLoop) Ring() orb.Ring {
	if len(f.Points) == 0 {
		return nil
	}
	r := make(orb.Ring, 0, len(f.Points)+1)
	r = append(r, f.Points...)
	return append(r, f.Points[0])
}

// WallSpacing is a first-cell wall-normal height together with the
// quantities the correlation derived it from.
type WallSpacing struct {
	Height             float64 `json:"height"`
	HeightPerLength    float64 `json:"height_per_length"`
	SkinFriction       float64 `json:"skin_friction"`
	FreestreamVelocity float64 `json:"freestream_velocity"`
	FrictionVelocity   float64 `json:"friction_velocity"`
	KinematicViscosity float64 `json:"kinematic_viscosity"`
}
