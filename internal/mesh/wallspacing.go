package mesh

import (
	"errors"
	"math"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
)

// WallSpacingInput are the flow conditions the first-cell height depends on.
type WallSpacingInput struct {
	Reynolds        float64
	YPlus           float64
	Mach            float64
	ReferenceLength float64 // defaults to 1
}

// FirstLayerHeight estimates the first-cell wall-normal height from a
// flat-plate turbulent skin-friction correlation:
//
//	cf  = C / Re^E
//	u_τ = sqrt(cf · ρ · (M·a)² / 2 / ρ)
//	h   = y⁺ · ν / (u_τ · ρ)
//
// With c.KinematicViscosity == 0, ν is taken as M·a·L / Re.
func FirstLayerHeight(in WallSpacingInput, c domain.Correlation) (domain.WallSpacing, error) {
	const op = "mesh.first_layer_height"

	if in.ReferenceLength == 0 {
		in.ReferenceLength = 1
	}
	switch {
	case !(in.Reynolds > 0):
		return domain.WallSpacing{}, domain.NewOpError(op, domain.KindInvalidInput, "reynolds must be positive, got %g", in.Reynolds)
	case !(in.Mach > 0):
		return domain.WallSpacing{}, domain.NewOpError(op, domain.KindInvalidInput, "mach must be positive, got %g", in.Mach)
	case !(in.YPlus > 0):
		return domain.WallSpacing{}, domain.NewOpError(op, domain.KindInvalidInput, "y+ must be positive, got %g", in.YPlus)
	case !(in.ReferenceLength > 0):
		return domain.WallSpacing{}, domain.NewOpError(op, domain.KindInvalidInput, "reference length must be positive, got %g", in.ReferenceLength)
	}
	if err := validateCorrelation(c); err != nil {
		return domain.WallSpacing{}, &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: err}
	}

	rho := c.Density
	u := in.Mach * c.SpeedOfSound
	cf := c.SkinFrictionCoefficient / math.Pow(in.Reynolds, c.SkinFrictionExponent)
	uTau := math.Sqrt(cf * rho * (u * u) / 2 / rho)

	nu := c.KinematicViscosity
	if nu == 0 {
		nu = u * in.ReferenceLength / in.Reynolds
	}

	h := (in.YPlus * nu) / (uTau * rho)
	return domain.WallSpacing{
		Height:             h,
		HeightPerLength:    h / in.ReferenceLength,
		SkinFriction:       cf,
		FreestreamVelocity: u,
		FrictionVelocity:   uTau,
		KinematicViscosity: nu,
	}, nil
}

func validateCorrelation(c domain.Correlation) error {
	switch {
	case !(c.SkinFrictionCoefficient > 0):
		return errors.New("skin friction coefficient must be positive")
	case !(c.SkinFrictionExponent > 0):
		return errors.New("skin friction exponent must be positive")
	case !(c.SpeedOfSound > 0):
		return errors.New("speed of sound must be positive")
	case !(c.Density > 0):
		return errors.New("density must be positive")
	case c.KinematicViscosity < 0:
		return errors.New("kinematic viscosity must not be negative")
	}
	return nil
}
