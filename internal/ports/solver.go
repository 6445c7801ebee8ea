package ports

import (
	"context"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
)

// SolverRunner executes the flow solver on a case file.
type SolverRunner interface {
	Run(ctx context.Context, casePath string) error
}

// CaseEditor rewrites the angle of attack and restart flag of a case file.
type CaseEditor interface {
	SetCase(path string, aoa float64, restart bool) error
}

// ForcesReader extracts integrated coefficients from solver output.
// Missing values are reported as warnings, not errors.
type ForcesReader interface {
	ReadForces(path string) (domain.ForceCoefficients, []string, error)
}

// SweepRecorder observes sweep progress (e.g., metrics).
type SweepRecorder interface {
	ObservePoint(p domain.SweepPoint)
}
