package ports

import "github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"

// SweepStore persists sweep results for reproducibility.
type SweepStore interface {
	SaveSweep(res domain.SweepResult) (id string, err error)
}
