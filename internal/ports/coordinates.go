package ports

import "github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"

// CoordinateSource loads raw surface samples (e.g., from CSV files).
type CoordinateSource interface {
	ReadSurface(path string) (domain.SurfaceSample, error)
}

// AirfoilCatalog lists and resolves upper/lower coordinate file pairs.
type AirfoilCatalog interface {
	ListAirfoils(root string) ([]domain.AirfoilRef, error)
	Resolve(root, name string) (domain.AirfoilRef, error)
}
