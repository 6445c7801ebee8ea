package ports

import "github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
