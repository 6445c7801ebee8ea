package ports

import "github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"

// ScriptWriter persists a validated topology as a mesher script.
type ScriptWriter interface {
	WriteScript(path string, t domain.MeshTopology) error
}

// GeometryExporter writes a debug view of the assembled geometry.
type GeometryExporter interface {
	Export(path string, farfield domain.FarfieldLoop, contour domain.ClosedContour) error
}
