package usecase

import (
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/mesh"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/ports"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// MeshRequest is one mesh generation job.
type MeshRequest struct {
	UpperPath   string
	LowerPath   string
	OutputPath  string // script path; required unless DryRun
	GeoJSONPath string // optional debug export
	DryRun      bool

	Mesh        domain.MeshConfig
	Correlation domain.Correlation
}

// Mesh is everything the pipeline produced for one airfoil.
type Mesh struct {
	Contour     domain.ClosedContour
	Farfield    domain.FarfieldLoop
	WallSpacing domain.WallSpacing
	Topology    domain.MeshTopology
	LeadingEdge float64
}

// MeshSummary is the user-facing outcome of GenerateMesh.
type MeshSummary struct {
	ScriptPath  string `json:"script_path,omitempty"`
	GeoJSONPath string `json:"geojson_path,omitempty"`
	Written     bool   `json:"written"`

	Points         int `json:"points"`
	Edges          int `json:"edges"`
	FarfieldPoints int `json:"farfield_points"`
	ContourPoints  int `json:"contour_points"`

	LeadingEdgeX      float64   `json:"leading_edge_x"`
	LeadingEdgeKink   float64   `json:"leading_edge_kink_deg"`
	Closure           bool      `json:"trailing_edge_closure"`
	SharpTrailingEdge bool      `json:"sharp_trailing_edge"`
	ContourArea       float64   `json:"contour_area"`
	CounterClockwise  bool      `json:"counter_clockwise"`
	Extent            orb.Bound `json:"extent"`

	WallSpacing domain.WallSpacing `json:"wall_spacing"`
}

type GenerateMesh struct {
	coords   ports.CoordinateSource
	writer   ports.ScriptWriter
	exporter ports.GeometryExporter
	log      *slog.Logger
}

type MeshOption func(*GenerateMesh)

// WithGeometryExporter enables MeshRequest.GeoJSONPath.
func WithGeometryExporter(e ports.GeometryExporter) MeshOption {
	return func(uc *GenerateMesh) { uc.exporter = e }
}

func WithMeshLogger(l *slog.Logger) MeshOption {
	return func(uc *GenerateMesh) {
		if l != nil {
			uc.log = l
		}
	}
}

func NewGenerateMesh(coords ports.CoordinateSource, writer ports.ScriptWriter, opts ...MeshOption) *GenerateMesh {
	uc := &GenerateMesh{
		coords: coords,
		writer: writer,
		log:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Build runs the geometry pipeline without touching the filesystem beyond
// reading the two coordinate files. The topology is validated.
func (uc *GenerateMesh) Build(req MeshRequest) (Mesh, error) {
	upperRaw, err := uc.coords.ReadSurface(req.UpperPath)
	if err != nil {
		return Mesh{}, err
	}
	lowerRaw, err := uc.coords.ReadSurface(req.LowerPath)
	if err != nil {
		return Mesh{}, err
	}

	cfg := req.Mesh
	upper, err := mesh.Resample(upperRaw, cfg.Points)
	if err != nil {
		return Mesh{}, withPath(err, req.UpperPath)
	}
	lower, err := mesh.Resample(lowerRaw, cfg.Points)
	if err != nil {
		return Mesh{}, withPath(err, req.LowerPath)
	}

	contour, xLE, err := mesh.CloseLeadingEdge(upper, lower.Reversed())
	if err != nil {
		return Mesh{}, err
	}

	ws, err := mesh.FirstLayerHeight(mesh.WallSpacingInput{
		Reynolds:        cfg.Reynolds,
		YPlus:           cfg.YPlus,
		Mach:            cfg.Mach,
		ReferenceLength: cfg.ReferenceLength,
	}, req.Correlation)
	if err != nil {
		return Mesh{}, err
	}

	farfield, err := mesh.Ring(cfg.FarfieldRadius, cfg.FarfieldPoints)
	if err != nil {
		return Mesh{}, err
	}

	topo, err := mesh.Assemble(farfield, contour, mesh.AssembleOptions{
		Label:          req.UpperPath,
		PointMeshSize:  cfg.PointMeshSize,
		MeshSizeFactor: cfg.MeshSizeFactor,
		BoundaryLayer: mesh.BoundaryLayerSpec{
			WallHeight: ws.Height,
			Thickness:  cfg.BLThickness,
			Ratio:      cfg.GrowthRate,
			Quads:      true,
		},
	})
	if err != nil {
		return Mesh{}, err
	}

	return Mesh{
		Contour:     contour,
		Farfield:    farfield,
		WallSpacing: ws,
		Topology:    topo,
		LeadingEdge: xLE,
	}, nil
}

// Execute builds the mesh and, unless DryRun is set, writes the script (and
// the optional GeoJSON view). Nothing is written when any step fails.
func (uc *GenerateMesh) Execute(req MeshRequest) (MeshSummary, error) {
	if !req.DryRun && strings.TrimSpace(req.OutputPath) == "" {
		return MeshSummary{}, domain.NewOpError("mesh.generate", domain.KindInvalidInput, "output path is required")
	}

	m, err := uc.Build(req)
	if err != nil {
		uc.log.Error("mesh.build_failed", "upper", req.UpperPath, "lower", req.LowerPath, "err", err)
		return MeshSummary{}, err
	}

	sum := summarize(m)
	uc.log.Info("mesh.built",
		"upper", req.UpperPath,
		"points", sum.Points,
		"contour_points", sum.ContourPoints,
		"leading_edge_x", sum.LeadingEdgeX,
		"leading_edge_kink_deg", sum.LeadingEdgeKink,
		"hwall_n", m.WallSpacing.Height,
	)

	if req.DryRun {
		return sum, nil
	}

	if err := uc.writer.WriteScript(req.OutputPath, m.Topology); err != nil {
		return sum, err
	}
	sum.ScriptPath = req.OutputPath
	sum.Written = true
	uc.log.Info("mesh.script_written", "path", req.OutputPath)

	if req.GeoJSONPath != "" && uc.exporter != nil {
		if err := uc.exporter.Export(req.GeoJSONPath, m.Farfield, m.Contour); err != nil {
			return sum, err
		}
		sum.GeoJSONPath = req.GeoJSONPath
		uc.log.Info("mesh.geojson_written", "path", req.GeoJSONPath)
	}

	return sum, nil
}

func summarize(m Mesh) MeshSummary {
	ring := m.Contour.Ring()
	area := planar.Area(ring)

	return MeshSummary{
		Points:            len(m.Topology.Points),
		Edges:             len(m.Topology.Edges),
		FarfieldPoints:    m.Topology.FarfieldPoints.Len(),
		ContourPoints:     m.Topology.ContourPoints.Len(),
		LeadingEdgeX:      m.LeadingEdge,
		LeadingEdgeKink:   mesh.LeadingEdgeKink(m.Contour),
		Closure:           m.Contour.Closure,
		SharpTrailingEdge: m.Contour.SharpTrailingEdge,
		ContourArea:       math.Abs(area),
		CounterClockwise:  area > 0,
		Extent:            ring.Bound(),
		WallSpacing:       m.WallSpacing,
	}
}

// withPath attaches the input file to path-less operation errors.
func withPath(err error, path string) error {
	oe, ok := err.(*domain.OpError)
	if !ok || oe.Path != "" {
		return err
	}
	cp := *oe
	cp.Path = path
	return &cp
}
