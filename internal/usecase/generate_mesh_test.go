package usecase

import (
	"errors"
	"testing"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
)

func circleRequest() (fakeCoords, MeshRequest) {
	upper, lower := circleSurfaces(9)
	coords := fakeCoords{"circleU.csv": upper, "circleD.csv": lower}

	cfg := domain.DefaultConfig().Mesh
	cfg.Points = 20
	cfg.FarfieldRadius = 50
	cfg.BLThickness = 0.05

	return coords, MeshRequest{
		UpperPath:   "circleU.csv",
		LowerPath:   "circleD.csv",
		OutputPath:  "circle.geo",
		Mesh:        cfg,
		Correlation: domain.DefaultCorrelation(),
	}
}

func TestGenerateMesh_WritesValidatedTopology(t *testing.T) {
	coords, req := circleRequest()
	w := &captureWriter{}
	exp := &captureExporter{}
	req.GeoJSONPath = "circle.geojson"

	sum, err := NewGenerateMesh(coords, w, WithGeometryExporter(exp)).Execute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.calls != 1 || w.path != "circle.geo" {
		t.Fatalf("expected one write to circle.geo, got %d to %q", w.calls, w.path)
	}
	if !sum.Written || sum.ScriptPath != "circle.geo" {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if exp.path != "circle.geojson" || sum.GeoJSONPath != "circle.geojson" {
		t.Fatalf("expected geojson export, got %q", exp.path)
	}
	if sum.FarfieldPoints != 100 || sum.ContourPoints != 40 {
		t.Fatalf("expected 100/40 points, got %d/%d", sum.FarfieldPoints, sum.ContourPoints)
	}
	if sum.Points != 140 || sum.Edges != 140 {
		t.Fatalf("expected 140 points and edges, got %d/%d", sum.Points, sum.Edges)
	}
	if err := w.topo.Validate(); err != nil {
		t.Fatalf("written topology invalid: %v", err)
	}
	if w.topo.Label != "circleU.csv" {
		t.Fatalf("expected label from upper path, got %q", w.topo.Label)
	}
	if len(w.topo.Fields) != 1 || w.topo.Fields[0].WallHeight != sum.WallSpacing.Height {
		t.Fatalf("expected boundary layer with hwall_n %g, got %+v", sum.WallSpacing.Height, w.topo.Fields)
	}
	if sum.LeadingEdgeX < -0.02 || sum.LeadingEdgeX > 0.02 {
		t.Fatalf("leading edge x = %g, expected near 0", sum.LeadingEdgeX)
	}
	if sum.ContourArea <= 0 || sum.Extent.Max.X() < 0.99 {
		t.Fatalf("unexpected contour extent/area: %+v area=%g", sum.Extent, sum.ContourArea)
	}
	if !sum.Closure || sum.SharpTrailingEdge {
		t.Fatalf("expected a closed blunt trailing edge, got closure=%v sharp=%v", sum.Closure, sum.SharpTrailingEdge)
	}
}

func TestGenerateMesh_DryRunWritesNothing(t *testing.T) {
	coords, req := circleRequest()
	req.DryRun = true
	req.OutputPath = ""
	w := &captureWriter{}

	sum, err := NewGenerateMesh(coords, w).Execute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.calls != 0 || sum.Written {
		t.Fatalf("dry run must not write")
	}
	if sum.ContourPoints != 40 {
		t.Fatalf("expected summary to be filled, got %+v", sum)
	}
}

func TestGenerateMesh_IsDeterministic(t *testing.T) {
	coords, req := circleRequest()
	uc := NewGenerateMesh(coords, &captureWriter{})

	a, err := uc.Build(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := uc.Build(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Topology.Points) != len(b.Topology.Points) {
		t.Fatalf("point counts differ")
	}
	for i := range a.Topology.Points {
		if a.Topology.Points[i] != b.Topology.Points[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a.Topology.Points[i], b.Topology.Points[i])
		}
	}
}

func TestGenerateMesh_Failures(t *testing.T) {
	t.Run("missing output path", func(t *testing.T) {
		coords, req := circleRequest()
		req.OutputPath = " "
		w := &captureWriter{}
		_, err := NewGenerateMesh(coords, w).Execute(req)
		if !domain.IsKind(err, domain.KindInvalidInput) {
			t.Fatalf("expected invalid_input, got %v", err)
		}
		if w.calls != 0 {
			t.Fatalf("expected no write")
		}
	})

	t.Run("missing coordinates", func(t *testing.T) {
		coords, req := circleRequest()
		delete(coords, "circleD.csv")
		w := &captureWriter{}
		_, err := NewGenerateMesh(coords, w).Execute(req)
		if !domain.IsKind(err, domain.KindNotFound) {
			t.Fatalf("expected not_found, got %v", err)
		}
		if w.calls != 0 {
			t.Fatalf("expected no write")
		}
	})

	t.Run("too few samples carries the file path", func(t *testing.T) {
		coords, req := circleRequest()
		coords["circleU.csv"] = coords["circleU.csv"][:2]
		_, err := NewGenerateMesh(coords, &captureWriter{}).Execute(req)
		var oe *domain.OpError
		if !errors.As(err, &oe) || oe.Kind != domain.KindInvalidInput || oe.Path != "circleU.csv" {
			t.Fatalf("expected invalid_input on circleU.csv, got %v", err)
		}
	})

	t.Run("farfield inside contour", func(t *testing.T) {
		coords, req := circleRequest()
		req.Mesh.FarfieldRadius = 0.2
		w := &captureWriter{}
		_, err := NewGenerateMesh(coords, w).Execute(req)
		var issues domain.ValidationIssues
		if !errors.As(err, &issues) || !issues.Has("CONTOUR_OUTSIDE_FARFIELD") {
			t.Fatalf("expected CONTOUR_OUTSIDE_FARFIELD, got %v", err)
		}
		if w.calls != 0 {
			t.Fatalf("expected no write")
		}
	})

	t.Run("writer error is returned", func(t *testing.T) {
		coords, req := circleRequest()
		w := &captureWriter{err: errBoom}
		sum, err := NewGenerateMesh(coords, w).Execute(req)
		if !errors.Is(err, errBoom) {
			t.Fatalf("expected writer error, got %v", err)
		}
		if sum.Written {
			t.Fatalf("summary must not report a write")
		}
	})
}
