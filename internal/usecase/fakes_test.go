package usecase

import (
	"context"
	"errors"
	"io/fs"
	"math"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/ports"
	"github.com/paulmach/orb"
)

type fakeCoords map[string]domain.SurfaceSample

func (f fakeCoords) ReadSurface(path string) (domain.SurfaceSample, error) {
	s, ok := f[path]
	if !ok {
		return nil, &domain.OpError{Op: "fake.read", Kind: domain.KindNotFound, Path: path, Err: fs.ErrNotExist}
	}
	return s, nil
}

type captureWriter struct {
	calls int
	path  string
	topo  domain.MeshTopology
	err   error
}

func (w *captureWriter) WriteScript(path string, t domain.MeshTopology) error {
	w.calls++
	w.path = path
	w.topo = t
	return w.err
}

type captureExporter struct {
	path string
}

func (e *captureExporter) Export(path string, _ domain.FarfieldLoop, _ domain.ClosedContour) error {
	e.path = path
	return nil
}

// circleSurfaces samples a unit circle centred on (1, 0) with n points per
// half. Resampling keeps x in [0, 1], so the trailing edge is blunt.
func circleSurfaces(n int) (upper, lower domain.SurfaceSample) {
	for i := 0; i < n; i++ {
		th := math.Pi - math.Pi*float64(i)/float64(n-1)
		x := 1 + math.Cos(th)
		y := math.Sin(th)
		upper = append(upper, orb.Point{x, y})
		lower = append(lower, orb.Point{x, -y})
	}
	return upper, lower
}

type editCall struct {
	aoa     float64
	restart bool
}

type fakeEditor struct {
	calls []editCall
	err   error
}

func (e *fakeEditor) SetCase(_ string, aoa float64, restart bool) error {
	e.calls = append(e.calls, editCall{aoa: aoa, restart: restart})
	return e.err
}

type scriptedRunner struct {
	calls  int
	failAt map[int]error
	onRun  func(call int)
}

func (r *scriptedRunner) Run(_ context.Context, _ string) error {
	r.calls++
	if r.onRun != nil {
		r.onRun(r.calls)
	}
	if err, ok := r.failAt[r.calls]; ok {
		return err
	}
	return nil
}

type fakeForces struct {
	reads    int
	coeffs   domain.ForceCoefficients
	warnings []string
}

func (f *fakeForces) ReadForces(string) (domain.ForceCoefficients, []string, error) {
	f.reads++
	return f.coeffs, f.warnings, nil
}

type memStore struct {
	saved []domain.SweepResult
	err   error
}

func (s *memStore) SaveSweep(res domain.SweepResult) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, res)
	return "sweep-artifact", nil
}

type pointLog struct {
	points []domain.SweepPoint
}

func (p *pointLog) ObservePoint(pt domain.SweepPoint) { p.points = append(p.points, pt) }

func ptr(v float64) *float64 { return &v }

var errBoom = errors.New("boom")

var (
	_ ports.CoordinateSource = fakeCoords(nil)
	_ ports.ScriptWriter     = (*captureWriter)(nil)
	_ ports.GeometryExporter = (*captureExporter)(nil)
	_ ports.CaseEditor       = (*fakeEditor)(nil)
	_ ports.SolverRunner     = (*scriptedRunner)(nil)
	_ ports.ForcesReader     = (*fakeForces)(nil)
	_ ports.SweepStore       = (*memStore)(nil)
	_ ports.SweepRecorder    = (*pointLog)(nil)
)
