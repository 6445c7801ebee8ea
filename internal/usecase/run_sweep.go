package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/numeric"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/ports"
	"github.com/google/uuid"
)

type RunSweep struct {
	editor   ports.CaseEditor
	runner   ports.SolverRunner
	forces   ports.ForcesReader
	store    ports.SweepStore
	recorder ports.SweepRecorder
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
}

type SweepOption func(*RunSweep)

// WithSweepStore persists the result after the last angle.
func WithSweepStore(s ports.SweepStore) SweepOption {
	return func(uc *RunSweep) { uc.store = s }
}

func WithRecorder(r ports.SweepRecorder) SweepOption {
	return func(uc *RunSweep) { uc.recorder = r }
}

func WithSweepLogger(l *slog.Logger) SweepOption {
	return func(uc *RunSweep) {
		if l != nil {
			uc.log = l
		}
	}
}

func WithClock(now func() time.Time) SweepOption {
	return func(uc *RunSweep) {
		if now != nil {
			uc.now = now
		}
	}
}

func WithIDGenerator(gen func() string) SweepOption {
	return func(uc *RunSweep) {
		if gen != nil {
			uc.newID = gen
		}
	}
}

func NewRunSweep(editor ports.CaseEditor, runner ports.SolverRunner, forces ports.ForcesReader, opts ...SweepOption) *RunSweep {
	uc := &RunSweep{
		editor: editor,
		runner: runner,
		forces: forces,
		log:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// SweepAngles expands an inclusive AoA range.
func SweepAngles(r domain.AoARange) []float64 {
	if r.Count <= 0 {
		return nil
	}
	return numeric.Linspace(r.Start, r.Stop, r.Count)
}

// Execute runs the solver once per angle, in order. The first run starts
// from scratch, later runs restart from the previous solution. A failed run
// is recorded on its point and the sweep moves on. Cancellation stops the
// sweep and nothing is persisted.
func (uc *RunSweep) Execute(ctx context.Context, plan domain.SweepPlan) (domain.SweepResult, string, error) {
	const op = "usecase.run_sweep"

	if strings.TrimSpace(plan.CaseFile) == "" {
		return domain.SweepResult{}, "", domain.NewOpError(op, domain.KindInvalidInput, "case file is required")
	}
	if len(plan.Angles) == 0 {
		return domain.SweepResult{}, "", domain.NewOpError(op, domain.KindInvalidInput, "no angles of attack to run")
	}

	res := domain.SweepResult{
		ID:        uc.newID(),
		CaseFile:  plan.CaseFile,
		StartedAt: uc.now(),
		Points:    make([]domain.SweepPoint, 0, len(plan.Angles)),
	}
	log := uc.log.With("sweep_id", res.ID, "case", plan.CaseFile)
	log.Info("sweep.start", "angles", len(plan.Angles))

	for i, aoa := range plan.Angles {
		if err := ctx.Err(); err != nil {
			log.Warn("sweep.canceled", "completed", len(res.Points))
			res.EndedAt = uc.now()
			return res, "", err
		}

		pt := uc.runPoint(ctx, plan, aoa, i > 0)
		if ctxErr := ctx.Err(); ctxErr != nil && pt.Failed() {
			log.Warn("sweep.canceled", "aoa", aoa, "completed", len(res.Points))
			res.EndedAt = uc.now()
			return res, "", ctxErr
		}

		res.Points = append(res.Points, pt)
		if uc.recorder != nil {
			uc.recorder.ObservePoint(pt)
		}

		attrs := []any{"aoa", aoa, "restart", pt.Restart, "duration_ms", pt.DurationMS}
		switch {
		case pt.Failed():
			log.Error("sweep.point_failed", append(attrs, "kind", pt.ErrorKind, "err", pt.Error)...)
		case len(pt.Warnings) > 0:
			log.Warn("sweep.point_incomplete", append(attrs, "warnings", pt.Warnings)...)
		default:
			log.Info("sweep.point_done", attrs...)
		}
	}

	res.EndedAt = uc.now()

	if uc.store == nil {
		return res, "", nil
	}
	id, err := uc.store.SaveSweep(res)
	if err != nil {
		return res, "", err
	}
	log.Info("sweep.saved", "artifact", id)
	return res, id, nil
}

func (uc *RunSweep) runPoint(ctx context.Context, plan domain.SweepPlan, aoa float64, restart bool) domain.SweepPoint {
	start := uc.now()
	pt := uc.solvePoint(ctx, plan, aoa, restart)
	pt.DurationMS = uc.now().Sub(start).Milliseconds()
	return pt
}

func (uc *RunSweep) solvePoint(ctx context.Context, plan domain.SweepPlan, aoa float64, restart bool) domain.SweepPoint {
	pt := domain.SweepPoint{AoA: aoa, Restart: restart}

	if err := uc.editor.SetCase(plan.CaseFile, aoa, restart); err != nil {
		pt.Error = err.Error()
		pt.ErrorKind = domain.RunErrorUnknown
		return pt
	}

	// Forces are not read after a failed run; the file would be stale.
	if err := uc.runner.Run(ctx, plan.CaseFile); err != nil {
		pt.Error = err.Error()
		pt.ErrorKind = domain.ClassifyRunError(err)
		return pt
	}

	if uc.forces == nil || plan.ForcesFile == "" {
		return pt
	}
	coeffs, warnings, err := uc.forces.ReadForces(plan.ForcesFile)
	if err != nil {
		pt.Warnings = append(pt.Warnings, err.Error())
	}
	pt.Forces = coeffs
	pt.Warnings = append(pt.Warnings, warnings...)
	return pt
}
