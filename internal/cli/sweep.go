package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/forces"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/logger"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/metrics"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/runstore"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/solverrunner"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/su2case"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/numeric"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/usecase"
)

func sweepCmd() *cobra.Command {
	var workspace string
	var caseFile string
	var forcesFile string
	var start, stop float64
	var count int
	var solver string
	var launcher string
	var procs int
	var noSave bool
	var noCSV bool
	var quiet bool
	var format string

	c := &cobra.Command{
		Use:   "sweep",
		Short: "Run the flow solver over a range of angles of attack",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			sc := ws.cfg.Sweep
			fl := cmd.Flags()
			if fl.Changed("case") {
				sc.CaseFile = caseFile
			}
			if fl.Changed("forces") {
				sc.ForcesFile = forcesFile
			}
			if fl.Changed("start") {
				sc.AoA.Start = start
			}
			if fl.Changed("stop") {
				sc.AoA.Stop = stop
			}
			if fl.Changed("count") {
				sc.AoA.Count = count
			}
			if fl.Changed("solver") {
				sc.Solver = solver
			}
			if fl.Changed("launcher") {
				sc.Launcher = launcher
			}
			if fl.Changed("procs") {
				sc.Procs = procs
			}

			solverOut := io.Writer(os.Stderr)
			if quiet {
				solverOut = io.Discard
			}
			runner := solverrunner.New(sc.Solver,
				solverrunner.WithLauncher(sc.Launcher, sc.Procs),
				solverrunner.WithDir(ws.root),
				solverrunner.WithOutput(solverOut),
			)

			plan := domain.SweepPlan{
				CaseFile:   resolveInWorkspace(ws, sc.CaseFile),
				ForcesFile: resolveInWorkspace(ws, sc.ForcesFile),
				Angles:     usecase.SweepAngles(sc.AoA),
			}

			opts := []usecase.SweepOption{usecase.WithSweepLogger(logger.Component("sweep"))}

			var store *runstore.JSONStore
			if !noSave {
				store = runstore.NewJSONStore(ws.root, ws.cfg, runstore.WithIndex(true), runstore.WithCSV(!noCSV))
				opts = append(opts, usecase.WithSweepStore(store))
			}

			var rec *metrics.Recorder
			if sc.Metrics {
				rec = metrics.NewRecorder(filepath.Base(plan.CaseFile))
				opts = append(opts, usecase.WithRecorder(rec))
			}

			uc := usecase.NewRunSweep(su2case.NewEditor(), runner, forces.NewReader(), opts...)

			res, id, err := uc.Execute(cmd.Context(), plan)
			if err != nil {
				if len(res.Points) > 0 {
					_ = printSweep(os.Stdout, res, id, format)
				}
				return err
			}

			if rec != nil && store != nil && id != "" {
				if err := rec.WriteTextfile(filepath.Join(store.Dir(), id+".prom")); err != nil {
					logger.L().Warn("sweep.metrics_write_failed", "err", err)
				}
			}

			if err := printSweep(os.Stdout, res, id, format); err != nil {
				return err
			}

			if n := countFailedPoints(res); n > 0 {
				return fmt.Errorf("sweep finished with %d failed point(s)", n)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&caseFile, "case", "c", "", "Solver case file (default from aerogrid.yaml)")
	c.Flags().StringVar(&forcesFile, "forces", "", "Forces breakdown file written by the solver")
	c.Flags().Float64Var(&start, "start", 0, "First angle of attack (deg)")
	c.Flags().Float64Var(&stop, "stop", 0, "Last angle of attack (deg)")
	c.Flags().IntVar(&count, "count", 0, "Number of angles, inclusive of both ends")
	c.Flags().StringVar(&solver, "solver", "", "Solver binary")
	c.Flags().StringVar(&launcher, "launcher", "", "MPI launcher; empty runs the solver directly")
	c.Flags().IntVar(&procs, "procs", 0, "Processes passed to the launcher")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save the sweep artifact under runs/")
	c.Flags().BoolVar(&noCSV, "no-csv", false, "Do not write the polar CSV next to the artifact")
	c.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not stream solver output to stderr")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printSweep(w io.Writer, res domain.SweepResult, id string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"artifact_id": id,
			"sweep":       res,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettySweep(w, res, id)
		return nil
	default:
		return checkFormat(format)
	}
}

func printPrettySweep(w io.Writer, res domain.SweepResult, id string) {
	total := res.EndedAt.Sub(res.StartedAt)
	if res.StartedAt.IsZero() || res.EndedAt.IsZero() {
		total = 0
	}

	fmt.Fprintln(w, styles.Title.Render("Sweep"))
	fmt.Fprintln(w, field("Case", res.CaseFile))
	fmt.Fprintln(w, field("Started", res.StartedAt.Format(time.RFC3339)))
	fmt.Fprintln(w, field("Duration", total))
	if id != "" {
		fmt.Fprintln(w, field("Artifact", id))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-8s %-6s %-12s %-12s %-12s %s\n", "AoA", "", "CL", "CD", "CMz", "time")
	for _, p := range res.Points {
		status := styles.OK.Render("OK  ")
		switch {
		case p.Failed():
			status = styles.Fail.Render("FAIL")
		case !p.Forces.Complete():
			status = styles.Warn.Render("WARN")
		}
		fmt.Fprintf(w, "%-8s %s   %-12s %-12s %-12s %dms\n",
			numeric.FormatFloat(p.AoA), status,
			coeff(p.Forces.CL), coeff(p.Forces.CD), coeff(p.Forces.CMz), p.DurationMS)

		if p.Failed() {
			fmt.Fprintf(w, "  error: %s (%s)\n", p.Error, p.ErrorKind)
		}
		for _, warn := range p.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warn)
		}
	}
}

func coeff(v *float64) string {
	if v == nil {
		return "-"
	}
	return numeric.FormatFloat(*v)
}

func countFailedPoints(res domain.SweepResult) int {
	n := 0
	for _, p := range res.Points {
		if p.Failed() {
			n++
		}
	}
	return n
}
