// Package solverrunner launches the flow solver as an external process.
package solverrunner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/ports"
)

const (
	defaultSolver    = "SU2_CFD"
	defaultTailLines = 20
	defaultWaitDelay = 5 * time.Second
)

type Runner struct {
	solver    string
	launcher  string
	procs     int
	dir       string
	out       io.Writer
	tailLines int
}

type Option func(*Runner)

// WithLauncher runs the solver as "<launcher> -n <procs> <solver> <case>".
// An empty launcher runs the solver directly.
func WithLauncher(launcher string, procs int) Option {
	return func(r *Runner) {
		r.launcher = strings.TrimSpace(launcher)
		r.procs = procs
	}
}

// WithDir sets the working directory of the solver process.
func WithDir(dir string) Option {
	return func(r *Runner) { r.dir = dir }
}

// WithOutput streams combined stdout/stderr to w line by line.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithTailLines bounds how many trailing output lines are kept for errors.
func WithTailLines(n int) Option {
	return func(r *Runner) { r.tailLines = n }
}

func New(solver string, opts ...Option) *Runner {
	if strings.TrimSpace(solver) == "" {
		solver = defaultSolver
	}
	r := &Runner{
		solver:    solver,
		out:       io.Discard,
		tailLines: defaultTailLines,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.SolverRunner = (*Runner)(nil)

// Command returns the argv used for casePath.
func (r *Runner) Command(casePath string) []string {
	if r.launcher == "" {
		return []string{r.solver, casePath}
	}
	procs := r.procs
	if procs < 1 {
		procs = 1
	}
	return []string{r.launcher, "-n", strconv.Itoa(procs), r.solver, casePath}
}

// Run blocks until the solver exits. A non-zero exit, a missing binary or a
// cancelled context is returned as a KindExecution error wrapping a
// domain.RunError.
func (r *Runner) Run(ctx context.Context, casePath string) error {
	argv := r.Command(casePath)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.dir
	cmd.WaitDelay = defaultWaitDelay

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	tail := newTail(r.tailLines)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sc := bufio.NewScanner(pr)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			line := sc.Text()
			tail.add(line)
			_, _ = fmt.Fprintln(r.out, line)
		}
		// Keep draining so the process never blocks on a full pipe.
		_, _ = io.Copy(io.Discard, pr)
	}()

	err := cmd.Start()
	if err == nil {
		err = cmd.Wait()
	}
	_ = pw.Close()
	wg.Wait()

	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = fmt.Errorf("%w: %v", ctxErr, err)
	}

	re := domain.NewRunError(err)
	if t := tail.String(); t != "" && re.Kind == domain.RunErrorExit {
		re.Message += "\n" + t
	}
	return &domain.OpError{
		Op:   "solverrunner.run",
		Kind: domain.KindExecution,
		Path: casePath,
		Err:  errors.Join(re, err),
	}
}

// tail keeps the last n lines written to it.
type tail struct {
	mu    sync.Mutex
	n     int
	lines []string
}

func newTail(n int) *tail {
	return &tail{n: n}
}

func (t *tail) add(line string) {
	if t.n <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
	if len(t.lines) > t.n {
		t.lines = t.lines[len(t.lines)-t.n:]
	}
}

func (t *tail) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.lines, "\n")
}
