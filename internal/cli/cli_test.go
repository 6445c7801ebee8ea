package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/usecase"
)

// --- looksLikePath ---

func TestLooksLikePath(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"turb.cfg", false},
		{"./turb.cfg", true},
		{"cases/turb.cfg", true},
		{"/abs/path/turb.cfg", true},
	}
	for _, c := range cases {
		if got := looksLikePath(c.input); got != c.want {
			t.Errorf("looksLikePath(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

// --- fileExists ---

func TestFileExists(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "exists.txt")
	if err := os.WriteFile(p, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !fileExists(p) {
		t.Errorf("expected fileExists=true for %s", p)
	}
	if fileExists(filepath.Join(tmp, "not_there.txt")) {
		t.Error("expected fileExists=false for non-existent file")
	}
}

// --- checkFormat ---

func TestCheckFormat(t *testing.T) {
	for _, f := range []string{"", "pretty", "json"} {
		if err := checkFormat(f); err != nil {
			t.Errorf("checkFormat(%q) = %v", f, err)
		}
	}
	err := checkFormat("xml")
	if !errors.Is(err, errFormat) || !strings.Contains(err.Error(), "xml") {
		t.Errorf("expected format error mentioning xml, got %v", err)
	}
}

// --- resolveWorkspaceRoot / resolveInWorkspace ---

func TestResolveWorkspaceRoot_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	got, err := resolveWorkspaceRoot(tmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tmp {
		t.Errorf("expected %q, got %q", tmp, got)
	}
}

func TestResolveWorkspaceRoot_RelativePath(t *testing.T) {
	got, err := resolveWorkspaceRoot(".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
}

func TestResolveInWorkspace(t *testing.T) {
	ws := &workspaceCtx{root: "/ws"}
	if got := resolveInWorkspace(ws, "turb.cfg"); got != filepath.Join("/ws", "turb.cfg") {
		t.Errorf("expected path under root, got %q", got)
	}
	if got := resolveInWorkspace(ws, "/abs/turb.cfg"); got != "/abs/turb.cfg" {
		t.Errorf("expected absolute path unchanged, got %q", got)
	}
	if got := resolveInWorkspace(&workspaceCtx{}, "turb.cfg"); got != "turb.cfg" {
		t.Errorf("expected relative path outside a workspace, got %q", got)
	}
}

// --- command wiring ---

func TestRootCmd_HasCommands(t *testing.T) {
	cmd := newRootCmd()
	want := map[string]bool{"init": false, "mesh": false, "wall-spacing": false, "airfoils": false, "sweep": false, "forces": false, "version": false}
	for _, sub := range cmd.Commands() {
		name := strings.Fields(sub.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %q subcommand", name)
		}
	}
	if cmd.PersistentFlags().Lookup("debug") == nil {
		t.Error("expected --debug persistent flag")
	}
}

func TestMeshCmd_Flags(t *testing.T) {
	cmd := meshCmd()
	for _, flag := range []string{"workspace", "airfoil", "upper", "lower", "out", "geojson", "dry-run", "format", "points", "reynolds", "yplus", "mach", "ratio", "thickness", "radius"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on mesh command", flag)
		}
	}
}

func TestSweepCmd_Flags(t *testing.T) {
	cmd := sweepCmd()
	for _, flag := range []string{"workspace", "case", "forces", "start", "stop", "count", "solver", "launcher", "procs", "no-save", "format"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on sweep command", flag)
		}
	}
}

func TestInitCmd_Flags(t *testing.T) {
	cmd := initCmd()
	if cmd.Flags().Lookup("path") == nil {
		t.Error("expected --path flag on init command")
	}
	if cmd.Flags().Lookup("force") == nil {
		t.Error("expected --force flag on init command")
	}
}

// --- meshFlags ---

func TestMeshFlags_ApplyOnlyChanged(t *testing.T) {
	var f meshFlags
	fs := pflag.NewFlagSet("mesh", pflag.ContinueOnError)
	f.bind(fs)
	if err := fs.Parse([]string{"--points", "40", "--radius", "50"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg := domain.DefaultConfig().Mesh
	f.apply(fs, &cfg)
	if cfg.Points != 40 || cfg.FarfieldRadius != 50 {
		t.Fatalf("expected overrides applied, got points=%d radius=%g", cfg.Points, cfg.FarfieldRadius)
	}
	if cfg.Reynolds != domain.DefaultConfig().Mesh.Reynolds {
		t.Fatalf("unset flag must not override config, got Re=%g", cfg.Reynolds)
	}
}

// --- buildMeshRequest ---

func TestBuildMeshRequest(t *testing.T) {
	ws := &workspaceCtx{cfg: domain.DefaultConfig()}

	req, err := buildMeshRequest(ws, "", " a/U.csv ", "a/D.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.UpperPath != "a/U.csv" || req.LowerPath != "a/D.csv" {
		t.Fatalf("unexpected paths: %+v", req)
	}
	if req.Mesh != ws.cfg.Mesh {
		t.Fatalf("expected mesh config from workspace")
	}

	if _, err := buildMeshRequest(ws, "", "a/U.csv", ""); err == nil {
		t.Fatal("expected error when lower is missing")
	}
	if _, err := buildMeshRequest(ws, "naca0012", "a/U.csv", ""); err == nil {
		t.Fatal("expected error when mixing --airfoil and --upper")
	}
	if _, err := buildMeshRequest(ws, "naca0012", "", ""); err == nil {
		t.Fatal("expected error for --airfoil outside a workspace")
	}
}

// --- printSweep ---

func sampleSweep() domain.SweepResult {
	cl, cd := 0.42, 0.012
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return domain.SweepResult{
		ID:        "s-1",
		CaseFile:  "turb.cfg",
		StartedAt: now,
		EndedAt:   now.Add(3 * time.Second),
		Points: []domain.SweepPoint{
			{AoA: -2, Forces: domain.ForceCoefficients{CL: &cl, CD: &cd}, Warnings: []string{"CMz not found"}},
			{AoA: 0, Restart: true, Error: "exit: status 1", ErrorKind: domain.RunErrorExit},
		},
	}
}

func TestPrintSweep_JSON_ValidOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := printSweep(&buf, sampleSweep(), "20240101T120000Z_turb", "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if payload["artifact_id"] != "20240101T120000Z_turb" {
		t.Errorf("expected artifact_id, got %v", payload["artifact_id"])
	}
	if payload["sweep"] == nil {
		t.Error("expected 'sweep' key in JSON output")
	}
}

func TestPrintSweep_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := printSweep(&buf, sampleSweep(), "art-1", "pretty"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"turb.cfg", "art-1", "0.42", "FAIL", "exit: status 1", "CMz not found"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in pretty output, got:\n%s", want, out)
		}
	}
}

func TestPrintSweep_UnknownFormat_ReturnsError(t *testing.T) {
	var buf bytes.Buffer
	if err := printSweep(&buf, domain.SweepResult{}, "", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestCountFailedPoints(t *testing.T) {
	if n := countFailedPoints(sampleSweep()); n != 1 {
		t.Errorf("expected 1, got %d", n)
	}
	if n := countFailedPoints(domain.SweepResult{}); n != 0 {
		t.Errorf("expected 0, got %d", n)
	}
}

// --- printForces ---

func TestPrintForces(t *testing.T) {
	cl := 0.3
	var buf bytes.Buffer
	if err := printForces(&buf, domain.ForceCoefficients{CL: &cl}, []string{"CD not found"}, "pretty"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "0.3") || !strings.Contains(out, "CD not found") {
		t.Errorf("unexpected output:\n%s", out)
	}

	buf.Reset()
	if err := printForces(&buf, domain.ForceCoefficients{}, nil, "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"warnings": []`) {
		t.Errorf("expected empty warnings array, got:\n%s", buf.String())
	}
}

// --- printMesh ---

func TestTrailingEdgeLabel(t *testing.T) {
	cases := []struct {
		sum  usecase.MeshSummary
		want string
	}{
		{usecase.MeshSummary{SharpTrailingEdge: true}, "sharp"},
		{usecase.MeshSummary{Closure: true}, "blunt, closed"},
		{usecase.MeshSummary{}, "blunt, open"},
	}
	for _, tc := range cases {
		if got := trailingEdgeLabel(tc.sum); got != tc.want {
			t.Errorf("trailingEdgeLabel(%+v) = %q, want %q", tc.sum, got, tc.want)
		}
	}
}

func TestPrintMesh_DryRun(t *testing.T) {
	var buf bytes.Buffer
	sum := usecase.MeshSummary{Points: 140, FarfieldPoints: 100, ContourPoints: 40, Edges: 140, Closure: true}
	req := usecase.MeshRequest{UpperPath: "circleU.csv", LowerPath: "circleD.csv", DryRun: true}
	if err := printMesh(&buf, sum, req, "pretty"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"circleU.csv", "dry run", "farfield 100", "contour 40", "blunt"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
}

// --- end to end ---

func TestInitThenMesh(t *testing.T) {
	tmp := t.TempDir()

	initc := initCmd()
	initc.SetArgs([]string{"--path", tmp})
	if err := initc.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}

	airc := airfoilsCmd()
	airc.SetArgs([]string{"-w", tmp, "--format", "json"})
	if err := airc.Execute(); err != nil {
		t.Fatalf("airfoils: %v", err)
	}

	dry := meshCmd()
	dryOut := filepath.Join(tmp, "dry.geo")
	dry.SetArgs([]string{"-w", tmp, "--airfoil", "naca0012", "--dry-run", "--out", dryOut})
	if err := dry.Execute(); err != nil {
		t.Fatalf("mesh --dry-run: %v", err)
	}
	if fileExists(dryOut) {
		t.Fatal("dry run must not write the script")
	}

	out := filepath.Join(tmp, "naca0012.geo")
	gj := filepath.Join(tmp, "naca0012.geojson")
	m := meshCmd()
	m.SetArgs([]string{"-w", tmp, "--airfoil", "naca0012", "--out", out, "--geojson", gj, "--points", "40", "--format", "json"})
	if err := m.Execute(); err != nil {
		t.Fatalf("mesh: %v", err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	script := string(b)
	for _, want := range []string{"Plane Surface(1) = {1, 2};", "Field[1] = BoundaryLayer;", `Physical Curve("Farfield")`, "Mesh 2;"} {
		if !strings.Contains(script, want) {
			t.Errorf("expected %q in script", want)
		}
	}
	if !fileExists(gj) {
		t.Error("expected geojson export")
	}
}

func TestMeshCmd_UnknownAirfoil(t *testing.T) {
	tmp := t.TempDir()
	initc := initCmd()
	initc.SetArgs([]string{"--path", tmp})
	if err := initc.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}

	m := meshCmd()
	m.SetArgs([]string{"-w", tmp, "--airfoil", "nope"})
	m.SilenceErrors = true
	err := m.Execute()
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
