package forces

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const breakdown = `-------------------------------------------------------------------------
Surface forces breakdown:
Total CL:    0.327614 | Pressure (  99.0213%):  0.324408 | Friction (   0.9787%):  0.003206
Total CD:    0.011240 | Pressure (  44.1021%):  0.004957 | Friction (  55.8979%):  0.006283
Total CSF:   0.000000 | Pressure (   0.0000%):  0.000000 | Friction (   0.0000%):  0.000000
Total CMz:  -0.002711 | Pressure (  97.4121%): -0.002641 | Friction (   2.5879%): -0.000070
`

func TestParse(t *testing.T) {
	fc, warnings, err := Parse(strings.NewReader(breakdown))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if fc.CL == nil || *fc.CL != 0.327614 {
		t.Fatalf("unexpected CL: %v", fc.CL)
	}
	if fc.CD == nil || *fc.CD != 0.011240 {
		t.Fatalf("unexpected CD: %v", fc.CD)
	}
	if fc.CMz == nil || *fc.CMz != -0.002711 {
		t.Fatalf("unexpected CMz: %v", fc.CMz)
	}
}

func TestParse_MissingAndMalformed(t *testing.T) {
	in := "Total CL:    nan-ish | x\nTotal CMz: 0.01\n"

	fc, warnings, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.CL != nil || fc.CD != nil {
		t.Fatalf("expected CL and CD absent, got %+v", fc)
	}
	if fc.CMz == nil || *fc.CMz != 0.01 {
		t.Fatalf("unexpected CMz: %v", fc.CMz)
	}

	joined := strings.Join(warnings, "\n")
	for _, want := range []string{"line 1: CL", "CL not found", "CD not found"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected warning %q in %v", want, warnings)
		}
	}
}

func TestReadFile_MissingFileIsAWarning(t *testing.T) {
	fc, warnings, err := ReadFile(filepath.Join(t.TempDir(), "forces_breakdown.dat"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fc.Complete() {
		t.Fatalf("expected absent coefficients")
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "not found") {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forces_breakdown.dat")
	if err := os.WriteFile(path, []byte(breakdown), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fc, _, err := NewReader().ReadForces(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fc.Complete() {
		t.Fatalf("expected all coefficients, got %+v", fc)
	}
}
