package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "csv.read",
		Kind: KindIO,
		Path: "airfoils/naca0012U.csv",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindIO {
		t.Fatalf("expected kind %s", KindIO)
	}

	msg := err.Error()
	for _, want := range []string{"csv.read", "io", "path=airfoils/naca0012U.csv", "root"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func TestOpErrorMatchesKindSentinel(t *testing.T) {
	err := NewOpError("mesh.close_leading_edge", KindDegenerateGeometry, "need %d points", 4)

	if !errors.Is(err, ErrDegenerateGeometry) {
		t.Fatalf("expected errors.Is to match the kind sentinel")
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected no match for a different kind")
	}
}

func TestIsKindForOpError(t *testing.T) {
	err := fmt.Errorf("outer: %w", &OpError{Op: "config.load", Kind: KindInvalidConfig})

	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected IsKind to match op error")
	}
	if IsKind(errors.New("plain"), KindInvalidConfig) {
		t.Fatalf("expected IsKind to reject plain errors")
	}
}

func TestNilOpError(t *testing.T) {
	var err *OpError
	if err.Error() != "<nil>" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Fatalf("expected nil unwrap")
	}
}
