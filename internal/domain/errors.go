package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidConfig       = errors.New("invalid config")
	ErrExecution           = errors.New("execution error")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInterpolationDomain = errors.New("interpolation outside sample range")
	ErrDegenerateGeometry  = errors.New("degenerate geometry")
	ErrTopologyConsistency = errors.New("inconsistent topology")
	ErrIO                  = errors.New("i/o failure")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound            ErrorKind = "not_found"
	KindInvalidConfig       ErrorKind = "invalid_config"
	KindExecution           ErrorKind = "execution"
	KindInvalidInput        ErrorKind = "invalid_input"
	KindInterpolationDomain ErrorKind = "interpolation_domain"
	KindDegenerateGeometry  ErrorKind = "degenerate_geometry"
	KindTopologyConsistency ErrorKind = "topology_consistency"
	KindIO                  ErrorKind = "io"
)

var kindSentinels = map[ErrorKind]error{
	KindNotFound:            ErrNotFound,
	KindInvalidConfig:       ErrInvalidConfig,
	KindExecution:           ErrExecution,
	KindInvalidInput:        ErrInvalidInput,
	KindInterpolationDomain: ErrInterpolationDomain,
	KindDegenerateGeometry:  ErrDegenerateGeometry,
	KindTopologyConsistency: ErrTopologyConsistency,
	KindIO:                  ErrIO,
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is(err, ErrDegenerateGeometry) match on the kind even when
// the wrapped cause is a plain error.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// NewOpError is shorthand for a path-less OpError with a formatted cause.
func NewOpError(op string, kind ErrorKind, format string, args ...any) *OpError {
	return &OpError{
		Op:   op,
		Kind: kind,
		Err:  fmt.Errorf(format, args...),
	}
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
