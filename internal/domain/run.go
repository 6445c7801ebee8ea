package domain

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"
)

// RunErrorKind is a high-level classification of solver run errors.
type RunErrorKind string

const (
	RunErrorUnknown       RunErrorKind = "unknown"
	RunErrorTimeout       RunErrorKind = "timeout"
	RunErrorCanceled      RunErrorKind = "canceled"
	RunErrorMissingBinary RunErrorKind = "missing_binary"
	RunErrorExit          RunErrorKind = "exit"
)

// RunError represents a structured error produced by a solver runner.
type RunError struct {
	Kind     RunErrorKind
	Message  string
	ExitCode int // only meaningful for RunErrorExit
}

func (e *RunError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return string(e.Kind) + ": " + e.Message
}

// NewRunError wraps a process error with its classification.
func NewRunError(err error) *RunError {
	if err == nil {
		return nil
	}
	re := &RunError{Kind: ClassifyRunError(err), Message: err.Error(), ExitCode: -1}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		re.ExitCode = exitErr.ExitCode()
	}
	return re
}

// ClassifyRunError maps a process error onto a RunErrorKind.
func ClassifyRunError(err error) RunErrorKind {
	if err == nil {
		return ""
	}

	var re *RunError
	if errors.As(err, &re) {
		return re.Kind
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return RunErrorTimeout
	case errors.Is(err, context.Canceled):
		return RunErrorCanceled
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return RunErrorMissingBinary
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return RunErrorExit
	}
	return RunErrorUnknown
}
