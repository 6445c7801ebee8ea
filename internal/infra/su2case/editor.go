// Package su2case edits solver case files in place.
package su2case

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/numeric"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/ports"
)

const (
	aoaKey     = "AOA="
	restartKey = "RESTART_SOL"
)

type Editor struct{}

func NewEditor() *Editor {
	return &Editor{}
}

var _ ports.CaseEditor = (*Editor)(nil)

// SetCase rewrites the angle-of-attack and restart lines of the case file.
// Every other line is copied through unchanged.
func (e *Editor) SetCase(path string, aoa float64, restart bool) error {
	const op = "su2case.set"

	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return &domain.OpError{Op: op, Kind: kind, Path: path, Err: err}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindIO, Path: path, Err: err}
	}

	out := Rewrite(b, aoa, restart)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, info.Mode().Perm()); err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindIO, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: op, Kind: domain.KindIO, Path: path, Err: err}
	}
	return nil
}

// Rewrite applies the case edits to the raw file contents. Lines are split on
// '\n' with no length limit; a trailing '\r' is dropped and every line,
// including an unterminated last one, is written back with '\n'.
func Rewrite(in []byte, aoa float64, restart bool) []byte {
	var buf bytes.Buffer
	buf.Grow(len(in))

	lines := bytes.Split(in, []byte{'\n'})
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	for _, raw := range lines {
		line := string(bytes.TrimSuffix(raw, []byte{'\r'}))
		switch {
		case strings.HasPrefix(line, aoaKey):
			line = "AOA=  " + numeric.FormatFloat(aoa)
		case strings.HasPrefix(line, restartKey):
			line = "RESTART_SOL= " + yesNo(restart)
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
