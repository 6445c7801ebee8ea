package geoscript

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/ports"
)

// Writer persists scripts next to their input files.
type Writer struct {
	perm os.FileMode
}

type Option func(*Writer)

// WithPerm sets the file mode of written scripts.
func WithPerm(perm os.FileMode) Option {
	return func(w *Writer) { w.perm = perm }
}

func NewWriter(opts ...Option) *Writer {
	w := &Writer{perm: 0o644}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var _ ports.ScriptWriter = (*Writer)(nil)

// WriteScript encodes t fully in memory, then writes it atomically (tmp then
// rename) so a failed run never leaves a truncated script behind.
func (w *Writer) WriteScript(path string, t domain.MeshTopology) error {
	var buf bytes.Buffer
	if err := Encode(&buf, t); err != nil {
		return &domain.OpError{Op: "geoscript.encode", Kind: domain.KindIO, Path: path, Err: err}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &domain.OpError{Op: "geoscript.mkdir", Kind: domain.KindIO, Path: dir, Err: err}
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), w.perm); err != nil {
		return &domain.OpError{Op: "geoscript.write", Kind: domain.KindIO, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "geoscript.rename", Kind: domain.KindIO, Path: path, Err: err}
	}
	return nil
}

// ScriptPath derives the script path from the upper surface file: the given
// suffix (e.g. "U.csv") is replaced by ".geo", or the extension if the
// suffix is absent.
func ScriptPath(upperPath, suffix string) string {
	if suffix != "" && strings.HasSuffix(upperPath, suffix) {
		return strings.TrimSuffix(upperPath, suffix) + ".geo"
	}
	return strings.TrimSuffix(upperPath, filepath.Ext(upperPath)) + ".geo"
}
