package runstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/ports"
)

const defaultRunsDir = "runs"

type JSONStore struct {
	rootDir     string
	runsDirName string
	writeIndex  bool
	writeCSV    bool
	now         func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: runs/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithCSV writes the polar next to the JSON artifact as <id>.csv.
func WithCSV(enabled bool) Option {
	return func(s *JSONStore) { s.writeCSV = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	runsDir := cfg.Paths.RunsDir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = defaultRunsDir
	}

	s := &JSONStore{
		rootDir:     root,
		runsDirName: runsDir,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.SweepStore = (*JSONStore)(nil)

// Dir returns the directory artifacts are written to.
func (s *JSONStore) Dir() string {
	return filepath.Join(s.rootDir, s.runsDirName)
}

func (s *JSONStore) SaveSweep(res domain.SweepResult) (string, error) {
	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.mkdir",
			Kind: domain.KindIO,
			Path: dir,
			Err:  err,
		}
	}

	ts := res.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := res
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}

	slug := slugify(strings.TrimSuffix(filepath.Base(res.CaseFile), filepath.Ext(res.CaseFile)))
	if slug == "" {
		slug = "sweep"
	}

	filename := fmt.Sprintf("%s_%s.json", ts.Format("20060102T150405Z"), slug)
	id := strings.TrimSuffix(filename, ".json")
	path := filepath.Join(dir, filename)

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "runstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if err := writeAtomic(path, b); err != nil {
		return "", err
	}

	if s.writeCSV {
		if err := s.saveCSV(filepath.Join(dir, id+".csv"), toSave.Points); err != nil {
			return id, err
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filename, toSave)
	}

	return id, nil
}

func (s *JSONStore) saveCSV(path string, points []domain.SweepPoint) error {
	var sb strings.Builder
	if err := WriteCSV(&sb, points); err != nil {
		return &domain.OpError{Op: "runstore.csv", Kind: domain.KindIO, Path: path, Err: err}
	}
	return writeAtomic(path, []byte(sb.String()))
}

func (s *JSONStore) appendIndex(dir, id, filename string, res domain.SweepResult) error {
	type idx struct {
		ID        string    `json:"id"`
		SweepID   string    `json:"sweep_id"`
		File      string    `json:"file"`
		CaseFile  string    `json:"case_file"`
		Points    int       `json:"points"`
		Failed    int       `json:"failed"`
		StartedAt time.Time `json:"started_at"`
	}

	failed := 0
	for _, p := range res.Points {
		if p.Failed() {
			failed++
		}
	}

	line, err := json.Marshal(idx{
		ID:        id,
		SweepID:   res.ID,
		File:      filename,
		CaseFile:  res.CaseFile,
		Points:    len(res.Points),
		Failed:    failed,
		StartedAt: res.StartedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, _ = f.Write(append(line, '\n'))
	return nil
}

// writeAtomic writes tmp then renames over path.
func writeAtomic(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return &domain.OpError{
			Op:   "runstore.write",
			Kind: domain.KindIO,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "runstore.rename",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastDash = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			// any other char -> dash
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
