package fsworkspace

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/logger"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/ports"
)

const gitignoreHeader = "# aerogrid"

// dotTemplates are embedded without their leading dot (go:embed skips dot
// files) and restored on write.
var dotTemplates = map[string]string{
	"env.example": ".env.example",
}

type Initializer struct {
	paths domain.PathsConfig
}

func NewInitializer() *Initializer {
	return &Initializer{paths: domain.DefaultConfig().Paths}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init scaffolds an aerogrid workspace under spec.Root: the airfoils and runs
// directories, the log directory, .gitignore entries and the embedded
// templates. Existing files are kept unless force is set.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	for _, d := range []string{i.paths.AirfoilsDir, i.paths.RunsDir, logger.Dir} {
		dir := filepath.Join(root, d)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &domain.OpError{Op: "fsworkspace.init", Kind: domain.KindIO, Path: dir, Err: err}
		}
	}

	if err := ensureGitignore(root, i.gitignoreEntries()); err != nil {
		return &domain.OpError{Op: "fsworkspace.gitignore", Kind: domain.KindIO, Path: root, Err: err}
	}

	if err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		return writeTemplate(root, p, force)
	}); err != nil {
		return &domain.OpError{Op: "fsworkspace.templates", Kind: domain.KindIO, Path: root, Err: err}
	}
	return nil
}

func (i *Initializer) gitignoreEntries() []string {
	return []string{
		strings.TrimSuffix(i.paths.RunsDir, "/") + "/",
		".aerogrid/",
		".env",
		"*.geo.tmp",
	}
}

// templateTarget maps an embedded template path to its workspace path.
func templateTarget(root, embedded string) string {
	rel := strings.TrimPrefix(embedded, "templates/")
	if dot, ok := dotTemplates[path.Base(rel)]; ok {
		rel = path.Join(path.Dir(rel), dot)
	}
	return filepath.Join(root, filepath.FromSlash(rel))
}

func writeTemplate(root, embedded string, force bool) error {
	dst := templateTarget(root, embedded)
	if !force {
		if _, err := os.Stat(dst); err == nil {
			return nil
		}
	}

	b, err := fs.ReadFile(templatesFS, embedded)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, b, 0o644)
}

// ensureGitignore appends the missing entries under a single header,
// creating the file when needed. Lines already present are never repeated.
func ensureGitignore(root string, entries []string) error {
	p := filepath.Join(root, ".gitignore")

	b, err := os.ReadFile(p)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	existing := string(b)

	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			present[t] = true
		}
	}

	var block []string
	if !present[gitignoreHeader] {
		block = append(block, gitignoreHeader)
	}
	added := 0
	for _, e := range entries {
		if !present[e] {
			block = append(block, e)
			added++
		}
	}
	if added == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" {
		if !strings.HasSuffix(existing, "\n") {
			out.WriteByte('\n')
		}
		out.WriteByte('\n')
	}
	out.WriteString(strings.Join(block, "\n"))
	out.WriteByte('\n')

	return os.WriteFile(p, []byte(out.String()), 0o644)
}
