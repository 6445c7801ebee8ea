package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/airfoilcatalog"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/infra/workspacefinder"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/ports"
)

type workspaceCtx struct {
	root string // empty when running outside a workspace
	cfg  domain.Config

	airfoils ports.AirfoilCatalog
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}
	return openWorkspace(root)
}

// loadWorkspaceOrDefaults falls back to DefaultConfig when no workspace is
// found and none was requested. Commands that only need explicit input files
// use it.
func loadWorkspaceOrDefaults(workspaceFlag string) (*workspaceCtx, error) {
	ws, err := loadWorkspace(workspaceFlag)
	if err == nil {
		return ws, nil
	}
	if strings.TrimSpace(workspaceFlag) != "" || !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}
	cfg := domain.DefaultConfig()
	return &workspaceCtx{cfg: cfg, airfoils: newCatalog(cfg)}, nil
}

func openWorkspace(root string) (*workspaceCtx, error) {
	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	return &workspaceCtx{
		root:     root,
		cfg:      cfg,
		airfoils: newCatalog(cfg),
	}, nil
}

func newCatalog(cfg domain.Config) *airfoilcatalog.Catalog {
	return airfoilcatalog.NewCatalog(
		airfoilcatalog.WithAirfoilsDir(cfg.Paths.AirfoilsDir),
		airfoilcatalog.WithSuffixes(cfg.Mesh.UpperSuffix, cfg.Mesh.LowerSuffix),
	)
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `aerogrid init`): %w", wd, err)
	}
	return root, nil
}

// resolveInWorkspace resolves a relative path against the workspace root,
// or leaves it relative to the working directory outside a workspace.
func resolveInWorkspace(ws *workspaceCtx, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) || ws.root == "" {
		return p
	}
	// Paths the user typed relative to the working directory win when they exist.
	if looksLikePath(p) && fileExists(p) {
		abs, err := filepath.Abs(p)
		if err == nil {
			return abs
		}
	}
	return filepath.Join(ws.root, p)
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var errFormat = errors.New("unsupported format")

func checkFormat(format string) error {
	switch format {
	case "pretty", "", "json":
		return nil
	default:
		return fmt.Errorf("%w %q (expected pretty|json)", errFormat, format)
	}
}
