// Package airfoilcatalog discovers upper/lower coordinate file pairs in the
// workspace airfoils directory.
package airfoilcatalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/ports"
)

type Catalog struct {
	airfoilsDir string
	upperSuffix string
	lowerSuffix string
}

func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		airfoilsDir: "airfoils",
		upperSuffix: "U.csv",
		lowerSuffix: "D.csv",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Catalog)

func WithAirfoilsDir(dir string) Option {
	return func(c *Catalog) { c.airfoilsDir = dir }
}

// WithSuffixes sets the file name suffixes that mark the two surfaces.
func WithSuffixes(upper, lower string) Option {
	return func(c *Catalog) {
		if upper != "" {
			c.upperSuffix = upper
		}
		if lower != "" {
			c.lowerSuffix = lower
		}
	}
}

var _ ports.AirfoilCatalog = (*Catalog)(nil)

// ListAirfoils returns every <name><upper> file that has a matching
// <name><lower> sibling, sorted by name.
func (c *Catalog) ListAirfoils(root string) ([]domain.AirfoilRef, error) {
	dir := filepath.Join(root, c.airfoilsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		kind := domain.KindIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{
			Op:   "airfoilcatalog.list",
			Kind: kind,
			Path: dir,
			Err:  err,
		}
	}

	files := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			files[e.Name()] = true
		}
	}

	var refs []domain.AirfoilRef
	for name := range files {
		if !strings.HasSuffix(name, c.upperSuffix) {
			continue
		}
		base := strings.TrimSuffix(name, c.upperSuffix)
		if base == "" || !files[base+c.lowerSuffix] {
			continue
		}
		refs = append(refs, domain.AirfoilRef{
			Name:  base,
			Upper: filepath.Join(dir, name),
			Lower: filepath.Join(dir, base+c.lowerSuffix),
		})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// Resolve finds the pair named name.
func (c *Catalog) Resolve(root, name string) (domain.AirfoilRef, error) {
	refs, err := c.ListAirfoils(root)
	if err != nil {
		return domain.AirfoilRef{}, err
	}
	for _, r := range refs {
		if r.Name == name {
			return r, nil
		}
	}
	return domain.AirfoilRef{}, &domain.OpError{
		Op:   "airfoilcatalog.resolve",
		Kind: domain.KindNotFound,
		Path: filepath.Join(root, c.airfoilsDir),
		Err:  fmt.Errorf("airfoil %q: %w", name, domain.ErrNotFound),
	}
}
