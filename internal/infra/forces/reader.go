// Package forces extracts integrated coefficients from the solver's forces
// breakdown file.
package forces

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/ports"
)

// Line prefixes of the coefficients in a forces breakdown.
const (
	prefixCL  = "Total CL:"
	prefixCD  = "Total CD"
	prefixCMz = "Total CMz:"
)

type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

var _ ports.ForcesReader = (*Reader)(nil)

func (r *Reader) ReadForces(path string) (domain.ForceCoefficients, []string, error) {
	return ReadFile(path)
}

// ReadFile parses path. A missing file or missing coefficient yields absent
// values and a warning; only I/O failures on an existing file are errors.
func ReadFile(path string) (domain.ForceCoefficients, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ForceCoefficients{}, []string{fmt.Sprintf("%s not found", path)}, nil
		}
		return domain.ForceCoefficients{}, nil, &domain.OpError{Op: "forces.read", Kind: domain.KindIO, Path: path, Err: err}
	}
	defer f.Close()

	fc, warnings, err := Parse(f)
	if err != nil {
		return domain.ForceCoefficients{}, nil, &domain.OpError{Op: "forces.read", Kind: domain.KindIO, Path: path, Err: err}
	}
	return fc, warnings, nil
}

// Parse scans a forces breakdown. The last occurrence of each prefix wins.
func Parse(r io.Reader) (domain.ForceCoefficients, []string, error) {
	var (
		fc       domain.ForceCoefficients
		warnings []string
	)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		var (
			dst  **float64
			name string
		)
		switch {
		case strings.HasPrefix(line, prefixCL):
			dst, name = &fc.CL, domain.CoefficientLift
		case strings.HasPrefix(line, prefixCD):
			dst, name = &fc.CD, domain.CoefficientDrag
		case strings.HasPrefix(line, prefixCMz):
			dst, name = &fc.CMz, domain.CoefficientMoment
		default:
			continue
		}

		v, err := value(line)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %s: %v", lineNo, name, err))
			continue
		}
		*dst = &v
	}
	if err := sc.Err(); err != nil {
		return domain.ForceCoefficients{}, nil, err
	}

	for _, name := range fc.Missing() {
		warnings = append(warnings, fmt.Sprintf("%s not found", name))
	}
	return fc, warnings, nil
}

// value takes the text before the first '|' and after its last ':'.
func value(line string) (float64, error) {
	head, _, _ := strings.Cut(line, "|")
	if i := strings.LastIndex(head, ":"); i >= 0 {
		head = head[i+1:]
	}
	s := strings.TrimSpace(head)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}
