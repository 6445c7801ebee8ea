package csvcoords

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/ports"
	"github.com/paulmach/orb"
)

// MinRows is the smallest sample count the resampler accepts.
const MinRows = 3

// Reader loads "x,y" coordinate files. Blank lines and lines starting with
// '#' are skipped; there is no header row.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

var _ ports.CoordinateSource = (*Reader)(nil)

func (r *Reader) ReadSurface(path string) (domain.SurfaceSample, error) {
	const op = "csvcoords.read"

	f, err := os.Open(path)
	if err != nil {
		kind := domain.KindIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{Op: op, Kind: kind, Path: path, Err: err}
	}
	defer f.Close()

	pts, err := Decode(f)
	if err != nil {
		var oe *domain.OpError
		if errors.As(err, &oe) {
			oe.Path = path
			return nil, oe
		}
		return nil, &domain.OpError{Op: op, Kind: domain.KindIO, Path: path, Err: err}
	}
	return pts, nil
}

// Decode parses coordinate rows from r.
func Decode(r io.Reader) (domain.SurfaceSample, error) {
	const op = "csvcoords.decode"

	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out domain.SurfaceSample
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, domain.NewOpError(op, domain.KindInvalidInput, "line %d: %v", pe.Line, pe.Err)
			}
			return nil, err
		}

		line, _ := cr.FieldPos(0)
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) != 2 {
			return nil, domain.NewOpError(op, domain.KindInvalidInput, "line %d: expected 2 fields, got %d", line, len(rec))
		}

		x, err := parseField(rec[0])
		if err != nil {
			return nil, domain.NewOpError(op, domain.KindInvalidInput, "line %d: x: %v", line, err)
		}
		y, err := parseField(rec[1])
		if err != nil {
			return nil, domain.NewOpError(op, domain.KindInvalidInput, "line %d: y: %v", line, err)
		}
		out = append(out, orb.Point{x, y})
	}

	if len(out) < MinRows {
		return nil, domain.NewOpError(op, domain.KindInvalidInput, "need at least %d rows, got %d", MinRows, len(out))
	}
	return out, nil
}

func parseField(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", strings.TrimSpace(s))
	}
	return v, nil
}
