package runstore

import (
	"encoding/csv"
	"io"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/numeric"
)

// CSVHeader is the polar column layout.
var CSVHeader = []string{"AoA", domain.CoefficientLift, domain.CoefficientDrag, domain.CoefficientMoment}

// WriteCSV writes one row per sweep point. Absent coefficients are left blank.
func WriteCSV(w io.Writer, points []domain.SweepPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			numeric.FormatFloat(p.AoA),
			optional(p.Forces.CL),
			optional(p.Forces.CD),
			optional(p.Forces.CMz),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return numeric.FormatFloat(*v)
}
