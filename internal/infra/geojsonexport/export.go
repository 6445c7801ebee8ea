// Package geojsonexport writes the assembled airfoil and farfield as a
// GeoJSON FeatureCollection for inspection in any GIS viewer.
package geojsonexport

import (
	"os"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/ports"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

var _ ports.GeometryExporter = (*Exporter)(nil)

// Collection builds the feature collection: a farfield polygon, the contour
// polygon and a point feature for the solved leading edge.
func Collection(farfield domain.FarfieldLoop, contour domain.ClosedContour) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	ff := geojson.NewFeature(orb.Polygon{farfield.Ring()})
	ff.Properties = geojson.Properties{
		"role":   "farfield",
		"radius": farfield.Radius,
		"points": len(farfield.Points),
	}
	fc.Append(ff)

	af := geojson.NewFeature(orb.Polygon{contour.Ring()})
	af.Properties = geojson.Properties{
		"role":    "airfoil",
		"points":  len(contour.Points),
		"closure": contour.Closure,
	}
	fc.Append(af)

	if contour.LeadingEdge >= 0 && contour.LeadingEdge < len(contour.Points) {
		le := geojson.NewFeature(contour.Points[contour.LeadingEdge])
		le.Properties = geojson.Properties{"role": "leading_edge"}
		fc.Append(le)
	}
	return fc
}

func (e *Exporter) Export(path string, farfield domain.FarfieldLoop, contour domain.ClosedContour) error {
	b, err := Collection(farfield, contour).MarshalJSON()
	if err != nil {
		return &domain.OpError{Op: "geojson.marshal", Kind: domain.KindIO, Path: path, Err: err}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return &domain.OpError{Op: "geojson.write", Kind: domain.KindIO, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "geojson.rename", Kind: domain.KindIO, Path: path, Err: err}
	}
	return nil
}
