// Package geoscript renders a validated mesh topology as a Gmsh .geo script.
package geoscript

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/numeric"
)

// Encode writes t to w. The output depends only on t, so equal topologies
// produce byte-identical scripts. t is expected to have passed Validate.
func Encode(w io.Writer, t domain.MeshTopology) error {
	bw := bufio.NewWriter(w)
	e := &encoder{w: bw}

	e.line("// Gmsh script for 2D airfoil mesh")
	if t.Label != "" {
		e.line("// Airfoil: %s", t.Label)
	}

	for _, p := range t.Points {
		e.line("Point(%d) = {%s, %s, 0, %s};", p.ID, numeric.FormatFloat(p.X), numeric.FormatFloat(p.Y), numeric.FormatFloat(p.MeshSize))
	}
	for _, l := range t.Edges {
		e.line("Line(%d) = {%d, %d};", l.ID, l.From, l.To)
	}
	for _, cl := range t.CurveLoops {
		e.line("Curve Loop(%d) = {%s};", cl.ID, joinIDs(cl.Edges))
	}
	for _, s := range t.Surfaces {
		e.line("Plane Surface(%d) = {%s};", s.ID, joinIDs(s.Loops))
	}

	for _, f := range t.Fields {
		e.blank()
		e.field(f, f.ID == t.BoundaryLayer)
	}
	if t.BoundaryLayer != 0 {
		e.line("BoundaryLayer Field = %d;", t.BoundaryLayer)
		e.blank()
	}

	for _, g := range t.PhysicalGroups {
		e.line("Physical Curve(%q) = {%s};", g.Name, joinIDs(g.Edges))
	}
	e.line("Mesh.MeshSizeFactor = %s;", numeric.FormatFloat(t.MeshSizeFactor))
	for _, d := range t.MeshDimensions {
		e.line("Mesh %d;", d)
	}

	if e.err != nil {
		return e.err
	}
	return bw.Flush()
}

type encoder struct {
	w   *bufio.Writer
	err error
}

func (e *encoder) line(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format+"\n", args...)
}

func (e *encoder) blank() {
	e.line("")
}

// field writes a BoundaryLayer field. The active boundary layer gets named
// parameters so the script stays easy to tweak by hand.
func (e *encoder) field(f domain.BoundaryLayerField, named bool) {
	hwall, thickness, ratio, quads := numeric.FormatFloat(f.WallHeight), numeric.FormatFloat(f.Thickness), numeric.FormatFloat(f.Ratio), boolInt(f.Quads)
	if named {
		e.line("hwall_n = %s;", hwall)
		e.line("thickness = %s;", thickness)
		e.line("ratio = %s;", ratio)
		e.line("use_quads = %s;", quads)
		e.blank()
		hwall, thickness, ratio, quads = "hwall_n", "thickness", "ratio", "use_quads"
	}

	e.line("// Apply boundary layer mesh near airfoil")
	e.line("Field[%d] = BoundaryLayer;", f.ID)
	e.line("Field[%d].CurvesList = {%s};", f.ID, joinIDs(f.Curves))
	e.line("Field[%d].hwall_n = %s;", f.ID, hwall)
	e.line("Field[%d].thickness = %s;", f.ID, thickness)
	e.line("Field[%d].ratio = %s;", f.ID, ratio)
	e.line("Field[%d].Quads = %s;", f.ID, quads)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

func boolInt(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
