package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ValidationIssue is a single topology consistency violation.
type ValidationIssue struct {
	Code    string
	Message string
	ID      int // offending entity ID, 0 when not applicable
}

func (i ValidationIssue) Error() string {
	if i.ID != 0 {
		return fmt.Sprintf("%s: %s (id: %d)", i.Code, i.Message, i.ID)
	}
	return fmt.Sprintf("%s: %s", i.Code, i.Message)
}

// ValidationIssues collects every violation found in one pass.
type ValidationIssues []ValidationIssue

func (v ValidationIssues) Error() string {
	msgs := make([]string, len(v))
	for i, issue := range v {
		msgs[i] = issue.Error()
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether an issue with the given code is present.
func (v ValidationIssues) Has(code string) bool {
	for _, issue := range v {
		if issue.Code == code {
			return true
		}
	}
	return false
}

// Validate checks that every reference in the topology resolves and that the
// ID ranges are contiguous and disjoint. It returns nil or an OpError of kind
// KindTopologyConsistency wrapping ValidationIssues.
func (t MeshTopology) Validate() error {
	issues := t.Issues()
	if len(issues) == 0 {
		return nil
	}
	return &OpError{
		Op:   "topology.validate",
		Kind: KindTopologyConsistency,
		Err:  issues,
	}
}

// Issues runs all checks and returns the violations in a stable order.
func (t MeshTopology) Issues() ValidationIssues {
	var issues ValidationIssues

	points := make(map[int]PointDecl, len(t.Points))
	for _, p := range t.Points {
		if _, dup := points[p.ID]; dup {
			issues = append(issues, ValidationIssue{Code: "DUPLICATE_POINT_ID", Message: "point ID declared twice", ID: p.ID})
			continue
		}
		if p.ID <= 0 {
			issues = append(issues, ValidationIssue{Code: "INVALID_POINT_ID", Message: "point IDs start at 1", ID: p.ID})
		}
		points[p.ID] = p
	}

	edges := make(map[int]EdgeDecl, len(t.Edges))
	for _, e := range t.Edges {
		if _, dup := edges[e.ID]; dup {
			issues = append(issues, ValidationIssue{Code: "DUPLICATE_EDGE_ID", Message: "edge ID declared twice", ID: e.ID})
			continue
		}
		edges[e.ID] = e

		from, okFrom := points[e.From]
		to, okTo := points[e.To]
		if !okFrom || !okTo {
			issues = append(issues, ValidationIssue{
				Code:    "DANGLING_POINT",
				Message: fmt.Sprintf("edge references undeclared point (%d -> %d)", e.From, e.To),
				ID:      e.ID,
			})
			continue
		}
		if e.From == e.To || (from.X == to.X && from.Y == to.Y) {
			issues = append(issues, ValidationIssue{Code: "ZERO_LENGTH_EDGE", Message: "edge endpoints coincide", ID: e.ID})
		}
	}

	issues = append(issues, t.checkRanges(points, edges)...)

	loops := make(map[int]bool, len(t.CurveLoops))
	for _, l := range t.CurveLoops {
		if loops[l.ID] {
			issues = append(issues, ValidationIssue{Code: "DUPLICATE_LOOP_ID", Message: "curve loop ID declared twice", ID: l.ID})
			continue
		}
		loops[l.ID] = true
		issues = append(issues, checkLoop(l, edges)...)
	}

	for _, s := range t.Surfaces {
		if len(s.Loops) == 0 {
			issues = append(issues, ValidationIssue{Code: "EMPTY_SURFACE", Message: "plane surface has no loops", ID: s.ID})
		}
		for _, l := range s.Loops {
			if !loops[l] {
				issues = append(issues, ValidationIssue{
					Code:    "DANGLING_LOOP",
					Message: fmt.Sprintf("plane surface references undeclared loop %d", l),
					ID:      s.ID,
				})
			}
		}
	}

	fields := make(map[int]bool, len(t.Fields))
	for _, f := range t.Fields {
		fields[f.ID] = true
		for _, c := range f.Curves {
			if _, ok := edges[c]; !ok {
				issues = append(issues, ValidationIssue{
					Code:    "DANGLING_EDGE",
					Message: fmt.Sprintf("boundary layer field references undeclared edge %d", c),
					ID:      f.ID,
				})
			}
		}
		if !(f.WallHeight > 0) || !(f.Thickness > 0) || !(f.Ratio > 0) {
			issues = append(issues, ValidationIssue{
				Code:    "INVALID_BOUNDARY_LAYER",
				Message: fmt.Sprintf("hwall_n=%g thickness=%g ratio=%g must all be positive", f.WallHeight, f.Thickness, f.Ratio),
				ID:      f.ID,
			})
		}
	}
	if t.BoundaryLayer != 0 && !fields[t.BoundaryLayer] {
		issues = append(issues, ValidationIssue{Code: "DANGLING_FIELD", Message: "boundary layer refers to an undeclared field", ID: t.BoundaryLayer})
	}

	for _, g := range t.PhysicalGroups {
		if strings.TrimSpace(g.Name) == "" {
			issues = append(issues, ValidationIssue{Code: "EMPTY_GROUP_NAME", Message: "physical group must be named"})
		}
		for _, e := range g.Edges {
			if _, ok := edges[e]; !ok {
				issues = append(issues, ValidationIssue{
					Code:    "DANGLING_EDGE",
					Message: fmt.Sprintf("physical group %q references undeclared edge %d", g.Name, e),
					ID:      e,
				})
			}
		}
	}

	if !(t.MeshSizeFactor > 0) {
		issues = append(issues, ValidationIssue{Code: "INVALID_MESH_SIZE", Message: fmt.Sprintf("mesh size factor %g must be positive", t.MeshSizeFactor)})
	}

	issues = append(issues, t.checkContainment(points)...)
	issues = append(issues, t.checkSelfIntersection(points, edges)...)
	return issues
}

func (t MeshTopology) checkRanges(points map[int]PointDecl, edges map[int]EdgeDecl) ValidationIssues {
	var issues ValidationIssues

	if t.FarfieldPoints.Overlaps(t.ContourPoints) {
		issues = append(issues, ValidationIssue{Code: "OVERLAPPING_RANGES", Message: "farfield and contour point ranges overlap"})
	}
	if t.FarfieldEdges.Overlaps(t.ContourEdges) {
		issues = append(issues, ValidationIssue{Code: "OVERLAPPING_RANGES", Message: "farfield and contour edge ranges overlap"})
	}

	for _, r := range []IDRange{t.FarfieldPoints, t.ContourPoints} {
		for id := r.First; id <= r.Last; id++ {
			if _, ok := points[id]; !ok {
				issues = append(issues, ValidationIssue{Code: "MISSING_POINT", Message: "gap in point ID range", ID: id})
			}
		}
	}
	for _, r := range []IDRange{t.FarfieldEdges, t.ContourEdges} {
		for id := r.First; id <= r.Last; id++ {
			if _, ok := edges[id]; !ok {
				issues = append(issues, ValidationIssue{Code: "MISSING_EDGE", Message: "gap in edge ID range", ID: id})
			}
		}
	}
	return issues
}

// checkLoop verifies the loop's edges exist and chain head to tail.
func checkLoop(l CurveLoop, edges map[int]EdgeDecl) ValidationIssues {
	if len(l.Edges) == 0 {
		return ValidationIssues{{Code: "EMPTY_LOOP", Message: "curve loop has no edges", ID: l.ID}}
	}

	var issues ValidationIssues
	chain := make([]EdgeDecl, 0, len(l.Edges))
	for _, id := range l.Edges {
		e, ok := edges[id]
		if !ok {
			issues = append(issues, ValidationIssue{
				Code:    "DANGLING_EDGE",
				Message: fmt.Sprintf("curve loop references undeclared edge %d", id),
				ID:      l.ID,
			})
			continue
		}
		chain = append(chain, e)
	}
	if len(issues) > 0 {
		return issues
	}

	for i, e := range chain {
		next := chain[(i+1)%len(chain)]
		if e.To != next.From {
			issues = append(issues, ValidationIssue{
				Code:    "OPEN_LOOP",
				Message: fmt.Sprintf("edge %d ends at point %d but edge %d starts at point %d", e.ID, e.To, next.ID, next.From),
				ID:      l.ID,
			})
		}
	}
	return issues
}

// checkContainment requires every contour point to lie inside the farfield.
func (t MeshTopology) checkContainment(points map[int]PointDecl) ValidationIssues {
	if t.FarfieldPoints.Len() < 3 || t.ContourPoints.Len() == 0 {
		return nil
	}

	ring := make(orb.Ring, 0, t.FarfieldPoints.Len()+1)
	for id := t.FarfieldPoints.First; id <= t.FarfieldPoints.Last; id++ {
		p, ok := points[id]
		if !ok {
			return nil
		}
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	ring = append(ring, ring[0])

	var issues ValidationIssues
	for id := t.ContourPoints.First; id <= t.ContourPoints.Last; id++ {
		p, ok := points[id]
		if !ok {
			continue
		}
		if !planar.RingContains(ring, orb.Point{p.X, p.Y}) {
			issues = append(issues, ValidationIssue{Code: "CONTOUR_OUTSIDE_FARFIELD", Message: "contour point is not inside the farfield", ID: id})
		}
	}
	return issues
}

// checkSelfIntersection requires that no two contour edges without a shared
// endpoint cross or touch.
func (t MeshTopology) checkSelfIntersection(points map[int]PointDecl, edges map[int]EdgeDecl) ValidationIssues {
	type segment struct {
		edge EdgeDecl
		a, b orb.Point
	}

	segs := make([]segment, 0, t.ContourEdges.Len())
	for id := t.ContourEdges.First; id <= t.ContourEdges.Last; id++ {
		e, ok := edges[id]
		if !ok {
			continue
		}
		from, okFrom := points[e.From]
		to, okTo := points[e.To]
		if !okFrom || !okTo {
			continue
		}
		segs = append(segs, segment{edge: e, a: orb.Point{from.X, from.Y}, b: orb.Point{to.X, to.Y}})
	}

	var issues ValidationIssues
	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			s, u := segs[i], segs[j]
			if s.edge.From == u.edge.From || s.edge.From == u.edge.To ||
				s.edge.To == u.edge.From || s.edge.To == u.edge.To {
				continue
			}
			if segmentsIntersect(s.a, s.b, u.a, u.b) {
				issues = append(issues, ValidationIssue{
					Code:    "SELF_INTERSECTING_CONTOUR",
					Message: fmt.Sprintf("contour edge %d crosses edge %d", s.edge.ID, u.edge.ID),
					ID:      s.edge.ID,
				})
			}
		}
	}
	return issues
}

func segmentsIntersect(p1, p2, q1, q2 orb.Point) bool {
	d1 := orientation(q1, q2, p1)
	d2 := orientation(q1, q2, p2)
	d3 := orientation(p1, p2, q1)
	d4 := orientation(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}

// orientation is the signed area of the triangle abc, doubled.
func orientation(a, b, c orb.Point) float64 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}

// onSegment reports whether p, known to be collinear with ab, lies within it.
func onSegment(a, b, p orb.Point) bool {
	return math.Min(a.X(), b.X()) <= p.X() && p.X() <= math.Max(a.X(), b.X()) &&
		math.Min(a.Y(), b.Y()) <= p.Y() && p.Y() <= math.Max(a.Y(), b.Y())
}
