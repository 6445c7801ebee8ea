package mesh

import (
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/paulmach/orb"
)

// Physical group names understood by the solver's marker configuration.
const (
	GroupAirfoil  = "Airfoil"
	GroupFarfield = "Farfield"
)

// BoundaryLayerSpec parameterizes the boundary-layer field on the airfoil.
type BoundaryLayerSpec struct {
	WallHeight float64
	Thickness  float64
	Ratio      float64
	Quads      bool
}

// AssembleOptions carries the non-geometric inputs of Assemble.
type AssembleOptions struct {
	Label          string
	PointMeshSize  float64
	MeshSizeFactor float64
	BoundaryLayer  BoundaryLayerSpec
}

// idAllocator hands out sequential IDs for one assembly. It is created per
// Assemble call, so assemblies never share numbering state.
type idAllocator struct {
	point   int
	edge    int
	loop    int
	surface int
	field   int
}

func newIDAllocator() *idAllocator {
	return &idAllocator{}
}

func (a *idAllocator) nextPoint() int   { a.point++; return a.point }
func (a *idAllocator) nextEdge() int    { a.edge++; return a.edge }
func (a *idAllocator) nextLoop() int    { a.loop++; return a.loop }
func (a *idAllocator) nextSurface() int { a.surface++; return a.surface }
func (a *idAllocator) nextField() int   { a.field++; return a.field }

// closedPolyline numbers the points of a closed polyline and the edges
// joining consecutive points, including the wrap-around edge.
func (a *idAllocator) closedPolyline(t *domain.MeshTopology, pts []orb.Point, meshSize float64) (domain.IDRange, domain.IDRange) {
	pr := domain.IDRange{First: a.point + 1, Last: a.point}
	for _, p := range pts {
		id := a.nextPoint()
		t.Points = append(t.Points, domain.PointDecl{ID: id, X: p.X(), Y: p.Y(), MeshSize: meshSize})
		pr.Last = id
	}

	er := domain.IDRange{First: a.edge + 1, Last: a.edge}
	for i := range pts {
		from := pr.First + i
		to := from + 1
		if i == len(pts)-1 {
			to = pr.First
		}
		id := a.nextEdge()
		t.Edges = append(t.Edges, domain.EdgeDecl{ID: id, From: from, To: to})
		er.Last = id
	}
	return pr, er
}

// Assemble numbers the farfield and the airfoil contour into one topology:
// farfield points and edges first, then the contour; loop 1 is the farfield,
// loop 2 the contour, and plane surface 1 is loop 1 with loop 2 as a hole.
// The result is validated before it is returned.
func Assemble(farfield domain.FarfieldLoop, contour domain.ClosedContour, opts AssembleOptions) (domain.MeshTopology, error) {
	const op = "mesh.assemble"

	if len(farfield.Points) < 3 {
		return domain.MeshTopology{}, domain.NewOpError(op, domain.KindInvalidInput, "farfield needs at least 3 points, got %d", len(farfield.Points))
	}
	if len(contour.Points) < 3 {
		return domain.MeshTopology{}, domain.NewOpError(op, domain.KindInvalidInput, "contour needs at least 3 points, got %d", len(contour.Points))
	}

	meshSize := opts.PointMeshSize
	if meshSize == 0 {
		meshSize = 1
	}

	t := domain.MeshTopology{
		Label:          opts.Label,
		Points:         make([]domain.PointDecl, 0, len(farfield.Points)+len(contour.Points)),
		Edges:          make([]domain.EdgeDecl, 0, len(farfield.Points)+len(contour.Points)),
		MeshSizeFactor: opts.MeshSizeFactor,
		MeshDimensions: []int{1, 2},
	}

	ids := newIDAllocator()
	t.FarfieldPoints, t.FarfieldEdges = ids.closedPolyline(&t, farfield.Points, meshSize)
	t.ContourPoints, t.ContourEdges = ids.closedPolyline(&t, contour.Points, meshSize)

	farfieldEdges := rangeIDs(t.FarfieldEdges)
	contourEdges := rangeIDs(t.ContourEdges)

	outer := domain.CurveLoop{ID: ids.nextLoop(), Edges: farfieldEdges}
	inner := domain.CurveLoop{ID: ids.nextLoop(), Edges: contourEdges}
	t.CurveLoops = []domain.CurveLoop{outer, inner}
	t.Surfaces = []domain.PlaneSurface{{ID: ids.nextSurface(), Loops: []int{outer.ID, inner.ID}}}

	bl := domain.BoundaryLayerField{
		ID:         ids.nextField(),
		Curves:     contourEdges,
		WallHeight: opts.BoundaryLayer.WallHeight,
		Thickness:  opts.BoundaryLayer.Thickness,
		Ratio:      opts.BoundaryLayer.Ratio,
		Quads:      opts.BoundaryLayer.Quads,
	}
	t.Fields = []domain.BoundaryLayerField{bl}
	t.BoundaryLayer = bl.ID

	airfoil := contourEdges
	if contour.Closure {
		// The segment from the averaged closing point back to the upper
		// trailing edge is not part of the wall.
		airfoil = contourEdges[:len(contourEdges)-1]
	}
	t.PhysicalGroups = []domain.PhysicalGroup{
		{Name: GroupAirfoil, Edges: airfoil},
		{Name: GroupFarfield, Edges: farfieldEdges},
	}

	if err := t.Validate(); err != nil {
		return domain.MeshTopology{}, err
	}
	return t, nil
}

func rangeIDs(r domain.IDRange) []int {
	out := make([]int, 0, r.Len())
	for id := r.First; id <= r.Last; id++ {
		out = append(out, id)
	}
	return out
}
