package domain

// PointDecl is a numbered geometry point.
type PointDecl struct {
	ID       int
	X, Y     float64
	MeshSize float64
}

// EdgeDecl is a straight segment between two point IDs.
type EdgeDecl struct {
	ID       int
	From, To int
}

// CurveLoop is an ordered, closed sequence of edge IDs.
type CurveLoop struct {
	ID    int
	Edges []int
}

// PlaneSurface is bounded by its first loop; further loops are holes.
type PlaneSurface struct {
	ID    int
	Loops []int
}

// BoundaryLayerField is a graded wall-normal meshing directive.
type BoundaryLayerField struct {
	ID         int
	Curves     []int
	WallHeight float64 // first-cell height (hwall_n)
	Thickness  float64 // total layer thickness
	Ratio      float64 // geometric growth ratio
	Quads      bool
}

// PhysicalGroup names a set of edges for the solver's boundary markers.
type PhysicalGroup struct {
	Name  string
	Edges []int
}

// IDRange is an inclusive range of sequential IDs.
type IDRange struct {
	First, Last int
}

// Len returns the number of IDs in the range.
func (r IDRange) Len() int {
	if r.Last < r.First {
		return 0
	}
	return r.Last - r.First + 1
}

// Contains reports whether id falls within the range.
func (r IDRange) Contains(id int) bool {
	return id >= r.First && id <= r.Last
}

// Overlaps reports whether two non-empty ranges share an ID.
func (r IDRange) Overlaps(o IDRange) bool {
	if r.Len() == 0 || o.Len() == 0 {
		return false
	}
	return r.First <= o.Last && o.First <= r.Last
}

// MeshTopology is the fully numbered point/curve/surface/field graph handed to
// the script emitter. It is built and validated before any text is written.
type MeshTopology struct {
	Label string // free-form header label, e.g. the upper surface file

	Points         []PointDecl
	Edges          []EdgeDecl
	CurveLoops     []CurveLoop
	Surfaces       []PlaneSurface
	Fields         []BoundaryLayerField
	BoundaryLayer  int // field ID applied as the boundary layer, 0 for none
	PhysicalGroups []PhysicalGroup

	MeshSizeFactor float64
	MeshDimensions []int

	FarfieldPoints IDRange
	ContourPoints  IDRange
	FarfieldEdges  IDRange
	ContourEdges   IDRange
}

// Group returns the physical group with the given name.
func (t MeshTopology) Group(name string) (PhysicalGroup, bool) {
	for _, g := range t.PhysicalGroups {
		if g.Name == name {
			return g, true
		}
	}
	return PhysicalGroup{}, false
}
