package ports

// ExtrudedSide is one lateral surface of a boundary-layer extrusion, grown
// from one curve of the source surface's loop.
type ExtrudedSide struct {
	// SourceCurve is the loop curve the side grew from (unsigned tag).
	SourceCurve int

	// Surface is the side surface tag.
	Surface int

	// Cap is the offset copy of the source curve bounding the side opposite
	// it.
	Cap int
}

// ExtrudedSurface is the structured result of extruding one surface: its
// offset top surface, the enclosed volume and one side per loop curve.
type ExtrudedSurface struct {
	Source int
	Top    int
	Volume int
	Sides  []ExtrudedSide
}

// SideFor returns the side grown from the given source curve, matching
// either orientation.
func (e ExtrudedSurface) SideFor(curve int) (ExtrudedSide, bool) {
	if curve < 0 {
		curve = -curve
	}
	for _, s := range e.Sides {
		if s.SourceCurve == curve {
			return s, true
		}
	}
	return ExtrudedSide{}, false
}

// GeometryKernel is the geometry primitives collaborator: it performs the
// actual CAD operations and hands back opaque tags. The builders only decide
// which topological entities to request and how they connect.
//
// Curve tags passed to AddCurveLoop, and loop tags passed to
// AddSurfaceFilling and AddPlaneSurface, are signed: a negative tag means
// the reversed orientation.
//
// Implementations are not safe for concurrent use; one model is built by one
// goroutine (construction is inherently sequential, every call depends on
// tags returned by earlier calls).
type GeometryKernel interface {
	AddPoint(x, y, z float64) int
	AddLine(start, end int) int
	AddSpline(points []int) int
	AddCircleArc(start, center, end int) int

	AddCurveLoop(curves []int) int
	AddSurfaceFilling(loop int) int
	AddPlaneSurface(loops []int) int
	AddSurfaceLoop(surfaces []int) int
	AddVolume(loop int) int

	// ExtrudeBoundaryLayer grows every surface along its local normal
	// through len(heights) layers at the given cumulative offsets,
	// subdivided per entry of layers.
	ExtrudeBoundaryLayer(surfaces []int, layers []int, heights []float64, recombine bool) ([]ExtrudedSurface, error)

	// Embed constrains entities of dimension dim to be part of the mesh of
	// a higher-dimensional entity without being part of its boundary.
	Embed(dim int, tags []int, targetDim, targetTag int)

	SetMeshSize(points []int, size float64)

	AddPhysicalGroup(dim int, tags []int, name string)
	// AddPhysicalGroupTagged assigns a fixed numeric tag, for groups
	// downstream solvers identify by number.
	AddPhysicalGroupTagged(dim int, tags []int, tag int, name string)

	// Synchronize validates and commits all entities requested so far. A
	// failure is fatal for the whole build; no partial geometry is usable.
	Synchronize() error
}
