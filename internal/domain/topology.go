package domain

// Tags are opaque identifiers handed out by the geometry kernel. Each
// builder stage returns the tags the next stage needs; the records are
// treated as immutable once returned.

// TaggedPoint pairs a kernel point tag with its coordinates, for stages that
// need to place new points relative to existing ones.
type TaggedPoint struct {
	Tag   int
	Coord Point3
}

// BoundaryLayerTopology collects the entities of an extruded viscous shell.
type BoundaryLayerTopology struct {
	// TopSurfaces are the outer shell surfaces, one per extruded wing
	// surface. They replace the raw wing surfaces in the farfield closure.
	TopSurfaces []int

	// SymmetrySurfaces are the shell side surfaces lying on the symmetry
	// plane.
	SymmetrySurfaces []int

	// Volumes are the shell volumes, one per extruded wing surface.
	Volumes []int
}

// WingTopology is the output contract of the wing builder.
type WingTopology struct {
	Name string

	// Sections is the number of spanwise stations; SharpTE reports whether
	// the trailing edge was sharp (closed sections).
	Sections int
	SharpTE  bool

	// Height is the z-coordinate of the root trailing edge (see
	// Planform.Height).
	Height float64

	// SymmetryCurves bound the root section on the symmetry plane; the
	// domain builder cuts them out of the symmetry face.
	SymmetryCurves []int

	// Surfaces are the wing skin surfaces used in the farfield closure.
	Surfaces []int

	// TrailingPoints (per section) and TrailingCurves (per span interval)
	// feed wake construction for domain types that shed one.
	TrailingPoints []TaggedPoint
	TrailingCurves []int

	// BoundaryLayer is set for viscous domain types only.
	BoundaryLayer *BoundaryLayerTopology
}

// WakeTopology is the output contract of the wake builder.
type WakeTopology struct {
	Name string

	// SymmetryPoint and SymmetryCurve are the wake entities on the symmetry
	// plane: the farfield end of the root shedding curve and the root
	// shedding curve itself.
	SymmetryPoint int
	SymmetryCurve int

	// TrailingCurves connect consecutive farfield wake points; the domain
	// builder embeds them in the downstream face.
	TrailingCurves []int

	// Surfaces are the wake sheets, embedded in the domain volume.
	Surfaces []int
}

// DomainTopology is the output contract of the domain builder.
type DomainTopology struct {
	// Symmetry, Upstream, Downstream and Farfield are the boundary surfaces
	// per named group. Upstream and Downstream are empty for the sphere
	// variant.
	Symmetry   []int
	Upstream   []int
	Downstream []int
	Farfield   []int

	// Volume is the field volume tag.
	Volume int
}

// ModelTopology is the assembled result of one build.
type ModelTopology struct {
	Wings  []WingTopology
	Wakes  []WakeTopology // parallel to Wings for wake-shedding domain types, nil otherwise
	Domain DomainTopology
}
