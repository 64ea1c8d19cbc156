// Package geoscript implements the geometry kernel port with an in-memory
// model that can be written out as a gmsh .geo script.
//
// The adapter performs no geometric computation: it records the requested
// entities, hands out tags, and validates topological consistency (dangling
// references, open or self-intersecting curve loops) at Synchronize. The
// script output is exact for models without boundary-layer extrusion; for
// extruded models the shell entities are generated by the mesher when it
// replays the Extrude command, so their script tags are informational.
package geoscript

import (
	"fmt"

	"github.com/acrovato/gmshcfd/internal/domain"
	"github.com/acrovato/gmshcfd/internal/ports"
)

type curveKind int

const (
	curveLine curveKind = iota
	curveSpline
	curveCircle
	curveExtruded
)

type curve struct {
	kind curveKind
	// pts are the defining points: both endpoints for a line, start/center/
	// end for a circle arc, all control points for a spline, the offset
	// endpoints for an extruded cap.
	pts []int
}

func (c curve) endpoints() (int, int) {
	if c.kind == curveCircle {
		return c.pts[0], c.pts[2]
	}
	return c.pts[0], c.pts[len(c.pts)-1]
}

type surfaceKind int

const (
	surfacePlane surfaceKind = iota
	surfaceFilling
	surfaceExtruded
)

type surface struct {
	kind  surfaceKind
	loops []int // signed loop tags; empty for extruded surfaces
}

type point struct {
	x, y, z  float64
	extruded bool
}

type physical struct {
	dim  int
	tags []int
	tag  int // 0 when unset
	name string
}

type embed struct {
	dim       int
	tags      []int
	targetDim int
	targetTag int
}

type sizeEntry struct {
	points []int
	size   float64
}

type extrusion struct {
	surfaces  []int
	layers    []int
	heights   []float64
	recombine bool
}

// Model is one geometry model under construction. Not safe for concurrent
// use; independent Model values are independent.
type Model struct {
	name string

	points       []point
	curves       []curve
	loops        [][]int // signed curve tags
	surfaces     []surface
	surfaceLoops [][]int
	volumes      []int // surface loop tag per volume
	volExtruded  []bool

	physicals  []physical
	embeds     []embed
	sizes      []sizeEntry
	extrusions []extrusion
}

var _ ports.GeometryKernel = (*Model)(nil)

func NewModel(name string) *Model {
	return &Model{name: name}
}

func (m *Model) Name() string { return m.name }

func (m *Model) AddPoint(x, y, z float64) int {
	m.points = append(m.points, point{x: x, y: y, z: z})
	return len(m.points)
}

func (m *Model) AddLine(start, end int) int {
	m.curves = append(m.curves, curve{kind: curveLine, pts: []int{start, end}})
	return len(m.curves)
}

func (m *Model) AddSpline(points []int) int {
	m.curves = append(m.curves, curve{kind: curveSpline, pts: append([]int{}, points...)})
	return len(m.curves)
}

func (m *Model) AddCircleArc(start, center, end int) int {
	m.curves = append(m.curves, curve{kind: curveCircle, pts: []int{start, center, end}})
	return len(m.curves)
}

func (m *Model) AddCurveLoop(curves []int) int {
	m.loops = append(m.loops, append([]int{}, curves...))
	return len(m.loops)
}

func (m *Model) AddSurfaceFilling(loop int) int {
	m.surfaces = append(m.surfaces, surface{kind: surfaceFilling, loops: []int{loop}})
	return len(m.surfaces)
}

func (m *Model) AddPlaneSurface(loops []int) int {
	m.surfaces = append(m.surfaces, surface{kind: surfacePlane, loops: append([]int{}, loops...)})
	return len(m.surfaces)
}

func (m *Model) AddSurfaceLoop(surfaces []int) int {
	m.surfaceLoops = append(m.surfaceLoops, append([]int{}, surfaces...))
	return len(m.surfaceLoops)
}

func (m *Model) AddVolume(loop int) int {
	m.volumes = append(m.volumes, loop)
	m.volExtruded = append(m.volExtruded, false)
	return len(m.volumes)
}

// ExtrudeBoundaryLayer fabricates the shell entities of a boundary-layer
// extrusion: per input surface a top surface, a volume, and one side per
// loop curve with its offset cap. Offset points are shared between curves
// that share endpoints, so cap chains stay connected.
func (m *Model) ExtrudeBoundaryLayer(surfaces []int, layers []int, heights []float64, recombine bool) ([]ports.ExtrudedSurface, error) {
	if len(layers) != len(heights) {
		return nil, fmt.Errorf("layers length %d does not match heights length %d: %w", len(layers), len(heights), domain.ErrGeometry)
	}
	if len(heights) == 0 {
		return nil, fmt.Errorf("at least one layer is required: %w", domain.ErrGeometry)
	}
	prev := 0.0
	for i, h := range heights {
		if h <= prev {
			return nil, fmt.Errorf("cumulative layer heights must be strictly increasing (height %d = %g): %w", i, h, domain.ErrGeometry)
		}
		prev = h
	}

	offsetPts := map[int]int{}
	offset := func(p int) int {
		if op, ok := offsetPts[p]; ok {
			return op
		}
		src := m.points[p-1]
		m.points = append(m.points, point{x: src.x, y: src.y, z: src.z, extruded: true})
		op := len(m.points)
		offsetPts[p] = op
		return op
	}

	out := make([]ports.ExtrudedSurface, 0, len(surfaces))
	for _, s := range surfaces {
		if s < 1 || s > len(m.surfaces) {
			return nil, fmt.Errorf("unknown surface %d: %w", s, domain.ErrGeometry)
		}
		src := m.surfaces[s-1]
		if len(src.loops) == 0 {
			return nil, fmt.Errorf("surface %d has no curve loop: %w", s, domain.ErrGeometry)
		}
		outerLoop := src.loops[0]
		if outerLoop < 0 {
			outerLoop = -outerLoop
		}
		if outerLoop < 1 || outerLoop > len(m.loops) {
			return nil, fmt.Errorf("surface %d references unknown loop %d: %w", s, outerLoop, domain.ErrGeometry)
		}

		ext := ports.ExtrudedSurface{Source: s}
		for _, sc := range m.loops[outerLoop-1] {
			ct := sc
			if ct < 0 {
				ct = -ct
			}
			start, end := m.curves[ct-1].endpoints()
			m.curves = append(m.curves, curve{kind: curveExtruded, pts: []int{offset(start), offset(end)}})
			capTag := len(m.curves)
			m.surfaces = append(m.surfaces, surface{kind: surfaceExtruded})
			ext.Sides = append(ext.Sides, ports.ExtrudedSide{SourceCurve: ct, Surface: len(m.surfaces), Cap: capTag})
		}
		m.surfaces = append(m.surfaces, surface{kind: surfaceExtruded})
		ext.Top = len(m.surfaces)
		m.volumes = append(m.volumes, 0)
		m.volExtruded = append(m.volExtruded, true)
		ext.Volume = len(m.volumes)
		out = append(out, ext)
	}

	m.extrusions = append(m.extrusions, extrusion{
		surfaces:  append([]int{}, surfaces...),
		layers:    append([]int{}, layers...),
		heights:   append([]float64{}, heights...),
		recombine: recombine,
	})
	return out, nil
}

func (m *Model) Embed(dim int, tags []int, targetDim, targetTag int) {
	m.embeds = append(m.embeds, embed{dim: dim, tags: append([]int{}, tags...), targetDim: targetDim, targetTag: targetTag})
}

func (m *Model) SetMeshSize(points []int, size float64) {
	m.sizes = append(m.sizes, sizeEntry{points: append([]int{}, points...), size: size})
}

func (m *Model) AddPhysicalGroup(dim int, tags []int, name string) {
	m.physicals = append(m.physicals, physical{dim: dim, tags: append([]int{}, tags...), name: name})
}

func (m *Model) AddPhysicalGroupTagged(dim int, tags []int, tag int, name string) {
	m.physicals = append(m.physicals, physical{dim: dim, tags: append([]int{}, tags...), tag: tag, name: name})
}

// Stats counts the entities created so far, including extrusion-generated
// ones.
func (m *Model) Stats() domain.EntityCounts {
	return domain.EntityCounts{
		Points:   len(m.points),
		Curves:   len(m.curves),
		Surfaces: len(m.surfaces),
		Volumes:  len(m.volumes),
	}
}

// Groups reports the physical groups created so far.
func (m *Model) Groups() []domain.GroupReport {
	out := make([]domain.GroupReport, len(m.physicals))
	for i, p := range m.physicals {
		out[i] = domain.GroupReport{Dim: p.dim, Name: p.name, Entities: len(p.tags)}
	}
	return out
}
