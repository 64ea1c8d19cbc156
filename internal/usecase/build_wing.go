package usecase

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/acrovato/gmshcfd/internal/domain"
	"github.com/acrovato/gmshcfd/internal/ports"
)

// Fixed numeric tags for the boundary-layer groups; downstream solvers
// identify them by number, not name.
const (
	boundaryLayerSurfaceTag = 9998
	boundaryLayerVolumeTag  = 9999
)

// BuildWing turns one planform into airfoil curves, spanwise surfaces and,
// depending on the trailing-edge topology and domain type, a trailing-edge
// closure or an extruded boundary-layer shell.
type BuildWing struct {
	kernel ports.GeometryKernel
	log    *slog.Logger
}

func NewBuildWing(k ports.GeometryKernel, log *slog.Logger) *BuildWing {
	return &BuildWing{kernel: k, log: log}
}

// Execute selects the construction path by the planform's trailing-edge
// topology. The planform/domain-type pairing has already been checked by
// NewPlanform.
func (uc *BuildWing) Execute(pf domain.Planform, domainType domain.DomainType, bl *domain.BoundaryLayerConfig) (domain.WingTopology, error) {
	var topo domain.WingTopology
	var err error
	if pf.Closed() {
		topo = uc.buildClosed(pf, domainType)
	} else {
		topo, err = uc.buildOpen(pf, domainType, bl)
	}
	if err != nil {
		return domain.WingTopology{}, err
	}
	topo.Sections = len(pf.Sections)
	topo.SharpTE = pf.Closed()

	uc.log.Info("wing.built",
		"name", pf.Name,
		"sections", len(pf.Sections),
		"sharp_te", pf.Closed(),
		"surfaces", len(topo.Surfaces))
	return topo, nil
}

// addSectionPoints requests one kernel point per section coordinate.
func (uc *BuildWing) addSectionPoints(pf domain.Planform) [][]int {
	ptags := make([][]int, len(pf.Sections))
	for i, sec := range pf.Sections {
		tags := make([]int, len(sec.Points))
		for j, p := range sec.Points {
			tags[j] = uc.kernel.AddPoint(p.X, p.Y, p.Z)
		}
		ptags[i] = tags
	}
	return ptags
}

// buildClosed constructs a wing with a sharp trailing edge: per-section
// upper/lower splines sharing the single trailing-edge point, connecting
// TE/LE lines, two ruled surfaces per span interval and a planar tip cap.
func (uc *BuildWing) buildClosed(pf domain.Planform, domainType domain.DomainType) domain.WingTopology {
	n := len(pf.Sections)
	ptags := uc.addSectionPoints(pf)

	// Airfoil splines, split at the leading edge.
	airf := make([][2]int, n)
	for i, sec := range pf.Sections {
		le := sec.LEIndex
		up := uc.kernel.AddSpline(ptags[i][:le+1])
		lower := append(append([]int{}, ptags[i][le:]...), ptags[i][0])
		lw := uc.kernel.AddSpline(lower)
		airf[i] = [2]int{up, lw}
	}

	// TE and LE connecting lines per span interval.
	teLines := make([]int, n-1)
	leLines := make([]int, n-1)
	for i := 0; i < n-1; i++ {
		teLines[i] = uc.kernel.AddLine(ptags[i][0], ptags[i+1][0])
		leLines[i] = uc.kernel.AddLine(ptags[i][pf.Sections[i].LEIndex], ptags[i+1][pf.Sections[i+1].LEIndex])
	}

	// Spanwise surfaces: upper and lower per interval, normals outward.
	var stags []int
	for i := 0; i < n-1; i++ {
		l := uc.kernel.AddCurveLoop([]int{airf[i][0], leLines[i], -airf[i+1][0], -teLines[i]})
		stags = append(stags, uc.kernel.AddSurfaceFilling(-l))
		l = uc.kernel.AddCurveLoop([]int{airf[i][1], teLines[i], -airf[i+1][1], -leLines[i]})
		stags = append(stags, uc.kernel.AddSurfaceFilling(-l))
	}
	// Cutoff wingtip.
	l := uc.kernel.AddCurveLoop([]int{airf[n-1][0], airf[n-1][1]})
	stags = append(stags, uc.kernel.AddPlaneSurface([]int{-l}))

	if domainType.NeedsWake() {
		// The wake sheet attaches to the upper surfaces only, so upper and
		// lower skins get distinct groups. The tip cap shares the upper
		// group.
		var upper, lower []int
		for i, s := range stags {
			if i%2 == 0 {
				upper = append(upper, s)
			} else {
				lower = append(lower, s)
			}
		}
		uc.kernel.AddPhysicalGroup(1, teLines, pf.Name+"Te")
		uc.kernel.AddPhysicalGroup(2, upper, pf.Name)
		uc.kernel.AddPhysicalGroup(2, lower, pf.Name+"_")
	} else {
		uc.kernel.AddPhysicalGroup(2, stags, pf.Name)
	}

	uc.sizeEdges(pf, ptags)

	trailing := make([]domain.TaggedPoint, n)
	for i, sec := range pf.Sections {
		trailing[i] = domain.TaggedPoint{Tag: ptags[i][0], Coord: sec.TE()}
	}

	return domain.WingTopology{
		Name:           pf.Name,
		Height:         pf.Height(),
		SymmetryCurves: []int{airf[0][0], airf[0][1]},
		Surfaces:       stags,
		TrailingPoints: trailing,
		TrailingCurves: teLines,
	}
}

// buildOpen constructs a wing with a blunt trailing edge. Without a boundary
// layer the trailing edge is closed by flat strips and the tip by a flat
// cap; with one (rans) the trailing edge is rounded through computed mid-TE
// arc points, the tip is rounded through interior points, and every skin
// surface is extruded into a shell.
func (uc *BuildWing) buildOpen(pf domain.Planform, domainType domain.DomainType, bl *domain.BoundaryLayerConfig) (domain.WingTopology, error) {
	n := len(pf.Sections)
	viscous := domainType.NeedsBoundaryLayer()
	ptags := uc.addSectionPoints(pf)

	// Mid-TE center and arc points, and tip interior points, for the
	// rounded closure.
	var tecPts, tePts, tipPts []int
	if viscous {
		tecPts = make([]int, n)
		tePts = make([]int, n)
		for i, sec := range pf.Sections {
			up, low := sec.TE(), sec.TELower()
			cx, cy, cz := 0.5*(up.X+low.X), up.Y, 0.5*(up.Z+low.Z)
			tecPts[i] = uc.kernel.AddPoint(cx, cy, cz)
			// Arc mid point: the upper TE point swung a quarter turn about
			// the spanwise axis through the center, i.e. half the TE gap
			// behind it.
			tePts[i] = uc.kernel.AddPoint(cx+(up.Z-cz), cy, cz)
		}

		tip := pf.Sections[n-1]
		m := len(tip.Points)
		for i := 1; i < 10; i++ {
			idx := tip.LEIndex * i / 10
			a, b := tip.Points[idx], tip.Points[m-idx-1]
			xc := 0.5 * (a.X + b.X)
			zc := 0.5 * (a.Z + b.Z)
			yc := a.Y + 0.5*math.Abs(a.Z-b.Z)
			tipPts = append(tipPts, uc.kernel.AddPoint(xc, yc, zc))
		}
	}

	// Airfoil splines, split at the leading edge; upper and lower trailing
	// points stay distinct.
	airf := make([][2]int, n)
	for i, sec := range pf.Sections {
		le := sec.LEIndex
		airf[i] = [2]int{
			uc.kernel.AddSpline(ptags[i][:le+1]),
			uc.kernel.AddSpline(ptags[i][le:]),
		}
	}

	// Connecting lines per span interval: upper TE, LE, lower TE.
	teuLines := make([]int, n-1)
	leLines := make([]int, n-1)
	telLines := make([]int, n-1)
	for i := 0; i < n-1; i++ {
		teuLines[i] = uc.kernel.AddLine(ptags[i][0], ptags[i+1][0])
		leLines[i] = uc.kernel.AddLine(ptags[i][pf.Sections[i].LEIndex], ptags[i+1][pf.Sections[i+1].LEIndex])
		telLines[i] = uc.kernel.AddLine(ptags[i][len(ptags[i])-1], ptags[i+1][len(ptags[i+1])-1])
	}

	// Trailing-edge closure curves.
	var teArcs [][2]int // rounded: upper and lower arc per section
	var teCuts []int    // cutoff: one line per section
	var teLines, tipCurves []int
	if viscous {
		teArcs = make([][2]int, n)
		for i := range pf.Sections {
			up := uc.kernel.AddCircleArc(tePts[i], tecPts[i], ptags[i][0])
			lw := uc.kernel.AddCircleArc(ptags[i][len(ptags[i])-1], tecPts[i], tePts[i])
			teArcs[i] = [2]int{up, lw}
		}
		teLines = make([]int, n-1)
		for i := 0; i < n-1; i++ {
			teLines[i] = uc.kernel.AddLine(tePts[i], tePts[i+1])
		}
		tipSpline := uc.kernel.AddSpline(append([]int{tePts[n-1]}, tipPts...))
		tipLE := uc.kernel.AddLine(tipPts[len(tipPts)-1], ptags[n-1][pf.Sections[n-1].LEIndex])
		tipCurves = []int{tipSpline, tipLE}
	} else {
		teCuts = make([]int, n)
		for i := range pf.Sections {
			teCuts[i] = uc.kernel.AddLine(ptags[i][len(ptags[i])-1], ptags[i][0])
		}
	}

	// Spanwise surfaces.
	var stags []int
	for i := 0; i < n-1; i++ {
		l := uc.kernel.AddCurveLoop([]int{airf[i][0], leLines[i], -airf[i+1][0], -teuLines[i]})
		stags = append(stags, uc.kernel.AddSurfaceFilling(-l))
		l = uc.kernel.AddCurveLoop([]int{airf[i][1], telLines[i], -airf[i+1][1], -leLines[i]})
		stags = append(stags, uc.kernel.AddSurfaceFilling(-l))
	}

	// Trailing-edge and wingtip closure.
	if viscous {
		for i := 0; i < n-1; i++ {
			l := uc.kernel.AddCurveLoop([]int{teArcs[i][0], teuLines[i], -teArcs[i+1][0], -teLines[i]})
			stags = append(stags, uc.kernel.AddSurfaceFilling(-l))
			l = uc.kernel.AddCurveLoop([]int{teArcs[i][1], teLines[i], -teArcs[i+1][1], -telLines[i]})
			stags = append(stags, uc.kernel.AddSurfaceFilling(-l))
		}
		tipSpline, tipLE := tipCurves[0], tipCurves[1]
		l := uc.kernel.AddCurveLoop([]int{airf[n-1][0], -tipLE, -tipSpline, teArcs[n-1][0]})
		stags = append(stags, uc.kernel.AddSurfaceFilling(-l))
		l = uc.kernel.AddCurveLoop([]int{teArcs[n-1][1], tipSpline, tipLE, airf[n-1][1]})
		stags = append(stags, uc.kernel.AddSurfaceFilling(-l))
	} else {
		for i := 0; i < n-1; i++ {
			l := uc.kernel.AddCurveLoop([]int{teCuts[i], teuLines[i], -teCuts[i+1], -telLines[i]})
			stags = append(stags, uc.kernel.AddPlaneSurface([]int{-l}))
		}
		l := uc.kernel.AddCurveLoop([]int{airf[n-1][0], airf[n-1][1], teCuts[n-1]})
		stags = append(stags, uc.kernel.AddPlaneSurface([]int{-l}))
	}

	// Boundary-layer shell.
	var blTopo *domain.BoundaryLayerTopology
	var symCurves []int
	if viscous {
		shell, caps, err := uc.extrudeShell(pf, stags, [4]int{airf[0][0], airf[0][1], teArcs[0][0], teArcs[0][1]}, bl)
		if err != nil {
			return domain.WingTopology{}, err
		}
		blTopo = shell
		symCurves = caps
	} else {
		symCurves = []int{airf[0][0], airf[0][1], teCuts[0]}
	}

	uc.kernel.AddPhysicalGroup(2, stags, pf.Name)
	if viscous && bl.WriteTags {
		uc.kernel.AddPhysicalGroupTagged(2, blTopo.TopSurfaces, boundaryLayerSurfaceTag, pf.Name+"BoundaryLayerSurface")
		uc.kernel.AddPhysicalGroupTagged(3, blTopo.Volumes, boundaryLayerVolumeTag, pf.Name+"BoundaryLayerVolume")
	}

	uc.sizeEdges(pf, ptags)
	if viscous {
		for i := range pf.Sections {
			uc.kernel.SetMeshSize([]int{tePts[i]}, pf.Sizes[i].TE)
		}
		uc.kernel.SetMeshSize([]int{tipPts[len(tipPts)-1]}, pf.Sizes[n-1].TE)
	}

	trailing := make([]domain.TaggedPoint, n)
	for i, sec := range pf.Sections {
		trailing[i] = domain.TaggedPoint{Tag: ptags[i][0], Coord: sec.TE()}
	}

	return domain.WingTopology{
		Name:           pf.Name,
		Height:         pf.Height(),
		SymmetryCurves: symCurves,
		Surfaces:       stags,
		TrailingPoints: trailing,
		TrailingCurves: teuLines,
		BoundaryLayer:  blTopo,
	}, nil
}

// extrudeShell grows the boundary layer from every wing surface and
// collects, from the structured extrusion result, the shell tops and
// volumes plus the side surfaces and cap curves on the symmetry plane. The
// caps are returned in chain order (upper, lower, lower TE, upper TE) so
// they form a closed contour around the root section.
func (uc *BuildWing) extrudeShell(pf domain.Planform, stags []int, rootCurves [4]int, bl *domain.BoundaryLayerConfig) (*domain.BoundaryLayerTopology, []int, error) {
	heights := domain.BoundaryLayerHeights(bl.NumLayers, bl.GrowthRatio, bl.FirstLayerHeight)
	layers := make([]int, bl.NumLayers)
	for i := range layers {
		layers[i] = 1
	}

	extruded, err := uc.kernel.ExtrudeBoundaryLayer(stags, layers, heights, true)
	if err != nil {
		return nil, nil, &domain.OpError{Op: "wing.extrude_boundary_layer", Kind: domain.KindGeometry,
			Err: fmt.Errorf("wing %q: %w", pf.Name, err)}
	}

	topo := &domain.BoundaryLayerTopology{}
	// Chain order: upper spline, lower spline, lower TE arc, upper TE arc.
	chain := [4]int{rootCurves[0], rootCurves[1], rootCurves[3], rootCurves[2]}
	caps := make([]int, 0, 4)
	for _, ext := range extruded {
		topo.TopSurfaces = append(topo.TopSurfaces, ext.Top)
		topo.Volumes = append(topo.Volumes, ext.Volume)
	}
	for _, rc := range chain {
		side, ok := findSide(extruded, rc)
		if !ok {
			return nil, nil, &domain.OpError{Op: "wing.extrude_boundary_layer", Kind: domain.KindGeometry,
				Err: fmt.Errorf("wing %q: no extruded side for root curve %d: %w", pf.Name, rc, domain.ErrGeometry)}
		}
		topo.SymmetrySurfaces = append(topo.SymmetrySurfaces, side.Surface)
		caps = append(caps, side.Cap)
	}

	uc.log.Debug("wing.boundary_layer",
		"name", pf.Name,
		"layers", bl.NumLayers,
		"total_height", heights[len(heights)-1],
		"volumes", len(topo.Volumes))
	return topo, caps, nil
}

// sizeEdges applies the per-section TE and LE mesh-size targets.
func (uc *BuildWing) sizeEdges(pf domain.Planform, ptags [][]int) {
	for i, sec := range pf.Sections {
		te := []int{ptags[i][0]}
		if !sec.Closed {
			te = append(te, ptags[i][len(ptags[i])-1])
		}
		uc.kernel.SetMeshSize(te, pf.Sizes[i].TE)
		uc.kernel.SetMeshSize([]int{ptags[i][sec.LEIndex]}, pf.Sizes[i].LE)
	}
}

func findSide(extruded []ports.ExtrudedSurface, curve int) (ports.ExtrudedSide, bool) {
	for _, ext := range extruded {
		if side, ok := ext.SideFor(curve); ok {
			return side, true
		}
	}
	return ports.ExtrudedSide{}, false
}
