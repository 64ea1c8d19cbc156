package usecase

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/acrovato/gmshcfd/internal/domain"
	"github.com/acrovato/gmshcfd/internal/ports"
)

// BuildDomain closes the farfield boundary around the assembled wings and
// wakes, embeds the wake entities as meshing constraints, and assigns the
// named boundary groups consumed by the downstream solver.
type BuildDomain struct {
	kernel ports.GeometryKernel
	log    *slog.Logger
}

func NewBuildDomain(k ports.GeometryKernel, log *slog.Logger) *BuildDomain {
	return &BuildDomain{kernel: k, log: log}
}

// Execute selects the farfield variant by domain type: a box with embedded
// wakes for potential flow, a half sphere otherwise. The domain type
// enumeration is closed; anything else is an error, never a fallback.
func (uc *BuildDomain) Execute(wings []domain.WingTopology, wakes []domain.WakeTopology, cfg domain.DomainConfig, farfieldSize float64) (domain.DomainTopology, error) {
	switch cfg.Type {
	case domain.DomainPotential:
		return uc.buildBox(wings, wakes, cfg.Length, farfieldSize)
	case domain.DomainEuler:
		return uc.buildSphere(wings, cfg.Length, farfieldSize, false)
	case domain.DomainRANS:
		return uc.buildSphere(wings, cfg.Length, farfieldSize, true)
	default:
		return domain.DomainTopology{}, &domain.OpError{Op: "domain.build", Kind: domain.KindInvalidConfig,
			Err: fmt.Errorf("unsupported domain type %q: %w", cfg.Type, domain.ErrInvalidConfig)}
	}
}

// buildBox constructs an axis-aligned box farfield. The symmetry face
// contains every wing's root contour as a cutout; its outer boundary runs
// through the root wake points, chained in ascending order of each wing's
// root trailing-edge height so the contour closes without crossing itself.
func (uc *BuildDomain) buildBox(wings []domain.WingTopology, wakes []domain.WakeTopology, length, farfieldSize float64) (domain.DomainTopology, error) {
	if len(wakes) != len(wings) {
		return domain.DomainTopology{}, &domain.OpError{Op: "domain.build_box", Kind: domain.KindInvalidConfig,
			Err: fmt.Errorf("%d wakes do not match %d wings: %w", len(wakes), len(wings), domain.ErrInvalidConfig)}
	}
	order := byHeight(wings)

	// Box corners: symmetry plane (y=0) first, opposite face second.
	var corners [2][4]int
	for i := 0; i < 2; i++ {
		y := float64(i) * length
		corners[i] = [4]int{
			uc.kernel.AddPoint(length, y, length),
			uc.kernel.AddPoint(-length, y, length),
			uc.kernel.AddPoint(-length, y, -length),
			uc.kernel.AddPoint(length, y, -length),
		}
	}

	// Symmetry-face boundary: three box edges, then down the trailing edge
	// through the root wake points, back up to the start.
	var front []int
	for i := 0; i < 3; i++ {
		front = append(front, uc.kernel.AddLine(corners[0][i], corners[0][i+1]))
	}
	front = append(front, uc.kernel.AddLine(corners[0][3], wakes[order[0]].SymmetryPoint))
	for i := 0; i < len(order)-1; i++ {
		front = append(front, uc.kernel.AddLine(wakes[order[i]].SymmetryPoint, wakes[order[i+1]].SymmetryPoint))
	}
	front = append(front, uc.kernel.AddLine(wakes[order[len(order)-1]].SymmetryPoint, corners[0][0]))

	back := make([]int, 4)
	for i := 0; i < 4; i++ {
		back[i] = uc.kernel.AddLine(corners[1][i], corners[1][(i+1)%4])
	}
	span := make([]int, 4)
	for i := 0; i < 4; i++ {
		span[i] = uc.kernel.AddLine(corners[0][i], corners[1][i])
	}

	// Symmetry face with the wing root contours cut out.
	holes := make([]int, len(wings))
	for i, w := range wings {
		holes[i] = uc.kernel.AddCurveLoop(w.SymmetryCurves)
	}
	outer := uc.kernel.AddCurveLoop(reversed(front))
	sym := uc.kernel.AddPlaneSurface(append([]int{-outer}, holes...))

	l := uc.kernel.AddCurveLoop([]int{front[1], span[2], -back[1], -span[1]})
	upstream := uc.kernel.AddPlaneSurface([]int{l})

	downLoop := []int{span[0], -back[3], -span[3]}
	downLoop = append(downLoop, front[3:]...)
	l = uc.kernel.AddCurveLoop(downLoop)
	downstream := uc.kernel.AddPlaneSurface([]int{l})

	var farfield []int
	l = uc.kernel.AddCurveLoop([]int{front[0], span[1], -back[0], -span[0]})
	farfield = append(farfield, uc.kernel.AddPlaneSurface([]int{l}))
	l = uc.kernel.AddCurveLoop([]int{span[3], -back[2], -span[2], front[2]})
	farfield = append(farfield, uc.kernel.AddPlaneSurface([]int{l}))
	l = uc.kernel.AddCurveLoop(back)
	farfield = append(farfield, uc.kernel.AddPlaneSurface([]int{l}))

	boundary := []int{sym, upstream, downstream}
	boundary = append(boundary, farfield...)
	closure := append([]int{}, boundary...)
	for _, w := range wings {
		closure = append(closure, w.Surfaces...)
	}
	vol := uc.kernel.AddVolume(uc.kernel.AddSurfaceLoop(closure))

	// Wake entities are meshing constraints, not boundaries: symmetry
	// curves in the symmetry face, trailing curves in the downstream face,
	// sheets in the volume.
	var symCurves, trailCurves, sheets []int
	for _, wk := range wakes {
		symCurves = append(symCurves, wk.SymmetryCurve)
		trailCurves = append(trailCurves, wk.TrailingCurves...)
		sheets = append(sheets, wk.Surfaces...)
	}
	uc.kernel.Embed(1, symCurves, 2, sym)
	uc.kernel.Embed(1, trailCurves, 2, downstream)
	uc.kernel.Embed(2, sheets, 3, vol)

	uc.kernel.AddPhysicalGroup(2, []int{sym}, "symmetry")
	uc.kernel.AddPhysicalGroup(2, []int{upstream}, "upstream")
	uc.kernel.AddPhysicalGroup(2, []int{downstream}, "downstream")
	uc.kernel.AddPhysicalGroup(2, farfield, "farfield")
	uc.kernel.AddPhysicalGroup(3, []int{vol}, "field")

	for i := 0; i < 2; i++ {
		uc.kernel.SetMeshSize(corners[i][:], farfieldSize)
	}

	uc.log.Info("domain.built", "shape", "box", "wings", len(wings))

	return domain.DomainTopology{
		Symmetry:   []int{sym},
		Upstream:   []int{upstream},
		Downstream: []int{downstream},
		Farfield:   farfield,
		Volume:     vol,
	}, nil
}

// buildSphere constructs a half-sphere farfield from five boundary points
// and circle arcs: four curved quadrants plus the symmetry disk with the
// wing root contours cut out. For viscous domains the boundary-layer shell
// tops close the volume instead of the raw wing skins, and the shell
// symmetry surfaces and volumes join the symmetry and field groups.
func (uc *BuildDomain) buildSphere(wings []domain.WingTopology, length, farfieldSize float64, viscous bool) (domain.DomainTopology, error) {
	center := uc.kernel.AddPoint(0, 0, 0)
	rim := [4]int{
		uc.kernel.AddPoint(length, 0, 0),
		uc.kernel.AddPoint(0, 0, length),
		uc.kernel.AddPoint(-length, 0, 0),
		uc.kernel.AddPoint(0, 0, -length),
	}
	pole := uc.kernel.AddPoint(0, length, 0)

	symArcs := make([]int, 4)
	for i := 0; i < 4; i++ {
		symArcs[i] = uc.kernel.AddCircleArc(rim[i], center, rim[(i+1)%4])
	}
	poleArcs := make([]int, 4)
	for i := 0; i < 4; i++ {
		poleArcs[i] = uc.kernel.AddCircleArc(rim[i], center, pole)
	}

	holes := make([]int, len(wings))
	for i, w := range wings {
		holes[i] = uc.kernel.AddCurveLoop(w.SymmetryCurves)
	}
	outer := uc.kernel.AddCurveLoop(reversed(symArcs))
	sym := uc.kernel.AddPlaneSurface(append([]int{-outer}, holes...))

	farfield := make([]int, 4)
	for i := 0; i < 4; i++ {
		l := uc.kernel.AddCurveLoop([]int{symArcs[i], poleArcs[(i+1)%4], -poleArcs[i]})
		farfield[i] = uc.kernel.AddSurfaceFilling(l)
	}

	closure := append([]int{sym}, farfield...)
	for _, w := range wings {
		if viscous {
			if w.BoundaryLayer == nil {
				return domain.DomainTopology{}, &domain.OpError{Op: "domain.build_sphere", Kind: domain.KindGeometry,
					Err: fmt.Errorf("wing %q has no boundary layer shell: %w", w.Name, domain.ErrGeometry)}
			}
			closure = append(closure, w.BoundaryLayer.TopSurfaces...)
		} else {
			closure = append(closure, w.Surfaces...)
		}
	}
	vol := uc.kernel.AddVolume(uc.kernel.AddSurfaceLoop(closure))

	symGroup := []int{sym}
	volGroup := []int{vol}
	if viscous {
		for _, w := range wings {
			symGroup = append(symGroup, w.BoundaryLayer.SymmetrySurfaces...)
			volGroup = append(volGroup, w.BoundaryLayer.Volumes...)
		}
	}
	uc.kernel.AddPhysicalGroup(2, symGroup, "symmetry")
	uc.kernel.AddPhysicalGroup(2, farfield, "farfield")
	uc.kernel.AddPhysicalGroup(3, volGroup, "field")

	pts := append(append([]int{}, rim[:]...), pole)
	uc.kernel.SetMeshSize(pts, farfieldSize)

	uc.log.Info("domain.built", "shape", "sphere", "wings", len(wings), "viscous", viscous)

	return domain.DomainTopology{
		Symmetry: symGroup,
		Farfield: farfield,
		Volume:   vol,
	}, nil
}

// byHeight returns wing indices ordered by ascending root trailing-edge
// height.
func byHeight(wings []domain.WingTopology) []int {
	order := make([]int, len(wings))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return wings[order[a]].Height < wings[order[b]].Height
	})
	return order
}

func reversed(curves []int) []int {
	out := make([]int, len(curves))
	for i, c := range curves {
		out[len(curves)-1-i] = c
	}
	return out
}
