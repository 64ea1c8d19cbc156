package usecase

import (
	"fmt"
	"log/slog"

	"github.com/acrovato/gmshcfd/internal/domain"
	"github.com/acrovato/gmshcfd/internal/ports"
)

// BuildWake extends a wing's trailing edge to the farfield boundary along
// the freestream direction, forming the wake sheet required by potential
// flow.
type BuildWake struct {
	kernel ports.GeometryKernel
	log    *slog.Logger
}

func NewBuildWake(k ports.GeometryKernel, log *slog.Logger) *BuildWake {
	return &BuildWake{kernel: k, log: log}
}

// Execute builds the wake for one wing: a farfield point per retained
// trailing-edge point, shedding curves connecting them to the wing,
// trailing curves connecting them to each other, and one planar sheet per
// spanwise strip. The merge policy collapses the last one or two strips to
// avoid degenerate thin cells near the tip.
func (uc *BuildWake) Execute(name string, tePoints []domain.TaggedPoint, teCurves []int, length float64, merge domain.MergePolicy, farfieldSize float64) (domain.WakeTopology, error) {
	fail := func(err error) (domain.WakeTopology, error) {
		return domain.WakeTopology{}, &domain.OpError{Op: "wake.build", Kind: domain.KindInvalidConfig,
			Err: fmt.Errorf("wake %q: %w", name, err)}
	}

	if len(tePoints) != len(teCurves)+1 {
		return fail(fmt.Errorf("%d trailing points do not match %d trailing curves: %w",
			len(tePoints), len(teCurves), domain.ErrInvalidConfig))
	}

	// Retain the trailing-edge points and curve runs per strip; a merged
	// strip closes over several trailing-edge curves traversed tip-to-root.
	var retained []domain.TaggedPoint
	var runs [][]int
	switch merge {
	case domain.MergeAll:
		retained = []domain.TaggedPoint{tePoints[0], tePoints[len(tePoints)-1]}
		runs = [][]int{reverseNegated(teCurves)}
	case domain.MergeLast:
		if len(teCurves) < 2 {
			return fail(fmt.Errorf("merge policy %q needs at least two trailing curves: %w", merge, domain.ErrInvalidConfig))
		}
		retained = append(append([]domain.TaggedPoint{}, tePoints[:len(tePoints)-2]...), tePoints[len(tePoints)-1])
		for _, c := range teCurves[:len(teCurves)-2] {
			runs = append(runs, []int{-c})
		}
		runs = append(runs, reverseNegated(teCurves[len(teCurves)-2:]))
	case domain.MergeNone:
		retained = tePoints
		for _, c := range teCurves {
			runs = append(runs, []int{-c})
		}
	default:
		return fail(fmt.Errorf("unsupported wake merge policy %q: %w", merge, domain.ErrInvalidConfig))
	}

	// Farfield points: freestream distance, same spanwise/vertical
	// coordinates as the trailing edge.
	ptags := make([]int, len(retained))
	for i, tp := range retained {
		ptags[i] = uc.kernel.AddPoint(length, tp.Coord.Y, tp.Coord.Z)
	}

	shed := make([]int, len(retained))
	for i, tp := range retained {
		shed[i] = uc.kernel.AddLine(tp.Tag, ptags[i])
	}
	trail := make([]int, len(ptags)-1)
	for i := 0; i < len(ptags)-1; i++ {
		trail[i] = uc.kernel.AddLine(ptags[i], ptags[i+1])
	}

	stags := make([]int, len(runs))
	for i, run := range runs {
		loop := []int{trail[i], -shed[i+1]}
		loop = append(loop, run...)
		loop = append(loop, shed[i])
		stags[i] = uc.kernel.AddPlaneSurface([]int{uc.kernel.AddCurveLoop(loop)})
	}

	uc.kernel.AddPhysicalGroup(1, []int{shed[len(shed)-1]}, name+"Tip")
	uc.kernel.AddPhysicalGroup(2, stags, name)
	uc.kernel.SetMeshSize(ptags, farfieldSize)

	uc.log.Info("wake.built", "name", name, "surfaces", len(stags), "merge", string(merge))

	return domain.WakeTopology{
		Name:           name,
		SymmetryPoint:  ptags[0],
		SymmetryCurve:  shed[0],
		TrailingCurves: trail,
		Surfaces:       stags,
	}, nil
}

// reverseNegated flips a root-to-tip curve run into the tip-to-root
// traversal needed to close a strip loop.
func reverseNegated(curves []int) []int {
	out := make([]int, len(curves))
	for i, c := range curves {
		out[len(curves)-1-i] = -c
	}
	return out
}
