package usecase

import (
	"errors"
	"testing"

	"github.com/acrovato/gmshcfd/internal/domain"
)

func wakeInputs(k *fakeKernel, sections int) ([]domain.TaggedPoint, []int) {
	pts := make([]domain.TaggedPoint, sections)
	for i := range pts {
		tag := k.AddPoint(1, float64(i), 0)
		pts[i] = domain.TaggedPoint{Tag: tag, Coord: domain.Point3{X: 1, Y: float64(i), Z: 0}}
	}
	curves := make([]int, sections-1)
	for i := range curves {
		curves[i] = k.AddLine(pts[i].Tag, pts[i+1].Tag)
	}
	return pts, curves
}

func TestBuildWakeMergeNone(t *testing.T) {
	k := newFakeKernel()
	pts, curves := wakeInputs(k, 4)

	topo, err := NewBuildWake(k, discardLogger()).Execute("wingWake", pts, curves, 50, domain.MergeNone, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topo.Surfaces) != 3 {
		t.Fatalf("expected one sheet per strip, got %d", len(topo.Surfaces))
	}
	if len(topo.TrailingCurves) != 3 {
		t.Fatalf("expected 3 trailing curves, got %d", len(topo.TrailingCurves))
	}

	tip, ok := k.group("wingWakeTip")
	if !ok || tip.dim != 1 || len(tip.tags) != 1 {
		t.Fatalf("expected tip group over the last shedding curve, got %+v", tip)
	}
	sheet, ok := k.group("wingWake")
	if !ok || sheet.dim != 2 || len(sheet.tags) != 3 {
		t.Fatalf("expected sheet group over 3 surfaces, got %+v", sheet)
	}
}

func TestBuildWakeMergeLast(t *testing.T) {
	k := newFakeKernel()
	pts, curves := wakeInputs(k, 4)

	topo, err := NewBuildWake(k, discardLogger()).Execute("wingWake", pts, curves, 50, domain.MergeLast, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The last two strips collapse into one.
	if len(topo.Surfaces) != 2 {
		t.Fatalf("expected 2 sheets, got %d", len(topo.Surfaces))
	}
	if len(topo.TrailingCurves) != 2 {
		t.Fatalf("expected 2 trailing curves, got %d", len(topo.TrailingCurves))
	}
}

func TestBuildWakeMergeAll(t *testing.T) {
	k := newFakeKernel()
	pts, curves := wakeInputs(k, 4)

	topo, err := NewBuildWake(k, discardLogger()).Execute("wingWake", pts, curves, 50, domain.MergeAll, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topo.Surfaces) != 1 {
		t.Fatalf("expected a single sheet, got %d", len(topo.Surfaces))
	}
	if len(topo.TrailingCurves) != 1 {
		t.Fatalf("expected 1 trailing curve, got %d", len(topo.TrailingCurves))
	}
}

func TestBuildWakeMergedRunTraversal(t *testing.T) {
	k := newFakeKernel()
	pts, curves := wakeInputs(k, 3)

	if _, err := NewBuildWake(k, discardLogger()).Execute("wingWake", pts, curves, 50, domain.MergeAll, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The merged sheet's loop must traverse the trailing-edge run
	// tip-to-root: curves reversed and negated.
	loop := k.loopCurves[k.loops]
	want := []int{-curves[1], -curves[0]}
	found := 0
	for i := 0; i+1 < len(loop); i++ {
		if loop[i] == want[0] && loop[i+1] == want[1] {
			found++
		}
	}
	if found != 1 {
		t.Fatalf("expected tip-to-root run %v inside loop %v", want, loop)
	}
}

func TestBuildWakeRejectsMismatchedInputs(t *testing.T) {
	k := newFakeKernel()
	pts, curves := wakeInputs(k, 3)

	_, err := NewBuildWake(k, discardLogger()).Execute("wingWake", pts, curves[:1], 50, domain.MergeNone, 5)
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestBuildWakeMergeLastNeedsWidth(t *testing.T) {
	k := newFakeKernel()
	pts, curves := wakeInputs(k, 2)

	_, err := NewBuildWake(k, discardLogger()).Execute("wingWake", pts, curves, 50, domain.MergeLast, 5)
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}
