package usecase

import (
	"io"
	"log/slog"

	"github.com/acrovato/gmshcfd/internal/domain"
	"github.com/acrovato/gmshcfd/internal/ports"
)

// --- fakes shared by the builder tests ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeGroup struct {
	dim  int
	tags []int
	tag  int
	name string
}

type fakeEmbed struct {
	dim       int
	tags      []int
	targetDim int
	targetTag int
}

// fakeKernel hands out sequential tags per entity class and records enough
// structure (loop curves, surface loops) to fabricate extrusion results the
// way a real kernel would.
type fakeKernel struct {
	points   int
	curves   int
	loops    int
	surfaces int
	sloops   int
	volumes  int

	loopCurves   map[int][]int
	surfaceLoops map[int]int // first loop per surface, unsigned

	groups  []fakeGroup
	embeds  []fakeEmbed
	sizes   map[int]float64
	synced  bool
	syncErr error

	extrudeCalls int
}

var _ ports.GeometryKernel = (*fakeKernel)(nil)

func newFakeKernel() *fakeKernel {
	return &fakeKernel{
		loopCurves:   map[int][]int{},
		surfaceLoops: map[int]int{},
		sizes:        map[int]float64{},
	}
}

func (k *fakeKernel) AddPoint(x, y, z float64) int { k.points++; return k.points }
func (k *fakeKernel) AddLine(start, end int) int   { k.curves++; return k.curves }
func (k *fakeKernel) AddSpline(points []int) int   { k.curves++; return k.curves }
func (k *fakeKernel) AddCircleArc(start, center, end int) int {
	k.curves++
	return k.curves
}

func (k *fakeKernel) AddCurveLoop(curves []int) int {
	k.loops++
	k.loopCurves[k.loops] = append([]int{}, curves...)
	return k.loops
}

func (k *fakeKernel) AddSurfaceFilling(loop int) int {
	k.surfaces++
	k.surfaceLoops[k.surfaces] = abs(loop)
	return k.surfaces
}

func (k *fakeKernel) AddPlaneSurface(loops []int) int {
	k.surfaces++
	if len(loops) > 0 {
		k.surfaceLoops[k.surfaces] = abs(loops[0])
	}
	return k.surfaces
}

func (k *fakeKernel) AddSurfaceLoop(surfaces []int) int { k.sloops++; return k.sloops }
func (k *fakeKernel) AddVolume(loop int) int            { k.volumes++; return k.volumes }

func (k *fakeKernel) ExtrudeBoundaryLayer(surfaces []int, layers []int, heights []float64, recombine bool) ([]ports.ExtrudedSurface, error) {
	k.extrudeCalls++
	out := make([]ports.ExtrudedSurface, 0, len(surfaces))
	for _, s := range surfaces {
		ext := ports.ExtrudedSurface{Source: s}
		for _, c := range k.loopCurves[k.surfaceLoops[s]] {
			k.curves++
			k.surfaces++
			ext.Sides = append(ext.Sides, ports.ExtrudedSide{SourceCurve: abs(c), Surface: k.surfaces, Cap: k.curves})
		}
		k.surfaces++
		ext.Top = k.surfaces
		k.volumes++
		ext.Volume = k.volumes
		out = append(out, ext)
	}
	return out, nil
}

func (k *fakeKernel) Embed(dim int, tags []int, targetDim, targetTag int) {
	k.embeds = append(k.embeds, fakeEmbed{dim: dim, tags: append([]int{}, tags...), targetDim: targetDim, targetTag: targetTag})
}

func (k *fakeKernel) SetMeshSize(points []int, size float64) {
	for _, p := range points {
		k.sizes[p] = size
	}
}

func (k *fakeKernel) AddPhysicalGroup(dim int, tags []int, name string) {
	k.groups = append(k.groups, fakeGroup{dim: dim, tags: append([]int{}, tags...), name: name})
}

func (k *fakeKernel) AddPhysicalGroupTagged(dim int, tags []int, tag int, name string) {
	k.groups = append(k.groups, fakeGroup{dim: dim, tags: append([]int{}, tags...), tag: tag, name: name})
}

func (k *fakeKernel) Synchronize() error {
	k.synced = true
	return k.syncErr
}

func (k *fakeKernel) group(name string) (fakeGroup, bool) {
	for _, g := range k.groups {
		if g.name == name {
			return g, true
		}
	}
	return fakeGroup{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// fakeAirfoils serves raw coordinates from memory.
type fakeAirfoils struct {
	byPath map[string][]domain.Point2
}

func (f fakeAirfoils) Load(path string) ([]domain.Point2, error) {
	pts, ok := f.byPath[path]
	if !ok {
		return nil, &domain.OpError{Op: "airfoil.load", Kind: domain.KindNotFound, Path: path, Err: domain.ErrNotFound}
	}
	return pts, nil
}
