package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/acrovato/gmshcfd/internal/domain"
)

func potentialCase() domain.Case {
	return domain.Case{
		Name: "test",
		Wings: []domain.WingConfig{{
			Name:       "wing",
			Airfoils:   []string{"sharp.dat", "sharp.dat"},
			Chords:     []float64{1, 0.5},
			Incidences: []float64{0, 0},
			LEOffsets:  [][3]float64{{0, 0, 0}, {0.5, 1, 0}},
			Sizes:      []domain.SizePair{{TE: 0.01, LE: 0.01}, {TE: 0.005, LE: 0.005}},
		}},
		Domain: domain.DomainConfig{Type: domain.DomainPotential, Length: 50, MergeWake: domain.MergeNone},
		Mesh:   domain.MeshConfig{DomainSize: 5},
	}
}

func testAirfoils() fakeAirfoils {
	return fakeAirfoils{byPath: map[string][]domain.Point2{
		"sharp.dat": sharpCoords(),
		"blunt.dat": bluntCoords(),
	}}
}

func TestGenerateModelPotential(t *testing.T) {
	k := newFakeKernel()
	uc := NewGenerateModel(testAirfoils(), k, discardLogger())

	topo, err := uc.Execute(context.Background(), potentialCase())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topo.Wings) != 1 || len(topo.Wakes) != 1 {
		t.Fatalf("expected one wing and one wake, got %d/%d", len(topo.Wings), len(topo.Wakes))
	}
	if !k.synced {
		t.Fatalf("expected a final synchronize call")
	}

	for _, name := range []string{"wingTe", "wing", "wing_", "wingWakeTip", "wingWake",
		"symmetry", "upstream", "downstream", "farfield", "field"} {
		if _, ok := k.group(name); !ok {
			t.Fatalf("missing physical group %q", name)
		}
	}
}

func TestGenerateModelRANS(t *testing.T) {
	cs := potentialCase()
	cs.Wings[0].Airfoils = []string{"blunt.dat", "blunt.dat"}
	cs.Domain.Type = domain.DomainRANS
	cs.Mesh.BoundaryLayer = &domain.BoundaryLayerConfig{
		NumLayers: 5, GrowthRatio: 1.3, FirstLayerHeight: 1e-4, WriteTags: true,
	}

	k := newFakeKernel()
	topo, err := NewGenerateModel(testAirfoils(), k, discardLogger()).Execute(context.Background(), cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topo.Wakes) != 0 {
		t.Fatalf("rans domain sheds no wake, got %d", len(topo.Wakes))
	}

	shell, ok := k.group("wingBoundaryLayerSurface")
	if !ok || shell.tag != 9998 {
		t.Fatalf("expected tagged shell surface group, got %+v", shell)
	}
	vol, ok := k.group("wingBoundaryLayerVolume")
	if !ok || vol.tag != 9999 {
		t.Fatalf("expected tagged shell volume group, got %+v", vol)
	}
	if _, ok := k.group("upstream"); ok {
		t.Fatalf("sphere domain has no upstream face")
	}
}

func TestGenerateModelFailsBeforeGeometryOnBadPairing(t *testing.T) {
	cs := potentialCase()
	cs.Wings[0].Airfoils = []string{"blunt.dat", "blunt.dat"} // blunt TE with potential

	k := newFakeKernel()
	_, err := NewGenerateModel(testAirfoils(), k, discardLogger()).Execute(context.Background(), cs)
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
	if k.points != 0 || k.curves != 0 {
		t.Fatalf("expected no geometry calls before validation, got %d points %d curves", k.points, k.curves)
	}
}

func TestGenerateModelFailsOnMissingAirfoil(t *testing.T) {
	cs := potentialCase()
	cs.Wings[0].Airfoils = []string{"missing.dat", "missing.dat"}

	k := newFakeKernel()
	_, err := NewGenerateModel(testAirfoils(), k, discardLogger()).Execute(context.Background(), cs)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if k.points != 0 {
		t.Fatalf("expected no geometry calls, got %d points", k.points)
	}
}

func TestGenerateModelHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	k := newFakeKernel()
	_, err := NewGenerateModel(testAirfoils(), k, discardLogger()).Execute(ctx, potentialCase())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if k.synced {
		t.Fatalf("cancelled build must not synchronize")
	}
}

func TestGenerateModelSynchronizeFailure(t *testing.T) {
	k := newFakeKernel()
	k.syncErr = domain.ErrGeometry

	_, err := NewGenerateModel(testAirfoils(), k, discardLogger()).Execute(context.Background(), potentialCase())
	if !errors.Is(err, domain.ErrGeometry) {
		t.Fatalf("expected geometry error, got %v", err)
	}
	if !domain.IsKind(err, domain.KindGeometry) {
		t.Fatalf("expected geometry kind, got %v", err)
	}
}
