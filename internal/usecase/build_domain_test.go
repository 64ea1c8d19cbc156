package usecase

import (
	"errors"
	"testing"

	"github.com/acrovato/gmshcfd/internal/domain"
)

func builtWing(t *testing.T, k *fakeKernel, raw []domain.Point2, dt domain.DomainType, bl *domain.BoundaryLayerConfig) domain.WingTopology {
	t.Helper()
	pf := makePlanform(t, raw, []float64{0, 1}, dt)
	topo, err := NewBuildWing(k, discardLogger()).Execute(pf, dt, bl)
	if err != nil {
		t.Fatalf("build wing: %v", err)
	}
	return topo
}

func TestBuildDomainBox(t *testing.T) {
	k := newFakeKernel()
	wing := builtWing(t, k, sharpCoords(), domain.DomainPotential, nil)
	wake, err := NewBuildWake(k, discardLogger()).Execute("wingWake", wing.TrailingPoints, wing.TrailingCurves, 50, domain.MergeNone, 5)
	if err != nil {
		t.Fatalf("build wake: %v", err)
	}

	cfg := domain.DomainConfig{Type: domain.DomainPotential, Length: 50, MergeWake: domain.MergeNone}
	topo, err := NewBuildDomain(k, discardLogger()).Execute([]domain.WingTopology{wing}, []domain.WakeTopology{wake}, cfg, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"symmetry", "upstream", "downstream", "farfield", "field"} {
		if _, ok := k.group(name); !ok {
			t.Fatalf("missing boundary group %q", name)
		}
	}
	ff, _ := k.group("farfield")
	if len(ff.tags) != 3 {
		t.Fatalf("expected 3 farfield faces for the box, got %d", len(ff.tags))
	}
	if len(topo.Upstream) != 1 || len(topo.Downstream) != 1 || len(topo.Symmetry) != 1 {
		t.Fatalf("unexpected boundary topology: %+v", topo)
	}

	// Wake constraints: symmetry curve in the symmetry face, trailing
	// curves in the downstream face, sheets in the volume.
	if len(k.embeds) != 3 {
		t.Fatalf("expected 3 embed calls, got %d", len(k.embeds))
	}
	if k.embeds[0].dim != 1 || k.embeds[0].targetTag != topo.Symmetry[0] {
		t.Fatalf("unexpected symmetry embed: %+v", k.embeds[0])
	}
	if k.embeds[1].dim != 1 || k.embeds[1].targetTag != topo.Downstream[0] {
		t.Fatalf("unexpected downstream embed: %+v", k.embeds[1])
	}
	if k.embeds[2].dim != 2 || k.embeds[2].targetDim != 3 || k.embeds[2].targetTag != topo.Volume {
		t.Fatalf("unexpected volume embed: %+v", k.embeds[2])
	}
}

func TestBuildDomainBoxRequiresWakes(t *testing.T) {
	k := newFakeKernel()
	wing := builtWing(t, k, sharpCoords(), domain.DomainPotential, nil)

	cfg := domain.DomainConfig{Type: domain.DomainPotential, Length: 50}
	_, err := NewBuildDomain(k, discardLogger()).Execute([]domain.WingTopology{wing}, nil, cfg, 5)
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestBuildDomainSphereEuler(t *testing.T) {
	k := newFakeKernel()
	wing := builtWing(t, k, bluntCoords(), domain.DomainEuler, nil)

	cfg := domain.DomainConfig{Type: domain.DomainEuler, Length: 50}
	topo, err := NewBuildDomain(k, discardLogger()).Execute([]domain.WingTopology{wing}, nil, cfg, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ff, ok := k.group("farfield")
	if !ok || len(ff.tags) != 4 {
		t.Fatalf("expected 4 curved farfield quadrants, got %+v", ff)
	}
	if len(topo.Upstream) != 0 || len(topo.Downstream) != 0 {
		t.Fatalf("sphere domain has no upstream/downstream faces: %+v", topo)
	}
	sym, _ := k.group("symmetry")
	if len(sym.tags) != 1 {
		t.Fatalf("expected the symmetry disk only, got %d surfaces", len(sym.tags))
	}
	if len(k.embeds) != 0 {
		t.Fatalf("sphere domain embeds nothing, got %d", len(k.embeds))
	}
}

func TestBuildDomainSphereRANS(t *testing.T) {
	k := newFakeKernel()
	bl := &domain.BoundaryLayerConfig{NumLayers: 3, GrowthRatio: 1.5, FirstLayerHeight: 0.001}
	wing := builtWing(t, k, bluntCoords(), domain.DomainRANS, bl)

	cfg := domain.DomainConfig{Type: domain.DomainRANS, Length: 50}
	topo, err := NewBuildDomain(k, discardLogger()).Execute([]domain.WingTopology{wing}, nil, cfg, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The shell's symmetry surfaces join the symmetry group and its
	// volumes join the field group.
	sym, _ := k.group("symmetry")
	if len(sym.tags) != 1+len(wing.BoundaryLayer.SymmetrySurfaces) {
		t.Fatalf("expected disk plus shell symmetry surfaces, got %d", len(sym.tags))
	}
	field, _ := k.group("field")
	if len(field.tags) != 1+len(wing.BoundaryLayer.Volumes) {
		t.Fatalf("expected field plus shell volumes, got %d", len(field.tags))
	}
	if len(topo.Symmetry) != len(sym.tags) {
		t.Fatalf("topology and group disagree on symmetry surfaces")
	}
}

func TestBuildDomainSphereRANSRequiresShell(t *testing.T) {
	k := newFakeKernel()
	wing := builtWing(t, k, bluntCoords(), domain.DomainEuler, nil) // no shell

	cfg := domain.DomainConfig{Type: domain.DomainRANS, Length: 50}
	_, err := NewBuildDomain(k, discardLogger()).Execute([]domain.WingTopology{wing}, nil, cfg, 5)
	if !errors.Is(err, domain.ErrGeometry) {
		t.Fatalf("expected geometry error, got %v", err)
	}
}

func TestBuildDomainRejectsUnknownType(t *testing.T) {
	k := newFakeKernel()
	cfg := domain.DomainConfig{Type: "sphere", Length: 50}
	_, err := NewBuildDomain(k, discardLogger()).Execute(nil, nil, cfg, 5)
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config kind, got %v", err)
	}
}
