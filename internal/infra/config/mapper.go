package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/acrovato/gmshcfd/internal/domain"
)

// MapCase turns the raw YAML document into a validated domain.Case. Airfoil
// paths are resolved relative to the case file's directory, and the planform
// and size shorthands are expanded into explicit per-section values.
func MapCase(path string, yc YAMLCase) (domain.Case, error) {
	cs := domain.Case{
		Name: yc.Name,
		Domain: domain.DomainConfig{
			Type:      domain.DomainType(strings.ToLower(strings.TrimSpace(yc.Domain.Type))),
			Length:    yc.Domain.Length,
			MergeWake: domain.MergePolicy(strings.ToLower(strings.TrimSpace(yc.Domain.MergeWake))),
		},
	}
	if yc.Domain.MergeWake == "" {
		cs.Domain.MergeWake = domain.MergeNone
	}

	dir := filepath.Dir(path)
	for i, yw := range yc.Wings {
		w, err := mapWing(path, dir, fmt.Sprintf("wings[%d]", i), yw)
		if err != nil {
			return domain.Case{}, err
		}
		cs.Wings = append(cs.Wings, w)
	}

	mesh, err := mapMesh(path, yc.Mesh, cs.Wings, cs.Domain.Length)
	if err != nil {
		return domain.Case{}, err
	}
	cs.Mesh = mesh

	if err := cs.Validate(); err != nil {
		return domain.Case{}, err
	}
	return cs, nil
}

func mapWing(path, dir, field string, yw YAMLWing) (domain.WingConfig, error) {
	w := domain.WingConfig{
		Name:   yw.Name,
		Offset: yw.Offset,
	}
	for _, a := range yw.Airfoils {
		if !filepath.IsAbs(a) {
			a = filepath.Join(dir, a)
		}
		w.Airfoils = append(w.Airfoils, a)
	}
	n := len(w.Airfoils)

	explicit := len(yw.Chords) > 0 || len(yw.LEOffsets) > 0
	switch {
	case yw.Planform != nil && explicit:
		return domain.WingConfig{}, invalidField(path, field, "planform and explicit chords/le_offsets are mutually exclusive")
	case yw.Planform != nil:
		le, chords, err := domain.PlanformStations(yw.Planform.Spans, yw.Planform.Tapers,
			yw.Planform.Sweeps, yw.Planform.Dihedrals, yw.Planform.RootChord)
		if err != nil {
			return domain.WingConfig{}, invalidField(path, field+".planform", err.Error())
		}
		if len(chords) != n {
			return domain.WingConfig{}, invalidField(path, field+".planform",
				fmt.Sprintf("planform yields %d sections but %d airfoils are given", len(chords), n))
		}
		w.Chords = chords
		w.LEOffsets = le
	default:
		w.Chords = yw.Chords
		w.LEOffsets = yw.LEOffsets
	}

	if len(yw.Incidences) > 0 {
		w.Incidences = yw.Incidences
	} else {
		w.Incidences = make([]float64, n)
	}

	switch {
	case len(yw.Sizes) > 0 && yw.SizeFraction > 0:
		return domain.WingConfig{}, invalidField(path, field, "sizes and size_fraction are mutually exclusive")
	case yw.SizeFraction > 0:
		if len(w.Chords) != n {
			return domain.WingConfig{}, invalidField(path, field, "size_fraction needs one chord per airfoil")
		}
		for _, c := range w.Chords {
			s := yw.SizeFraction * c
			w.Sizes = append(w.Sizes, domain.SizePair{TE: s, LE: s})
		}
	default:
		for _, s := range yw.Sizes {
			w.Sizes = append(w.Sizes, domain.SizePair{TE: s.TE, LE: s.LE})
		}
	}

	return w, nil
}

func mapMesh(path string, ym YAMLMesh, wings []domain.WingConfig, domainLength float64) (domain.MeshConfig, error) {
	m := domain.MeshConfig{DomainSize: ym.DomainSize}
	if ym.BoundaryLayer != nil {
		m.BoundaryLayer = &domain.BoundaryLayerConfig{
			NumLayers:        ym.BoundaryLayer.Layers,
			GrowthRatio:      ym.BoundaryLayer.GrowthRatio,
			FirstLayerHeight: ym.BoundaryLayer.FirstHeight,
			WriteTags:        ym.BoundaryLayer.WriteTags,
		}
	}

	switch {
	case ym.DomainSize > 0 && ym.GrowthFactor > 0:
		return domain.MeshConfig{}, invalidField(path, "mesh", "domain_size and growth_factor are mutually exclusive")
	case ym.GrowthFactor > 0:
		if ym.GrowthFactor <= 1 {
			return domain.MeshConfig{}, invalidField(path, "mesh.growth_factor", "growth factor must be greater than 1")
		}
		min := minSurfaceSize(wings)
		if min <= 0 {
			return domain.MeshConfig{}, invalidField(path, "mesh.growth_factor", "wing surface sizes are required to derive the farfield size")
		}
		if domainLength <= 0 {
			return domain.MeshConfig{}, invalidField(path, "mesh.growth_factor", "domain length is required to derive the farfield size")
		}
		m.DomainSize = domain.FarfieldSize(min, domainLength, ym.GrowthFactor)
	}
	return m, nil
}

func minSurfaceSize(wings []domain.WingConfig) float64 {
	min := 0.0
	for _, w := range wings {
		for _, s := range w.Sizes {
			if min == 0 || s.TE < min {
				min = s.TE
			}
			if s.LE < min {
				min = s.LE
			}
		}
	}
	return min
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
