package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/acrovato/gmshcfd/internal/domain"
	"github.com/acrovato/gmshcfd/internal/ports"
)

// GenerateModel drives one full build: section transform, wing construction,
// wake construction for wake-shedding domain types, farfield closure, and a
// final kernel synchronization. Construction order is fixed; every stage
// consumes tags produced by the previous one.
type GenerateModel struct {
	airfoils ports.AirfoilSource
	kernel   ports.GeometryKernel
	log      *slog.Logger
}

func NewGenerateModel(src ports.AirfoilSource, k ports.GeometryKernel, log *slog.Logger) *GenerateModel {
	return &GenerateModel{airfoils: src, kernel: k, log: log}
}

// Execute builds the whole model for a case. All configuration and format
// checks run before the first geometry request; after any error the partial
// kernel state is unusable and must be discarded by the caller.
func (uc *GenerateModel) Execute(ctx context.Context, cs domain.Case) (domain.ModelTopology, error) {
	if err := cs.Validate(); err != nil {
		return domain.ModelTopology{}, err
	}

	planforms, err := loadPlanforms(uc.airfoils, cs)
	if err != nil {
		return domain.ModelTopology{}, err
	}

	var topo domain.ModelTopology
	wingUC := NewBuildWing(uc.kernel, uc.log)
	wakeUC := NewBuildWake(uc.kernel, uc.log)
	for _, pf := range planforms {
		if err := ctx.Err(); err != nil {
			return domain.ModelTopology{}, err
		}

		wing, err := wingUC.Execute(pf, cs.Domain.Type, cs.Mesh.BoundaryLayer)
		if err != nil {
			return domain.ModelTopology{}, err
		}
		topo.Wings = append(topo.Wings, wing)

		if cs.Domain.Type.NeedsWake() {
			wake, err := wakeUC.Execute(wing.Name+"Wake", wing.TrailingPoints, wing.TrailingCurves,
				cs.Domain.Length, cs.Domain.MergeWake, cs.Mesh.DomainSize)
			if err != nil {
				return domain.ModelTopology{}, err
			}
			topo.Wakes = append(topo.Wakes, wake)
		}
	}

	if err := ctx.Err(); err != nil {
		return domain.ModelTopology{}, err
	}

	dom, err := NewBuildDomain(uc.kernel, uc.log).Execute(topo.Wings, topo.Wakes, cs.Domain, cs.Mesh.DomainSize)
	if err != nil {
		return domain.ModelTopology{}, err
	}
	topo.Domain = dom

	if err := uc.kernel.Synchronize(); err != nil {
		return domain.ModelTopology{}, &domain.OpError{Op: "model.synchronize", Kind: domain.KindGeometry, Err: err}
	}

	uc.log.Info("model.built", "case", cs.Name, "wings", len(topo.Wings), "wakes", len(topo.Wakes))
	return topo, nil
}

// loadPlanforms reads and transforms every wing's sections. It fails fast on
// the first malformed file or illegal trailing-edge/domain-type pairing,
// before any geometry call is issued.
func loadPlanforms(src ports.AirfoilSource, cs domain.Case) ([]domain.Planform, error) {
	planforms := make([]domain.Planform, 0, len(cs.Wings))
	for _, wc := range cs.Wings {
		sections := make([]domain.Section, len(wc.Airfoils))
		for i, path := range wc.Airfoils {
			raw, err := src.Load(path)
			if err != nil {
				return nil, err
			}
			sec, err := domain.TransformSection(raw, wc.Chords[i], wc.Incidences[i], wc.LEOffsets[i], wc.Offset)
			if err != nil {
				return nil, &domain.OpError{Op: "planform.load", Kind: domain.KindBadFormat, Path: path,
					Err: fmt.Errorf("wing %q section %d: %w", wc.Name, i, err)}
			}
			sections[i] = sec
		}

		pf, err := domain.NewPlanform(wc.Name, sections, wc.Sizes, cs.Domain.Type)
		if err != nil {
			return nil, err
		}
		planforms = append(planforms, pf)
	}
	return planforms, nil
}
