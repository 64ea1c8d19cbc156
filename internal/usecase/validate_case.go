package usecase

import (
	"context"

	"github.com/acrovato/gmshcfd/internal/domain"
	"github.com/acrovato/gmshcfd/internal/ports"
)

// ValidateCase checks a case end to end without touching a geometry kernel:
// configuration consistency, airfoil file format, section transforms and
// trailing-edge/domain-type pairing.
type ValidateCase struct {
	airfoils ports.AirfoilSource
}

func NewValidateCase(src ports.AirfoilSource) *ValidateCase {
	return &ValidateCase{airfoils: src}
}

// WingSummary describes one validated wing.
type WingSummary struct {
	Name     string
	Sections int
	SharpTE  bool
}

func (uc *ValidateCase) Execute(ctx context.Context, cs domain.Case) ([]WingSummary, error) {
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	planforms, err := loadPlanforms(uc.airfoils, cs)
	if err != nil {
		return nil, err
	}

	summaries := make([]WingSummary, len(planforms))
	for i, pf := range planforms {
		summaries[i] = WingSummary{
			Name:     pf.Name,
			Sections: len(pf.Sections),
			SharpTE:  pf.Closed(),
		}
	}
	return summaries, nil
}
