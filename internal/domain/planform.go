package domain

import "fmt"

// Planform is the spanwise sequence of transformed sections defining one
// lifting surface, together with its per-section mesh-size targets.
type Planform struct {
	Name     string
	Sections []Section
	Sizes    []SizePair
}

// NewPlanform assembles transformed sections into a planform and performs
// the checks that need coordinates: consistent trailing-edge topology across
// sections and a legal pairing with the domain type. It is called before any
// geometry is requested, so a violation leaves the kernel untouched.
func NewPlanform(name string, sections []Section, sizes []SizePair, domainType DomainType) (Planform, error) {
	fail := func(err error) (Planform, error) {
		return Planform{}, &OpError{Op: "planform.new", Kind: KindInvalidConfig, Err: fmt.Errorf("wing %q: %w", name, err)}
	}

	if len(sections) < 2 {
		return fail(fmt.Errorf("at least two sections are required (got %d): %w", len(sections), ErrInvalidConfig))
	}
	if len(sizes) != len(sections) {
		return fail(fmt.Errorf("sizes length %d does not match %d sections: %w", len(sizes), len(sections), ErrInvalidConfig))
	}
	closed := sections[0].Closed
	for i, s := range sections[1:] {
		if s.Closed != closed {
			return fail(fmt.Errorf("section %d: a surface cannot mix sharp and blunt trailing edges: %w", i+1, ErrInvalidConfig))
		}
	}
	if closed && domainType.NeedsBoundaryLayer() {
		return fail(fmt.Errorf("sharp trailing edge airfoils cannot be used with extruded boundary layers (rans domain type): %w", ErrInvalidConfig))
	}
	if !closed && domainType.NeedsWake() {
		return fail(fmt.Errorf("blunt trailing edge airfoils cannot be used with wakes (potential domain type): %w", ErrInvalidConfig))
	}

	return Planform{Name: name, Sections: sections, Sizes: sizes}, nil
}

// Closed reports the shared trailing-edge topology of the surface.
func (p Planform) Closed() bool { return p.Sections[0].Closed }

// Height is the z-coordinate of the root trailing edge on the symmetry
// plane. The box domain orders surfaces by it when chaining their root wake
// points into the symmetry contour.
func (p Planform) Height() float64 { return p.Sections[0].TE().Z }
