package domain

import (
	"fmt"
	"strings"
)

// DomainType selects the flow model the mesh is built for. It decides the
// farfield shape and whether wakes or boundary layers are constructed.
type DomainType string

const (
	// DomainPotential uses a box farfield with explicit wake sheets.
	DomainPotential DomainType = "potential"
	// DomainEuler uses a sphere farfield without wakes.
	DomainEuler DomainType = "euler"
	// DomainRANS uses a sphere farfield with extruded boundary layers.
	DomainRANS DomainType = "rans"
)

// ParseDomainType rejects anything outside the closed enumeration. There is
// deliberately no default: an unknown type is a configuration error, not a
// sphere domain.
func ParseDomainType(s string) (DomainType, error) {
	switch DomainType(strings.ToLower(strings.TrimSpace(s))) {
	case DomainPotential:
		return DomainPotential, nil
	case DomainEuler:
		return DomainEuler, nil
	case DomainRANS:
		return DomainRANS, nil
	default:
		return "", fmt.Errorf("unsupported domain type %q (expected potential|euler|rans): %w", s, ErrInvalidConfig)
	}
}

// NeedsWake reports whether the domain type requires wake sheets shed from
// every trailing edge.
func (t DomainType) NeedsWake() bool { return t == DomainPotential }

// NeedsBoundaryLayer reports whether wing surfaces are extruded into a
// viscous boundary-layer shell.
func (t DomainType) NeedsBoundaryLayer() bool { return t == DomainRANS }

// MergePolicy controls how spanwise wake strips are collapsed near the tip
// to avoid degenerate thin cells.
type MergePolicy string

const (
	MergeNone MergePolicy = "none"
	MergeLast MergePolicy = "last"
	MergeAll  MergePolicy = "all"
)

// ParseMergePolicy maps the empty string to MergeNone and rejects anything
// outside the enumeration.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch MergePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MergeNone:
		return MergeNone, nil
	case MergeLast:
		return MergeLast, nil
	case MergeAll:
		return MergeAll, nil
	default:
		return "", fmt.Errorf("unsupported wake merge policy %q (expected none|last|all): %w", s, ErrInvalidConfig)
	}
}

// SizePair holds the target mesh sizes at the trailing and leading edge of
// one section.
type SizePair struct {
	TE float64
	LE float64
}

// WingConfig describes one lifting surface: airfoil coordinate files from
// root to tip plus the planform parameters placing each section in space.
type WingConfig struct {
	Name string

	// Airfoils are coordinate file paths, one per section, root to tip.
	Airfoils []string

	Chords     []float64
	Incidences []float64 // degrees, positive leading edge up

	// LEOffsets are per-section leading-edge coordinates (x, y-spanwise, z),
	// relative to Offset.
	LEOffsets [][3]float64

	// Offset shifts the whole surface in x and z.
	Offset [2]float64

	// Sizes are the per-section TE/LE mesh-size targets.
	Sizes []SizePair
}

// BoundaryLayerConfig parametrizes the extruded viscous shell: NumLayers
// layers with geometrically growing heights starting at FirstLayerHeight.
type BoundaryLayerConfig struct {
	NumLayers        int
	GrowthRatio      float64
	FirstLayerHeight float64

	// WriteTags exposes the shell top surfaces and volume as separately
	// numbered physical groups.
	WriteTags bool
}

// DomainConfig describes the farfield.
type DomainConfig struct {
	Type      DomainType
	Length    float64
	MergeWake MergePolicy
}

// MeshConfig holds the cross-cutting mesh-size parameters.
type MeshConfig struct {
	// DomainSize is the target element size at the farfield boundary.
	DomainSize float64

	// BoundaryLayer must be set when the domain type is rans.
	BoundaryLayer *BoundaryLayerConfig
}

// Case is the full, validated description of one model build.
type Case struct {
	Name   string
	Wings  []WingConfig
	Domain DomainConfig
	Mesh   MeshConfig
}

// Validate checks the case for internal consistency. It covers everything
// that can be checked without reading airfoil files; trailing-edge topology
// checks need the coordinates and happen in NewPlanform.
func (c Case) Validate() error {
	op := func(err error) error {
		return &OpError{Op: "case.validate", Kind: KindInvalidConfig, Err: err}
	}

	if strings.TrimSpace(c.Name) == "" {
		return op(fmt.Errorf("case name is required: %w", ErrInvalidConfig))
	}
	if len(c.Wings) == 0 {
		return op(fmt.Errorf("at least one wing is required: %w", ErrInvalidConfig))
	}
	if _, err := ParseDomainType(string(c.Domain.Type)); err != nil {
		return op(err)
	}
	if c.Domain.Length <= 0 {
		return op(fmt.Errorf("domain length must be positive (got %g): %w", c.Domain.Length, ErrInvalidConfig))
	}
	if _, err := ParseMergePolicy(string(c.Domain.MergeWake)); err != nil {
		return op(err)
	}
	if c.Mesh.DomainSize <= 0 {
		return op(fmt.Errorf("domain mesh size must be positive (got %g): %w", c.Mesh.DomainSize, ErrInvalidConfig))
	}

	if c.Domain.Type.NeedsBoundaryLayer() {
		bl := c.Mesh.BoundaryLayer
		if bl == nil {
			return op(fmt.Errorf("rans domain type requires boundary layer parameters: %w", ErrInvalidConfig))
		}
		if bl.NumLayers < 1 {
			return op(fmt.Errorf("boundary layer needs at least one layer (got %d): %w", bl.NumLayers, ErrInvalidConfig))
		}
		if bl.GrowthRatio < 1 {
			return op(fmt.Errorf("boundary layer growth ratio must be >= 1 (got %g): %w", bl.GrowthRatio, ErrInvalidConfig))
		}
		if bl.FirstLayerHeight <= 0 {
			return op(fmt.Errorf("boundary layer first height must be positive (got %g): %w", bl.FirstLayerHeight, ErrInvalidConfig))
		}
	}

	seen := map[string]bool{}
	for _, w := range c.Wings {
		if err := w.validate(); err != nil {
			return err
		}
		if seen[w.Name] {
			return op(fmt.Errorf("duplicate wing name %q: %w", w.Name, ErrInvalidConfig))
		}
		seen[w.Name] = true
	}
	return nil
}

func (w WingConfig) validate() error {
	op := func(err error) error {
		return &OpError{Op: "case.validate_wing", Kind: KindInvalidConfig, Err: fmt.Errorf("wing %q: %w", w.Name, err)}
	}

	if strings.TrimSpace(w.Name) == "" {
		return &OpError{Op: "case.validate_wing", Kind: KindInvalidConfig, Err: fmt.Errorf("wing name is required: %w", ErrInvalidConfig)}
	}
	n := len(w.Airfoils)
	if n < 2 {
		return op(fmt.Errorf("at least two sections are required (got %d): %w", n, ErrInvalidConfig))
	}
	if len(w.Chords) != n {
		return op(fmt.Errorf("chords length %d does not match %d sections: %w", len(w.Chords), n, ErrInvalidConfig))
	}
	if len(w.Incidences) != n {
		return op(fmt.Errorf("incidences length %d does not match %d sections: %w", len(w.Incidences), n, ErrInvalidConfig))
	}
	if len(w.LEOffsets) != n {
		return op(fmt.Errorf("le_offsets length %d does not match %d sections: %w", len(w.LEOffsets), n, ErrInvalidConfig))
	}
	if len(w.Sizes) != n {
		return op(fmt.Errorf("sizes length %d does not match %d sections: %w", len(w.Sizes), n, ErrInvalidConfig))
	}
	for i, ch := range w.Chords {
		if ch <= 0 {
			return op(fmt.Errorf("section %d: chord must be positive (got %g): %w", i, ch, ErrInvalidConfig))
		}
	}
	for i, s := range w.Sizes {
		if s.TE <= 0 || s.LE <= 0 {
			return op(fmt.Errorf("section %d: mesh sizes must be positive (got te=%g le=%g): %w", i, s.TE, s.LE, ErrInvalidConfig))
		}
	}
	for i := 1; i < n; i++ {
		if w.LEOffsets[i][1] <= w.LEOffsets[i-1][1] {
			return op(fmt.Errorf("section %d: spanwise coordinates must be strictly increasing: %w", i, ErrInvalidConfig))
		}
	}
	return nil
}
