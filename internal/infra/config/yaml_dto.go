package config

type YAMLCase struct {
	Name   string     `yaml:"name"`
	Wings  []YAMLWing `yaml:"wings"`
	Domain YAMLDomain `yaml:"domain"`
	Mesh   YAMLMesh   `yaml:"mesh"`
}

type YAMLWing struct {
	Name     string   `yaml:"name"`
	Airfoils []string `yaml:"airfoils"`

	// Explicit section geometry. Mutually exclusive with Planform.
	Chords     []float64    `yaml:"chords"`
	Incidences []float64    `yaml:"incidences"`
	LEOffsets  [][3]float64 `yaml:"le_offsets"`

	// Planform derives chords and leading-edge positions from per-segment
	// span/taper/sweep/dihedral parameters.
	Planform *YAMLPlanform `yaml:"planform"`

	Offset [2]float64 `yaml:"offset"`

	// Explicit per-section sizes. Mutually exclusive with SizeFraction.
	Sizes []YAMLSizePair `yaml:"sizes"`

	// SizeFraction sets both edge sizes to this fraction of the local chord.
	SizeFraction float64 `yaml:"size_fraction"`
}

type YAMLPlanform struct {
	RootChord float64   `yaml:"root_chord"`
	Spans     []float64 `yaml:"spans"`
	Tapers    []float64 `yaml:"tapers"`
	Sweeps    []float64 `yaml:"sweeps"`
	Dihedrals []float64 `yaml:"dihedrals"`
}

type YAMLSizePair struct {
	TE float64 `yaml:"te"`
	LE float64 `yaml:"le"`
}

type YAMLDomain struct {
	Type      string  `yaml:"type"`
	Length    float64 `yaml:"length"`
	MergeWake string  `yaml:"merge_wake"`
}

type YAMLMesh struct {
	// DomainSize sets the farfield element size directly. Mutually
	// exclusive with GrowthFactor.
	DomainSize float64 `yaml:"domain_size"`

	// GrowthFactor derives the farfield size from the smallest surface
	// size through a geometric progression over the domain length.
	GrowthFactor float64 `yaml:"growth_factor"`

	BoundaryLayer *YAMLBoundaryLayer `yaml:"boundary_layer"`
}

type YAMLBoundaryLayer struct {
	Layers      int     `yaml:"layers"`
	GrowthRatio float64 `yaml:"growth_ratio"`
	FirstHeight float64 `yaml:"first_height"`
	WriteTags   bool    `yaml:"write_tags"`
}
