package domain

import "time"

// EntityCounts summarizes the geometry created during one build.
type EntityCounts struct {
	Points   int `json:"points"`
	Curves   int `json:"curves"`
	Surfaces int `json:"surfaces"`
	Volumes  int `json:"volumes"`
}

// GroupReport describes one physical group exposed to the mesher.
type GroupReport struct {
	Dim      int    `json:"dim"`
	Name     string `json:"name"`
	Entities int    `json:"entities"`
}

// WingReport summarizes one built lifting surface.
type WingReport struct {
	Name         string `json:"name"`
	Sections     int    `json:"sections"`
	SharpTE      bool   `json:"sharp_te"`
	Surfaces     int    `json:"surfaces"`
	WakeSurfaces int    `json:"wake_surfaces,omitempty"`
}

// BuildReport is the persisted artifact of one geometry build.
type BuildReport struct {
	ID string `json:"id"`

	CaseName   string     `json:"case_name"`
	DomainType DomainType `json:"domain_type"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Wings    []WingReport  `json:"wings"`
	Entities EntityCounts  `json:"entities"`
	Groups   []GroupReport `json:"groups"`
}
