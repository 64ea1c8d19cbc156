package ports

import "github.com/acrovato/gmshcfd/internal/domain"

// AirfoilSource resolves an airfoil reference from a wing configuration into
// raw 2-D coordinates in Selig ordering.
type AirfoilSource interface {
	Load(path string) ([]domain.Point2, error)
}
