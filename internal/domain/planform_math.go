package domain

import (
	"fmt"
	"math"
)

// PlanformStations computes the leading-edge coordinates and chord length of
// each section from trapezoidal planform parameters. Each entry of spans,
// tapers, sweeps and dihedrals describes one trapezoid, so the result has
// len(spans)+1 stations, root first.
func PlanformStations(spans, tapers, sweeps, dihedrals []float64, rootChord float64) ([][3]float64, []float64, error) {
	fail := func(err error) ([][3]float64, []float64, error) {
		return nil, nil, &OpError{Op: "planform.stations", Kind: KindInvalidConfig, Err: err}
	}

	n := len(spans)
	if n == 0 {
		return fail(fmt.Errorf("at least one planform trapezoid is required: %w", ErrInvalidConfig))
	}
	if len(tapers) != n || len(sweeps) != n || len(dihedrals) != n {
		return fail(fmt.Errorf("spans, tapers, sweeps and dihedrals must have equal length (got %d/%d/%d/%d): %w",
			n, len(tapers), len(sweeps), len(dihedrals), ErrInvalidConfig))
	}
	if rootChord <= 0 {
		return fail(fmt.Errorf("root chord must be positive (got %g): %w", rootChord, ErrInvalidConfig))
	}

	leCoords := make([][3]float64, n+1)
	chords := make([]float64, n+1)
	chords[0] = rootChord
	for i := 0; i < n; i++ {
		if spans[i] <= 0 {
			return fail(fmt.Errorf("trapezoid %d: span must be positive (got %g): %w", i, spans[i], ErrInvalidConfig))
		}
		leCoords[i+1] = [3]float64{
			leCoords[i][0] + math.Tan(sweeps[i]*math.Pi/180)*spans[i],
			leCoords[i][1] + spans[i],
			leCoords[i][2] + math.Tan(dihedrals[i]*math.Pi/180)*spans[i],
		}
		chords[i+1] = chords[i] * tapers[i]
	}
	return leCoords, chords, nil
}

// FarfieldSize computes the mesh size at the farfield boundary so that
// element sizes grow geometrically by factor from surfaceSize over the
// domain length.
func FarfieldSize(surfaceSize, domainLength, factor float64) float64 {
	n := math.Log(1-(1-factor)*domainLength/surfaceSize) / math.Log(factor)
	return surfaceSize * math.Pow(factor, n-1)
}

// BoundaryLayerHeights returns the cumulative extrusion offsets of n layers
// growing geometrically by ratio from first: heights[0] = first,
// heights[i] = heights[i-1] + first*ratio^i.
func BoundaryLayerHeights(n int, ratio, first float64) []float64 {
	heights := make([]float64, n)
	heights[0] = first
	for i := 1; i < n; i++ {
		heights[i] = heights[i-1] + first*math.Pow(ratio, float64(i))
	}
	return heights
}
