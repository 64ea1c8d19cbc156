package domain

import (
	"fmt"
	"math"
)

// Point2 is a raw airfoil coordinate (chordwise, thickness).
type Point2 struct {
	X float64
	Y float64
}

// Point3 is a point in domain space: x forward (freestream), y spanwise,
// z up.
type Point3 struct {
	X float64
	Y float64
	Z float64
}

// Section is one airfoil profile placed at a spanwise station. Points run
// along the upper surface from the trailing edge to the leading edge, then
// along the lower surface back to the trailing edge. For a closed (sharp)
// trailing edge the duplicated closing point has been removed, so the first
// point is the single trailing-edge point; for an open (blunt) trailing edge
// the first and last points are the distinct upper and lower trailing-edge
// points.
type Section struct {
	Points  []Point3
	LEIndex int
	Closed  bool
	Chord   float64
}

// TE returns the (upper) trailing-edge point.
func (s Section) TE() Point3 { return s.Points[0] }

// TELower returns the lower trailing-edge point. For a closed section this
// is the same as TE.
func (s Section) TELower() Point3 {
	if s.Closed {
		return s.Points[0]
	}
	return s.Points[len(s.Points)-1]
}

// LE returns the leading-edge point.
func (s Section) LE() Point3 { return s.Points[s.LEIndex] }

// TransformSection places raw Selig-ordered airfoil coordinates in domain
// space: it normalizes the point ordering, classifies the trailing edge,
// scales by the chord, rotates by the incidence angle about the quarter
// chord, applies the leading-edge and global offsets and inserts the
// spanwise coordinate.
func TransformSection(raw []Point2, chord, incidenceDeg float64, leOffset [3]float64, offset [2]float64) (Section, error) {
	fail := func(err error) (Section, error) {
		return Section{}, &OpError{Op: "section.transform", Kind: KindBadFormat, Err: err}
	}

	if len(raw) < 5 {
		return fail(fmt.Errorf("too few coordinate points (%d): %w", len(raw), ErrBadFormat))
	}
	// Selig convention: the trailing edge is the first and last point, at
	// relative chord 1.
	if raw[0].X != 1.0 || raw[len(raw)-1].X != 1.0 {
		return fail(fmt.Errorf("trailing edge must be first and last point with x = 1.0 (got x[0]=%g, x[-1]=%g): %w",
			raw[0].X, raw[len(raw)-1].X, ErrBadFormat))
	}

	pts := make([]Point2, len(raw))
	copy(pts, raw)

	// Standard Selig lists the upper surface first. Reverse if the file runs
	// lower surface first.
	if pts[1].Y < pts[len(pts)-2].Y {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}

	closed := pts[0].Y == pts[len(pts)-1].Y
	if closed {
		pts = pts[:len(pts)-1] // drop the duplicated closing point
	}

	leIdx := 0
	for i, p := range pts {
		if p.X < pts[leIdx].X {
			leIdx = i
		}
	}

	// Scale, then rotate about the quarter-chord point.
	sin, cos := math.Sincos(incidenceDeg * math.Pi / 180)
	qc := 0.25 * chord
	out := make([]Point3, len(pts))
	for i, p := range pts {
		x := p.X*chord - qc
		y := p.Y * chord
		xr := x*cos + y*sin + qc
		yr := -x*sin + y*cos

		out[i] = Point3{
			X: xr + leOffset[0] + offset[0],
			Y: leOffset[1],
			Z: yr + leOffset[2] + offset[1],
		}
	}

	return Section{Points: out, LEIndex: leIdx, Closed: closed, Chord: chord}, nil
}
