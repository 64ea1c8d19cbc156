package domain

import (
	"errors"
	"math"
	"testing"
)

// Diamond profiles keep expected coordinates exact.
func sharpDiamond() []Point2 {
	return []Point2{
		{X: 1, Y: 0},
		{X: 0.5, Y: 0.1},
		{X: 0, Y: 0},
		{X: 0.5, Y: -0.1},
		{X: 1, Y: 0},
	}
}

func bluntDiamond() []Point2 {
	return []Point2{
		{X: 1, Y: 0.01},
		{X: 0.5, Y: 0.1},
		{X: 0, Y: 0},
		{X: 0.5, Y: -0.1},
		{X: 1, Y: -0.01},
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func TestTransformSectionSharp(t *testing.T) {
	sec, err := TransformSection(sharpDiamond(), 1, 0, [3]float64{}, [2]float64{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sec.Closed {
		t.Fatalf("expected sharp trailing edge to be classified closed")
	}
	if len(sec.Points) != 4 {
		t.Fatalf("expected duplicated closing point dropped, got %d points", len(sec.Points))
	}
	if sec.LEIndex != 2 {
		t.Fatalf("expected leading edge at index 2, got %d", sec.LEIndex)
	}
	te := sec.TE()
	if !near(te.X, 1) || !near(te.Y, 0) || !near(te.Z, 0) {
		t.Fatalf("unexpected trailing edge %+v", te)
	}
	if sec.TELower() != te {
		t.Fatalf("closed section must have a single trailing-edge point")
	}
}

func TestTransformSectionBlunt(t *testing.T) {
	sec, err := TransformSection(bluntDiamond(), 1, 0, [3]float64{}, [2]float64{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sec.Closed {
		t.Fatalf("expected blunt trailing edge to be classified open")
	}
	if len(sec.Points) != 5 {
		t.Fatalf("expected all 5 points kept, got %d", len(sec.Points))
	}
	up, low := sec.TE(), sec.TELower()
	if !near(up.Z, 0.01) || !near(low.Z, -0.01) {
		t.Fatalf("unexpected trailing-edge points %+v %+v", up, low)
	}
}

func TestTransformSectionReversesLowerFirst(t *testing.T) {
	raw := bluntDiamond()
	for i, j := 0, len(raw)-1; i < j; i, j = i+1, j-1 {
		raw[i], raw[j] = raw[j], raw[i]
	}

	sec, err := TransformSection(raw, 1, 0, [3]float64{}, [2]float64{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !near(sec.TE().Z, 0.01) {
		t.Fatalf("expected upper surface first after normalization, trailing edge %+v", sec.TE())
	}
	if sec.LEIndex != 2 {
		t.Fatalf("expected leading edge at index 2, got %d", sec.LEIndex)
	}
}

func TestTransformSectionScaleAndOffsets(t *testing.T) {
	sec, err := TransformSection(sharpDiamond(), 2, 0, [3]float64{1, 3, 0.5}, [2]float64{10, 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	te := sec.TE()
	if !near(te.X, 2+1+10) || !near(te.Y, 3) || !near(te.Z, 0.5+20) {
		t.Fatalf("unexpected trailing edge %+v", te)
	}
	le := sec.LE()
	if !near(le.X, 11) || !near(le.Y, 3) || !near(le.Z, 20.5) {
		t.Fatalf("unexpected leading edge %+v", le)
	}
	if sec.Chord != 2 {
		t.Fatalf("expected chord 2, got %g", sec.Chord)
	}
}

func TestTransformSectionIncidenceAboutQuarterChord(t *testing.T) {
	sec, err := TransformSection(sharpDiamond(), 1, 90, [3]float64{}, [2]float64{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A quarter turn leading-edge-up moves the trailing edge below the
	// quarter-chord point.
	te := sec.TE()
	if math.Abs(te.X-0.25) > 1e-9 || math.Abs(te.Z+0.75) > 1e-9 {
		t.Fatalf("unexpected rotated trailing edge %+v", te)
	}
	// The quarter-chord point itself is the fixed point: a point placed
	// there would not move, and the leading edge ends up above it.
	le := sec.LE()
	if math.Abs(le.X-0.25) > 1e-9 || math.Abs(le.Z-0.25) > 1e-9 {
		t.Fatalf("unexpected rotated leading edge %+v", le)
	}
}

func TestTransformSectionRejectsTooFewPoints(t *testing.T) {
	_, err := TransformSection([]Point2{{X: 1}, {X: 0}, {X: 1}}, 1, 0, [3]float64{}, [2]float64{})
	if !errors.Is(err, ErrBadFormat) {
		t.Fatalf("expected bad format error, got %v", err)
	}
}

func TestTransformSectionRejectsBadTrailingEdge(t *testing.T) {
	raw := sharpDiamond()
	raw[0].X = 0.99
	_, err := TransformSection(raw, 1, 0, [3]float64{}, [2]float64{})
	if !errors.Is(err, ErrBadFormat) {
		t.Fatalf("expected bad format error, got %v", err)
	}
	if !IsKind(err, KindBadFormat) {
		t.Fatalf("expected bad_format kind, got %v", err)
	}
}
