package geoscript

import (
	"strings"
	"testing"
)

func TestWriteGeo(t *testing.T) {
	m := NewModel("test")
	curves, s := triangle(m)
	m.SetMeshSize([]int{1, 2}, 0.25)
	m.AddPhysicalGroup(2, []int{s}, "wing")
	m.AddPhysicalGroup(1, []int{curves[0]}, "wingTe")
	m.Embed(1, []int{curves[1]}, 2, s)

	var sb strings.Builder
	if err := m.WriteGeo(&sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()

	wants := []string{
		"Mesh.Algorithm = 5;",
		"Mesh.Algorithm3D = 1;",
		"Mesh.Smoothing = 10;",
		"Point(1) = {0, 0, 0};",
		"Line(1) = {1, 2};",
		"Curve Loop(1) = {1, 2, 3};",
		"Plane Surface(1) = {1};",
		"MeshSize{1, 2} = 0.25;",
		`Physical Surface("wing") = {1};`,
		`Physical Curve("wingTe") = {1};`,
		"Curve{2} In Surface{1};",
	}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("expected script to contain %q, got:\n%s", w, out)
		}
	}
}

func TestWriteGeoSplineAndFilling(t *testing.T) {
	m := NewModel("test")
	a := m.AddPoint(1, 0, 0)
	b := m.AddPoint(0.5, 0, 0.1)
	c := m.AddPoint(0, 0, 0)
	sp := m.AddSpline([]int{a, b, c})
	ln := m.AddLine(c, a)
	m.AddSurfaceFilling(-m.AddCurveLoop([]int{sp, ln}))

	var sb strings.Builder
	if err := m.WriteGeo(&sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()

	for _, w := range []string{
		"Spline(1) = {1, 2, 3};",
		"Surface(1) = {-1};",
		"Point(2) = {0.5, 0, 0.1};",
	} {
		if !strings.Contains(out, w) {
			t.Fatalf("expected script to contain %q, got:\n%s", w, out)
		}
	}
}

func TestWriteGeoTaggedGroupAndExtrude(t *testing.T) {
	m := NewModel("test")
	_, s := triangle(m)
	ext, err := m.ExtrudeBoundaryLayer([]int{s}, []int{1, 1}, []float64{0.1, 0.3}, true)
	if err != nil {
		t.Fatalf("extrude: %v", err)
	}
	m.AddPhysicalGroupTagged(2, []int{ext[0].Top}, 9998, "shell")

	var sb strings.Builder
	if err := m.WriteGeo(&sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()

	for _, w := range []string{
		"Extrude { Surface{1}; Layers{ {1, 1}, {0.1, 0.3} }; Recombine; }",
		`Physical Surface("shell", 9998)`,
	} {
		if !strings.Contains(out, w) {
			t.Fatalf("expected script to contain %q, got:\n%s", w, out)
		}
	}
	// Entities fabricated by the extrusion are the mesher's to recreate.
	if strings.Contains(out, "Point(4)") {
		t.Fatalf("offset points must not be written explicitly:\n%s", out)
	}
}
