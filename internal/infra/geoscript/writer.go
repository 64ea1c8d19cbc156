package geoscript

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/acrovato/gmshcfd/internal/domain"
)

// WriteGeo emits the model as a gmsh .geo script. Entities generated by a
// boundary-layer extrusion are not written explicitly; the mesher recreates
// them when it replays the Extrude command.
func (m *Model) WriteGeo(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "// %s\n\n", m.name)
	bw.WriteString("Mesh.Algorithm = 5;\n")
	bw.WriteString("Mesh.Algorithm3D = 1;\n")
	bw.WriteString("Mesh.Optimize = 1;\n")
	bw.WriteString("Mesh.Smoothing = 10;\n")
	bw.WriteString("Mesh.SmoothNormals = 1;\n\n")

	for i, p := range m.points {
		if p.extruded {
			continue
		}
		fmt.Fprintf(bw, "Point(%d) = {%s, %s, %s};\n", i+1, num(p.x), num(p.y), num(p.z))
	}
	bw.WriteByte('\n')

	for i, c := range m.curves {
		switch c.kind {
		case curveLine:
			fmt.Fprintf(bw, "Line(%d) = {%s};\n", i+1, tags(c.pts))
		case curveSpline:
			fmt.Fprintf(bw, "Spline(%d) = {%s};\n", i+1, tags(c.pts))
		case curveCircle:
			fmt.Fprintf(bw, "Circle(%d) = {%s};\n", i+1, tags(c.pts))
		}
	}
	bw.WriteByte('\n')

	for i, l := range m.loops {
		fmt.Fprintf(bw, "Curve Loop(%d) = {%s};\n", i+1, tags(l))
	}
	bw.WriteByte('\n')

	for i, s := range m.surfaces {
		switch s.kind {
		case surfaceFilling:
			fmt.Fprintf(bw, "Surface(%d) = {%s};\n", i+1, tags(s.loops))
		case surfacePlane:
			fmt.Fprintf(bw, "Plane Surface(%d) = {%s};\n", i+1, tags(s.loops))
		}
	}
	bw.WriteByte('\n')

	for _, e := range m.extrusions {
		bw.WriteString("Extrude { Surface{")
		bw.WriteString(tags(e.surfaces))
		bw.WriteString("}; Layers{ {")
		bw.WriteString(tags(e.layers))
		bw.WriteString("}, {")
		parts := make([]string, len(e.heights))
		for i, h := range e.heights {
			parts[i] = num(h)
		}
		bw.WriteString(strings.Join(parts, ", "))
		bw.WriteString("} };")
		if e.recombine {
			bw.WriteString(" Recombine;")
		}
		bw.WriteString(" }\n")
	}
	if len(m.extrusions) > 0 {
		bw.WriteByte('\n')
	}

	for i, sl := range m.surfaceLoops {
		fmt.Fprintf(bw, "Surface Loop(%d) = {%s};\n", i+1, tags(sl))
	}
	for i, v := range m.volumes {
		if m.volExtruded[i] {
			continue
		}
		fmt.Fprintf(bw, "Volume(%d) = {%d};\n", i+1, v)
	}
	bw.WriteByte('\n')

	for _, e := range m.embeds {
		kind := "Curve"
		if e.dim == 2 {
			kind = "Surface"
		}
		target := "Surface"
		if e.targetDim == 3 {
			target = "Volume"
		}
		fmt.Fprintf(bw, "%s{%s} In %s{%d};\n", kind, tags(e.tags), target, e.targetTag)
	}
	if len(m.embeds) > 0 {
		bw.WriteByte('\n')
	}

	for _, s := range m.sizes {
		fmt.Fprintf(bw, "MeshSize{%s} = %s;\n", tags(s.points), num(s.size))
	}
	if len(m.sizes) > 0 {
		bw.WriteByte('\n')
	}

	for _, p := range m.physicals {
		kind := physicalKind(p.dim)
		if p.tag != 0 {
			fmt.Fprintf(bw, "Physical %s(\"%s\", %d) = {%s};\n", kind, p.name, p.tag, tags(p.tags))
		} else {
			fmt.Fprintf(bw, "Physical %s(\"%s\") = {%s};\n", kind, p.name, tags(p.tags))
		}
	}

	if err := bw.Flush(); err != nil {
		return &domain.OpError{Op: "geoscript.write", Kind: domain.KindExecution, Path: m.name, Err: err}
	}
	return nil
}

func physicalKind(dim int) string {
	switch dim {
	case 1:
		return "Curve"
	case 2:
		return "Surface"
	default:
		return "Volume"
	}
}

func tags(ts []int) string {
	var b strings.Builder
	for i, t := range ts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(t))
	}
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
