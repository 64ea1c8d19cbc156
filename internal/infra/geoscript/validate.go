package geoscript

import (
	"fmt"

	"github.com/acrovato/gmshcfd/internal/domain"
)

// Synchronize validates the recorded topology: every reference must resolve
// to an existing entity and every curve loop must form a single closed
// contour. Loop checks ignore curve orientation; the mesher resolves signs
// when the script is replayed.
func (m *Model) Synchronize() error {
	err := m.validate()
	if err != nil {
		return &domain.OpError{Op: "geoscript.synchronize", Kind: domain.KindGeometry, Path: m.name, Err: err}
	}
	return nil
}

func (m *Model) validate() error {
	for i, c := range m.curves {
		for _, p := range c.pts {
			if p < 1 || p > len(m.points) {
				return fmt.Errorf("curve %d references unknown point %d: %w", i+1, p, domain.ErrGeometry)
			}
		}
	}
	for i, l := range m.loops {
		if len(l) < 2 {
			return fmt.Errorf("curve loop %d has %d curves, need at least 2: %w", i+1, len(l), domain.ErrGeometry)
		}
		if err := m.checkClosed(l); err != nil {
			return fmt.Errorf("curve loop %d: %w", i+1, err)
		}
	}
	for i, s := range m.surfaces {
		for _, l := range s.loops {
			if l < 0 {
				l = -l
			}
			if l < 1 || l > len(m.loops) {
				return fmt.Errorf("surface %d references unknown curve loop %d: %w", i+1, l, domain.ErrGeometry)
			}
		}
	}
	for i, sl := range m.surfaceLoops {
		for _, s := range sl {
			if s < 0 {
				s = -s
			}
			if s < 1 || s > len(m.surfaces) {
				return fmt.Errorf("surface loop %d references unknown surface %d: %w", i+1, s, domain.ErrGeometry)
			}
		}
	}
	for i, v := range m.volumes {
		if m.volExtruded[i] {
			continue
		}
		if v < 1 || v > len(m.surfaceLoops) {
			return fmt.Errorf("volume %d references unknown surface loop %d: %w", i+1, v, domain.ErrGeometry)
		}
	}
	for i, e := range m.embeds {
		max := len(m.curves)
		if e.dim == 2 {
			max = len(m.surfaces)
		}
		for _, t := range e.tags {
			if t < 1 || t > max {
				return fmt.Errorf("embed %d references unknown dim-%d entity %d: %w", i+1, e.dim, t, domain.ErrGeometry)
			}
		}
		targetMax := len(m.surfaces)
		if e.targetDim == 3 {
			targetMax = len(m.volumes)
		}
		if e.targetTag < 1 || e.targetTag > targetMax {
			return fmt.Errorf("embed %d targets unknown dim-%d entity %d: %w", i+1, e.targetDim, e.targetTag, domain.ErrGeometry)
		}
	}
	for i, p := range m.physicals {
		var max int
		switch p.dim {
		case 1:
			max = len(m.curves)
		case 2:
			max = len(m.surfaces)
		case 3:
			max = len(m.volumes)
		default:
			return fmt.Errorf("physical group %q has unsupported dimension %d: %w", p.name, p.dim, domain.ErrGeometry)
		}
		for _, t := range p.tags {
			if t < 1 || t > max {
				return fmt.Errorf("physical group %d (%q) references unknown dim-%d entity %d: %w", i+1, p.name, p.dim, t, domain.ErrGeometry)
			}
		}
	}
	for i, s := range m.sizes {
		for _, p := range s.points {
			if p < 1 || p > len(m.points) {
				return fmt.Errorf("mesh size %d references unknown point %d: %w", i+1, p, domain.ErrGeometry)
			}
		}
	}
	return nil
}

// checkClosed verifies that the signed curves of a loop chain into one
// closed contour: every endpoint is shared by exactly two curves and the
// edges are connected.
func (m *Model) checkClosed(loop []int) error {
	type edge struct{ a, b int }
	edges := make([]edge, 0, len(loop))
	degree := map[int]int{}
	for _, sc := range loop {
		ct := sc
		if ct < 0 {
			ct = -ct
		}
		if ct < 1 || ct > len(m.curves) {
			return fmt.Errorf("unknown curve %d: %w", ct, domain.ErrGeometry)
		}
		a, b := m.curves[ct-1].endpoints()
		edges = append(edges, edge{a, b})
		degree[a]++
		degree[b]++
	}
	for p, d := range degree {
		if d != 2 {
			return fmt.Errorf("contour is not closed at point %d (degree %d): %w", p, d, domain.ErrGeometry)
		}
	}
	// Connectivity: walk from the first edge.
	adj := map[int][]int{}
	for i, e := range edges {
		adj[e.a] = append(adj[e.a], i)
		adj[e.b] = append(adj[e.b], i)
	}
	seen := make([]bool, len(edges))
	stack := []int{0}
	seen[0] = true
	visited := 1
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range []int{edges[i].a, edges[i].b} {
			for _, j := range adj[p] {
				if !seen[j] {
					seen[j] = true
					visited++
					stack = append(stack, j)
				}
			}
		}
	}
	if visited != len(edges) {
		return fmt.Errorf("contour splits into disjoint parts: %w", domain.ErrGeometry)
	}
	return nil
}
