// SPDX-License-Identifier: MIT
// Package: topomap/builder
//
// collapse.go — pass 2, visibility-based chain collapsing.

package builder

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/topomap/topograph"
)

// collapse removes degree-2 vertices whose neighbors see each other and
// returns the absorbing edge of every removed vertex.
//
// The worklist starts with every vertex in id order; each collapse requeues
// the two neighbors so the reduction follows the chain outward. The result is
// greedy, not minimal.
func (b *graphBuilder) collapse(g *topograph.Graph) (map[int]EdgeKey, error) {
	absorbed := map[int]EdgeKey{}
	queue := make([]int, 0, g.Order())
	for id := 0; id < g.Order(); id++ {
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if g.Degree(v) != 2 {
			continue
		}
		nb := g.Neighbors(v)
		a, c := nb[0], nb[1]
		va, _ := g.Vertex(a)
		vc, _ := g.Vertex(c)
		if !b.source.LineOfSight(va.Pixel, vc.Pixel) {
			continue
		}

		ea, _ := g.Edge(v, a)
		ec, _ := g.Edge(v, c)
		crit := append(ea.Critical, ec.Critical...)
		if err := g.RemoveVertex(v); err != nil {
			return nil, invariantf("collapse %d: %v", v, err)
		}
		if _, err := g.AddEdge(a, c, crit...); err != nil {
			return nil, invariantf("collapse %d into %d-%d: %v", v, a, c, err)
		}

		key := edgeKey(a, c)
		for u, k := range absorbed {
			if k.A == v || k.B == v {
				absorbed[u] = key
			}
		}
		absorbed[v] = key
		b.log.Debug("vertex collapsed", zap.Int("vertex", v), zap.Int("a", a), zap.Int("b", c))

		queue = append(queue, a, c)
	}

	return absorbed, nil
}
