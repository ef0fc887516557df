// SPDX-License-Identifier: MIT
// Package: topomap/builder
//
// demote.go — pass 3, big-region demotion.

package builder

import (
	"math"
	"slices"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/katalvlaran/topomap/topograph"
)

// demote replaces large hub regions by their boundary critical points.
// All vertices are flagged against the pass-2 graph before any is demoted;
// flagged vertices are then demoted in ascending id order.
func (b *graphBuilder) demote(g *topograph.Graph, area float64) ([]int, error) {
	if area <= 0 {
		return nil, nil
	}
	res := b.source.Resolution()
	minPixels := area / (res * res)

	var flagged []int
	for _, v := range g.Vertices() {
		if v.Kind == topograph.KindRegion && float64(v.Pixels) >= minPixels && g.Degree(v.ID) > 2 {
			flagged = append(flagged, v.ID)
		}
	}
	for _, r := range flagged {
		if err := b.demoteOne(g, r); err != nil {
			return nil, err
		}
	}
	return flagged, nil
}

func (b *graphBuilder) demoteOne(g *topograph.Graph, r int) error {
	rv, ok := g.Vertex(r)
	if !ok {
		return invariantf("demote: vertex %d vanished", r)
	}
	boundary := b.seg.Regions[rv.Region].Critical
	if len(boundary) == 0 {
		return invariantf("demote: region %d has no critical points", rv.Region)
	}

	var exits []int
	for _, n := range g.Neighbors(r) {
		nv, _ := g.Vertex(n)
		if nv.Kind == topograph.KindCritical && slices.Contains(boundary, nv.Critical) {
			if !slices.Contains(exits, n) {
				exits = append(exits, n)
			}
			continue
		}

		e, _ := g.Edge(r, n)
		var carried []int
		for _, c := range e.Critical {
			if slices.Contains(boundary, c) {
				carried = append(carried, c)
			}
		}
		if len(carried) == 0 {
			c := b.byBearing(rv.Pixel, nv.Pixel, boundary)
			b.log.Debug("edge rebound by bearing", zap.Int("region", rv.Region), zap.Int("neighbor", n), zap.Int("critical", c))
			carried = []int{c}
		}
		for _, c := range carried {
			x := b.criticalVertex(g, c)
			if !slices.Contains(exits, x) {
				exits = append(exits, x)
			}
			if _, err := g.AddEdge(x, n, e.Critical...); err != nil {
				return invariantf("demote %d: rebind %d-%d: %v", r, x, n, err)
			}
		}
	}

	if err := g.RemoveVertex(r); err != nil {
		return invariantf("demote %d: %v", r, err)
	}
	for i := range exits {
		for j := i + 1; j < len(exits); j++ {
			if _, err := g.AddEdge(exits[i], exits[j]); err != nil {
				return invariantf("demote %d: link exits %d-%d: %v", r, exits[i], exits[j], err)
			}
		}
	}
	b.log.Debug("region demoted", zap.Int("vertex", r), zap.Int("region", rv.Region), zap.Int("exits", len(exits)))

	return nil
}

// criticalVertex returns the vertex of critical point c, adding it on first use.
func (b *graphBuilder) criticalVertex(g *topograph.Graph, c int) int {
	if id, ok := b.critVertex[c]; ok && g.HasVertex(id) {
		return id
	}
	p := b.seg.Critical[c]
	px := orb.Point{float64(p.X), float64(p.Y)}
	id := g.AddVertex(topograph.Vertex{
		Kind:     topograph.KindCritical,
		Location: b.source.ToWorld(px),
		Pixel:    px,
		Radius:   p.AverageClearance * b.source.Resolution(),
		Region:   -1,
		Critical: c,
	})
	b.critVertex[c] = id
	return id
}

// byBearing returns the boundary critical point whose direction from center
// is closest to the direction of toward. Ties go to the first listed.
func (b *graphBuilder) byBearing(center, toward orb.Point, boundary []int) int {
	want := math.Atan2(toward[1]-center[1], toward[0]-center[0])
	best, bestDiff := boundary[0], math.Inf(1)
	for _, c := range boundary {
		p := b.seg.Critical[c]
		got := math.Atan2(float64(p.Y)-center[1], float64(p.X)-center[0])
		diff := math.Abs(math.Remainder(got-want, 2*math.Pi))
		if diff < bestDiff {
			best, bestDiff = c, diff
		}
	}
	return best
}
