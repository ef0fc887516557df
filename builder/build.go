// SPDX-License-Identifier: MIT
// Package: topomap/builder
//
// build.go — Build orchestration and the pass-1 region graph.

package builder

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/topomap/grid"
	"github.com/katalvlaran/topomap/region"
	"github.com/katalvlaran/topomap/topograph"
)

// EdgeKey names an undirected edge by its endpoints, A < B.
type EdgeKey struct {
	A, B int
}

func edgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// Result holds the graph after each pass.
//
// Regions and Collapsed share the working id space; pass 3 appends its
// critical vertices to it. Remap translates working ids into Graph ids.
type Result struct {
	// Regions is the pass-1 region graph.
	Regions *topograph.Graph
	// Collapsed is the graph after pass 2.
	Collapsed *topograph.Graph
	// Graph is the final compacted graph.
	Graph *topograph.Graph
	// Absorbed maps each collapsed vertex to the edge that replaced it.
	Absorbed map[int]EdgeKey
	// Demoted lists the region vertices replaced by their critical points.
	Demoted []int
	// Remap[working id] is the final id, or -1 if the vertex is gone.
	Remap []int
}

// graphBuilder carries the inputs shared by the passes.
type graphBuilder struct {
	seg    *region.Segmentation
	source *grid.Grid
	log    *zap.Logger
	// critVertex maps a critical point index to its working vertex.
	critVertex map[int]int
}

// Build constructs the topological graph of seg over source.
func Build(seg *region.Segmentation, source *grid.Grid, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if seg == nil || source == nil {
		return nil, ErrNilInput
	}
	if seg.Width != source.Width() || seg.Height != source.Height() {
		return nil, ErrShapeMismatch
	}

	b := &graphBuilder{seg: seg, source: source, log: o.Logger, critVertex: map[int]int{}}

	regions, err := b.regionGraph()
	if err != nil {
		return nil, err
	}
	b.log.Debug("region graph built",
		zap.Int("vertices", regions.VertexCount()), zap.Int("edges", regions.EdgeCount()))

	work := regions.Clone()
	absorbed, err := b.collapse(work)
	if err != nil {
		return nil, err
	}
	collapsed := work.Clone()
	b.log.Debug("chains collapsed",
		zap.Int("absorbed", len(absorbed)),
		zap.Int("vertices", work.VertexCount()), zap.Int("edges", work.EdgeCount()))

	demoted, err := b.demote(work, o.MergeThresholdArea)
	if err != nil {
		return nil, err
	}
	if err := b.validate(work); err != nil {
		return nil, err
	}
	final, remap := work.Compact()
	b.log.Debug("topological graph built",
		zap.Int("demoted", len(demoted)),
		zap.Int("vertices", final.VertexCount()), zap.Int("edges", final.EdgeCount()))

	return &Result{
		Regions:   regions,
		Collapsed: collapsed,
		Graph:     final,
		Absorbed:  absorbed,
		Demoted:   demoted,
		Remap:     remap,
	}, nil
}

// regionGraph is pass 1.
func (b *graphBuilder) regionGraph() (*topograph.Graph, error) {
	res := b.source.Resolution()
	g := topograph.New(res, b.source.Origin())
	vertexOf := make(map[int]int, len(b.seg.Regions))
	for _, r := range b.seg.Regions {
		if !r.Reachable {
			continue
		}
		vertexOf[r.ID] = g.AddVertex(topograph.Vertex{
			Kind:     topograph.KindRegion,
			Location: b.source.ToWorld(r.Centroid),
			Pixel:    r.Centroid,
			Radius:   r.Radius() * res,
			Pixels:   r.Pixels,
			Region:   r.ID,
			Critical: -1,
		})
	}
	if g.VertexCount() == 0 {
		return nil, invariantf("no reachable region")
	}
	if len(b.seg.Adjacency) != len(b.seg.Critical) {
		return nil, invariantf("%d critical points but %d adjacencies", len(b.seg.Critical), len(b.seg.Adjacency))
	}

	for i, adj := range b.seg.Adjacency {
		va, okA := vertexOf[adj.A]
		vb, okB := vertexOf[adj.B]
		if !okA || !okB {
			return nil, invariantf("critical point %d joins regions %d and %d, not both kept", i, adj.A, adj.B)
		}
		if _, err := g.AddEdge(va, vb, i); err != nil {
			return nil, invariantf("critical point %d: %v", i, err)
		}
	}

	return g, nil
}

// validate checks the working graph before compaction.
func (b *graphBuilder) validate(g *topograph.Graph) error {
	if g.VertexCount() == 0 {
		return invariantf("empty graph")
	}
	for _, v := range g.Vertices() {
		switch v.Kind {
		case topograph.KindRegion:
			if v.Region < 0 || v.Region >= len(b.seg.Regions) || !b.seg.Regions[v.Region].Reachable {
				return invariantf("vertex %d refers to region %d", v.ID, v.Region)
			}
		case topograph.KindCritical:
			if v.Critical < 0 || v.Critical >= len(b.seg.Critical) {
				return invariantf("vertex %d refers to critical point %d", v.ID, v.Critical)
			}
		}
	}
	for _, e := range g.Edges() {
		for _, c := range e.Critical {
			if c < 0 || c >= len(b.seg.Critical) {
				return invariantf("edge %d-%d refers to critical point %d", e.A, e.B, c)
			}
		}
	}
	if comps := g.Components(); len(comps) > 1 {
		return invariantf("graph has %d components", len(comps))
	}
	return nil
}
