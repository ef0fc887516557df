// SPDX-License-Identifier: MIT
// Package: topomap/builder
//
// passes_test.go — passes on hand-made segmentations over an open grid.

package builder

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/topomap/critical"
	"github.com/katalvlaran/topomap/grid"
	"github.com/katalvlaran/topomap/region"
	"github.com/katalvlaran/topomap/topograph"
	"github.com/katalvlaran/topomap/voronoi"
)

func openGrid(t *testing.T, w, h int) *grid.Grid {
	t.Helper()
	row := strings.Repeat(".", w) + "\n"
	g, err := grid.ParseText(strings.Repeat(row, h), 1, orb.Point{})
	require.NoError(t, err)
	return g
}

type regionDef struct {
	x, y   float64
	pixels int
}

type critDef struct {
	x, y int
	a, b int
}

// handmade wires regions and critical points into a segmentation.
func handmade(w, h int, regions []regionDef, crits []critDef) *region.Segmentation {
	seg := &region.Segmentation{Width: w, Height: h}
	for id, r := range regions {
		seg.Regions = append(seg.Regions, region.Region{
			ID: id, Pixels: r.pixels, Centroid: orb.Point{r.x, r.y}, Reachable: true,
		})
	}
	for i, c := range crits {
		seg.Critical = append(seg.Critical, critical.Point{Point: voronoi.Point{
			Pixel:            grid.Pixel{X: c.x, Y: c.y},
			AverageClearance: 1,
		}})
		seg.Adjacency = append(seg.Adjacency, region.Adjacency{A: min(c.a, c.b), B: max(c.a, c.b)})
		seg.Regions[c.a].Critical = append(seg.Regions[c.a].Critical, i)
		seg.Regions[c.b].Critical = append(seg.Regions[c.b].Critical, i)
	}
	return seg
}

// TestCollapse_IntoExistingEdge: in a visible triangle the first degree-2
// vertex folds into the opposite side, which gathers all critical points.
func TestCollapse_IntoExistingEdge(t *testing.T) {
	seg := handmade(10, 10,
		[]regionDef{{2, 2, 9}, {5, 5, 9}, {8, 2, 9}},
		[]critDef{{3, 3, 0, 1}, {6, 4, 1, 2}, {5, 2, 0, 2}})
	res, err := Build(seg, openGrid(t, 10, 10))
	require.NoError(t, err)

	assert.Equal(t, map[int]EdgeKey{0: {A: 1, B: 2}}, res.Absorbed)
	assert.Equal(t, []int{-1, 0, 1}, res.Remap)
	require.Equal(t, 1, res.Graph.EdgeCount())
	e, _ := res.Graph.Edge(0, 1)
	assert.ElementsMatch(t, []int{0, 1, 2}, e.Critical)
}

// TestCollapse_AbsorbedFollowsEdge: when an absorbing edge is itself
// collapsed, earlier absorbed vertices move to the new edge.
func TestCollapse_AbsorbedFollowsEdge(t *testing.T) {
	seg := handmade(12, 3,
		[]regionDef{{1, 1, 4}, {4, 1, 4}, {7, 1, 4}, {10, 1, 4}},
		[]critDef{{2, 1, 0, 1}, {5, 1, 1, 2}, {8, 1, 2, 3}})
	res, err := Build(seg, openGrid(t, 12, 3))
	require.NoError(t, err)

	assert.Equal(t, map[int]EdgeKey{1: {A: 0, B: 3}, 2: {A: 0, B: 3}}, res.Absorbed)
	assert.Equal(t, 2, res.Graph.VertexCount())
	e, _ := res.Graph.Edge(0, 1)
	assert.ElementsMatch(t, []int{0, 1, 2}, e.Critical)
	assert.InDelta(t, 9.0, e.Weight, 1e-12)
}

// TestDemote_SharedDoorReused: two adjacent hubs are demoted in turn; the
// door between them becomes one vertex used by both.
func TestDemote_SharedDoorReused(t *testing.T) {
	seg := handmade(40, 25,
		[]regionDef{
			{10, 10, 100}, {30, 10, 100},
			{10, 20, 10}, {10, 0, 10}, {30, 20, 10}, {30, 0, 10},
		},
		[]critDef{
			{20, 10, 0, 1},
			{10, 15, 0, 2}, {10, 5, 0, 3},
			{30, 15, 1, 4}, {30, 5, 1, 5},
		})
	res, err := Build(seg, openGrid(t, 40, 25), WithMergeThresholdArea(50))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, res.Demoted)
	// four leaves and five doors
	require.Equal(t, 9, res.Graph.VertexCount())
	require.Equal(t, 10, res.Graph.EdgeCount())
	assert.True(t, res.Graph.Connected())

	// working ids: the shared door is 6, created while demoting hub 0
	shared := res.Remap[6]
	v, ok := res.Graph.Vertex(shared)
	require.True(t, ok)
	assert.Equal(t, topograph.KindCritical, v.Kind)
	assert.Equal(t, 0, v.Critical)
	assert.Equal(t, 4, res.Graph.Degree(shared))

	var doors int
	for _, v := range res.Graph.Vertices() {
		if v.Kind == topograph.KindCritical {
			doors++
			assert.InDelta(t, 1.0, v.Radius, 1e-12)
		}
	}
	assert.Equal(t, 5, doors)
}

func TestByBearing(t *testing.T) {
	seg := handmade(10, 10,
		[]regionDef{{0, 0, 1}, {5, 0, 1}, {0, 5, 1}},
		[]critDef{{5, 0, 0, 1}, {0, 5, 0, 2}})
	b := &graphBuilder{seg: seg, log: zap.NewNop()}

	assert.Equal(t, 0, b.byBearing(orb.Point{0, 0}, orb.Point{10, 1}, []int{0, 1}))
	assert.Equal(t, 1, b.byBearing(orb.Point{0, 0}, orb.Point{-1, 10}, []int{0, 1}))
	// wrap-around: just below the +x axis is still closest to it
	assert.Equal(t, 0, b.byBearing(orb.Point{0, 0}, orb.Point{10, -1}, []int{1, 0}))
}

func TestBuild_Invariants(t *testing.T) {
	t.Run("unreachable endpoint", func(t *testing.T) {
		seg := handmade(10, 10, []regionDef{{2, 2, 9}, {7, 7, 9}}, []critDef{{5, 5, 0, 1}})
		seg.Regions[1].Reachable = false
		_, err := Build(seg, openGrid(t, 10, 10))
		assert.ErrorIs(t, err, ErrInvariant)
	})
	t.Run("no region", func(t *testing.T) {
		seg := handmade(10, 10, []regionDef{{2, 2, 9}}, nil)
		seg.Regions[0].Reachable = false
		_, err := Build(seg, openGrid(t, 10, 10))
		assert.ErrorIs(t, err, ErrInvariant)
	})
	t.Run("adjacency mismatch", func(t *testing.T) {
		seg := handmade(10, 10, []regionDef{{2, 2, 9}, {7, 7, 9}}, []critDef{{5, 5, 0, 1}})
		seg.Adjacency = nil
		_, err := Build(seg, openGrid(t, 10, 10))
		assert.ErrorIs(t, err, ErrInvariant)
	})
	t.Run("disconnected", func(t *testing.T) {
		seg := handmade(10, 10, []regionDef{{2, 2, 9}, {7, 7, 9}}, nil)
		_, err := Build(seg, openGrid(t, 10, 10))
		assert.ErrorIs(t, err, ErrInvariant)
	})
}
