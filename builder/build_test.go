// SPDX-License-Identifier: MIT
// Package: topomap/builder
//
// build_test.go — pass-level behavior on small maps.

package builder

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/topomap/critical"
	"github.com/katalvlaran/topomap/grid"
	"github.com/katalvlaran/topomap/region"
	"github.com/katalvlaran/topomap/topograph"
	"github.com/katalvlaran/topomap/voronoi"
)

const twoRooms = `
###########
#...#.....#
#...#.....#
#.........#
#...#.....#
#...#.....#
###########
`

const threeRooms = `
#################
#...#.....#.....#
#...#.....#.....#
#...............#
#...#.....#.....#
#...#.....#.....#
#################
`

// threeRoomsPillar blocks the view between the outer rooms.
const threeRoomsPillar = `
#################
#...#.....#.....#
#...#.....#.....#
#......#........#
#...#.....#.....#
#...#.....#.....#
#################
`

// hub is a 7x7 room with three side rooms.
const hub = `
#################
#######...#######
#######...#######
#######...#######
########.########
#####.......#####
#####.......#####
#...#.......#...#
#...............#
#...#.......#...#
#####.......#####
#####.......#####
#################
`

func cp(c, a, b grid.Pixel) critical.Point {
	return critical.Point{
		Point: voronoi.Point{
			Pixel: c,
			Basis: []voronoi.BasisPoint{
				{Pixel: a, Distance: c.Distance(a)},
				{Pixel: b, Distance: c.Distance(b)},
			},
			AverageClearance: (c.Distance(a) + c.Distance(b)) / 2,
		},
		ClearanceDiff: 1,
	}
}

// vdoor is a door through a vertical wall at (x,y).
func vdoor(x, y int) critical.Point {
	return cp(grid.Pixel{X: x, Y: y}, grid.Pixel{X: x, Y: y - 1}, grid.Pixel{X: x, Y: y + 1})
}

// hdoor is a door through a horizontal wall at (x,y).
func hdoor(x, y int) critical.Point {
	return cp(grid.Pixel{X: x, Y: y}, grid.Pixel{X: x - 1, Y: y}, grid.Pixel{X: x + 1, Y: y})
}

func segment(t *testing.T, text string, res float64, doors ...critical.Point) (*region.Segmentation, *grid.Grid) {
	t.Helper()
	g, err := grid.ParseText(text, res, orb.Point{})
	require.NoError(t, err)
	seg, err := region.Segment(g, doors)
	require.NoError(t, err)
	require.Len(t, seg.Critical, len(doors))
	return seg, g
}

func TestBuild_Validation(t *testing.T) {
	seg, g := segment(t, twoRooms, 0.05, vdoor(4, 3))

	_, err := Build(nil, g)
	assert.ErrorIs(t, err, ErrNilInput)
	_, err = Build(seg, nil)
	assert.ErrorIs(t, err, ErrNilInput)

	small, _ := grid.ParseText("...\n", 0.05, orb.Point{})
	_, err = Build(seg, small)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Build(seg, g, WithMergeThresholdArea(-1), WithMergeThresholdArea(math.NaN()))
	assert.ErrorIs(t, err, ErrOptionViolation)
}

func TestBuild_TwoRooms(t *testing.T) {
	seg, g := segment(t, twoRooms, 0.05, vdoor(4, 3))
	res, err := Build(seg, g)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Regions.VertexCount())
	assert.Equal(t, 1, res.Regions.EdgeCount())
	require.Equal(t, 2, res.Graph.VertexCount())
	require.Equal(t, 1, res.Graph.EdgeCount())
	assert.Empty(t, res.Absorbed)
	assert.Empty(t, res.Demoted)
	assert.Equal(t, []int{0, 1}, res.Remap)

	e, ok := res.Graph.Edge(0, 1)
	require.True(t, ok)
	assert.Equal(t, []int{0}, e.Critical)
	// centroids (2,3) and (7,3), 5 px apart
	assert.InDelta(t, 0.25, e.Weight, 1e-9)

	left, _ := res.Graph.Vertex(0)
	assert.Equal(t, topograph.KindRegion, left.Kind)
	assert.Equal(t, 0, left.Region)
	assert.InDelta(t, 0.10, left.Location.X(), 1e-9)
	assert.InDelta(t, 0.15, left.Location.Y(), 1e-9)
	assert.InDelta(t, 0.05*math.Sqrt(15), left.Radius, 1e-9)
	assert.True(t, res.Graph.Connected())
}

// TestBuild_ChainCollapsed: the middle of three aligned rooms disappears when
// the outer centroids see each other through both doors.
func TestBuild_ChainCollapsed(t *testing.T) {
	seg, g := segment(t, threeRooms, 0.05, vdoor(4, 3), vdoor(10, 3))
	res, err := Build(seg, g)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Regions.VertexCount())
	require.Equal(t, 2, res.Graph.VertexCount())
	require.Equal(t, 1, res.Graph.EdgeCount())
	assert.Equal(t, map[int]EdgeKey{1: {A: 0, B: 2}}, res.Absorbed)
	assert.Equal(t, []int{0, -1, 1}, res.Remap)

	e, _ := res.Graph.Edge(0, 1)
	assert.ElementsMatch(t, []int{0, 1}, e.Critical)
	// (2,3) to (13,3)
	assert.InDelta(t, 11*0.05, e.Weight, 1e-9)
}

func TestBuild_ChainKeptWithoutSight(t *testing.T) {
	seg, g := segment(t, threeRoomsPillar, 0.05, vdoor(4, 3), vdoor(10, 3))
	res, err := Build(seg, g)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Graph.VertexCount())
	assert.Equal(t, 2, res.Graph.EdgeCount())
	assert.Empty(t, res.Absorbed)
	assert.Equal(t, []int{0, 2}, res.Graph.Neighbors(1))
}

func hubDoors() []critical.Point {
	return []critical.Point{vdoor(4, 4), vdoor(12, 4), hdoor(8, 8)}
}

func TestBuild_HubDemoted(t *testing.T) {
	seg, g := segment(t, hub, 1, hubDoors()...)
	// center, west, east, north
	require.Len(t, seg.Regions, 4)
	require.Equal(t, 49, seg.Regions[0].Pixels)

	res, err := Build(seg, g, WithMergeThresholdArea(20))
	require.NoError(t, err)

	assert.Equal(t, []int{0}, res.Demoted)
	assert.Equal(t, 4, res.Collapsed.VertexCount())
	require.Equal(t, 6, res.Graph.VertexCount())
	require.Equal(t, 6, res.Graph.EdgeCount())
	assert.Equal(t, []int{-1, 0, 1, 2, 3, 4, 5}, res.Remap)
	assert.True(t, res.Graph.Connected())

	kinds := map[topograph.Kind]int{}
	for _, v := range res.Graph.Vertices() {
		kinds[v.Kind]++
	}
	assert.Equal(t, map[topograph.Kind]int{topograph.KindRegion: 3, topograph.KindCritical: 3}, kinds)

	// the west room hangs off the west door
	west, _ := res.Graph.Vertex(3)
	assert.Equal(t, topograph.KindCritical, west.Kind)
	assert.Equal(t, 0, west.Critical)
	assert.Equal(t, orb.Point{4, 4}, west.Location)
	assert.Equal(t, []int{0, 4, 5}, res.Graph.Neighbors(3))
	// exits form a triangle
	assert.True(t, res.Graph.HasEdge(3, 4))
	assert.True(t, res.Graph.HasEdge(3, 5))
	assert.True(t, res.Graph.HasEdge(4, 5))
}

func TestBuild_HubBelowThreshold(t *testing.T) {
	for name, area := range map[string]float64{"disabled": 0, "too small": 50} {
		t.Run(name, func(t *testing.T) {
			seg, g := segment(t, hub, 1, hubDoors()...)
			res, err := Build(seg, g, WithMergeThresholdArea(area))
			require.NoError(t, err)
			assert.Empty(t, res.Demoted)
			assert.Equal(t, 4, res.Graph.VertexCount())
			assert.Equal(t, 3, res.Graph.EdgeCount())
			assert.Equal(t, 3, res.Graph.Degree(0))
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	seg, g := segment(t, hub, 1, hubDoors()...)
	a, err := Build(seg, g, WithMergeThresholdArea(20))
	require.NoError(t, err)
	b, err := Build(seg, g, WithMergeThresholdArea(20))
	require.NoError(t, err)
	assert.Equal(t, a.Graph.Vertices(), b.Graph.Vertices())
	assert.Equal(t, a.Graph.Edges(), b.Graph.Edges())
}
