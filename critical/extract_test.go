package critical

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/topomap/grid"
	"github.com/katalvlaran/topomap/voronoi"
)

// vp builds a Voronoi point at (x,0) with basis points straight above and below.
func vp(x int, clearance float64) voronoi.Point {
	r := int(math.Round(clearance))
	return voronoi.Point{
		Pixel: grid.Pixel{X: x, Y: 0},
		Basis: []voronoi.BasisPoint{
			{Pixel: grid.Pixel{X: x, Y: -r}, Distance: clearance},
			{Pixel: grid.Pixel{X: x, Y: r}, Distance: clearance},
		},
		AverageClearance: clearance,
	}
}

func line(profile ...float64) []voronoi.Point {
	out := make([]voronoi.Point, len(profile))
	for x, c := range profile {
		out[x] = vp(x, c)
	}
	return out
}

func TestExtract_Validation(t *testing.T) {
	_, err := Extract(nil, 0)
	assert.ErrorIs(t, err, ErrBadEpsilon)
	_, err = Extract(nil, math.Inf(1))
	assert.ErrorIs(t, err, ErrBadEpsilon)
	_, err = Extract(nil, 1, WithStraightness(-1))
	assert.ErrorIs(t, err, ErrOptionViolation)

	got, err := Extract(nil, 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestExtract_SingleMinimum: a V-shaped clearance profile has one critical point
// at its bottom; its drop is the neighborhood mean minus its own clearance.
func TestExtract_SingleMinimum(t *testing.T) {
	points := line(7, 6, 5, 4, 3, 2, 3, 4, 5, 6, 7)

	got, err := Extract(points, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, grid.Pixel{X: 5, Y: 0}, got[0].Pixel)
	// neighbors x=2..8: 5 4 3 3 4 5 -> mean 4
	assert.InDelta(t, 2.0, got[0].ClearanceDiff, 1e-9)
	a, b := got[0].Line()
	assert.Equal(t, grid.Pixel{X: 5, Y: -2}, a)
	assert.Equal(t, grid.Pixel{X: 5, Y: 2}, b)
}

// TestExtract_PlateauKeepsFirst: equal drops keep the earlier point.
func TestExtract_PlateauKeepsFirst(t *testing.T) {
	points := line(5, 4, 3, 2.5, 2, 2, 2, 2.5, 3, 4, 5)

	got, err := Extract(points, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].X)
}

// TestExtract_StrongerReplacesWeaker: a later candidate with a larger drop
// removes the weaker one within epsilon.
func TestExtract_StrongerReplacesWeaker(t *testing.T) {
	points := line(5, 4, 3, 2.5, 2, 2, 2, 2.5, 3, 4, 5)
	// process x=5 (drop 0.5) before x=4 (drop 0.667)
	points[4], points[5] = points[5], points[4]

	got, err := Extract(points, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].X)
	assert.InDelta(t, 4.0/6, got[0].ClearanceDiff, 1e-9)
}

func TestExtract_FarMinimaBothKept(t *testing.T) {
	points := line(5, 4, 3, 4, 5, 6, 7, 6, 5, 4, 3, 4, 5)

	got, err := Extract(points, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].X)
	assert.Equal(t, 10, got[1].X)
}

func TestExtract_NoNeighbors(t *testing.T) {
	got, err := Extract([]voronoi.Point{vp(0, 2)}, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtract_CornerRejected(t *testing.T) {
	points := line(7, 6, 5, 4, 3, 2, 3, 4, 5, 6, 7)
	// basis points at a right angle, as near a room corner
	points[5].Basis = []voronoi.BasisPoint{
		{Pixel: grid.Pixel{X: 3, Y: 0}, Distance: 2},
		{Pixel: grid.Pixel{X: 5, Y: -2}, Distance: 2},
	}

	got, err := Extract(points, 3)
	require.NoError(t, err)
	assert.Empty(t, got)

	// a wide enough tolerance lets it through
	got, err = Extract(points, 3, WithStraightness(math.Pi/2))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestExtract_ThreeBasisRejected(t *testing.T) {
	points := line(7, 6, 5, 4, 3, 2, 3, 4, 5, 6, 7)
	points[5].Basis = append(points[5].Basis, voronoi.BasisPoint{Pixel: grid.Pixel{X: 7, Y: 0}, Distance: 2})

	got, err := Extract(points, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAngle(t *testing.T) {
	assert.InDelta(t, math.Pi, Angle(vp(0, 3)), 1e-12)
	p := voronoi.Point{
		Basis: []voronoi.BasisPoint{{Pixel: grid.Pixel{X: 1}}, {Pixel: grid.Pixel{Y: 1}}},
	}
	assert.InDelta(t, math.Pi/2, Angle(p), 1e-12)
	assert.Equal(t, 0.0, Angle(voronoi.Point{}))
}

func TestNeighborIndex_Within(t *testing.T) {
	points := []voronoi.Point{
		{Pixel: grid.Pixel{X: 0, Y: 0}},
		{Pixel: grid.Pixel{X: 3, Y: 4}},
		{Pixel: grid.Pixel{X: 4, Y: 4}},
		{Pixel: grid.Pixel{X: -2, Y: 0}},
	}
	idx := newNeighborIndex(points)
	assert.Equal(t, []int{1, 3}, idx.within(0, 5))
	assert.Equal(t, []int{3}, idx.within(0, 2))
	assert.Empty(t, idx.within(2, 0.5))
}
