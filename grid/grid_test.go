package grid

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name   string
		w, h   int
		res    float64
		origin orb.Point
		cells  []CellState
		want   error
	}{
		{"zero width", 0, 2, 0.05, orb.Point{}, nil, ErrEmptyGrid},
		{"count mismatch", 2, 2, 0.05, orb.Point{}, make([]CellState, 3), ErrCellCount},
		{"zero resolution", 2, 1, 0, orb.Point{}, make([]CellState, 2), ErrBadResolution},
		{"nan resolution", 2, 1, math.NaN(), orb.Point{}, make([]CellState, 2), ErrBadResolution},
		{"inf origin", 2, 1, 0.1, orb.Point{math.Inf(1), 0}, make([]CellState, 2), ErrBadOrigin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.w, tc.h, tc.res, tc.origin, tc.cells)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFromRows(t *testing.T) {
	_, err := FromRows(nil, 1, orb.Point{})
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = FromRows([][]CellState{{Free, Free}, {Free}}, 1, orb.Point{})
	assert.ErrorIs(t, err, ErrNonRectangular)

	rows := [][]CellState{
		{Free, Occupied, Unknown},
		{Occupied, Free, Free},
	}
	g, err := FromRows(rows, 0.5, orb.Point{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, 3, g.MaxDimension())
	assert.Equal(t, Occupied, g.At(1, 0))
	assert.Equal(t, Unknown, g.At(2, 0))
	assert.Equal(t, Occupied, g.At(0, 1))
	assert.Equal(t, Unknown, g.At(-1, 0), "outside is unknown")
	assert.True(t, g.IsFree(0, 0))
	assert.True(t, g.IsOccupied(1, 0))
	assert.False(t, g.IsOccupied(5, 5))
	assert.Equal(t, 3, g.Count(Free))

	// input is copied
	rows[0][0] = Occupied
	assert.Equal(t, Free, g.At(0, 0))
}

func TestIndexCoordinate(t *testing.T) {
	g, err := New(4, 3, 1, orb.Point{}, make([]CellState, 12))
	require.NoError(t, err)
	for idx := 0; idx < g.Len(); idx++ {
		p := g.Coordinate(idx)
		assert.True(t, g.InBounds(p.X, p.Y))
		assert.Equal(t, idx, g.Index(p.X, p.Y))
	}
	assert.False(t, g.InBounds(4, 0))
	assert.False(t, g.InBounds(0, -1))
}

func TestWorldConversion(t *testing.T) {
	g, err := New(10, 10, 0.05, orb.Point{-1.5, 2.25}, make([]CellState, 100))
	require.NoError(t, err)

	w := g.PixelToWorld(Pixel{X: 4, Y: 6})
	assert.InDelta(t, -1.3, w[0], 1e-9)
	assert.InDelta(t, 2.55, w[1], 1e-9)

	for _, p := range []orb.Point{{0, 0}, {3.25, 7.5}, {9, 9}} {
		back := g.ToPixel(g.ToWorld(p))
		assert.InDelta(t, p[0], back[0], 1e-9)
		assert.InDelta(t, p[1], back[1], 1e-9)
	}
}

func TestCellsIsCopy(t *testing.T) {
	g, err := New(2, 1, 1, orb.Point{}, []CellState{Free, Free})
	require.NoError(t, err)
	cells := g.Cells()
	cells[0] = Occupied
	assert.Equal(t, Free, g.At(0, 0))
	assert.True(t, g.SameShape(g))
}

func TestPixel(t *testing.T) {
	p := Pixel{X: 1, Y: 2}
	assert.Equal(t, Pixel{X: 4, Y: 6}, p.Add(Pixel{X: 3, Y: 4}))
	assert.InDelta(t, 5.0, p.Distance(Pixel{X: 4, Y: 6}), 1e-12)
	assert.Equal(t, orb.Point{1, 2}, p.Point())
	assert.Equal(t, "occupied", Occupied.String())
	assert.Len(t, Conn4.Offsets(), 4)
	assert.Len(t, Conn8.Offsets(), 8)
}
