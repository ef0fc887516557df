package voronoi

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/topomap/grid"
)

const hall = `
###############
#.............#
#.............#
#.............#
#.............#
#.............#
###############
`

const pillarRoom = `
####################
#..................#
#..................#
#..................#
#.......####.......#
#.......####.......#
#..................#
#..................#
#..................#
#..................#
####################
`

func load(t *testing.T, text string, clearance float64) (source, inflated *grid.Grid) {
	t.Helper()
	source, err := grid.ParseText(text, 1, orb.Point{})
	require.NoError(t, err)
	inflated, err = grid.Inflate(source, clearance)
	require.NoError(t, err)
	return source, inflated
}

func TestSearch_Validation(t *testing.T) {
	source, inflated := load(t, hall, 1)

	_, err := Search(nil, source, 1)
	assert.ErrorIs(t, err, ErrNilGrid)

	small, err := grid.ParseText("...", 1, orb.Point{})
	require.NoError(t, err)
	_, err = Search(small, source, 1)
	assert.ErrorIs(t, err, ErrGridMismatch)

	_, err = Search(inflated, source, 0)
	assert.ErrorIs(t, err, ErrBadClearance)

	_, err = Search(inflated, source, 1, WithWorkers(0))
	assert.ErrorIs(t, err, ErrOptionViolation)
}

// TestSearch_HallMedialAxis expects the Voronoi points of a 13×5 hall to lie on
// the middle row, away from the short walls, each with one basis point per long
// wall. Near the short walls the inflated band joins the long walls, so only
// the inner stretch is guaranteed.
func TestSearch_HallMedialAxis(t *testing.T) {
	source, inflated := load(t, hall, 1)

	points, err := Search(inflated, source, 1)
	require.NoError(t, err)
	seen := make(map[int]bool)
	for _, p := range points {
		assert.Equal(t, 3, p.Y)
		assert.GreaterOrEqual(t, p.X, 3)
		assert.LessOrEqual(t, p.X, 11)
		seen[p.X] = true
		require.Len(t, p.Basis, 2)
		assert.Equal(t, grid.Pixel{X: p.X, Y: 0}, p.Basis[0].Pixel)
		assert.Equal(t, grid.Pixel{X: p.X, Y: 6}, p.Basis[1].Pixel)
		assert.InDelta(t, 3.0, p.AverageClearance, 1e-9)
	}
	for x := 4; x <= 10; x++ {
		assert.True(t, seen[x], "missing medial point at x=%d", x)
	}
}

func TestSearch_BasisTolerance(t *testing.T) {
	source, inflated := load(t, pillarRoom, 1)

	points, err := Search(inflated, source, 1)
	require.NoError(t, err)
	require.NotEmpty(t, points)
	for _, p := range points {
		require.GreaterOrEqual(t, len(p.Basis), 2)
		assert.True(t, inflated.IsFree(p.X, p.Y))
		min := p.BasisDistance()
		sum := 0.0
		for i, b := range p.Basis {
			assert.True(t, source.IsOccupied(b.X, b.Y))
			assert.LessOrEqual(t, b.Distance, min+1, "point %v basis %v", p.Pixel, b)
			assert.InDelta(t, p.Distance(b.Pixel), b.Distance, 1e-9)
			if i > 0 {
				assert.GreaterOrEqual(t, b.Distance, p.Basis[i-1].Distance)
			}
			sum += b.Distance
		}
		assert.InDelta(t, sum/float64(len(p.Basis)), p.AverageClearance, 1e-9)
	}
}

func TestSearch_WorkersDeterministic(t *testing.T) {
	source, inflated := load(t, pillarRoom, 1)

	one, err := Search(inflated, source, 1)
	require.NoError(t, err)
	for _, n := range []int{2, 3, 64} {
		many, err := Search(inflated, source, 1, WithWorkers(n))
		require.NoError(t, err)
		assert.Equal(t, one, many, "workers=%d", n)
	}
}

func TestSearch_Cancelled(t *testing.T) {
	source, inflated := load(t, pillarRoom, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Search(inflated, source, 1, WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch_NoWalls(t *testing.T) {
	source, inflated := load(t, "......\n......\n......\n", 1)
	points, err := Search(inflated, source, 1)
	require.NoError(t, err)
	assert.Empty(t, points)
}
