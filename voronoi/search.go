package voronoi

import (
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/topomap/grid"
)

// Search computes the Voronoi points of the free space of inflated. Obstacle
// pixels are read from source so that basis points sit on the real walls.
// clearance is in meters. Points are returned in raster order (row by row from
// y = 0); the result does not depend on the number of workers.
//
// Returns ErrNilGrid, ErrGridMismatch, ErrBadClearance, ErrOptionViolation, or
// the context error if the search was cancelled.
func Search(inflated, source *grid.Grid, clearance float64, opts ...Option) ([]Point, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if inflated == nil || source == nil {
		return nil, ErrNilGrid
	}
	if !inflated.SameShape(source) {
		return nil, fmt.Errorf("%w: %dx%d@%g vs %dx%d@%g", ErrGridMismatch,
			inflated.Width(), inflated.Height(), inflated.Resolution(),
			source.Width(), source.Height(), source.Resolution())
	}
	if !(clearance > 0) || math.IsInf(clearance, 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadClearance, clearance)
	}

	start := time.Now()
	threshold := int(math.Ceil(clearance / source.Resolution()))
	height := inflated.Height()
	workers := o.Workers
	if workers > height {
		workers = height
	}

	// contiguous row bands, merged in band order
	bands := make([][]Point, workers)
	g, ctx := errgroup.WithContext(o.Ctx)
	for b := 0; b < workers; b++ {
		lo, hi := b*height/workers, (b+1)*height/workers
		g.Go(func() error {
			s := &scanner{
				inflated:  inflated,
				source:    source,
				threshold: threshold,
				acc: accumulator{
					near:   float64(2 * threshold),
					tracer: newWallTracer(inflated),
				},
			}
			for y := lo; y < hi; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				bands[b] = s.row(y, bands[b])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var points []Point
	for _, band := range bands {
		points = append(points, band...)
	}
	o.Logger.Debug("voronoi search complete",
		zap.Int("points", len(points)),
		zap.Int("threshold_px", threshold),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)))

	return points, nil
}

// scanner holds the per-worker search state.
type scanner struct {
	inflated, source *grid.Grid
	threshold        int
	acc              accumulator
	ring             []BasisPoint
}

// row appends the Voronoi points of row y to out.
func (s *scanner) row(y int, out []Point) []Point {
	for x := 0; x < s.inflated.Width(); x++ {
		if s.inflated.At(x, y) != grid.Free {
			continue
		}
		if p, ok := s.point(grid.Pixel{X: x, Y: y}); ok {
			out = append(out, p)
		}
	}
	return out
}

// point runs the expanding ring search around p.
func (s *scanner) point(p grid.Pixel) (Point, bool) {
	var basis []BasisPoint
	maxDim := s.inflated.MaxDimension()
	for box := s.threshold; box < maxDim; box++ {
		// nothing farther can be within +1 of the current minimum
		if len(basis) > 0 && float64(box) > basis[0].Distance+1 {
			break
		}
		s.ring = s.obstaclesOnRing(p, box, s.ring[:0])
		for _, cand := range s.ring {
			if len(basis) == 0 || cand.Distance <= basis[0].Distance+1 {
				basis = s.acc.add(basis, cand)
			}
		}
	}
	if len(basis) < 2 {
		return Point{}, false
	}

	return Point{
		Pixel:            p,
		Basis:            basis,
		AverageClearance: averageDistance(basis),
	}, true
}

// obstaclesOnRing appends to out the source-Occupied pixels at Chebyshev
// distance r from p, sorted by Euclidean distance.
func (s *scanner) obstaclesOnRing(p grid.Pixel, r int, out []BasisPoint) []BasisPoint {
	add := func(x, y int) {
		if s.source.IsOccupied(x, y) {
			q := grid.Pixel{X: x, Y: y}
			out = append(out, BasisPoint{Pixel: q, Distance: p.Distance(q)})
		}
	}
	for dy := -r; dy <= r; dy++ {
		y := p.Y + dy
		if y < 0 || y >= s.source.Height() {
			continue
		}
		if dy == -r || dy == r {
			for dx := -r; dx <= r; dx++ {
				add(p.X+dx, y)
			}
			continue
		}
		add(p.X-r, y)
		add(p.X+r, y)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })

	return out
}
