package critical

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/topomap/voronoi"
)

// Extract returns the critical points among points, in discovery order.
// epsilon is the neighborhood radius in pixels. Downstream code must not rely
// on the order of the result.
func Extract(points []voronoi.Point, epsilon float64, opts ...Option) ([]Point, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !(epsilon > 0) || math.IsInf(epsilon, 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadEpsilon, epsilon)
	}

	idx := newNeighborIndex(points)
	var found []Point
	candidates := 0
	for i, v := range points {
		diff, ok := clearanceDrop(points, idx.within(i, epsilon), v)
		if !ok {
			continue
		}
		candidates++
		found = suppress(found, Point{Point: v, ClearanceDiff: diff}, epsilon)
	}

	kept := make([]Point, 0, len(found))
	for _, c := range found {
		if len(c.Basis) != 2 {
			o.Logger.Debug("critical point dropped: basis count",
				zap.Int("x", c.X), zap.Int("y", c.Y), zap.Int("basis", len(c.Basis)))
			continue
		}
		if Angle(c.Point) < math.Pi-o.Straightness {
			continue
		}
		kept = append(kept, c)
	}
	o.Logger.Debug("critical points extracted",
		zap.Int("voronoi", len(points)),
		zap.Int("candidates", candidates),
		zap.Int("suppressed_survivors", len(found)),
		zap.Int("critical", len(kept)))

	return kept, nil
}

// clearanceDrop reports whether v is a clearance minimum among its neighbors
// and by how much it lies below their mean.
func clearanceDrop(points []voronoi.Point, neighbors []int, v voronoi.Point) (float64, bool) {
	if len(neighbors) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, j := range neighbors {
		c := points[j].AverageClearance
		if c < v.AverageClearance {
			return 0, false
		}
		sum += c
	}
	mean := sum / float64(len(neighbors))
	if v.AverageClearance >= mean {
		return 0, false
	}
	return mean - v.AverageClearance, true
}

// suppress inserts cand into found unless a critical point within epsilon
// already has an equal or larger drop; weaker points within epsilon are removed.
// found is not modified.
func suppress(found []Point, cand Point, epsilon float64) []Point {
	var weaker []int
	for j, c := range found {
		if c.Distance(cand.Pixel) > epsilon {
			continue
		}
		if c.ClearanceDiff >= cand.ClearanceDiff {
			return found
		}
		weaker = append(weaker, j)
	}

	out := make([]Point, 0, len(found)-len(weaker)+1)
	w := 0
	for j, c := range found {
		if w < len(weaker) && weaker[w] == j {
			w++
			continue
		}
		out = append(out, c)
	}

	return append(out, cand)
}
