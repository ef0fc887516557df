package region

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/topomap/bfs"
	"github.com/katalvlaran/topomap/critical"
	"github.com/katalvlaran/topomap/grid"
)

// Segment labels the regions of source separated by the lines of points.
func Segment(source *grid.Grid, points []critical.Point, opts ...Option) (*Segmentation, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if source == nil {
		return nil, ErrNilGrid
	}
	if source.Count(grid.Free) == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrNoFreeSpace, source.Width(), source.Height())
	}

	s := &segmenter{source: source, log: o.Logger}
	active := append([]critical.Point(nil), points...)
	var dropped []critical.Point
	for round := 0; ; round++ {
		labels, adj, bad := s.label(active)
		if len(bad) == 0 {
			return s.finish(labels, active, adj, dropped)
		}
		kept := active[:0:0]
		b := 0
		for i, p := range active {
			if b < len(bad) && bad[b] == i {
				b++
				dropped = append(dropped, p)
				continue
			}
			kept = append(kept, p)
		}
		o.Logger.Debug("relabelling without unresolved critical points",
			zap.Int("round", round), zap.Int("dropped", len(bad)), zap.Int("remaining", len(kept)))
		active = kept
	}
}

type segmenter struct {
	source *grid.Grid
	log    *zap.Logger
}

// lines returns the Free pixels of each critical line.
func (s *segmenter) lines(points []critical.Point) [][]int {
	out := make([][]int, len(points))
	for i, p := range points {
		a, b := p.Line()
		for _, px := range grid.Line4(a, b) {
			if s.source.IsFree(px.X, px.Y) {
				out[i] = append(out[i], s.source.Index(px.X, px.Y))
			}
		}
	}
	return out
}

// label burns the lines of points, labels the remaining free space, and
// resolves each point's two regions. bad lists, ascending, the points that
// did not touch exactly two regions.
func (s *segmenter) label(points []critical.Point) (*grid.Labeling, []Adjacency, []int) {
	lines := s.lines(points)
	blocked := make([]bool, s.source.Len())
	for _, line := range lines {
		for _, idx := range line {
			blocked[idx] = true
		}
	}
	labels := grid.ConnectedComponents(s.source.Width(), s.source.Height(), func(idx int) bool {
		return !blocked[idx] && s.source.CellAt(idx) == grid.Free
	}, grid.Conn4)

	adj := make([]Adjacency, len(points))
	var bad []int
	for i, line := range lines {
		touched := s.touching(labels, line)
		if len(touched) != 2 {
			s.log.Error("critical point dropped: line does not separate two regions",
				zap.Int("x", points[i].X), zap.Int("y", points[i].Y),
				zap.Int("regions", len(touched)))
			bad = append(bad, i)
			continue
		}
		adj[i] = Adjacency{A: min(touched[0], touched[1]), B: max(touched[0], touched[1])}
	}

	return labels, adj, bad
}

// touching returns the distinct regions 4-adjacent to the pixels of line.
func (s *segmenter) touching(labels *grid.Labeling, line []int) []int {
	var out []int
	for _, idx := range line {
		p := s.source.Coordinate(idx)
		for _, d := range grid.Conn4.Offsets() {
			l := labels.Label(p.X+d.X, p.Y+d.Y)
			if l < 0 || contains(out, l) {
				continue
			}
			out = append(out, l)
		}
	}
	return out
}

// finish builds the regions, keeps the dominant component reachable and
// filters the critical points accordingly.
func (s *segmenter) finish(labels *grid.Labeling, points []critical.Point, adj []Adjacency, dropped []critical.Point) (*Segmentation, error) {
	regions := make([]Region, labels.Count())
	sumX := make([]float64, labels.Count())
	sumY := make([]float64, labels.Count())
	for idx, l := range labels.Labels {
		if l < 0 {
			continue
		}
		p := s.source.Coordinate(idx)
		sumX[l] += float64(p.X)
		sumY[l] += float64(p.Y)
	}
	for id := range regions {
		n := float64(labels.Sizes[id])
		regions[id] = Region{ID: id, Pixels: labels.Sizes[id]}
		regions[id].Centroid[0] = sumX[id] / n
		regions[id].Centroid[1] = sumY[id] / n
	}

	g := newAdjacencyGraph(len(regions), adj)
	comps := bfs.Components(g)
	dom := dominant(comps, regions)
	if dom >= 0 {
		if _, err := bfs.BFS(g, comps[dom][0], bfs.WithOnVisit(func(id, _ int) error {
			regions[id].Reachable = true
			return nil
		})); err != nil {
			return nil, err
		}
	}
	for ci, comp := range comps {
		if ci == dom {
			continue
		}
		area := 0
		for _, id := range comp {
			area += regions[id].Pixels
		}
		s.log.Warn("discarding unreachable regions",
			zap.Int("regions", len(comp)), zap.Int("pixels", area), zap.Int("first_region", comp[0]))
	}

	seg := &Segmentation{
		Width:   s.source.Width(),
		Height:  s.source.Height(),
		Labels:  labels.Labels,
		Markers: make([]int, s.source.Len()),
		Regions: regions,
		Dropped: dropped,
	}
	for i := range seg.Markers {
		seg.Markers[i] = -1
	}
	for i, p := range points {
		if !regions[adj[i].A].Reachable {
			seg.Dropped = append(seg.Dropped, p)
			continue
		}
		ci := len(seg.Critical)
		seg.Critical = append(seg.Critical, p)
		seg.Adjacency = append(seg.Adjacency, adj[i])
		regions[adj[i].A].Critical = append(regions[adj[i].A].Critical, ci)
		regions[adj[i].B].Critical = append(regions[adj[i].B].Critical, ci)
	}
	for ci, line := range s.lines(seg.Critical) {
		for _, idx := range line {
			seg.Markers[idx] = ci
		}
	}

	s.log.Debug("regions segmented",
		zap.Int("regions", len(regions)),
		zap.Int("reachable", len(seg.Reachable())),
		zap.Int("critical", len(seg.Critical)),
		zap.Int("dropped", len(seg.Dropped)))

	return seg, nil
}

// dominant returns the index of the component with the largest area, then
// the most regions. Components arrive ordered by lowest id, so the first wins ties.
func dominant(comps [][]int, regions []Region) int {
	best, bestArea := -1, -1
	for ci, comp := range comps {
		area := 0
		for _, id := range comp {
			area += regions[id].Pixels
		}
		if area > bestArea || (area == bestArea && len(comp) > len(comps[best])) {
			best, bestArea = ci, area
		}
	}
	return best
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
