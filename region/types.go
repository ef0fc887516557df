package region

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/katalvlaran/topomap/critical"
	"github.com/katalvlaran/topomap/grid"
)

// Sentinel errors.
var (
	// ErrNilGrid is returned when the source grid is nil.
	ErrNilGrid = errors.New("region: grid is nil")
	// ErrNoFreeSpace is returned when the grid has no Free cell.
	ErrNoFreeSpace = errors.New("region: grid has no free space")
)

// Region is a connected set of Free pixels bounded by walls and critical lines.
type Region struct {
	ID     int
	Pixels int
	// Centroid is the mean pixel coordinate.
	Centroid orb.Point
	// Critical holds indices into Segmentation.Critical of the points on its boundary.
	Critical  []int
	Reachable bool
}

// Radius approximates the region extent in pixels.
func (r Region) Radius() float64 {
	return math.Sqrt(float64(r.Pixels))
}

// Adjacency is the pair of regions a critical point separates, with A < B.
type Adjacency struct {
	A, B int
}

// Other returns the region on the other side of the line from id, or -1.
func (a Adjacency) Other(id int) int {
	switch id {
	case a.A:
		return a.B
	case a.B:
		return a.A
	}
	return -1
}

// Segmentation is the result of Segment.
//
// Critical and Adjacency are parallel and hold only the critical points that
// resolved to two reachable regions. Labels and Markers are row-major rasters.
type Segmentation struct {
	Width, Height int
	// Labels holds the region id of each pixel, -1 for non-free and line pixels.
	Labels []int
	// Markers holds the index into Critical of the line covering each pixel, -1 elsewhere.
	Markers   []int
	Regions   []Region
	Critical  []critical.Point
	Adjacency []Adjacency
	// Dropped lists critical points that failed to resolve or touched discarded regions.
	Dropped []critical.Point
}

// Label returns the region id at p, or -1.
func (s *Segmentation) Label(p grid.Pixel) int {
	if p.X < 0 || p.Y < 0 || p.X >= s.Width || p.Y >= s.Height {
		return -1
	}
	return s.Labels[p.Y*s.Width+p.X]
}

// Reachable returns the ids of the reachable regions in ascending order.
func (s *Segmentation) Reachable() []int {
	var ids []int
	for _, r := range s.Regions {
		if r.Reachable {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Option configures Segment.
type Option func(*Options)

// Options holds Segment parameters.
type Options struct {
	Logger *zap.Logger
}

// DefaultOptions returns a no-op logger.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
