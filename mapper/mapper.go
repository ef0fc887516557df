package mapper

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/topomap/builder"
	"github.com/katalvlaran/topomap/critical"
	"github.com/katalvlaran/topomap/grid"
	"github.com/katalvlaran/topomap/region"
	"github.com/katalvlaran/topomap/topograph"
	"github.com/katalvlaran/topomap/voronoi"
)

// Sentinel errors.
var (
	// ErrNilGrid is returned when Run is given a nil grid.
	ErrNilGrid = errors.New("mapper: grid is nil")
	// ErrInflater is returned when the inflater fails or changes the grid shape.
	ErrInflater = errors.New("mapper: inflation failed")
)

// Inflater dilates the obstacles of a grid by radius meters. It must return a
// grid of the same shape and must not modify its input.
type Inflater func(g *grid.Grid, radius float64) (*grid.Grid, error)

// Option configures a Mapper.
type Option func(*Mapper)

// WithInflater replaces grid.Inflate.
func WithInflater(f Inflater) Option {
	return func(m *Mapper) {
		if f != nil {
			m.inflate = f
		}
	}
}

// WithLogger sets the logger. Each stage logs under its own name.
func WithLogger(l *zap.Logger) Option {
	return func(m *Mapper) {
		if l != nil {
			m.log = l
		}
	}
}

// Mapper computes topological graphs. It is safe for concurrent use.
type Mapper struct {
	cfg     Config
	inflate Inflater
	log     *zap.Logger
}

// New validates cfg and returns a Mapper.
func New(cfg Config, opts ...Option) (*Mapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Mapper{
		cfg:     cfg,
		inflate: grid.Inflate,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Config returns the configuration the Mapper was built with.
func (m *Mapper) Config() Config { return m.cfg }

// Result holds the final graph and every intermediate product.
// Callers must treat it as read-only.
type Result struct {
	Source         *grid.Grid
	Inflated       *grid.Grid
	VoronoiPoints  []voronoi.Point
	CriticalPoints []critical.Point
	Segmentation   *region.Segmentation
	Build          *builder.Result
	// Graph is Build.Graph, in world coordinates.
	Graph *topograph.Graph
}

// Run computes the topological graph of source.
func (m *Mapper) Run(source *grid.Grid) (*Result, error) {
	return m.RunContext(context.Background(), source)
}

// RunContext is Run with a context checked during the Voronoi search.
func (m *Mapper) RunContext(ctx context.Context, source *grid.Grid) (*Result, error) {
	if source == nil {
		return nil, ErrNilGrid
	}
	start := time.Now()
	res := &Result{Source: source}

	inflated, err := m.inflate(source, m.cfg.ClearanceThreshold)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInflater, err)
	}
	if inflated == nil || !inflated.SameShape(source) {
		return nil, fmt.Errorf("%w: inflated grid does not match the source", ErrInflater)
	}
	res.Inflated = inflated

	workers := m.cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	res.VoronoiPoints, err = voronoi.Search(inflated, source, m.cfg.ClearanceThreshold,
		voronoi.WithContext(ctx),
		voronoi.WithLogger(m.log.Named("voronoi")),
		voronoi.WithWorkers(workers))
	if err != nil {
		return nil, err
	}

	res.CriticalPoints, err = critical.Extract(res.VoronoiPoints,
		m.cfg.CriticalEpsilon/source.Resolution(),
		critical.WithLogger(m.log.Named("critical")))
	if err != nil {
		return nil, err
	}

	res.Segmentation, err = region.Segment(source, res.CriticalPoints,
		region.WithLogger(m.log.Named("region")))
	if err != nil {
		return nil, err
	}

	res.Build, err = builder.Build(res.Segmentation, source,
		builder.WithLogger(m.log.Named("builder")),
		builder.WithMergeThresholdArea(m.cfg.MergeThresholdArea))
	if err != nil {
		return nil, err
	}
	res.Graph = res.Build.Graph

	m.log.Info("topological graph computed",
		zap.Int("width", source.Width()),
		zap.Int("height", source.Height()),
		zap.Int("voronoi", len(res.VoronoiPoints)),
		zap.Int("critical", len(res.CriticalPoints)),
		zap.Int("regions", len(res.Segmentation.Regions)),
		zap.Int("vertices", res.Graph.VertexCount()),
		zap.Int("edges", res.Graph.EdgeCount()),
		zap.Duration("elapsed", time.Since(start)))

	return res, nil
}
