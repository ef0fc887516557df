package voronoi

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/topomap/grid"
)

// Sentinel errors for Voronoi search.
var (
	// ErrNilGrid is returned when either grid is nil.
	ErrNilGrid = errors.New("voronoi: grid is nil")
	// ErrGridMismatch is returned when the inflated and source grids differ in shape.
	ErrGridMismatch = errors.New("voronoi: inflated and source grids differ in shape")
	// ErrBadClearance is returned for a non-positive or non-finite clearance threshold.
	ErrBadClearance = errors.New("voronoi: clearance threshold must be positive and finite")
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("voronoi: invalid option supplied")
)

// BasisPoint is an obstacle pixel tagged with its distance to a reference pixel.
type BasisPoint struct {
	grid.Pixel
	Distance float64
}

// Point is a free pixel equidistant (within one pixel) to at least two walls.
// Basis is sorted by ascending distance.
type Point struct {
	grid.Pixel
	Basis            []BasisPoint
	AverageClearance float64
}

// BasisDistance is the distance to the nearest basis point.
func (p Point) BasisDistance() float64 {
	if len(p.Basis) == 0 {
		return 0
	}
	return p.Basis[0].Distance
}

// Option configures Search.
type Option func(*Options)

// Options holds Search parameters.
type Options struct {
	Ctx     context.Context
	Logger  *zap.Logger
	Workers int

	err error
}

// DefaultOptions returns a single worker, a background context and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		Logger:  zap.NewNop(),
		Workers: 1,
	}
}

// WithContext sets a context checked between rows.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithWorkers splits the scan into n row bands processed concurrently.
// The output is identical for any n ≥ 1.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: workers must be at least 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}
