package critical

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/topomap/grid"
	"github.com/katalvlaran/topomap/voronoi"
)

// Sentinel errors.
var (
	// ErrBadEpsilon is returned for a non-positive or non-finite neighborhood radius.
	ErrBadEpsilon = errors.New("critical: epsilon must be positive and finite")
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("critical: invalid option supplied")
)

// DefaultStraightness is the maximum deviation from a straight angle (π/12, 15°)
// allowed between the two basis points of a critical point.
const DefaultStraightness = math.Pi / 12

// Point is a critical point. It always has exactly two basis points.
// ClearanceDiff is how much lower its clearance is than the mean of its neighborhood.
type Point struct {
	voronoi.Point
	ClearanceDiff float64
}

// Line returns the two basis pixels that bound the passage.
func (p Point) Line() (grid.Pixel, grid.Pixel) {
	return p.Basis[0].Pixel, p.Basis[1].Pixel
}

// Angle returns the angle at p between its first two basis points, in [0, π].
func Angle(p voronoi.Point) float64 {
	if len(p.Basis) < 2 {
		return 0
	}
	ax, ay := float64(p.Basis[0].X-p.X), float64(p.Basis[0].Y-p.Y)
	bx, by := float64(p.Basis[1].X-p.X), float64(p.Basis[1].Y-p.Y)
	na, nb := math.Hypot(ax, ay), math.Hypot(bx, by)
	if na == 0 || nb == 0 {
		return 0
	}
	cos := (ax*bx + ay*by) / (na * nb)
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}

// Option configures Extract.
type Option func(*Options)

// Options holds Extract parameters.
type Options struct {
	Logger       *zap.Logger
	Straightness float64

	err error
}

// DefaultOptions returns a no-op logger and DefaultStraightness.
func DefaultOptions() Options {
	return Options{
		Logger:       zap.NewNop(),
		Straightness: DefaultStraightness,
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

// WithStraightness sets the allowed deviation from a straight angle, in radians within [0, π].
func WithStraightness(tol float64) Option {
	return func(o *Options) {
		if tol < 0 || tol > math.Pi || math.IsNaN(tol) {
			o.err = fmt.Errorf("%w: straightness must be within [0, π] (%v)", ErrOptionViolation, tol)
			return
		}
		o.Straightness = tol
	}
}
