// Package grid defines cell states, connectivity, pixels and sentinel errors.
package grid

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyGrid indicates the grid has no rows or no columns.
	ErrEmptyGrid = errors.New("grid: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrCellCount indicates a flat cell slice whose length is not width*height.
	ErrCellCount = errors.New("grid: cell count does not match width*height")
	// ErrBadResolution indicates a resolution that is not positive and finite.
	ErrBadResolution = errors.New("grid: resolution must be positive and finite")
	// ErrBadOrigin indicates an origin with NaN or infinite coordinates.
	ErrBadOrigin = errors.New("grid: origin must be finite")
	// ErrBadRadius indicates a negative or non-finite inflation radius.
	ErrBadRadius = errors.New("grid: inflation radius must be non-negative and finite")
	// ErrBadCell indicates an unrecognised symbol in a text grid.
	ErrBadCell = errors.New("grid: unrecognised cell symbol")
	// ErrMapDescriptor indicates a malformed map descriptor.
	ErrMapDescriptor = errors.New("grid: invalid map descriptor")
)

// CellState is the occupancy of a single cell.
type CellState uint8

const (
	// Free is traversable space.
	Free CellState = iota
	// Occupied is an obstacle.
	Occupied
	// Unknown was never observed by the mapping process.
	Unknown
)

// String returns a lowercase name for the state.
func (s CellState) String() string {
	switch s {
	case Free:
		return "free"
	case Occupied:
		return "occupied"
	case Unknown:
		return "unknown"
	}
	return "invalid"
}

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

var (
	offsets4 = []Pixel{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	offsets8 = []Pixel{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
)

// Offsets returns the neighbor offsets for c. The returned slice must not be modified.
func (c Connectivity) Offsets() []Pixel {
	if c == Conn8 {
		return offsets8
	}
	return offsets4
}

// Pixel is a discrete grid coordinate.
type Pixel struct {
	X, Y int
}

// Add returns p translated by q.
func (p Pixel) Add(q Pixel) Pixel {
	return Pixel{X: p.X + q.X, Y: p.Y + q.Y}
}

// Distance returns the Euclidean distance between p and q in pixels.
func (p Pixel) Distance(q Pixel) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// Point returns p as a pixel-space orb.Point.
func (p Pixel) Point() orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}
