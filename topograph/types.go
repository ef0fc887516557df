package topograph

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// Sentinel errors for graph operations.
var (
	// ErrVertexNotFound indicates an operation referenced a missing or removed vertex.
	ErrVertexNotFound = errors.New("topograph: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("topograph: edge not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("topograph: self-loop not allowed")

	// ErrFormat indicates an unknown file format or a malformed document.
	ErrFormat = errors.New("topograph: bad graph document")

	// ErrVersion indicates a document written by an incompatible format version.
	ErrVersion = errors.New("topograph: unsupported format version")
)

// Kind tells what a vertex stands for.
type Kind uint8

const (
	// KindRegion is the centroid of a free-space region.
	KindRegion Kind = iota
	// KindCritical is a narrow passage kept as its own waypoint.
	KindCritical
)

// String returns "region" or "critical".
func (k Kind) String() string {
	switch k {
	case KindRegion:
		return "region"
	case KindCritical:
		return "critical"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "region":
		return KindRegion, nil
	case "critical":
		return KindCritical, nil
	}
	return 0, fmt.Errorf("%w: unknown vertex kind %q", ErrFormat, s)
}

// Vertex is a graph node.
type Vertex struct {
	// ID is the arena slot, assigned by AddVertex.
	ID   int
	Kind Kind
	// Location is the world position, in meters.
	Location orb.Point
	// Pixel is the same position in grid coordinates.
	Pixel orb.Point
	// Radius approximates the extent around Location, in meters.
	Radius float64
	// Pixels is the area of the source region, 0 for critical vertices.
	Pixels int
	// Region and Critical identify the source region or critical point, -1 when absent.
	Region   int
	Critical int
}

// Edge is an undirected edge between A and B, A < B.
type Edge struct {
	A, B   int
	Weight float64
	// Critical lists the critical points the edge passes through.
	Critical []int
}

// Other returns the endpoint opposite id.
func (e Edge) Other(id int) int {
	if e.A == id {
		return e.B
	}
	return e.A
}

func (e *Edge) clone() Edge {
	c := *e
	c.Critical = append([]int(nil), e.Critical...)
	return c
}
