package voronoi

import (
	"slices"
)

// accumulator applies the basis clustering rule for one search.
type accumulator struct {
	// near is the distance below which two obstacle pixels are one wall.
	near   float64
	tracer *wallTracer
}

// add offers cand to basis and returns the resulting basis set, sorted by
// distance. basis is never modified.
//
// Rules, applied over the merged set in ascending distance:
//  1. points farther than the minimum distance + 1 are dropped;
//  2. a point closer than near to an already kept point is dropped;
//  3. a point joined to a kept point by a wall walk of at most
//     2 × minimum distance steps is dropped.
func (a *accumulator) add(basis []BasisPoint, cand BasisPoint) []BasisPoint {
	if len(basis) == 0 {
		return []BasisPoint{cand}
	}
	if cand.Distance > basis[0].Distance+1 {
		return basis
	}

	merged := make([]BasisPoint, 0, len(basis)+1)
	merged = append(merged, basis...)
	at, _ := slices.BinarySearchFunc(merged, cand.Distance, func(b BasisPoint, d float64) int {
		// after any equal distances
		if b.Distance <= d {
			return -1
		}
		return 1
	})
	merged = slices.Insert(merged, at, cand)

	minDist := merged[0].Distance
	depth := int(2 * minDist)
	kept := make([]BasisPoint, 0, len(merged))
	for _, p := range merged {
		if p.Distance > minDist+1 {
			break
		}
		if a.sameWall(kept, p, depth) {
			continue
		}
		kept = append(kept, p)
	}

	return kept
}

func (a *accumulator) sameWall(kept []BasisPoint, p BasisPoint, depth int) bool {
	for _, k := range kept {
		if p.Pixel.Distance(k.Pixel) < a.near {
			return true
		}
		if a.tracer.connected(p.Pixel, k.Pixel, depth) {
			return true
		}
	}
	return false
}

func averageDistance(basis []BasisPoint) float64 {
	sum := 0.0
	for _, b := range basis {
		sum += b.Distance
	}
	return sum / float64(len(basis))
}
