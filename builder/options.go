// SPDX-License-Identifier: MIT
// Package: topomap/builder
//
// options.go — functional options for Build.
//
// Invalid values are recorded and surfaced as ErrOptionViolation by Build.

package builder

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Option customizes Build.
type Option func(*Options)

// Options holds the resolved Build parameters.
type Options struct {
	// Logger receives per-pass statistics at Debug level.
	Logger *zap.Logger
	// MergeThresholdArea is the area, in square meters, from which a region
	// vertex with more than two neighbors is demoted. Values ≤ 0 disable pass 3.
	MergeThresholdArea float64

	err error
}

// DefaultOptions returns a no-op logger and pass 3 disabled.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

// WithLogger sets the logger. nil keeps the current one.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMergeThresholdArea sets the demotion area in square meters.
func WithMergeThresholdArea(area float64) Option {
	return func(o *Options) {
		if math.IsNaN(area) || math.IsInf(area, 0) {
			o.err = fmt.Errorf("%w: merge threshold area %v", ErrOptionViolation, area)
			return
		}
		o.MergeThresholdArea = area
	}
}
