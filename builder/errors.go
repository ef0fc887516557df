// SPDX-License-Identifier: MIT
// Package: topomap/builder
//
// errors.go — sentinel errors.
//
// Callers branch with errors.Is; implementations attach context with %w.

package builder

import (
	"errors"
	"fmt"
)

// ErrNilInput indicates a nil segmentation or grid.
var ErrNilInput = errors.New("builder: nil segmentation or grid")

// ErrShapeMismatch indicates that the segmentation and the grid differ in size.
var ErrShapeMismatch = errors.New("builder: segmentation and grid differ in size")

// ErrInvariant indicates that graph construction produced or met an
// inconsistent structure. It is fatal for the run.
var ErrInvariant = errors.New("builder: invariant violated")

// ErrOptionViolation indicates that an Option received a meaningless value.
var ErrOptionViolation = errors.New("builder: invalid option value")

// invariantf wraps ErrInvariant with a formatted message.
func invariantf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
