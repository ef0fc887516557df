// Package grid models a 2D occupancy grid as produced by a robot mapping
// process, together with the raster primitives the topological mapper needs.
//
// What:
//
//   - Grid is an immutable W×H raster of CellState {Free, Occupied, Unknown}
//     with a resolution (meters/pixel) and a world origin (pixel (0,0)).
//   - Pixel↔world conversion (ToWorld / ToPixel) on orb.Point.
//   - Connected-component labelling with Conn4 or Conn8 connectivity.
//   - 4-connected Bresenham lines and a cell-traversal line-of-sight test.
//   - Disk inflation of Occupied cells by a clearance radius.
//   - Loading: ASCII text grids and ROS-style map descriptors (YAML + image).
//
// Complexity:
//
//   - ConnectedComponents: O(W×H×d), Memory: O(W×H)   (d = 4 or 8).
//   - Line4:               O(|dx|+|dy|).
//   - LineOfSight:         O(|dx|+|dy|).
//   - Inflate:             O(W×H×r²) worst case, r = radius in pixels.
//
// Errors:
//
//   - ErrEmptyGrid: grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrCellCount: flat cell slice does not match width×height.
//   - ErrBadResolution / ErrBadOrigin: invalid metadata.
//   - ErrBadRadius: negative or non-finite inflation radius.
//   - ErrBadCell: unknown symbol in a text grid.
//   - ErrMapDescriptor: malformed map descriptor.
package grid
