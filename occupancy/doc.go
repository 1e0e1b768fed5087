// Package occupancy rasterizes vector maze descriptions into an immutable
// binary occupancy grid and provides the grid geometry shared by the
// sensor, the explored-region tracker and the pathfinder.
//
// What:
//
//   - Build scales line segments by a resolution factor and draws them with
//     integer Bresenham into a FREE-initialized grid (union semantics).
//   - Grid is a read-only row-major 0/1 matrix addressed by (row, column).
//   - Ray steps a unit direction vector out of a cell and discretizes every
//     step with RoundHalfEven, the single rounding rule of the module.
//   - Regions labels 4-connected components of FREE cells.
//   - WriteText/ReadText and WriteBinary/ReadBinary persist the grid
//     bit-for-bit; Preview renders a small ASCII view.
//
// Complexity:
//
//   - Build:   O(S·L + W×H), S = segments, L = longest rasterized segment.
//   - Regions: O(W×H×4), Memory: O(W×H).
//
// Errors:
//
//   - ErrNoSegments:      Build called without segments.
//   - ErrBadResolution:   resolution ≤ 0.
//   - ErrEmptyGrid:       FromRows/ReadText given no rows or no columns.
//   - ErrNonRectangular:  rows of differing lengths.
//   - ErrBadCell:         a cell value other than 0 or 1.
//   - ErrBadDump:         a text or binary dump that cannot be decoded.
package occupancy
