// Package radar simulates a 360° range sensor on an occupancy grid.
//
// A Radar sits on a grid cell and casts rays at integer angles. Each ray is
// stepped one unit at a time (occupancy.Ray) for at most MaxRange steps:
//
//   - leaving the grid reports Distance = step count and the rounded,
//     out-of-bounds cell as Hit (the map edge is "detected");
//   - striking an OCCUPIED cell reports the Euclidean distance to the
//     continuous step point and the rounded cell as Hit;
//   - exhausting the range reports Distance = MaxRange and no Hit.
//
// Edge and range readings are integral; only wall hits carry sub-step
// precision. Consumers rely on that asymmetry, so it is kept as is.
//
// Scan360 results are cached until the radar moves or its range changes.
//
// Errors:
//
//   - ErrOutOfBounds:  a position outside the grid.
//   - ErrBadRange:     a non-positive maximum range.
//   - ErrBadAngleStep: an angle step outside [1, 360].
//   - ErrNilGrid:      New called with a nil grid.
package radar
