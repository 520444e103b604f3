// Package region validates untrusted four-corner region descriptors and
// normalizes them into axis-aligned rectangles.
//
// Region descriptors come from an upstream detector as arrays of exactly four
// points in original image pixel coordinates. The detector is not trusted:
// points may be missing, duplicated, rotated, or outside the image. MakeRect
// checks a single descriptor and reports the first failed rule as a typed
// error. ParseRegions and FromQuads apply MakeRect to a batch and drop only the
// offending descriptors, so one bad rectangle never fails the whole batch.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left corner. A Rect is the
// inclusive bounding box of its corner points:
//
//	Width  = RightX  - LeftX + 1
//	Height = BottomY - TopY  + 1
//
// Corner points may lie on the image edge itself (x == imageWidth), so the last
// column or row of a Rect can fall one pixel outside the image. Consumers clip
// with Bounds().Intersect before touching pixels.
package region
