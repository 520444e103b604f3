package region

import (
	"image"
)

// Point is a single corner of a region descriptor.
//
// Both coordinates are pointers so that a descriptor decoded from JSON can
// distinguish a missing "x" or "y" from a zero coordinate.
type Point struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

// Pt builds a fully populated Point.
func Pt(x, y int) Point {
	return Point{X: &x, Y: &y}
}

// Rect is an axis-aligned rectangle normalized from four corner points.
//
// Rects are immutable except for ToBeBlurred, which user interaction flips
// to exclude or re-include a region from redaction.
type Rect struct {
	LeftX       int  `json:"left_x"`
	TopY        int  `json:"top_y"`
	Width       int  `json:"width"`
	Height      int  `json:"height"`
	ToBeBlurred bool `json:"to_be_blurred"`
}

// RightX returns the maximum x coordinate of the original corner points.
func (r Rect) RightX() int {
	return r.LeftX + r.Width - 1
}

// BottomY returns the maximum y coordinate of the original corner points.
func (r Rect) BottomY() int {
	return r.TopY + r.Height - 1
}

// Area returns Width × Height in square pixels.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Contains reports whether (x, y) lies inside the rectangle's bounding box.
// Both edges are inclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.LeftX) && x <= float64(r.RightX()) &&
		y >= float64(r.TopY) && y <= float64(r.BottomY())
}

// Bounds returns the pixel rectangle covered by r as a half-open
// image.Rectangle. Intersect it with the image bounds before use.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.LeftX, r.TopY, r.LeftX+r.Width, r.TopY+r.Height)
}

// MakeRect validates four corner points and normalizes them into a Rect.
//
// The rules are applied in order and the first failure is returned as a
// *RectError wrapping one of the Err* kinds:
//
//  1. exactly 4 points (ErrWrongPointCount)
//  2. every point has x and y (ErrMissingCoordinate)
//  3. no two points are identical (ErrDuplicatePoints)
//  4. every x is the minimum or maximum x, every y is the minimum or
//     maximum y (ErrNotAxisAligned)
//  5. minimum and maximum differ on both axes (ErrDegenerateGeometry)
//  6. no coordinate is negative (ErrNegativeCoordinate)
//  7. maximum x ≤ imageWidth and maximum y ≤ imageHeight (ErrOutOfBounds)
//
// Four distinct points whose coordinates are each drawn from two options per
// axis must occupy all four corners, so rules 1-4 together prove the
// descriptor is an axis-aligned rectangle.
//
// The returned Rect has ToBeBlurred set.
func MakeRect(points []Point, imageWidth, imageHeight int) (Rect, error) {
	if len(points) != 4 {
		return Rect{}, rectErrorf(ErrWrongPointCount,
			"rectangle must contain exactly 4 corner points, got %d", len(points))
	}

	for i, p := range points {
		if p.X == nil {
			return Rect{}, rectErrorf(ErrMissingCoordinate, "point %d has no x", i)
		}
		if p.Y == nil {
			return Rect{}, rectErrorf(ErrMissingCoordinate, "point %d has no y", i)
		}
	}

	for i := 0; i < len(points); i++ {
		for j := 0; j < i; j++ {
			if *points[i].X == *points[j].X && *points[i].Y == *points[j].Y {
				return Rect{}, rectErrorf(ErrDuplicatePoints,
					"point %d equals point %d (%d,%d)", i, j, *points[i].X, *points[i].Y)
			}
		}
	}

	leftX, topY := *points[0].X, *points[0].Y
	rightX, bottomY := leftX, topY
	for _, p := range points[1:] {
		leftX = min(leftX, *p.X)
		rightX = max(rightX, *p.X)
		topY = min(topY, *p.Y)
		bottomY = max(bottomY, *p.Y)
	}

	for _, p := range points {
		if *p.X != leftX && *p.X != rightX {
			return Rect{}, rectErrorf(ErrNotAxisAligned,
				"point (%d,%d) x is neither minimum %d nor maximum %d", *p.X, *p.Y, leftX, rightX)
		}
		if *p.Y != topY && *p.Y != bottomY {
			return Rect{}, rectErrorf(ErrNotAxisAligned,
				"point (%d,%d) y is neither minimum %d nor maximum %d", *p.X, *p.Y, topY, bottomY)
		}
	}

	if leftX == rightX || topY == bottomY {
		return Rect{}, rectErrorf(ErrDegenerateGeometry,
			"rectangle (%d,%d)-(%d,%d) has zero width or height", leftX, topY, rightX, bottomY)
	}

	if leftX < 0 {
		return Rect{}, rectErrorf(ErrNegativeCoordinate, "negative x %d", leftX)
	}
	if topY < 0 {
		return Rect{}, rectErrorf(ErrNegativeCoordinate, "negative y %d", topY)
	}

	if rightX > imageWidth {
		return Rect{}, rectErrorf(ErrOutOfBounds, "x %d exceeds image width %d", rightX, imageWidth)
	}
	if bottomY > imageHeight {
		return Rect{}, rectErrorf(ErrOutOfBounds, "y %d exceeds image height %d", bottomY, imageHeight)
	}

	return Rect{
		LeftX:       leftX,
		TopY:        topY,
		Width:       rightX - leftX + 1,
		Height:      bottomY - topY + 1,
		ToBeBlurred: true,
	}, nil
}

// Active returns the rects with ToBeBlurred set, preserving order.
func Active(rects []Rect) []Rect {
	active := make([]Rect, 0, len(rects))
	for _, r := range rects {
		if r.ToBeBlurred {
			active = append(active, r)
		}
	}
	return active
}
