package redact

import (
	"math"

	"github.com/ironsheep/image-redact-mcp/internal/region"
)

// radiusPerArea is the blur radius added per 100×100 pixels of average
// region area.
const radiusPerArea = 12.0

// DefaultRadius picks a blur radius for rects from the average area of the
// active ones. Larger regions need a stronger blur to hide their content.
// The result is within [1, MaxRadius], or 0 when no region is active.
func DefaultRadius(rects []region.Rect) int {
	active := region.Active(rects)
	if len(active) == 0 {
		return 0
	}

	total := 0
	for _, r := range active {
		total += r.Area()
	}
	avg := float64(total) / float64(len(active))

	radius := int(math.Ceil(avg / (100 * 100) * radiusPerArea))
	if radius < 1 {
		return 1
	}
	if radius > MaxRadius {
		return MaxRadius
	}
	return radius
}
