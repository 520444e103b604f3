package detect

import (
	"image"

	"github.com/ironsheep/image-redact-mcp/internal/region"
)

// Quad returns the corners of r clockwise from the top-left.
func Quad(r image.Rectangle) []region.Point {
	return []region.Point{
		region.Pt(r.Min.X, r.Min.Y),
		region.Pt(r.Max.X, r.Min.Y),
		region.Pt(r.Max.X, r.Max.Y),
		region.Pt(r.Min.X, r.Max.Y),
	}
}

// rectsToQuads grows each rectangle by pad pixels, clips it to bounds, and
// converts it to a quad. Rectangles with no area after clipping are skipped.
// Coordinates are made relative to bounds.Min.
func rectsToQuads(rects []image.Rectangle, pad int, bounds image.Rectangle) [][]region.Point {
	quads := make([][]region.Point, 0, len(rects))
	for _, r := range rects {
		r = r.Inset(-pad).Intersect(bounds)
		if r.Dx() < 1 || r.Dy() < 1 {
			continue
		}
		quads = append(quads, Quad(r.Sub(bounds.Min)))
	}
	return quads
}
