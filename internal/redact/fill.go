package redact

import (
	"github.com/ironsheep/image-redact-mcp/internal/imaging"
	"github.com/ironsheep/image-redact-mcp/internal/pixels"
	"github.com/ironsheep/image-redact-mcp/internal/region"
)

// Fill paints every active region with the dominant color of the whole
// image. The radius is ignored. An image with no opaque pixels is filled
// with opaque black.
type Fill struct{}

// Apply implements Strategy.
func (Fill) Apply(img pixels.Buffer, regions []region.Rect, _ int) *pixels.NRGBA {
	out := pixels.Clone(img)

	rects := activeBounds(regions, pixels.Bounds(out))
	if len(rects) == 0 {
		return out
	}

	fill := pixels.Color{A: 255}
	if c, ok := imaging.DominantColor(out.Image()); ok {
		fill = pixels.FromNRGBA(c)
	}

	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				out.Set(x, y, fill)
			}
		}
	}
	return out
}
