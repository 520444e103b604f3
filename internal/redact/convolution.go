package redact

import (
	"image"

	"github.com/ironsheep/image-redact-mcp/internal/pixels"
	"github.com/ironsheep/image-redact-mcp/internal/region"
)

// marginDivisor sets the smoothing margin to a seventh of the region side.
const marginDivisor = 7

// ConvolutionBlur blurs each active region by direct convolution.
//
// Regions are processed in order and each one reads the output left by the
// regions before it, so overlapping regions are blurred more than once.
type ConvolutionBlur struct{}

// Apply implements Strategy.
func (ConvolutionBlur) Apply(img pixels.Buffer, regions []region.Rect, radius int) *pixels.NRGBA {
	out := pixels.Clone(img)
	radius = clampRadius(radius)
	if radius <= 0 {
		return out
	}

	full := BuildKernel(radius)
	half := BuildKernel(smoothingSize(radius))

	for _, rb := range activeBounds(regions, pixels.Bounds(out)) {
		convolveRegion(out, rb, full, half)
	}
	return out
}

// expandByMargins grows rb by up to a seventh of its width or height on each
// side, never past the image edge.
func expandByMargins(rb, bounds image.Rectangle) image.Rectangle {
	mx := rb.Dx() / marginDivisor
	my := rb.Dy() / marginDivisor
	return image.Rect(
		rb.Min.X-min(rb.Min.X-bounds.Min.X, mx),
		rb.Min.Y-min(rb.Min.Y-bounds.Min.Y, my),
		rb.Max.X+min(bounds.Max.X-rb.Max.X, mx),
		rb.Max.Y+min(bounds.Max.Y-rb.Max.Y, my),
	)
}

func convolveRegion(out *pixels.NRGBA, rb image.Rectangle, full, half Kernel) {
	window := expandByMargins(rb, pixels.Bounds(out))
	src := out.SubBuffer(window)

	for sy := 0; sy < src.Height(); sy++ {
		for sx := 0; sx < src.Width(); sx++ {
			p := image.Pt(window.Min.X+sx, window.Min.Y+sy)
			k := half
			if p.In(rb) {
				k = full
			}
			out.Set(p.X, p.Y, convolvePixel(src, sx, sy, k))
		}
	}
}

// convolvePixel accumulates k over src centered at (x, y). Samples outside src
// take the color of (x, y) itself.
func convolvePixel(src *pixels.NRGBA, x, y int, k Kernel) pixels.Color {
	center := src.At(x, y)
	w, h := src.Width(), src.Height()

	var acc pixels.Color
	for j := 0; j < k.Size(); j++ {
		sy := y + k.offset(j)
		for i := 0; i < k.Size(); i++ {
			sx := x + k.offset(i)
			sample := center
			if sx >= 0 && sy >= 0 && sx < w && sy < h {
				sample = src.At(sx, sy)
			}
			acc = acc.Add(sample.Scale(k.At(i, j)))
		}
	}
	return acc
}
