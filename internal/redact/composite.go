package redact

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"

	"github.com/ironsheep/image-redact-mcp/internal/pixels"
	"github.com/ironsheep/image-redact-mcp/internal/region"
)

// CompositeBlur blurs the whole image once with a Gaussian of the given
// radius and blends it into the active regions through a matte.
//
// The matte is 1 inside every region and falls off outside them over a
// Gaussian of half the radius, so the blur fades out instead of ending at a
// hard edge. Where the matte is 0 the original pixels are copied exactly.
// Overlapping regions are treated as their union.
type CompositeBlur struct{}

// Apply implements Strategy.
func (CompositeBlur) Apply(img pixels.Buffer, regions []region.Rect, radius int) *pixels.NRGBA {
	out := pixels.Clone(img)
	radius = clampRadius(radius)
	if radius <= 0 {
		return out
	}

	bounds := pixels.Bounds(out)
	rects := activeBounds(regions, bounds)
	if len(rects) == 0 {
		return out
	}

	blurred := blur.Gaussian(out.Image(), float64(radius))
	matte := featheredMatte(bounds, rects, smoothingSize(radius))

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			m := matte[y*bounds.Dx()+x]
			if m == 0 {
				continue
			}
			bg := color.NRGBAModel.Convert(blurred.At(x, y)).(color.NRGBA)
			orig := out.At(x, y)
			out.Set(x, y, orig.Scale(1-m).Add(pixels.FromNRGBA(bg).Scale(m)))
		}
	}
	return out
}

// featheredMatte returns per-pixel blend weights in [0, 1], row-major.
func featheredMatte(bounds image.Rectangle, rects []image.Rectangle, feather int) []float64 {
	mask := image.NewRGBA(bounds)
	draw.Draw(mask, bounds, image.NewUniform(color.Black), image.Point{}, draw.Src)
	for _, r := range rects {
		draw.Draw(mask, r, image.NewUniform(color.White), image.Point{}, draw.Src)
	}
	soft := blur.Gaussian(mask, float64(feather))

	matte := make([]float64, bounds.Dx()*bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			i := y*bounds.Dx() + x
			if mask.RGBAAt(x, y).R == 0xff {
				matte[i] = 1
				continue
			}
			matte[i] = float64(soft.RGBAAt(x, y).R) / 0xff
		}
	}
	return matte
}
