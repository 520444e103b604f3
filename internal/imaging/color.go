package imaging

import (
	"image"
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int // Left edge X coordinate (inclusive)
	Y1 int // Top edge Y coordinate (inclusive)
	X2 int // Right edge X coordinate (exclusive)
	Y2 int // Bottom edge Y coordinate (exclusive)
}

// ColorFrequency represents a palette color and its share of the image.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#rrggbb" (bucket mean)
	Percentage float64  `json:"percentage"` // Percentage of counted pixels (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components (bucket mean)
	HSL        HSLColor `json:"hsl"`        // HSL representation
}

// DominantColorsResult contains the palette of an image.
//
// Colors are sorted by frequency in descending order (most common first).
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"` // Colors sorted by frequency (descending)
}

// minPaletteAlpha is the alpha below which a pixel is treated as transparent
// and left out of the palette.
const minPaletteAlpha = 125

// mergeDistance is the CIE Lab distance under which two palette buckets are
// folded into one.
const mergeDistance = 0.04

type bucket struct {
	count   int
	r, g, b float64 // running sums of 8-bit components
	col     colorful.Color
}

func (b *bucket) mean() colorful.Color {
	n := float64(b.count)
	return colorful.Color{R: b.r / n / 255, G: b.g / n / 255, B: b.b / n / 255}
}

// DominantColors extracts the N most common colors from an image or region.
//
// Parameters:
//   - img: The source image to analyze.
//   - count: Maximum number of colors to return.
//   - region: Optional rectangular region to analyze. If nil, the entire image
//     is analyzed.
//
// # Color Quantization
//
// Pixels are grouped by dividing each 8-bit component by 16, so colors within
// 16 units of each other (per component) share a bucket. Unlike a plain
// histogram, each bucket reports the mean of the pixels it holds rather than
// the bucket corner, so a flat #FAFAFA image yields #fafafa. Buckets whose
// means lie within a small CIE Lab distance of a more frequent bucket are
// merged into it, which keeps gradients from splitting into many near
// duplicates.
//
// Pixels with alpha below 125 are ignored. An image with no counted pixels
// yields an empty palette.
func DominantColors(img image.Image, count int, region *Region) *DominantColorsResult {
	bounds := img.Bounds()
	if region != nil {
		bounds = image.Rect(region.X1, region.Y1, region.X2, region.Y2).Intersect(bounds)
	}

	buckets := make(map[int]*bucket)
	totalPixels := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < minPaletteAlpha {
				continue
			}
			key := int(c.R>>4)<<8 | int(c.G>>4)<<4 | int(c.B>>4)
			bk, ok := buckets[key]
			if !ok {
				bk = &bucket{}
				buckets[key] = bk
			}
			bk.count++
			bk.r += float64(c.R)
			bk.g += float64(c.G)
			bk.b += float64(c.B)
			totalPixels++
		}
	}

	if totalPixels == 0 {
		return &DominantColorsResult{Colors: []ColorFrequency{}}
	}

	sorted := make([]*bucket, 0, len(buckets))
	for _, bk := range buckets {
		bk.col = bk.mean()
		sorted = append(sorted, bk)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].col.Hex() < sorted[j].col.Hex()
	})

	merged := make([]*bucket, 0, len(sorted))
	for _, bk := range sorted {
		folded := false
		for _, m := range merged {
			if m.col.DistanceLab(bk.col) < mergeDistance {
				m.count += bk.count
				m.r += bk.r
				m.g += bk.g
				m.b += bk.b
				folded = true
				break
			}
		}
		if !folded {
			merged = append(merged, bk)
		}
	}

	for _, m := range merged {
		m.col = m.mean()
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].count > merged[j].count
	})

	if count > 0 && len(merged) > count {
		merged = merged[:count]
	}

	colors := make([]ColorFrequency, 0, len(merged))
	for _, m := range merged {
		r, g, b := m.col.Clamped().RGB255()
		colors = append(colors, ColorFrequency{
			Hex:        m.col.Clamped().Hex(),
			Percentage: float64(m.count) / float64(totalPixels) * 100,
			RGB:        RGBColor{R: r, G: g, B: b},
			HSL:        toHSL(m.col),
		})
	}

	return &DominantColorsResult{Colors: colors}
}

// DominantColor returns the single most common color of img, fully opaque.
// ok is false when img has no opaque pixels.
func DominantColor(img image.Image) (c color.NRGBA, ok bool) {
	palette := DominantColors(img, 1, nil)
	if len(palette.Colors) == 0 {
		return color.NRGBA{}, false
	}
	rgb := palette.Colors[0].RGB
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}, true
}

func toHSL(c colorful.Color) HSLColor {
	h, s, l := c.Clamped().Hsl()
	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}
