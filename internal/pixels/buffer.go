// Package pixels provides the pixel buffer abstraction the redaction
// strategies operate on.
//
// Buffer is the capability the algorithms need: width, height, and per-pixel
// read and write. NRGBA is the concrete implementation backed by
// *image.NRGBA; hosts with another rendering surface can supply their own
// Buffer.
package pixels

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Color is an RGBA sample used as an accumulator.
//
// Components are in 0-255 units but are not clamped while accumulating;
// clamping and rounding happen when the color is written to a buffer.
type Color struct {
	R, G, B, A float64
}

// Add returns the component-wise sum c + o.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A + o.A}
}

// Scale returns c with every component multiplied by k.
func (c Color) Scale(k float64) Color {
	return Color{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A * k}
}

// NRGBA converts c to an 8-bit non-premultiplied color, rounding and
// clamping each component to 0-255.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: clamp8(c.R), G: clamp8(c.G), B: clamp8(c.B), A: clamp8(c.A)}
}

// FromNRGBA converts an 8-bit color to an accumulator Color.
func FromNRGBA(c color.NRGBA) Color {
	return Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

func clamp8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Buffer is a rectangular grid of RGBA samples with origin at (0, 0).
type Buffer interface {
	Width() int
	Height() int
	At(x, y int) Color
	Set(x, y int, c Color)
}

// NRGBA is a Buffer backed by an *image.NRGBA whose bounds start at (0, 0).
type NRGBA struct {
	img *image.NRGBA
}

// New creates a transparent black buffer of the given size.
func New(width, height int) *NRGBA {
	return &NRGBA{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// FromImage copies img into a new buffer. The copy is independent of img and
// its origin is moved to (0, 0).
func FromImage(img image.Image) *NRGBA {
	return &NRGBA{img: imaging.Clone(img)}
}

// Clone copies any Buffer into a new NRGBA buffer.
func Clone(b Buffer) *NRGBA {
	if nb, ok := b.(*NRGBA); ok {
		return FromImage(nb.img)
	}
	out := New(b.Width(), b.Height())
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			out.Set(x, y, b.At(x, y))
		}
	}
	return out
}

// Width returns the buffer width in pixels.
func (b *NRGBA) Width() int { return b.img.Rect.Dx() }

// Height returns the buffer height in pixels.
func (b *NRGBA) Height() int { return b.img.Rect.Dy() }

// At returns the sample at (x, y), or the zero Color outside the buffer.
func (b *NRGBA) At(x, y int) Color {
	if !b.in(x, y) {
		return Color{}
	}
	return FromNRGBA(b.img.NRGBAAt(x, y))
}

// Set writes c at (x, y). Writes outside the buffer are ignored.
func (b *NRGBA) Set(x, y int, c Color) {
	if !b.in(x, y) {
		return
	}
	b.img.SetNRGBA(x, y, c.NRGBA())
}

// Image exposes the backing image. Mutating it mutates the buffer.
func (b *NRGBA) Image() *image.NRGBA {
	return b.img
}

// SubBuffer copies the part of b inside r into a new buffer. Pixel (0, 0) of
// the result is r.Min of b. r is clipped to the buffer bounds first.
func (b *NRGBA) SubBuffer(r image.Rectangle) *NRGBA {
	r = r.Intersect(b.img.Rect)
	return &NRGBA{img: imaging.Crop(b.img, r)}
}

func (b *NRGBA) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.img.Rect.Dx() && y < b.img.Rect.Dy()
}

// Bounds returns the buffer rectangle with origin (0, 0).
func Bounds(b Buffer) image.Rectangle {
	return image.Rect(0, 0, b.Width(), b.Height())
}

// ToImage returns b as an image.Image, copying only when b is not an NRGBA.
func ToImage(b Buffer) *image.NRGBA {
	if nb, ok := b.(*NRGBA); ok {
		return nb.img
	}
	return Clone(b).img
}

// Equal reports whether a and b have the same size and identical samples.
func Equal(a, b Buffer) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.At(x, y) != b.At(x, y) {
				return false
			}
		}
	}
	return true
}

// EqualIn reports whether a and b hold identical samples inside r.
func EqualIn(a, b Buffer, r image.Rectangle) bool {
	r = r.Intersect(Bounds(a)).Intersect(Bounds(b))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if a.At(x, y) != b.At(x, y) {
				return false
			}
		}
	}
	return true
}
