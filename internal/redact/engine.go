package redact

import (
	"math"

	"github.com/ironsheep/image-redact-mcp/internal/pixels"
	"github.com/ironsheep/image-redact-mcp/internal/region"
)

// Engine renders one photo with its regions under the current strategy.
type Engine struct {
	strategy Strategy
	img      pixels.Buffer
	rects    []region.Rect
}

// NewEngine creates an Engine. rects is copied, so later toggles do not
// affect the caller's slice. A nil strategy selects ConvolutionBlur.
func NewEngine(strategy Strategy, img pixels.Buffer, rects []region.Rect) *Engine {
	if strategy == nil {
		strategy = ConvolutionBlur{}
	}
	return &Engine{
		strategy: strategy,
		img:      img,
		rects:    append([]region.Rect(nil), rects...),
	}
}

// Render applies the current strategy to the photo and returns a new buffer.
func (e *Engine) Render(radius int) *pixels.NRGBA {
	return e.strategy.Apply(e.img, e.rects, radius)
}

// ToggleRegionAt flips ToBeBlurred on every region containing the clicked
// point and reports whether any region was hit.
//
// (x, y) is in display coordinates of a view displayWidth×displayHeight in
// size. It is scaled to image coordinates before hit-testing. A non-positive
// display dimension means the photo is shown at its natural size on that axis.
func (e *Engine) ToggleRegionAt(x, y, displayWidth, displayHeight float64) bool {
	ix := scaleToImage(x, e.img.Width(), displayWidth)
	iy := scaleToImage(y, e.img.Height(), displayHeight)

	hit := false
	for i := range e.rects {
		if e.rects[i].Contains(ix, iy) {
			e.rects[i].ToBeBlurred = !e.rects[i].ToBeBlurred
			hit = true
		}
	}
	return hit
}

func scaleToImage(coord float64, imageDim int, displayDim float64) float64 {
	if displayDim <= 0 || math.IsNaN(displayDim) {
		return coord
	}
	return coord * float64(imageDim) / displayDim
}

// SetStrategy replaces the current strategy. A nil strategy is ignored.
func (e *Engine) SetStrategy(s Strategy) {
	if s != nil {
		e.strategy = s
	}
}

// Strategy returns the current strategy.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Regions returns a copy of the region list with current toggle states.
func (e *Engine) Regions() []region.Rect {
	return append([]region.Rect(nil), e.rects...)
}

// Image returns the unredacted photo.
func (e *Engine) Image() pixels.Buffer {
	return e.img
}
