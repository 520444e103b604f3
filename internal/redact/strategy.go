package redact

import (
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/image-redact-mcp/internal/pixels"
	"github.com/ironsheep/image-redact-mcp/internal/region"
)

// MaxRadius caps the blur radius.
const MaxRadius = 31

// Strategy obscures the active regions of img.
//
// Apply returns a new buffer with the same dimensions as img. img is not
// modified. Regions with ToBeBlurred unset are ignored.
type Strategy interface {
	Apply(img pixels.Buffer, regions []region.Rect, radius int) *pixels.NRGBA
}

// Kind names a redaction strategy.
type Kind string

const (
	KindConvolution Kind = "convolution"
	KindComposite   Kind = "composite"
	KindFill        Kind = "fill"
)

// Kinds lists every strategy kind in display order.
var Kinds = []Kind{KindConvolution, KindComposite, KindFill}

// ParseKind maps a strategy name to its Kind. Matching is case-insensitive
// and the empty string selects KindConvolution.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case "", KindConvolution:
		return KindConvolution, nil
	case KindComposite:
		return KindComposite, nil
	case KindFill:
		return KindFill, nil
	default:
		return "", fmt.Errorf("unknown redaction strategy: %q", name)
	}
}

// NewStrategy returns the strategy for kind.
func NewStrategy(kind Kind) (Strategy, error) {
	switch kind {
	case KindConvolution:
		return ConvolutionBlur{}, nil
	case KindComposite:
		return CompositeBlur{}, nil
	case KindFill:
		return Fill{}, nil
	default:
		return nil, fmt.Errorf("unknown redaction strategy: %q", kind)
	}
}

// KindOf reports the Kind of a built-in strategy.
func KindOf(s Strategy) (Kind, bool) {
	switch s.(type) {
	case ConvolutionBlur, *ConvolutionBlur:
		return KindConvolution, true
	case CompositeBlur, *CompositeBlur:
		return KindComposite, true
	case Fill, *Fill:
		return KindFill, true
	}
	return "", false
}

func clampRadius(radius int) int {
	if radius > MaxRadius {
		return MaxRadius
	}
	return radius
}

// smoothingSize is the size of the weaker kernel used around a region.
func smoothingSize(radius int) int {
	if radius/2 < 1 {
		return 1
	}
	return radius / 2
}

// activeBounds returns the pixel rectangles of the active regions, clipped
// to bounds. Regions left empty by clipping are dropped.
func activeBounds(regions []region.Rect, bounds image.Rectangle) []image.Rectangle {
	out := make([]image.Rectangle, 0, len(regions))
	for _, r := range regions {
		if !r.ToBeBlurred {
			continue
		}
		b := r.Bounds().Intersect(bounds)
		if b.Empty() {
			continue
		}
		out = append(out, b)
	}
	return out
}
