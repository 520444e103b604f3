// Package redact obscures rectangular regions of a photo.
//
// Three strategies share one contract, Strategy.Apply(img, regions, radius),
// and differ only in how a region is obscured:
//
//   - ConvolutionBlur convolves each region with a normalized falloff kernel
//     and blends a margin around it with a weaker kernel, so no hard seam is
//     left at the region edge.
//   - CompositeBlur blurs the whole image once and composites the blurred copy
//     into the regions through a feathered matte.
//   - Fill paints every region with the dominant color of the image.
//
// Only regions with ToBeBlurred set are touched; pixels of inactive regions
// are copied through unchanged. Apply never modifies its input and always
// returns a new buffer of the same size.
//
// # Radius
//
// The blur radius is the kernel size in pixels. Radii above MaxRadius are
// clamped because cost grows with the square of the radius. A radius of 0 or
// less disables blurring: both blur strategies return an exact copy of the
// input. Fill ignores the radius.
//
// # Engine
//
// Engine holds one photo, its regions, and the current strategy. It renders
// on demand and lets a user flip regions on and off by clicking them in a
// scaled display. Engine is not safe for concurrent use; each photo gets its
// own Engine.
package redact
