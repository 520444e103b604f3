// Package imaging provides the host-side image handling around the redaction
// core.
//
// It loads and caches photos, validates uploads before they are redacted,
// extracts a dominant-color palette (used by the fill strategy), draws region
// previews, and encodes results to PNG or JPEG for transport. All operations
// work with standard Go image.Image types and use a coordinate system where
// (0,0) is at the top-left corner, X increases rightward, and Y increases
// downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based. For a Region or an
// Outline, the top-left corner is inclusive and the bottom-right corner is
// exclusive.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The remaining functions are
// stateless and never modify their input image.
//
// # Upload Limits
//
// ValidateUpload sniffs the file type from its magic bytes and accepts PNG
// and JPEG only. Size limits differ per type; see DefaultUploadLimits.
package imaging
