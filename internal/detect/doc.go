// Package detect finds regions of a photo that likely hold text and reports
// them in the four-corner form consumed by package region.
//
// Two detectors are available:
//
//   - TextRegions runs Tesseract OCR through gosseract and returns one region
//     per recognized word. It needs the Tesseract library and language data
//     installed on the host.
//   - HeuristicTextRegions scans for windows with a text-like edge density.
//     It is pure Go, needs no external data, and is much less precise.
//
// Every region is emitted as four points in clockwise order starting at the
// top-left corner, in original image pixel coordinates. Corners use the
// exclusive right and bottom edge of a box, so they may equal the image width
// or height.
package detect
