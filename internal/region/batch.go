package region

import (
	"encoding/json"
	"errors"
	"fmt"
)

// FromQuads validates a batch of decoded descriptors against the image size.
//
// Each invalid descriptor is dropped and reported in dropped as a *RectError
// carrying its batch index; the remaining rects are returned in input order.
// A batch where every descriptor fails yields an empty, non-nil rects slice.
func FromQuads(quads [][]Point, imageWidth, imageHeight int) (rects []Rect, dropped []error) {
	rects = make([]Rect, 0, len(quads))
	for i, quad := range quads {
		r, err := MakeRect(quad, imageWidth, imageHeight)
		if err != nil {
			dropped = append(dropped, withIndex(err, i))
			continue
		}
		rects = append(rects, r)
	}
	return rects, dropped
}

// ParseRegions decodes the detector wire format and validates every region.
//
// The wire format is a JSON array of candidate regions, each an array of
// points {"x": int, "y": int}:
//
//	[[{"x":0,"y":0},{"x":10,"y":0},{"x":10,"y":5},{"x":0,"y":5}], ...]
//
// Only a malformed top-level document returns a non-nil err. A candidate that
// is not an array, has the wrong number of points, or carries points that do
// not decode is dropped like any other invalid region.
func ParseRegions(data []byte, imageWidth, imageHeight int) (rects []Rect, dropped []error, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("regions must be a JSON array: %w", err)
	}

	rects = make([]Rect, 0, len(raw))
	for i, candidate := range raw {
		points, perr := decodeQuad(candidate)
		if perr != nil {
			dropped = append(dropped, withIndex(perr, i))
			continue
		}
		r, merr := MakeRect(points, imageWidth, imageHeight)
		if merr != nil {
			dropped = append(dropped, withIndex(merr, i))
			continue
		}
		rects = append(rects, r)
	}
	return rects, dropped, nil
}

// EncodeQuads renders descriptors in the detector wire format.
func EncodeQuads(quads [][]Point) ([]byte, error) {
	if quads == nil {
		quads = [][]Point{}
	}
	return json.Marshal(quads)
}

func decodeQuad(data json.RawMessage) ([]Point, error) {
	var rawPoints []json.RawMessage
	if err := json.Unmarshal(data, &rawPoints); err != nil {
		return nil, rectErrorf(ErrWrongPointCount, "region is not an array of points")
	}
	if len(rawPoints) != 4 {
		return nil, rectErrorf(ErrWrongPointCount,
			"rectangle must contain exactly 4 corner points, got %d", len(rawPoints))
	}

	points := make([]Point, len(rawPoints))
	for i, rp := range rawPoints {
		if err := json.Unmarshal(rp, &points[i]); err != nil {
			return nil, rectErrorf(ErrMissingCoordinate, "point %d is malformed: %v", i, err)
		}
	}
	return points, nil
}

func withIndex(err error, index int) error {
	var re *RectError
	if errors.As(err, &re) {
		indexed := *re
		indexed.Index = index
		return &indexed
	}
	return err
}
