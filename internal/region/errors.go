package region

import (
	"errors"
	"fmt"
)

// Validation error kinds, checked in this order by MakeRect.
var (
	ErrWrongPointCount    = errors.New("wrong point count")
	ErrMissingCoordinate  = errors.New("missing coordinate")
	ErrDuplicatePoints    = errors.New("duplicate points")
	ErrNotAxisAligned     = errors.New("not axis aligned")
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	ErrNegativeCoordinate = errors.New("negative coordinate")
	ErrOutOfBounds        = errors.New("out of bounds")
)

// RectError describes why a single region descriptor was rejected.
//
// Kind is one of the Err* sentinels above, so callers can match with
// errors.Is(err, region.ErrOutOfBounds). Index is the position of the
// descriptor within its batch, or -1 when MakeRect was called directly.
type RectError struct {
	Kind   error
	Index  int
	Detail string
}

func (e *RectError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("region %d: %v: %s", e.Index, e.Kind, e.Detail)
	}
	return fmt.Sprintf("region: %v: %s", e.Kind, e.Detail)
}

func (e *RectError) Unwrap() error {
	return e.Kind
}

func rectErrorf(kind error, format string, args ...interface{}) *RectError {
	return &RectError{
		Kind:   kind,
		Index:  -1,
		Detail: fmt.Sprintf(format, args...),
	}
}
