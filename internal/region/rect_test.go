package region

import (
	"errors"
	"testing"
)

func quad(coords ...int) []Point {
	points := make([]Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		points = append(points, Pt(coords[i], coords[i+1]))
	}
	return points
}

func TestMakeRect(t *testing.T) {
	tests := []struct {
		name       string
		points     []Point
		wantLeft   int
		wantTop    int
		wantWidth  int
		wantHeight int
	}{
		{"clockwise from top-left", quad(10, 20, 30, 20, 30, 50, 10, 50), 10, 20, 21, 31},
		{"counter-clockwise", quad(10, 20, 10, 50, 30, 50, 30, 20), 10, 20, 21, 31},
		{"diagonal order", quad(30, 50, 10, 20, 30, 20, 10, 50), 10, 20, 21, 31},
		{"touching origin", quad(0, 0, 5, 0, 5, 5, 0, 5), 0, 0, 6, 6},
		{"touching far edge", quad(90, 90, 100, 90, 100, 100, 90, 100), 90, 90, 11, 11},
		{"one pixel apart", quad(4, 4, 5, 4, 5, 5, 4, 5), 4, 4, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := MakeRect(tt.points, 100, 100)
			if err != nil {
				t.Fatalf("MakeRect failed: %v", err)
			}
			if r.LeftX != tt.wantLeft || r.TopY != tt.wantTop {
				t.Errorf("origin: got (%d,%d), want (%d,%d)", r.LeftX, r.TopY, tt.wantLeft, tt.wantTop)
			}
			if r.Width != tt.wantWidth || r.Height != tt.wantHeight {
				t.Errorf("size: got %dx%d, want %dx%d", r.Width, r.Height, tt.wantWidth, tt.wantHeight)
			}
			if !r.ToBeBlurred {
				t.Error("new rect should be marked ToBeBlurred")
			}
		})
	}
}

func TestMakeRect_Rejects(t *testing.T) {
	x, y := 5, 5
	missingY := []Point{Pt(0, 0), Pt(5, 0), {X: &x}, Pt(0, 5)}
	missingX := []Point{Pt(0, 0), Pt(5, 0), {Y: &y}, Pt(0, 5)}

	tests := []struct {
		name   string
		points []Point
		want   error
	}{
		{"no points", nil, ErrWrongPointCount},
		{"three points", quad(0, 0, 5, 0, 5, 5), ErrWrongPointCount},
		{"five points", quad(0, 0, 5, 0, 5, 5, 0, 5, 2, 2), ErrWrongPointCount},
		{"missing y", missingY, ErrMissingCoordinate},
		{"missing x", missingX, ErrMissingCoordinate},
		{"duplicate points", quad(0, 0, 5, 0, 5, 0, 0, 5), ErrDuplicatePoints},
		{"all points identical", quad(3, 3, 3, 3, 3, 3, 3, 3), ErrDuplicatePoints},
		{"rotated square", quad(5, 0, 10, 5, 5, 10, 0, 5), ErrNotAxisAligned},
		{"trapezoid", quad(0, 0, 10, 0, 8, 5, 2, 5), ErrNotAxisAligned},
		{"all points share x", quad(5, 0, 5, 1, 5, 2, 5, 3), ErrNotAxisAligned},
		{"all points share y", quad(0, 7, 1, 7, 2, 7, 3, 7), ErrNotAxisAligned},
		{"negative x", quad(-1, 0, 5, 0, 5, 5, -1, 5), ErrNegativeCoordinate},
		{"negative y", quad(0, -3, 5, -3, 5, 5, 0, 5), ErrNegativeCoordinate},
		{"beyond width", quad(90, 0, 101, 0, 101, 5, 90, 5), ErrOutOfBounds},
		{"beyond height", quad(0, 90, 5, 90, 5, 101, 0, 101), ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MakeRect(tt.points, 100, 100)
			if err == nil {
				t.Fatal("MakeRect should fail")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error kind: got %v, want %v", err, tt.want)
			}
			var re *RectError
			if !errors.As(err, &re) {
				t.Fatalf("error should be a *RectError, got %T", err)
			}
			if re.Index != -1 {
				t.Errorf("Index: got %d, want -1 for a direct call", re.Index)
			}
		})
	}
}

func TestMakeRect_CheckOrder(t *testing.T) {
	// Duplicates are reported before the out-of-bounds coordinate.
	_, err := MakeRect(quad(-5, 0, -5, 0, 500, 5, 0, 5), 100, 100)
	if !errors.Is(err, ErrDuplicatePoints) {
		t.Errorf("got %v, want ErrDuplicatePoints", err)
	}

	// Negative coordinates are reported before out-of-bounds ones.
	_, err = MakeRect(quad(-5, 0, 500, 0, 500, 5, -5, 5), 100, 100)
	if !errors.Is(err, ErrNegativeCoordinate) {
		t.Errorf("got %v, want ErrNegativeCoordinate", err)
	}
}

func TestRect_Geometry(t *testing.T) {
	r := Rect{LeftX: 10, TopY: 20, Width: 5, Height: 3}

	if r.RightX() != 14 || r.BottomY() != 22 {
		t.Errorf("far corner: got (%d,%d), want (14,22)", r.RightX(), r.BottomY())
	}
	if r.Area() != 15 {
		t.Errorf("Area: got %d, want 15", r.Area())
	}

	b := r.Bounds()
	if b.Min.X != 10 || b.Min.Y != 20 || b.Max.X != 15 || b.Max.Y != 23 {
		t.Errorf("Bounds: got %v", b)
	}

	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{14, 22, true},
		{12.5, 21.5, true},
		{9.99, 20, false},
		{14.01, 22, false},
		{12, 23, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v,%v): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestActive(t *testing.T) {
	rects := []Rect{
		{LeftX: 0, ToBeBlurred: true},
		{LeftX: 1, ToBeBlurred: false},
		{LeftX: 2, ToBeBlurred: true},
	}

	active := Active(rects)
	if len(active) != 2 {
		t.Fatalf("got %d active rects, want 2", len(active))
	}
	if active[0].LeftX != 0 || active[1].LeftX != 2 {
		t.Errorf("order not preserved: %+v", active)
	}

	if got := Active(nil); got == nil || len(got) != 0 {
		t.Errorf("Active(nil) should be an empty slice, got %#v", got)
	}
}
