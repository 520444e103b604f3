package detect

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/ironsheep/image-redact-mcp/internal/region"
)

// createTestImage creates a solid-colored test image.
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// createTextPatternImage creates an image with text-like edge patterns.
func createTextPatternImage(width, height int) *image.RGBA {
	img := createTestImage(width, height, color.White)

	// Horizontal rows of short strokes, like lines of letters.
	for y := 20; y < 80; y += 10 {
		for x := 20; x < width-20; x++ {
			if x%15 < 5 {
				img.Set(x, y, color.Black)
				img.Set(x, y+1, color.Black)
				img.Set(x, y+5, color.Black)
			}
		}
	}
	return img
}

func TestHeuristicTextRegions_EmptyImage(t *testing.T) {
	img := createTestImage(200, 150, color.White)

	if got := HeuristicTextRegions(img, 0.3); len(got) != 0 {
		t.Errorf("expected no regions in a blank image, got %d", len(got))
	}
}

func TestHeuristicTextRegions_SmallImage(t *testing.T) {
	// Smaller than every window; must not panic.
	img := createTextPatternImage(50, 20)

	if got := HeuristicTextRegions(img, 0); len(got) != 0 {
		t.Errorf("expected no regions, got %d", len(got))
	}
}

func TestHeuristicTextRegions_QuadsAreValidRegions(t *testing.T) {
	img := createTextPatternImage(200, 150)

	quads := HeuristicTextRegions(img, 0)
	rects, dropped := region.FromQuads(quads, 200, 150)
	if len(dropped) != 0 {
		t.Errorf("heuristic quads should all validate, dropped %v", dropped)
	}
	if len(rects) != len(quads) {
		t.Errorf("got %d rects from %d quads", len(rects), len(quads))
	}
	t.Logf("Detected %d text regions", len(quads))
}

func TestHeuristicTextRegions_ConfidenceCeiling(t *testing.T) {
	img := createTextPatternImage(200, 150)

	// Confidence never exceeds 1.
	if got := HeuristicTextRegions(img, 1.01); len(got) != 0 {
		t.Errorf("expected no regions above confidence 1, got %d", len(got))
	}
}

func TestDetectEdges(t *testing.T) {
	img := createTestImage(10, 10, color.White)
	img.Set(5, 5, color.Black)

	edges := detectEdges(img)
	if !edges[5][4] || !edges[4][5] {
		t.Error("pixels next to the dark dot should be edges")
	}
	if edges[0][5] || edges[5][9] {
		t.Error("border pixels are never edges")
	}
	if edges[1][1] {
		t.Error("flat area should have no edges")
	}
}

func TestMergeOverlapping(t *testing.T) {
	merged := mergeOverlapping([]scored{
		{image.Rect(0, 0, 10, 10), 0.5},
		{image.Rect(5, 5, 15, 15), 0.7},
		{image.Rect(50, 50, 60, 60), 0.2},
	})

	if len(merged) != 2 {
		t.Fatalf("expected 2 merged regions, got %d", len(merged))
	}
	if merged[0].bounds != image.Rect(0, 0, 15, 15) || merged[0].confidence != 0.7 {
		t.Errorf("merged region: got %+v", merged[0])
	}
}
