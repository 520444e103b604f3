package detect

import (
	"image"
	"math"
	"sort"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-redact-mcp/internal/region"
)

// edgeThreshold is the gray-level step counted as an edge.
const edgeThreshold = 30

// windowSizes are the sliding windows scanned for text-like texture.
var windowSizes = []struct{ w, h int }{
	{100, 30}, // small text
	{150, 40}, // medium text
	{200, 50}, // large text
	{80, 25},  // very small text
}

type scored struct {
	bounds     image.Rectangle
	confidence float64
}

// HeuristicTextRegions finds windows whose edge texture looks like lines of
// text and returns them as regions, merged where they overlap and ordered by
// confidence.
//
// A window qualifies when 5% to 40% of its pixels are edges and its edges
// form mostly horizontal runs. Confidence peaks at 20% density.
func HeuristicTextRegions(img image.Image, minConfidence float64) [][]region.Point {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	edges := detectEdges(img)

	candidates := make([]scored, 0)
	for _, ws := range windowSizes {
		stepX, stepY := ws.w/2, ws.h/2
		for y := 0; y <= height-ws.h; y += stepY {
			for x := 0; x <= width-ws.w; x += stepX {
				edgeCount := 0
				for wy := 0; wy < ws.h; wy++ {
					for wx := 0; wx < ws.w; wx++ {
						if edges[y+wy][x+wx] {
							edgeCount++
						}
					}
				}

				density := float64(edgeCount) / float64(ws.w*ws.h)
				if density < 0.05 || density > 0.4 {
					continue
				}
				confidence := horizontalScore(edges, x, y, ws.w, ws.h) * (1.0 - math.Abs(density-0.2)/0.2)
				if confidence < minConfidence {
					continue
				}
				candidates = append(candidates, scored{
					bounds:     image.Rect(x, y, x+ws.w, y+ws.h).Add(bounds.Min),
					confidence: confidence,
				})
			}
		}
	}

	merged := mergeOverlapping(candidates)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].confidence > merged[j].confidence
	})

	rects := make([]image.Rectangle, 0, len(merged))
	for _, m := range merged {
		rects = append(rects, m.bounds)
	}
	return rectsToQuads(rects, 0, bounds)
}

// detectEdges marks pixels whose gray level differs from the right or lower
// neighbor by more than edgeThreshold. The border is never marked.
func detectEdges(img image.Image) [][]bool {
	gray := imaging.Grayscale(img)
	width, height := gray.Rect.Dx(), gray.Rect.Dy()

	lum := func(x, y int) int {
		return int(gray.Pix[y*gray.Stride+x*4])
	}

	edges := make([][]bool, height)
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		if y == 0 || y == height-1 {
			continue
		}
		for x := 1; x < width-1; x++ {
			c := lum(x, y)
			if abs(c-lum(x+1, y)) > edgeThreshold || abs(c-lum(x, y+1)) > edgeThreshold {
				edges[y][x] = true
			}
		}
	}
	return edges
}

// horizontalScore is the share of edge runs that are horizontal.
func horizontalScore(edges [][]bool, x, y, w, h int) float64 {
	horizontalRuns, verticalRuns := 0, 0

	for row := y; row < y+h; row++ {
		inRun := false
		for col := x; col < x+w; col++ {
			if edges[row][col] && !inRun {
				horizontalRuns++
			}
			inRun = edges[row][col]
		}
	}
	for col := x; col < x+w; col++ {
		inRun := false
		for row := y; row < y+h; row++ {
			if edges[row][col] && !inRun {
				verticalRuns++
			}
			inRun = edges[row][col]
		}
	}

	if horizontalRuns+verticalRuns == 0 {
		return 0
	}
	return float64(horizontalRuns) / float64(horizontalRuns+verticalRuns)
}

// mergeOverlapping folds each candidate into the first kept one it overlaps.
func mergeOverlapping(candidates []scored) []scored {
	merged := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		folded := false
		for i := range merged {
			if merged[i].bounds.Overlaps(c.bounds) {
				merged[i].bounds = merged[i].bounds.Union(c.bounds)
				merged[i].confidence = math.Max(merged[i].confidence, c.confidence)
				folded = true
				break
			}
		}
		if !folded {
			merged = append(merged, c)
		}
	}
	return merged
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
