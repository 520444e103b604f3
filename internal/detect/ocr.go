package detect

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/image-redact-mcp/internal/region"
)

// DefaultLanguage is the Tesseract language used when none is given.
const DefaultLanguage = "eng"

// Word is one word recognized by OCR.
type Word struct {
	Text       string          `json:"text"`
	Confidence float64         `json:"confidence"` // 0.0 to 1.0
	Box        image.Rectangle `json:"-"`
}

// Options tunes the OCR detector.
type Options struct {
	Language      string  // Tesseract language code, DefaultLanguage if empty
	MinConfidence float64 // words below this confidence (0.0 to 1.0) are dropped
	Padding       int     // pixels added around each word box
}

// Words runs OCR on img and returns every non-empty word with its box.
//
// OCR is CPU-intensive. The image is handed to Tesseract as an in-memory PNG,
// so no temporary files are written.
func Words(img image.Image, language string) ([]Word, error) {
	if language == "" {
		language = DefaultLanguage
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Split(language, "+")...); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}
	return wordsFromBoxes(boxes, img.Bounds().Min), nil
}

// wordsFromBoxes drops empty words and moves boxes into the coordinate space
// of an image whose bounds start at origin.
func wordsFromBoxes(boxes []gosseract.BoundingBox, origin image.Point) []Word {
	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		words = append(words, Word{
			Text:       text,
			Confidence: b.Confidence / 100.0,
			Box:        b.Box.Add(origin),
		})
	}
	return words
}

// TextRegions returns one region per word recognized in img.
func TextRegions(img image.Image, language string) ([][]region.Point, error) {
	return TextRegionsWithOptions(img, Options{Language: language})
}

// TextRegionsWithOptions is TextRegions with confidence filtering and
// padding.
func TextRegionsWithOptions(img image.Image, opts Options) ([][]region.Point, error) {
	words, err := Words(img, opts.Language)
	if err != nil {
		return nil, err
	}
	return wordsToQuads(words, opts, img.Bounds()), nil
}

func wordsToQuads(words []Word, opts Options, bounds image.Rectangle) [][]region.Point {
	rects := make([]image.Rectangle, 0, len(words))
	for _, w := range words {
		if w.Confidence < opts.MinConfidence {
			continue
		}
		rects = append(rects, w.Box)
	}
	return rectsToQuads(rects, opts.Padding, bounds)
}
