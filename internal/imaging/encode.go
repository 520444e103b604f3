package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// JPEGQuality is used whenever an image is encoded as JPEG.
const JPEGQuality = 90

// EncodedImage contains an image serialized for transport.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// ParseFormat maps "png", "jpeg" or "jpg" to an imaging format. The empty
// string means PNG.
func ParseFormat(name string) (imaging.Format, error) {
	switch strings.ToLower(name) {
	case "", "png":
		return imaging.PNG, nil
	case "jpeg", "jpg":
		return imaging.JPEG, nil
	default:
		return 0, fmt.Errorf("unsupported output format: %s", name)
	}
}

func mimeType(f imaging.Format) string {
	if f == imaging.JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Encode writes img in the named format and returns the bytes.
func Encode(img image.Image, format string) ([]byte, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBase64 encodes img and returns it base64 encoded with its MIME type.
func EncodeBase64(img image.Image, format string) (*EncodedImage, error) {
	data, err := Encode(img, format)
	if err != nil {
		return nil, err
	}
	f, _ := ParseFormat(format)
	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    mimeType(f),
	}, nil
}

// DataURL returns img as a "data:<mime>;base64,..." string, the form stored
// in the photo cache.
func DataURL(img image.Image, format string) (string, error) {
	enc, err := EncodeBase64(img, format)
	if err != nil {
		return "", err
	}
	return "data:" + enc.MimeType + ";base64," + enc.ImageBase64, nil
}

// SaveImage writes img to path. The format is chosen from the extension.
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// Scale resizes img by factor using Lanczos resampling. A factor of 1 or
// less than or equal to 0 returns img unchanged.
func Scale(img image.Image, factor float64) image.Image {
	if factor == 1.0 || factor <= 0 {
		return img
	}
	w := int(float64(img.Bounds().Dx()) * factor)
	h := int(float64(img.Bounds().Dy()) * factor)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
