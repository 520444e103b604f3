package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
)

// UploadLimits bounds what a user may submit for redaction.
type UploadLimits struct {
	MaxWidth    int
	MaxHeight   int
	PNGLimitMB  int
	JPEGLimitMB int
}

// DefaultUploadLimits allows up to 1920x1080 photos.
//
// The byte limits follow from that resolution: 1920×1080×4 bytes is about 8MB
// for PNG, and about 8.25 bits per pixel puts JPEG near 2MB.
var DefaultUploadLimits = UploadLimits{
	MaxWidth:    1920,
	MaxHeight:   1080,
	PNGLimitMB:  8,
	JPEGLimitMB: 2,
}

// ErrUnsupportedType is returned for files that are neither PNG nor JPEG.
var ErrUnsupportedType = errors.New("invalid file type: only jpeg and png images can be uploaded")

var (
	pngMagic = [][]byte{{0x89, 0x50, 0x4e, 0x47}}

	// Only JFIF/EXIF/SPIFF style headers. image/jpeg writes ffd8ffdb, so its
	// output, including SaveImage's, is not accepted as an upload.
	jpegMagics = [][]byte{
		{0xff, 0xd8, 0xff, 0xe0},
		{0xff, 0xd8, 0xff, 0xe1},
		{0xff, 0xd8, 0xff, 0xe2},
		{0xff, 0xd8, 0xff, 0xe3},
		{0xff, 0xd8, 0xff, 0xe8},
	}
)

// UploadInfo describes a validated upload.
type UploadInfo struct {
	Type      string `json:"type"` // "png" or "jpeg"
	SizeBytes int64  `json:"size_bytes"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// ValidateUpload checks a photo before it enters the redaction pipeline.
//
// The type is detected from the first four bytes of the file, never from its
// extension. Checks run in order: type, byte size for that type, then
// resolution as displayed, that is after EXIF orientation.
func ValidateUpload(path string, limits UploadLimits) (*UploadInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat upload: %w", err)
	}

	header := make([]byte, 4)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, ErrUnsupportedType
	}

	fileType, err := detectType(header)
	if err != nil {
		return nil, err
	}

	limitMB := limits.PNGLimitMB
	if fileType == "jpeg" {
		limitMB = limits.JPEGLimitMB
	}
	if limitMB > 0 && stat.Size() > int64(limitMB)*1024*1024 {
		return nil, fmt.Errorf("file size should not exceed %dMB for %s images, got %dMB",
			limitMB, fileType, (stat.Size()+1024*1024-1)/(1024*1024))
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	width, height := cfg.Width, cfg.Height

	// The loader applies EXIF orientation, which may swap the axes. The header
	// alone cannot tell, so decode only when swapping would change the verdict.
	if fileType == "jpeg" && limits.fits(width, height) != limits.fits(height, width) {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind upload: %w", err)
		}
		img, err := imaging.Decode(f, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("failed to decode upload: %w", err)
		}
		width, height = img.Bounds().Dx(), img.Bounds().Dy()
	}

	if !limits.fits(width, height) {
		return nil, fmt.Errorf("image resolution %dx%d exceeds %dx%d",
			width, height, limits.MaxWidth, limits.MaxHeight)
	}

	return &UploadInfo{
		Type:      fileType,
		SizeBytes: stat.Size(),
		Width:     width,
		Height:    height,
	}, nil
}

// fits reports whether a width x height photo is within the resolution
// limits. A limit of 0 or less is not enforced.
func (l UploadLimits) fits(width, height int) bool {
	return (l.MaxWidth <= 0 || width <= l.MaxWidth) &&
		(l.MaxHeight <= 0 || height <= l.MaxHeight)
}

func detectType(header []byte) (string, error) {
	for _, m := range pngMagic {
		if bytes.Equal(header, m) {
			return "png", nil
		}
	}
	for _, m := range jpegMagics {
		if bytes.Equal(header, m) {
			return "jpeg", nil
		}
	}
	return "", ErrUnsupportedType
}
