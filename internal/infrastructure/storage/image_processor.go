package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
)

// MaxDimension is the longest side kept for uploads; larger images are
// scaled down.
const MaxDimension = 2000

type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor(maxSize int64) *ImageProcessor {
	if maxSize <= 0 {
		maxSize = 4 << 20
	}
	return &ImageProcessor{MaxSize: maxSize}
}

// ProcessedImage is an upload ready for storage.
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

// ValidateImage checks size and that data decodes as jpeg, png or gif.
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file")
	}
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("image exceeds %d bytes", p.MaxSize)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png", "gif":
		return format, nil
	default:
		return "", fmt.Errorf("image format %s not allowed (only jpeg/png/gif)", format)
	}
}

// Process validates data and downscales it to MaxDimension when needed.
// GIFs are stored untouched so animations survive.
func (p *ImageProcessor) Process(data []byte) (*ProcessedImage, error) {
	format, err := p.ValidateImage(data)
	if err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot read image header: %w", err)
	}

	out := &ProcessedImage{
		Data:        data,
		ContentType: "image/" + format,
		Extension:   extensionFor(format),
		Width:       cfg.Width,
		Height:      cfg.Height,
	}

	if format == "gif" || (cfg.Width <= MaxDimension && cfg.Height <= MaxDimension) {
		return out, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	resized := imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)

	buf := new(bytes.Buffer)
	switch format {
	case "png":
		err = png.Encode(buf, resized)
	default:
		err = jpeg.Encode(buf, resized, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		return nil, fmt.Errorf("cannot encode %s: %w", format, err)
	}

	out.Data = buf.Bytes()
	out.Width = resized.Bounds().Dx()
	out.Height = resized.Bounds().Dy()
	return out, nil
}

func extensionFor(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	default:
		return format
	}
}
