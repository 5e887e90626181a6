package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/disintegration/imaging"
)

const (
	// jpegQuality matches what the marketplaces accept for product photos.
	jpegQuality = 95

	// Maximum dimension for grid thumbnails served by the admin UI.
	maxSizeThumb = 300
	qualityThumb = 60
)

// FlattenToJPEG converts PNG bytes to JPEG, compositing any alpha channel
// onto a white background. Marketplace listings reject transparency, so
// every upload gets both the PNG and this flattened JPEG.
func FlattenToJPEG(pngData []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	background := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
	flattened := imaging.Overlay(background, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flattened, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail downsizes an image for the admin grid view, preserving aspect
// ratio. Images already within bounds are re-encoded unchanged in size.
func Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxSizeThumb || bounds.Dy() > maxSizeThumb {
		img = imaging.Fit(img, maxSizeThumb, maxSizeThumb, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: qualityThumb}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
