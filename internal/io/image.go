package ioutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"

	_ "golang.org/x/image/bmp" // BMP decoder registration, game scans ship as .bmp
	"golang.org/x/image/draw"
)

// jpegQuality is used for every JPEG this package encodes.
const jpegQuality = 90

// ImageService prepares cover art for a ripped set.
//
// Example usage:
//
//	svc := NewImageService()
//
//	// Load a scan of the game box, fit it into 600x600 and store it as JPEG
//	cover, err := svc.LoadCover(ctx, "/scans/th06.png", 600)
//	err = WriteFile(ctx, "/music/th06/folder.jpg", cover)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// LoadCover reads the image at path and returns it as a JPEG that fits
// within maxSize x maxSize. A maxSize of 0 keeps the original dimensions.
func (s *ImageService) LoadCover(ctx context.Context, path string, maxSize int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cover art: %w", err)
	}
	if maxSize <= 0 {
		return s.ConvertToJPEG(ctx, data)
	}
	return s.ResizeImage(ctx, data, maxSize, maxSize)
}

// ResizeImage scales an image down to fit within the given maximum
// dimensions, preserving the aspect ratio. Images that already fit are
// only re-encoded. The result is JPEG-encoded.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	resized, err := svc.ResizeImage(ctx, imageData, 1000, 1000)
//	// A 1500x1000 image becomes 1000x666
//	// A 800x600 image remains 800x600 (but re-encoded)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	if width == bounds.Dx() && height == bounds.Dy() {
		return encodeJPEG(img)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return encodeJPEG(dst)
}

// ConvertToJPEG re-encodes an image (PNG, BMP, JPEG) as JPEG.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return encodeJPEG(img)
}

// fitWithin returns width and height scaled down to fit the bounds.
func fitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		return max(1, int(float64(maxHeight)*ratio)), maxHeight
	}
	// Width is the limiting factor
	return maxWidth, max(1, int(float64(maxWidth)/ratio))
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
