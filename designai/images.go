package designai

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/webp" // register webp decoding
)

// Image - decoded-on-demand design version.
type Image struct {
	Data   []byte
	Format string // normalized decoder name: png, jpeg, gif, webp
}

// MIME returns the content type matching the image format.
func (img *Image) MIME() string {
	return "image/" + img.Format
}

// Ext returns the file extension used for archival keys.
func (img *Image) Ext() string {
	if img.Format == "jpeg" {
		return "jpg"
	}
	return img.Format
}

// ValidateImage checks size and format limits and identifies the image.
func ValidateImage(data []byte, maxSize int, allowedFormats []string) (*Image, error) {
	if len(data) > maxSize {
		return nil, fmt.Errorf("image size exceeds %.1fMB limit", float64(maxSize)/1024/1024)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid image: %v", err)
	}
	_ = cfg
	if !formatAllowed(format, allowedFormats) {
		return nil, fmt.Errorf("image format %s not allowed", format)
	}
	return &Image{Data: data, Format: format}, nil
}

// formatAllowed treats jpg and jpeg as the same decoder format.
func formatAllowed(format string, allowed []string) bool {
	for _, ext := range allowed {
		if ext == "jpg" {
			ext = "jpeg"
		}
		if ext == format {
			return true
		}
	}
	return false
}

// ResizeIfNeeded downscales the image when its larger dimension exceeds
// maxDimension, preserving the aspect ratio. Smaller images pass through
// untouched. Webp re-encodes as png since Go has no webp encoder.
func ResizeIfNeeded(img *Image, maxDimension int) (*Image, error) {
	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("invalid image: %v", err)
	}
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	largest := width
	if height > largest {
		largest = height
	}
	if largest <= maxDimension {
		return img, nil
	}

	ratio := float64(maxDimension) / float64(largest)
	newWidth := int(float64(width) * ratio)
	newHeight := int(float64(height) * ratio)
	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buff bytes.Buffer
	format := img.Format
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buff, dst, &jpeg.Options{Quality: 90})
	case "gif":
		err = gif.Encode(&buff, dst, nil)
	default:
		format = "png"
		err = png.Encode(&buff, dst)
	}
	if err != nil {
		return nil, fmt.Errorf("resize encode failed: %w", err)
	}
	return &Image{Data: buff.Bytes(), Format: format}, nil
}

// ImageHash fingerprints image bytes for archival keys and dedup.
func ImageHash(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
