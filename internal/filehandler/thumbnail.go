package filehandler

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

const (
	// namingMaxDimension is the maximum dimension (width or height) for the
	// copy of an image sent to the naming service.
	namingMaxDimension = 1024

	// namingJPEGQuality is the encoder quality for that copy.
	namingJPEGQuality = 85
)

// EncodeNamingJPEG prepares an image for a naming-service request: downscaled
// so the longest side is at most 1024px (preserving aspect ratio) and encoded
// as JPEG at quality 85. Images already within the limit are encoded as-is.
func EncodeNamingJPEG(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()

	newW, newH := fitDimensions(origW, origH, namingMaxDimension)
	if newW != origW || newH != origH {
		resized := image.NewNRGBA(image.Rect(0, 0, newW, newH))
		draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Src, nil)
		img = resized
	}

	var buf bytes.Buffer
	if err := encodeJPEG(&buf, img, namingJPEGQuality); err != nil {
		return nil, fmt.Errorf("failed to encode naming thumbnail: %w", err)
	}

	log.Debug().
		Int("orig_width", origW).
		Int("orig_height", origH).
		Int("new_width", newW).
		Int("new_height", newH).
		Int("output_size", buf.Len()).
		Msg("Naming thumbnail encoded")

	return buf.Bytes(), nil
}

// encodeJPEG flattens img onto a white background (JPEG has no alpha) and
// encodes it at the given quality.
func encodeJPEG(w io.Writer, img image.Image, quality int) error {
	bounds := img.Bounds()
	flat := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, bounds.Min, draw.Over)
	return jpeg.Encode(w, flat, &jpeg.Options{Quality: quality})
}

// fitDimensions scales (width, height) down so neither exceeds maxDimension,
// maintaining aspect ratio. Smaller images are returned unchanged.
func fitDimensions(width, height, maxDimension int) (int, int) {
	if width <= maxDimension && height <= maxDimension {
		return width, height
	}

	if width > height {
		newWidth := maxDimension
		newHeight := int(float64(height) * float64(maxDimension) / float64(width))
		return newWidth, newHeight
	}

	newHeight := maxDimension
	newWidth := int(float64(width) * float64(maxDimension) / float64(height))
	return newWidth, newHeight
}
