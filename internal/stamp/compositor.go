package stamp

import (
	"fmt"
	"image"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

// Composite stamps logo onto base according to cfg and returns the result.
// Both inputs are left untouched; the result is a fresh NRGBA image (straight
// alpha, so the opacity multiply below operates on raw alpha samples).
//
// The logo is scaled so its width is floor(baseWidth * cfg.LogoScale),
// preserving aspect ratio, resampled with Catmull-Rom. With cfg.Opacity < 1
// every alpha sample of the resized logo is multiplied by the opacity
// (truncating); at exactly 1.0 the logo is used as-is. Placement comes from
// Position using the resized dimensions, and the logo's own alpha channel
// drives the blend. Alpha-less target formats are handled at save time, not
// here.
func Composite(base, logo image.Image, cfg Config) (*image.NRGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseBounds := base.Bounds()
	baseW, baseH := baseBounds.Dx(), baseBounds.Dy()
	logoBounds := logo.Bounds()
	logoW, logoH := logoBounds.Dx(), logoBounds.Dy()

	if logoW == 0 || logoH == 0 {
		return nil, fmt.Errorf("logo has empty bounds %v", logoBounds)
	}

	newW, newH := scaledLogoSize(baseW, logoW, logoH, cfg.LogoScale)
	if newW < 1 || newH < 1 {
		return nil, fmt.Errorf("scaled logo is empty (%dx%d) for base %dx%d at scale %g",
			newW, newH, baseW, baseH, cfg.LogoScale)
	}

	resized := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(resized, resized.Bounds(), logo, logoBounds, draw.Src, nil)

	if cfg.Opacity < 1.0 {
		applyOpacity(resized, cfg.Opacity)
	}

	x, y := Position(baseW, baseH, newW, newH, cfg.Vertical, cfg.Horizontal, cfg.Padding)

	log.Debug().
		Int("base_width", baseW).
		Int("base_height", baseH).
		Int("logo_width", newW).
		Int("logo_height", newH).
		Int("x", x).
		Int("y", y).
		Msg("Compositing logo")

	out := image.NewNRGBA(image.Rect(0, 0, baseW, baseH))
	draw.Draw(out, out.Bounds(), base, baseBounds.Min, draw.Src)
	draw.Draw(out, image.Rect(x, y, x+newW, y+newH), resized, image.Point{}, draw.Over)

	return out, nil
}

// scaledLogoSize computes the resized logo dimensions: width is
// floor(baseW * scale), height follows from the uniform scale factor,
// rounded to the nearest pixel.
func scaledLogoSize(baseW, logoW, logoH int, scale float64) (w, h int) {
	w = int(float64(baseW) * scale)
	factor := float64(w) / float64(logoW)
	h = int(math.Round(float64(logoH) * factor))
	return w, h
}

// applyOpacity multiplies every alpha sample in place. Truncation, not
// rounding: 255 * 0.5 becomes 127.
func applyOpacity(img *image.NRGBA, opacity float64) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(float64(img.Pix[i]) * opacity)
	}
}
