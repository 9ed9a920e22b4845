// Package stamp implements the logo compositing engine: placement math,
// logo resizing, opacity adjustment and alpha compositing onto a base image.
//
// Composite is pure with respect to its inputs and never touches the
// filesystem, so it doubles as the preview function for interactive callers.
package stamp

import "fmt"

// Config describes how a logo is stamped onto a base image. It is built once
// per batch run and never mutated afterwards.
type Config struct {
	Vertical   VerticalAnchor
	Horizontal HorizontalAnchor

	// Padding is the distance in pixels between the logo and the anchored
	// edges. Must be non-negative.
	Padding int

	// LogoScale is the logo width as a fraction of the base image width,
	// in (0, 1].
	LogoScale float64

	// Opacity multiplies the logo's alpha channel, in [0, 1].
	Opacity float64
}

// Validate checks the configuration ranges before any processing begins.
func (c Config) Validate() error {
	if c.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, got %d", c.Padding)
	}
	if c.LogoScale <= 0 || c.LogoScale > 1 {
		return fmt.Errorf("logo scale must be in (0, 1], got %g", c.LogoScale)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("opacity must be in [0, 1], got %g", c.Opacity)
	}
	return nil
}
