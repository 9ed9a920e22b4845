package stamp

// Position computes the top-left pixel coordinate for a logo of the given
// size placed on an image of the given size.
//
// Coordinates are not clamped: a logo larger than the padded image yields
// negative coordinates. That is a user-configuration problem and is left
// visible rather than silently corrected.
func Position(imageW, imageH, logoW, logoH int, v VerticalAnchor, h HorizontalAnchor, padding int) (x, y int) {
	switch h {
	case AnchorLeft:
		x = padding
	case AnchorRight:
		x = imageW - logoW - padding
	default: // center
		x = (imageW - logoW) / 2
	}

	switch v {
	case AnchorTop:
		y = padding
	default: // bottom
		y = imageH - logoH - padding
	}

	return x, y
}
