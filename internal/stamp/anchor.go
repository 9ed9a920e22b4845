package stamp

import "fmt"

// VerticalAnchor selects the vertical edge the logo is placed against.
type VerticalAnchor int

const (
	AnchorTop VerticalAnchor = iota
	AnchorBottom
)

func (a VerticalAnchor) String() string {
	switch a {
	case AnchorTop:
		return "top"
	case AnchorBottom:
		return "bottom"
	}
	return fmt.Sprintf("VerticalAnchor(%d)", int(a))
}

// ParseVerticalAnchor converts a CLI/GUI string ("top", "bottom") to a
// VerticalAnchor. String parsing only happens at the shell boundary; the
// compositor works on the typed value.
func ParseVerticalAnchor(s string) (VerticalAnchor, error) {
	switch s {
	case "top":
		return AnchorTop, nil
	case "bottom":
		return AnchorBottom, nil
	}
	return 0, fmt.Errorf("invalid vertical position %q (expected top or bottom)", s)
}

// HorizontalAnchor selects the horizontal placement of the logo.
type HorizontalAnchor int

const (
	AnchorLeft HorizontalAnchor = iota
	AnchorCenter
	AnchorRight
)

func (a HorizontalAnchor) String() string {
	switch a {
	case AnchorLeft:
		return "left"
	case AnchorCenter:
		return "center"
	case AnchorRight:
		return "right"
	}
	return fmt.Sprintf("HorizontalAnchor(%d)", int(a))
}

// ParseHorizontalAnchor converts a CLI/GUI string ("left", "center", "right")
// to a HorizontalAnchor.
func ParseHorizontalAnchor(s string) (HorizontalAnchor, error) {
	switch s {
	case "left":
		return AnchorLeft, nil
	case "center":
		return AnchorCenter, nil
	case "right":
		return AnchorRight, nil
	}
	return 0, fmt.Errorf("invalid horizontal position %q (expected left, center or right)", s)
}
