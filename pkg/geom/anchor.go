package geom

import (
	"strings"

	"github.com/matzehuels/boxlayout/pkg/errors"
)

// Anchor names a reference point on a rectangle.
type Anchor string

// Anchor points. Corners, edge midpoints and the center.
const (
	TopLeft     Anchor = "topleft"
	MidTop      Anchor = "midtop"
	TopRight    Anchor = "topright"
	MidLeft     Anchor = "midleft"
	Center      Anchor = "center"
	MidRight    Anchor = "midright"
	BottomLeft  Anchor = "bottomleft"
	MidBottom   Anchor = "midbottom"
	BottomRight Anchor = "bottomright"
)

// sideAnchors maps bare side names to their edge midpoint.
var sideAnchors = map[string]Anchor{
	"left":   MidLeft,
	"right":  MidRight,
	"top":    MidTop,
	"bottom": MidBottom,
}

var anchors = map[Anchor]bool{
	TopLeft: true, MidTop: true, TopRight: true,
	MidLeft: true, Center: true, MidRight: true,
	BottomLeft: true, MidBottom: true, BottomRight: true,
}

// ParseAnchor resolves an anchor name. Side names ("left", "top", ...) are
// accepted as aliases for the matching edge midpoint.
func ParseAnchor(s string) (Anchor, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if a, ok := sideAnchors[name]; ok {
		return a, nil
	}
	if a := Anchor(name); anchors[a] {
		return a, nil
	}
	return "", errors.Configuration("unknown anchor %q", s)
}

// fractions returns the anchor position as numerator over 2 of the width and height.
func (a Anchor) fractions() (fx, fy int) {
	switch a {
	case TopLeft:
		return 0, 0
	case MidTop:
		return 1, 0
	case TopRight:
		return 2, 0
	case MidLeft:
		return 0, 1
	case MidRight:
		return 2, 1
	case BottomLeft:
		return 0, 2
	case MidBottom:
		return 1, 2
	case BottomRight:
		return 2, 2
	default:
		return 1, 1
	}
}

func anchorOffset(f, extent int) int {
	switch f {
	case 0:
		return 0
	case 1:
		return extent / 2
	default:
		return extent
	}
}

// Anchor returns the named point of r.
func (r Rect) Anchor(a Anchor) Point {
	fx, fy := a.fractions()
	return Point{
		X: r.X + anchorOffset(fx, r.W),
		Y: r.Y + anchorOffset(fy, r.H),
	}
}

// SetAnchor returns r moved so that its anchor a lands on p. Size is unchanged.
func (r Rect) SetAnchor(a Anchor, p Point) Rect {
	fx, fy := a.fractions()
	r.X = p.X - anchorOffset(fx, r.W)
	r.Y = p.Y - anchorOffset(fy, r.H)
	return r
}
