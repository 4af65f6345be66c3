package sink

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/boxlayout/pkg/geom"
	"github.com/matzehuels/boxlayout/pkg/scene"
)

const (
	strokeColor = "#333333"
	padColor    = "#999999"
	textColor   = "#222222"
	fontSize    = 11
	labelInset  = 3
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	padding bool
	labels  bool
	scale   float64
}

// WithPadding outlines the outer and inner rectangle of every box.
func WithPadding() Option { return func(r *renderer) { r.padding = true } }

// WithLabels writes each box's label into the box.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
// SVG output ignores it.
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

func newRenderer(opts []Option) renderer {
	r := renderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// canvasBounds covers the display and every box's rect and outer
// rectangle. A box pushed past the top or left edge, e.g. by its outpad,
// gives the bounds a negative origin; renderers translate by it.
func canvasBounds(res *scene.Result) geom.Rect {
	minX, minY := 0, 0
	maxX, maxY := res.Width, res.Height
	for _, b := range res.Boxes {
		for _, r := range []geom.Rect{b.Rect, b.Outer} {
			if !visible(r) {
				continue
			}
			minX, minY = min(minX, r.Left()), min(minY, r.Top())
			maxX, maxY = max(maxX, r.Right()), max(maxY, r.Bottom())
		}
	}
	return geom.R(minX, minY, max(maxX-minX, 1), max(maxY-minY, 1))
}

// fillOf returns the CSS fill of a box: its own color, the background for
// the root, else a pale tint that rotates with depth.
func fillOf(res *scene.Result, b scene.BoxResult) string {
	if b.Color != "" {
		return b.Color
	}
	if b.Depth == 0 && res.Background != "" {
		return res.Background
	}
	return depthTint(b.Depth)
}

func depthTint(depth int) string {
	hue := float64((depth*47 + 200) % 360)
	return colorful.Hsv(hue, 0.12, 0.98).Hex()
}

// parseColor accepts "#rgb", "#rrggbb" and CSS color names.
func parseColor(s string) color.Color {
	if strings.HasPrefix(s, "#") {
		if c, err := colorful.Hex(expandHex(s)); err == nil {
			return c
		}
		return color.Black
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c
	}
	return color.Black
}

func expandHex(s string) string {
	if len(s) != 4 {
		return s
	}
	return "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
}

func visible(r geom.Rect) bool { return r.W > 0 && r.H > 0 }
