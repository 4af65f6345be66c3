package sink

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/boxlayout/pkg/scene"
)

// RenderSVG renders the result as an SVG document. Boxes are painted in
// pre-order, so children sit on top of their parents.
func RenderSVG(res *scene.Result, opts ...Option) []byte {
	r := newRenderer(opts)
	bounds := canvasBounds(res)
	shifted := bounds.X != 0 || bounds.Y != 0

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(bounds.W, bounds.H)
	if res.Name != "" {
		canvas.Title(res.Name)
	}
	if shifted {
		canvas.Translate(-bounds.X, -bounds.Y)
	}

	for _, b := range res.Boxes {
		canvas.Gid("box-" + b.ID)
		if r.padding && b.Outer != b.Rect && visible(b.Outer) {
			canvas.Rect(b.Outer.X, b.Outer.Y, b.Outer.W, b.Outer.H,
				fmt.Sprintf("fill:none;stroke:%s;stroke-width:1;stroke-dasharray:4,2", padColor))
		}
		canvas.Rect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", fillOf(res, b), strokeColor))
		if r.padding && b.Inner != b.Rect && visible(b.Inner) {
			canvas.Rect(b.Inner.X, b.Inner.Y, b.Inner.W, b.Inner.H,
				fmt.Sprintf("fill:none;stroke:%s;stroke-width:1;stroke-dasharray:1,2", padColor))
		}
		if r.labels && visible(b.Rect) {
			canvas.Text(b.Rect.X+labelInset, b.Rect.Y+labelInset+fontSize, b.DisplayLabel(),
				fmt.Sprintf("font-family:sans-serif;font-size:%dpx;fill:%s", fontSize, textColor))
		}
		canvas.Gend()
	}

	if shifted {
		canvas.Gend()
	}
	canvas.End()
	return buf.Bytes()
}
