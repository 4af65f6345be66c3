package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/boxlayout/pkg/geom"
	"github.com/matzehuels/boxlayout/pkg/scene"
)

// RenderPNG rasterises the same picture as RenderSVG. The image is
// scaled by the WithScale factor (default 2.0).
func RenderPNG(res *scene.Result, opts ...Option) ([]byte, error) {
	r := newRenderer(opts)
	bounds := canvasBounds(res)

	dc := gg.NewContext(int(math.Ceil(float64(bounds.W)*r.scale)), int(math.Ceil(float64(bounds.H)*r.scale)))
	dc.Scale(r.scale, r.scale)
	dc.Translate(float64(-bounds.X), float64(-bounds.Y))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetLineWidth(1)

	for _, b := range res.Boxes {
		if r.padding && b.Outer != b.Rect && visible(b.Outer) {
			strokeRect(dc, b.Outer, padColor, 4, 2)
		}
		drawRect(dc, b.Rect)
		dc.SetColor(parseColor(fillOf(res, b)))
		dc.FillPreserve()
		dc.SetColor(parseColor(strokeColor))
		dc.Stroke()
		if r.padding && b.Inner != b.Rect && visible(b.Inner) {
			strokeRect(dc, b.Inner, padColor, 1, 2)
		}
		if r.labels && visible(b.Rect) {
			dc.SetColor(parseColor(textColor))
			dc.DrawString(b.DisplayLabel(), float64(b.Rect.X+labelInset), float64(b.Rect.Y+labelInset+fontSize))
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawRect(dc *gg.Context, r geom.Rect) {
	dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
}

func strokeRect(dc *gg.Context, r geom.Rect, c string, dashes ...float64) {
	drawRect(dc, r)
	dc.SetColor(parseColor(c))
	dc.SetDash(dashes...)
	dc.Stroke()
	dc.SetDash()
}
