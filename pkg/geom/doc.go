// Package geom provides the integer rectangle primitives used by the layout engine.
//
// # Rectangles
//
// [Rect] is an axis-aligned rectangle in pixels. Besides the usual edges it exposes
// named [Anchor] points (corners, edge midpoints, center) that can be read with
// [Rect.Anchor] or assigned with [Rect.SetAnchor], which moves the rectangle
// without resizing it:
//
//	r := geom.R(0, 0, 10, 4)
//	r = r.SetAnchor(geom.Center, geom.Point{X: 50, Y: 50}) // (45,48 10x4)
//
// # Padding
//
// [Pad] stores left, right, top and bottom padding. [NormalizePad] expands the
// short forms accepted throughout boxlayout: one value for every side, two
// values for (horizontal, vertical), or four explicit values.
//
// # Rounding
//
// Relative sizes and offsets are converted with [RoundHalfUp], so 50.5 becomes
// 51 rather than the banker's-rounding 50.
package geom
