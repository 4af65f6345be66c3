// Package sink renders laid-out box trees as preview images.
//
// A "sink" turns a [scene.Result] into a final output format:
//
//   - SVG: one group per box, drawn with svgo
//   - PNG: the same picture rasterised with gg
//
// Each box is drawn as its filled rectangle. With [WithPadding] the outer
// rectangle (outpad included) is outlined dashed and the inner rectangle
// (inpad removed) dotted, which makes padding visible at a glance.
// [WithLabels] writes the box label (or ID) into its top-left corner.
//
//	svg := sink.RenderSVG(res, sink.WithLabels(), sink.WithPadding())
//	png, err := sink.RenderPNG(res, sink.WithScale(2))
//
// Boxes without a color get a pale fill derived from their depth, so
// nesting stays readable without any styling in the document.
package sink
