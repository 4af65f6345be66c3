// Package tree renders the box hierarchy of a layout as a node-link
// diagram.
//
// [ToDOT] produces Graphviz DOT source with one node per box (labelled
// with its manager and final rectangle) and an edge from every parent to
// its children. [RenderSVG] renders that source in-process with
// go-graphviz:
//
//	dot := tree.ToDOT(res)
//	svg, err := tree.RenderSVG(ctx, dot)
package tree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/boxlayout/pkg/scene"
)

// ToDOT converts a layout result to Graphviz DOT format.
func ToDOT(res *scene.Result) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	seen := make(map[string]bool, len(res.Boxes))
	for _, b := range res.Boxes {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, strings.Join(fmtAttrs(b), ", "))
	}

	buf.WriteString("\n")
	for _, b := range res.Boxes {
		if b.Parent == "" {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", b.Parent, b.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(b scene.BoxResult) string {
	parts := []string{b.DisplayLabel()}
	if b.Kind != "" {
		parts = append(parts, b.Kind)
	}
	parts = append(parts, b.Rect.String())
	return strings.Join(parts, "\n")
}

func fmtAttrs(b scene.BoxResult) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(b))}
	if b.Color != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", b.Color))
	}
	if b.Kind == "" {
		attrs = append(attrs, "style=\"filled\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// whose width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
