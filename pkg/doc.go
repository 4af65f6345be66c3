// Package pkg provides the libraries behind boxlayout.
//
// # Overview
//
// Boxlayout computes the geometry of nested rectangular boxes. Every parent
// box arranges its mapped children with one geometry manager: pack (stack
// against a side of the remaining cavity), grid (rows and columns with
// spans and weights) or place (absolute and relative coordinates). The pkg
// directory is organized into these areas:
//
//  1. [geom], [box], [manager], [layout] - the layout core
//  2. [scene] - documents (TOML, YAML, JSON) and serializable results
//  3. [render/sink], [render/tree] - SVG, PNG and Graphviz output
//  4. [pipeline] - orchestration (decode → layout → render) with caching
//  5. [cache], [store], [server] - infrastructure for the CLI and the API
//
// # Architecture
//
//	Document (.toml/.yaml/.json)
//	         ↓
//	    [scene] package (decode, build the box tree, map children)
//	         ↓
//	    [layout] package (estimate sizes bottom-up, place top-down)
//	         ↓
//	    [scene.Result] (rect, inner and outer rectangle of every box)
//	         ↓
//	    SVG/PNG/JSON/DOT output
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/boxlayout/pkg/scene"
//	    "github.com/matzehuels/boxlayout/pkg/render/sink"
//	)
//
//	doc, _ := scene.ReadFile("form.toml")
//	s, _ := scene.Build(doc)
//	_, _ = s.Layout(context.Background())
//	svg := sink.RenderSVG(s.Result(), sink.WithLabels())
//
// Building trees directly:
//
//	a := box.NewArena()
//	root := a.NewRoot(geom.Size{W: 200, H: 100})
//	id, _ := a.New(root, geom.Size{W: 50, H: 20})
//	_ = manager.Pack(a, id, manager.PackOptions{Side: geom.SideLeft})
//	_, _ = layout.New(a).UpdateDisplay(ctx, root)
package pkg
