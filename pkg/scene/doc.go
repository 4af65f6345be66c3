// Package scene loads layout documents and turns them into box trees.
//
// A document describes the display (the root box) and a tree of nodes.
// Each node is a box plus the geometry manager and options it is mapped
// with. TOML, YAML and JSON are accepted:
//
//	name = "toolbar"
//	width = 320
//	height = 40
//
//	[[children]]
//	id = "open"
//	width = 60
//	manager = "pack"
//	options = { side = "left", fill = "y", padx = 4 }
//
// Build creates the tree, Scene.Layout runs the layout engine over it and
// Scene.Result snapshots the final geometry as a serializable Result.
//
//	doc, err := scene.ReadFile("toolbar.toml")
//	s, err := scene.Build(doc)
//	_, err = s.Layout(ctx)
//	res := s.Result()
package scene
