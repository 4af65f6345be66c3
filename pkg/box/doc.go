// Package box implements the layout tree: boxes stored in an [Arena] and
// addressed by stable [ID] handles.
//
// # Model
//
// Every [Box] has its own rectangle plus two paddings:
//
//   - inpad shrinks the rectangle into the inner rectangle handed to children
//   - outpad grows it into the outer rectangle its parent's manager places
//
// A parent lists its children in mapping order together with per-child
// [Options]. All children of one parent share a single manager [Kind]; mixing
// kinds is a configuration error.
//
// # Lifecycle
//
//	a := box.NewArena()
//	root := a.NewRoot(geom.Size{W: 640, H: 480})
//	side, _ := a.New(root, geom.Size{W: 120})
//	_ = a.Map(side, box.Pack, manager.PackOptions{Side: ptr(geom.SideLeft)})
//
// [Arena.Unmap] detaches a box from its parent, and [Arena.Kill] removes a box
// and its whole subtree from the arena. Positions are computed by the layout
// package; this package only stores them.
package box
