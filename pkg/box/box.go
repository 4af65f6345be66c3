package box

import (
	"github.com/matzehuels/boxlayout/pkg/geom"
)

// ID is a stable handle to a box inside an Arena.
type ID int

// NoID is the parent of a root box.
const NoID ID = -1

// Child is one entry of a parent's child list: the mapped box and the
// options it was mapped with.
type Child struct {
	ID      ID
	Options Options
}

// Layoutable is what a geometry manager needs from a box.
type Layoutable interface {
	Rect() geom.Rect
	SetRect(geom.Rect)
	InnerRect() geom.Rect
	OuterRect() geom.Rect
	Outpad() geom.Pad
	SetOutpad(values ...int) error
}

// Box is a node of the layout tree. It carries its own rectangle, the
// padding used to derive its inner and outer rectangles, and the ordered
// list of children owned by its geometry manager.
type Box struct {
	// Label is a display name used by renderers and inspectors.
	Label string
	// Color is an optional fill color used by renderers.
	Color string

	id       ID
	parent   ID
	rect     geom.Rect
	origRect geom.Rect
	inpad    geom.Pad
	outpad   geom.Pad
	children []Child
	kind     Kind
}

var _ Layoutable = (*Box)(nil)

func newBox(id, parent ID, size geom.Size) *Box {
	r := geom.Rect{W: size.W, H: size.H}
	return &Box{id: id, parent: parent, rect: r, origRect: r}
}

// ID returns the box handle.
func (b *Box) ID() ID { return b.id }

// Parent returns the parent handle, or NoID for a root.
func (b *Box) Parent() ID { return b.parent }

// IsRoot reports whether the box has no parent.
func (b *Box) IsRoot() bool { return b.parent == NoID }

// Kind returns the manager kind owning this box's children.
func (b *Box) Kind() Kind { return b.kind }

// Children returns a copy of the child list in mapping order.
func (b *Box) Children() []Child {
	out := make([]Child, len(b.children))
	copy(out, b.children)
	return out
}

// Rect returns the box's own rectangle.
func (b *Box) Rect() geom.Rect { return b.rect }

// SetRect replaces the box's rectangle without touching its intrinsic size.
func (b *Box) SetRect(r geom.Rect) { b.rect = r }

// OrigRect returns the rectangle as last set by Resize.
func (b *Box) OrigRect() geom.Rect { return b.origRect }

// Move sets the position of the box.
func (b *Box) Move(x, y int) {
	b.rect.X, b.rect.Y = x, y
}

// Resize sets the intrinsic size. A zero axis is sized from the children
// during layout.
func (b *Box) Resize(s geom.Size) {
	b.rect.W, b.rect.H = s.W, s.H
	b.origRect.W, b.origRect.H = s.W, s.H
}

// Restore resets the rectangle size to the intrinsic size set by Resize,
// dropping any size a manager applied during the previous layout pass.
func (b *Box) Restore() {
	b.rect.W, b.rect.H = b.origRect.W, b.origRect.H
}

// Inpad returns the inner padding.
func (b *Box) Inpad() geom.Pad { return b.inpad }

// Outpad returns the outer padding.
func (b *Box) Outpad() geom.Pad { return b.outpad }

// SetInpad sets the inner padding from 1, 2 or 4 values.
func (b *Box) SetInpad(values ...int) error {
	p, err := geom.NormalizePad(values...)
	if err != nil {
		return err
	}
	b.inpad = p
	return nil
}

// SetOutpad sets the outer padding from 1, 2 or 4 values.
func (b *Box) SetOutpad(values ...int) error {
	p, err := geom.NormalizePad(values...)
	if err != nil {
		return err
	}
	b.outpad = p
	return nil
}

// InnerRect returns the rectangle available to children.
func (b *Box) InnerRect() geom.Rect { return b.rect.Inset(b.inpad) }

// OuterRect returns the rectangle the parent's manager reasons about.
func (b *Box) OuterRect() geom.Rect { return b.rect.Outset(b.outpad) }
