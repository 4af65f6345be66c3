package manager

import (
	"github.com/matzehuels/boxlayout/pkg/box"
	"github.com/matzehuels/boxlayout/pkg/geom"
)

// packManager stacks children against the sides of the parent's remaining
// interior. Every child consumes a strip of its own width (left/right) or
// height (top/bottom) spanning the full remaining other axis.
type packManager struct {
	entries []Entry
}

func (m *packManager) Kind() box.Kind   { return box.Pack }
func (m *packManager) Entries() []Entry { return m.entries }

func (m *packManager) Update(outer geom.Rect, inner *geom.Rect, e Entry) (geom.Rect, error) {
	opts := e.Options.(PackOptions)

	var occ geom.Rect
	switch opts.Side {
	case geom.SideLeft:
		occ = geom.R(inner.X, inner.Y, outer.W, inner.H)
		inner.W -= outer.W
		inner.X += outer.W
		outer.X = inner.X - outer.W
	case geom.SideRight:
		inner.W -= outer.W
		occ = geom.R(inner.Right(), inner.Y, outer.W, inner.H)
		outer.X = inner.Right()
	case geom.SideTop:
		occ = geom.R(inner.X, inner.Y, inner.W, outer.H)
		inner.H -= outer.H
		inner.Y += outer.H
		outer.Y = inner.Y - outer.H
	case geom.SideBottom:
		inner.H -= outer.H
		occ = geom.R(inner.X, inner.Bottom(), inner.W, outer.H)
		outer.Y = inner.Bottom()
	}
	return Adjust(outer, occ, opts.Anchor, opts.Fill), nil
}

// Estimate walks the children in order, advancing a cursor along each
// child's packing axis and tracking the furthest extent reached on both.
func (m *packManager) Estimate(size SizeFunc) (geom.Size, error) {
	var pos, br [2]int
	for _, e := range m.entries {
		s, err := size(e)
		if err != nil {
			return geom.Size{}, err
		}
		for i := 0; i < 2; i++ {
			br[i] = max(br[i], pos[i]+s.Axis(i))
		}
		axis := e.Options.(PackOptions).Side.Axis()
		pos[axis] += s.Axis(axis)
	}
	return geom.Size{W: br[0], H: br[1]}, nil
}
