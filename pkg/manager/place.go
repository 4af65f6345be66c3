package manager

import (
	"github.com/matzehuels/boxlayout/pkg/box"
	"github.com/matzehuels/boxlayout/pkg/errors"
	"github.com/matzehuels/boxlayout/pkg/geom"
)

// placeManager positions children at absolute or relative coordinates of
// the parent's interior. Children do not affect each other.
type placeManager struct {
	parent  box.Layoutable
	entries []Entry
}

func (m *placeManager) Kind() box.Kind   { return box.Place }
func (m *placeManager) Entries() []Entry { return m.entries }

func (m *placeManager) Update(outer geom.Rect, inner *geom.Rect, e Entry) (geom.Rect, error) {
	opts := e.Options.(PlaceOptions)
	s := e.Box.Rect().Size()

	if opts.Width != 0 {
		outer.W += opts.Width - s.W
	} else if opts.RelWidth != 0 {
		outer.W += geom.RoundHalfUp(float64(inner.W)*opts.RelWidth) - s.W
	}
	if opts.Height != 0 {
		outer.H += opts.Height - s.H
	} else if opts.RelHeight != 0 {
		outer.H += geom.RoundHalfUp(float64(inner.H)*opts.RelHeight) - s.H
	}

	pad := e.Box.Outpad()
	var p geom.Point
	switch {
	case opts.X != nil:
		p.X = inner.X + *opts.X - pad.Left
	case opts.RelX != nil:
		p.X = inner.X + geom.RoundHalfUp(float64(inner.W)*(*opts.RelX)) - pad.Left
	default:
		return outer, errors.Configuration("place: box %d has no x or relx", e.ID)
	}
	switch {
	case opts.Y != nil:
		p.Y = inner.Y + *opts.Y - pad.Top
	case opts.RelY != nil:
		p.Y = inner.Y + geom.RoundHalfUp(float64(inner.H)*(*opts.RelY)) - pad.Top
	default:
		return outer, errors.Configuration("place: box %d has no y or rely", e.ID)
	}

	return outer.SetAnchor(opts.Anchor, p), nil
}

// Estimate sizes every child (so nested auto-sized boxes are resolved)
// and reports the parent's own outer size: placed children never grow
// their parent.
func (m *placeManager) Estimate(size SizeFunc) (geom.Size, error) {
	for _, e := range m.entries {
		if _, err := size(e); err != nil {
			return geom.Size{}, err
		}
	}
	return m.parent.OuterRect().Size(), nil
}
