package manager

import (
	"github.com/matzehuels/boxlayout/pkg/box"
	"github.com/matzehuels/boxlayout/pkg/errors"
	"github.com/matzehuels/boxlayout/pkg/geom"
)

// Entry is one child under management: its handle, the box itself and its
// resolved options.
type Entry struct {
	ID      box.ID
	Box     box.Layoutable
	Options box.Options
}

// SizeFunc returns the estimated outer size of a child.
type SizeFunc func(Entry) (geom.Size, error)

// Manager computes where each child of one parent goes.
//
// Update is called once per entry, in order, with the child's current outer
// rectangle and the parent's remaining interior. It returns the new outer
// rectangle and may shrink inner for the entries that follow.
type Manager interface {
	Kind() box.Kind
	Entries() []Entry
	Update(outer geom.Rect, inner *geom.Rect, e Entry) (geom.Rect, error)
	Estimate(size SizeFunc) (geom.Size, error)
}

// New builds the manager of kind for parent. Each child's options are
// resolved against the defaults of kind and its padx/pady are written into
// the child's outpad before the manager reads any geometry.
func New(kind box.Kind, parent box.Layoutable, children []Entry) (Manager, error) {
	entries := make([]Entry, len(children))
	for i, c := range children {
		opts, err := Resolve(kind, c.Options)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "box %d", c.ID)
		}
		if err := applyPadding(c.Box, paddingOf(opts)); err != nil {
			return nil, err
		}
		entries[i] = Entry{ID: c.ID, Box: c.Box, Options: opts}
	}

	switch kind {
	case box.Pack:
		return &packManager{entries: entries}, nil
	case box.Grid:
		return newGridManager(entries), nil
	case box.Place:
		return &placeManager{parent: parent, entries: entries}, nil
	}
	return nil, errors.Configuration("unknown geometry manager %q", kind)
}

// Adjust positions outer inside the occupied region occ according to anchor
// and fill. Filled axes take occ's extent on that axis.
func Adjust(outer, occ geom.Rect, anchor geom.Anchor, fill geom.Fill) geom.Rect {
	outer = outer.SetAnchor(anchor, occ.Anchor(anchor))
	if fill.X() {
		outer.X, outer.W = occ.X, occ.W
	}
	if fill.Y() {
		outer.Y, outer.H = occ.Y, occ.H
	}
	return outer
}

// Pack maps id under its parent's Pack manager.
func Pack(a *box.Arena, id box.ID, opts PackOptions) error {
	return a.Map(id, box.Pack, opts)
}

// Grid maps id under its parent's Grid manager.
func Grid(a *box.Arena, id box.ID, opts GridOptions) error {
	return a.Map(id, box.Grid, opts)
}

// Place maps id under its parent's Place manager.
func Place(a *box.Arena, id box.ID, opts PlaceOptions) error {
	return a.Map(id, box.Place, opts)
}
