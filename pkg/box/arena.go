package box

import (
	"github.com/matzehuels/boxlayout/pkg/errors"
	"github.com/matzehuels/boxlayout/pkg/geom"
)

// Arena owns every box of one or more layout trees. Boxes refer to each
// other by ID only, so removing a subtree is a matter of clearing slots.
// IDs are never reused.
//
// An Arena is not safe for concurrent use.
type Arena struct {
	boxes []*Box
	live  int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// NewRoot creates a box without a parent. Roots are the layout universe
// (typically sized to the display) and can never be mapped.
func (a *Arena) NewRoot(size geom.Size) ID {
	return a.add(NoID, size)
}

// New creates a box whose parent is parent. The box takes part in layout
// only once it is mapped with Map.
func (a *Arena) New(parent ID, size geom.Size) (ID, error) {
	if _, err := a.lookup(parent); err != nil {
		return NoID, err
	}
	return a.add(parent, size), nil
}

func (a *Arena) add(parent ID, size geom.Size) ID {
	id := ID(len(a.boxes))
	a.boxes = append(a.boxes, newBox(id, parent, size))
	a.live++
	return id
}

// Get returns the box for id, or nil and false if it does not exist.
func (a *Arena) Get(id ID) (*Box, bool) {
	if id < 0 || int(id) >= len(a.boxes) || a.boxes[id] == nil {
		return nil, false
	}
	return a.boxes[id], true
}

// Len returns the number of live boxes.
func (a *Arena) Len() int { return a.live }

func (a *Arena) lookup(id ID) (*Box, error) {
	b, ok := a.Get(id)
	if !ok {
		return nil, errors.Configuration("unknown box %d", id)
	}
	return b, nil
}

// Map attaches id to its parent under a geometry manager.
//
// If kind is None the kind of opts is used, and failing that the kind
// already assigned to the parent. Mapping fails when id is a root, when
// the requested kind conflicts with the parent's, when no kind can be
// resolved, or when opts belongs to another kind. A nil opts means "all
// defaults", and so does a nil options pointer.
func (a *Arena) Map(id ID, kind Kind, opts Options) error {
	b, err := a.lookup(id)
	if err != nil {
		return err
	}
	if b.IsRoot() {
		return errors.Configuration("cannot map the root box %d", id)
	}
	parent, err := a.lookup(b.parent)
	if err != nil {
		return err
	}

	if IsNilOptions(opts) {
		opts = nil
	}
	if kind == None && opts != nil {
		kind = opts.Kind()
	}
	if parent.kind != None && kind != None && parent.kind != kind {
		return errors.Configuration("cannot use geometry manager %q because %q is already in use", kind, parent.kind)
	}
	if parent.kind == None && kind == None {
		return errors.Configuration("no geometry manager is specified")
	}
	if kind == None {
		kind = parent.kind
	}
	if opts != nil && opts.Kind() != kind {
		return errors.Configuration("%s options given to a %s manager", opts.Kind(), kind)
	}

	parent.kind = kind
	parent.children = append(parent.children, Child{ID: id, Options: opts})
	return nil
}

// Unmap detaches id from its parent's child list. Only the first entry
// for id is removed; unmapping a box that is not mapped is a no-op.
func (a *Arena) Unmap(id ID) error {
	b, err := a.lookup(id)
	if err != nil {
		return err
	}
	if b.IsRoot() {
		return errors.Configuration("cannot unmap the root box %d", id)
	}
	parent, ok := a.Get(b.parent)
	if !ok {
		return nil
	}
	for i, c := range parent.children {
		if c.ID == id {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	return nil
}

// Kill destroys id and all of its descendants, mapped or not. Descendants
// are removed depth-first before their parents.
func (a *Arena) Kill(id ID) error {
	if _, err := a.lookup(id); err != nil {
		return err
	}
	kids := a.childIndex()
	var kill func(ID)
	kill = func(cur ID) {
		for _, k := range kids[cur] {
			kill(k)
		}
		b := a.boxes[cur]
		if !b.IsRoot() {
			if parent, ok := a.Get(b.parent); ok {
				parent.children = removeAll(parent.children, cur)
			}
		}
		a.boxes[cur] = nil
		a.live--
	}
	kill(id)
	return nil
}

// childIndex maps every live box to the boxes naming it as parent.
func (a *Arena) childIndex() map[ID][]ID {
	idx := make(map[ID][]ID)
	for _, b := range a.boxes {
		if b != nil && !b.IsRoot() {
			idx[b.parent] = append(idx[b.parent], b.id)
		}
	}
	return idx
}

func removeAll(children []Child, id ID) []Child {
	out := children[:0]
	for _, c := range children {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits id and its mapped descendants in pre-order, in mapping
// order. A box mapped twice is visited twice.
func (a *Arena) Walk(id ID, fn func(b *Box, depth int) error) error {
	var walk func(ID, int) error
	walk = func(cur ID, depth int) error {
		b, err := a.lookup(cur)
		if err != nil {
			return err
		}
		if err := fn(b, depth); err != nil {
			return err
		}
		for _, c := range b.children {
			if err := walk(c.ID, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(id, 0)
}
