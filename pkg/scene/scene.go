package scene

import (
	"context"
	"fmt"

	"github.com/matzehuels/boxlayout/pkg/box"
	"github.com/matzehuels/boxlayout/pkg/errors"
	"github.com/matzehuels/boxlayout/pkg/geom"
	"github.com/matzehuels/boxlayout/pkg/layout"
	"github.com/matzehuels/boxlayout/pkg/manager"
)

// RootID is the identifier of the root box in results.
const RootID = "root"

// Scene is a document turned into a live box tree.
type Scene struct {
	Name       string
	Background string

	arena *box.Arena
	root  box.ID
	names map[box.ID]string
	ids   map[string]box.ID
}

// Build creates the box tree described by doc. Children are mapped in
// document order. Nodes without an ID are named "box-N" after their
// creation order; explicit IDs must be valid and unique.
func Build(doc *Document) (*Scene, error) {
	if doc.Width < 0 || doc.Height < 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "negative display size %dx%d", doc.Width, doc.Height)
	}
	if err := errors.ValidateColor(doc.Background); err != nil {
		return nil, err
	}

	s := &Scene{
		Name:       doc.Name,
		Background: doc.Background,
		arena:      box.NewArena(),
		names:      make(map[box.ID]string),
		ids:        make(map[string]box.ID),
	}
	s.root = s.arena.NewRoot(geom.Size{W: doc.Width, H: doc.Height})
	rb, _ := s.arena.Get(s.root)
	rb.Label = doc.Name
	rb.Color = doc.Background
	if len(doc.Inpad) > 0 {
		if err := rb.SetInpad(doc.Inpad...); err != nil {
			return nil, fmt.Errorf("root inpad: %w", err)
		}
	}
	s.names[s.root] = RootID
	s.ids[RootID] = s.root

	// IDs are reserved up front so that an auto-generated name never
	// collides with an explicit one further down the document.
	if err := s.reserve(doc.Children); err != nil {
		return nil, err
	}
	seq := 0
	if err := s.build(s.root, doc.Children, &seq); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) reserve(nodes []Node) error {
	for _, n := range nodes {
		if n.ID != "" {
			if err := errors.ValidateBoxID(n.ID); err != nil {
				return err
			}
			if _, dup := s.ids[n.ID]; dup {
				return errors.New(errors.ErrCodeInvalidDocument, "duplicate box id %q", n.ID)
			}
			s.ids[n.ID] = box.NoID
		}
		if err := s.reserve(n.Children); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scene) build(parent box.ID, nodes []Node, seq *int) error {
	for _, n := range nodes {
		*seq++
		name := n.ID
		if name == "" {
			name = s.autoName(*seq)
		}
		if err := errors.ValidateColor(n.Color); err != nil {
			return fmt.Errorf("box %q: %w", name, err)
		}
		if n.Width < 0 || n.Height < 0 {
			return errors.New(errors.ErrCodeInvalidDocument, "box %q: negative size %dx%d", name, n.Width, n.Height)
		}

		id, err := s.arena.New(parent, geom.Size{W: n.Width, H: n.Height})
		if err != nil {
			return err
		}
		b, _ := s.arena.Get(id)
		b.Label = n.Label
		b.Color = n.Color
		if len(n.Inpad) > 0 {
			if err := b.SetInpad(n.Inpad...); err != nil {
				return fmt.Errorf("box %q inpad: %w", name, err)
			}
		}
		if len(n.Outpad) > 0 {
			if err := b.SetOutpad(n.Outpad...); err != nil {
				return fmt.Errorf("box %q outpad: %w", name, err)
			}
		}
		s.names[id] = name
		s.ids[name] = id

		if !n.Hidden {
			if err := s.mapNode(parent, id, n); err != nil {
				return fmt.Errorf("box %q: %w", name, err)
			}
		}
		if err := s.build(id, n.Children, seq); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scene) autoName(seq int) string {
	name := fmt.Sprintf("box-%d", seq)
	for i := 1; ; i++ {
		if _, taken := s.ids[name]; !taken {
			return name
		}
		name = fmt.Sprintf("box-%d-%d", seq, i)
	}
}

// mapNode resolves the node's manager kind (explicit, else the parent's)
// and maps it with its decoded options.
func (s *Scene) mapNode(parent, id box.ID, n Node) error {
	kind, err := box.ParseKind(n.Manager)
	if err != nil {
		return err
	}
	if kind == box.None {
		pb, _ := s.arena.Get(parent)
		kind = pb.Kind()
	}
	if kind == box.None {
		return errors.Configuration("no geometry manager is specified")
	}
	opts, err := manager.DecodeOptions(kind, n.Options)
	if err != nil {
		return err
	}
	return s.arena.Map(id, kind, opts)
}

// Arena returns the underlying box arena.
func (s *Scene) Arena() *box.Arena { return s.arena }

// Root returns the root box handle.
func (s *Scene) Root() box.ID { return s.root }

// Lookup returns the box with the given document ID.
func (s *Scene) Lookup(name string) (*box.Box, bool) {
	id, ok := s.ids[name]
	if !ok || id == box.NoID {
		return nil, false
	}
	return s.arena.Get(id)
}

// NameOf returns the document ID of a box.
func (s *Scene) NameOf(id box.ID) string { return s.names[id] }

// Len returns the number of boxes, hidden ones and the root included.
func (s *Scene) Len() int { return s.arena.Len() }

// Layout runs a display update over the whole scene.
func (s *Scene) Layout(ctx context.Context, opts ...layout.Option) (layout.Stats, error) {
	return layout.New(s.arena, opts...).UpdateDisplay(ctx, s.root)
}
