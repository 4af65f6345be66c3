// Package layout drives geometry managers over a tree of boxes.
//
// UpdateDisplay is the single entry point: it resets every box in the tree
// to its intrinsic size, sizes auto-sized boxes bottom-up from their
// children's estimates, and then places children top-down, one parent at a
// time, using the parent's geometry manager.
//
// A box with a zero width or height is auto-sized on that axis: its size is
// the natural size of its children plus its inner padding. Boxes with an
// explicit size keep it unless a manager stretches them (fill) or resizes
// them (place width/height).
package layout

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxlayout/pkg/box"
	"github.com/matzehuels/boxlayout/pkg/errors"
	"github.com/matzehuels/boxlayout/pkg/geom"
	"github.com/matzehuels/boxlayout/pkg/manager"
	"github.com/matzehuels/boxlayout/pkg/observability"
)

// Engine lays out the trees of one arena. It holds no state between passes
// besides the arena itself, and is not safe for concurrent use.
type Engine struct {
	arena  *box.Arena
	logger *log.Logger
	hooks  observability.LayoutHooks
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-pass debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHooks reports passes to h instead of the globally registered hooks.
func WithHooks(h observability.LayoutHooks) Option {
	return func(e *Engine) {
		e.hooks = h
	}
}

// New creates an engine over arena.
func New(arena *box.Arena, opts ...Option) *Engine {
	e := &Engine{arena: arena, logger: log.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats summarizes one UpdateDisplay pass.
type Stats struct {
	Boxes    int           // boxes visited, root included
	Placed   int           // child placements performed
	Managers int           // geometry managers built for placement
	Duration time.Duration // wall time of the pass
}

// Manager builds the geometry manager of id from its current child list.
// Building a manager resolves the children's options and applies their
// padx/pady. It returns nil for a box without a manager.
func (e *Engine) Manager(id box.ID) (manager.Manager, error) {
	b, ok := e.arena.Get(id)
	if !ok {
		return nil, errors.Configuration("unknown box %d", id)
	}
	if b.Kind() == box.None {
		return nil, nil
	}
	children := b.Children()
	entries := make([]manager.Entry, 0, len(children))
	for _, c := range children {
		cb, ok := e.arena.Get(c.ID)
		if !ok {
			return nil, errors.Configuration("box %d lists unknown child %d", id, c.ID)
		}
		entries = append(entries, manager.Entry{ID: c.ID, Box: cb, Options: c.Options})
	}
	return manager.New(b.Kind(), b, entries)
}

// Estimate computes the outer size of id, first sizing each auto-sized axis
// of id from its manager's estimate of the children plus the inner
// padding. Descendants are estimated (and auto-sized) recursively.
func (e *Engine) Estimate(id box.ID) (geom.Size, error) {
	b, ok := e.arena.Get(id)
	if !ok {
		return geom.Size{}, errors.Configuration("unknown box %d", id)
	}
	m, err := e.Manager(id)
	if err != nil {
		return geom.Size{}, err
	}
	if m != nil {
		size, err := m.Estimate(func(en manager.Entry) (geom.Size, error) {
			return e.Estimate(en.ID)
		})
		if err != nil {
			return geom.Size{}, err
		}
		r, pad := b.Rect(), b.Inpad()
		if r.W == 0 {
			r.W = size.W + pad.Horizontal()
		}
		if r.H == 0 {
			r.H = size.H + pad.Vertical()
		}
		b.SetRect(r)
	}
	return b.OuterRect().Size(), nil
}

// UpdateDisplay lays out the tree under root: every box is restored to its
// intrinsic size, auto-sized boxes are estimated, and every mapped child is
// placed by its parent's manager. Repeated calls on an unchanged tree give
// identical rectangles.
func (e *Engine) UpdateDisplay(ctx context.Context, root box.ID) (Stats, error) {
	start := time.Now()
	rb, ok := e.arena.Get(root)
	if !ok {
		return Stats{}, errors.Configuration("unknown box %d", root)
	}
	name := rootName(rb)

	var stats Stats
	if err := e.arena.Walk(root, func(b *box.Box, _ int) error {
		b.Restore()
		stats.Boxes++
		return nil
	}); err != nil {
		return stats, err
	}

	hooks := e.hooks
	if hooks == nil {
		hooks = observability.Layout()
	}
	hooks.OnPassStart(ctx, name, stats.Boxes)

	err := e.run(ctx, root, &stats)
	stats.Duration = time.Since(start)
	hooks.OnPassComplete(ctx, name, stats.Placed, stats.Duration, err)
	if err != nil {
		return stats, err
	}

	e.logger.Debug("updated display",
		"root", name,
		"boxes", stats.Boxes,
		"placed", stats.Placed,
		"duration", stats.Duration)
	return stats, nil
}

func (e *Engine) run(ctx context.Context, root box.ID, stats *Stats) error {
	if _, err := e.Estimate(root); err != nil {
		return err
	}
	return e.place(ctx, root, stats)
}

// place positions the children of id inside its inner rectangle, then
// recurses into each child so nested trees see their final parent size.
func (e *Engine) place(ctx context.Context, id box.ID, stats *Stats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := e.Manager(id)
	if err != nil {
		return err
	}
	if m == nil {
		return nil
	}
	stats.Managers++

	b, _ := e.arena.Get(id)
	inner := b.InnerRect()
	for _, en := range m.Entries() {
		outer := en.Box.OuterRect()
		next, err := m.Update(outer, &inner, en)
		if err != nil {
			return err
		}
		r := en.Box.Rect()
		r.W += next.W - outer.W
		r.H += next.H - outer.H
		pad := en.Box.Outpad()
		r.X = next.X + pad.Left
		r.Y = next.Y + pad.Top
		en.Box.SetRect(r)
		stats.Placed++
	}

	for _, en := range m.Entries() {
		if err := e.place(ctx, en.ID, stats); err != nil {
			return err
		}
	}
	return nil
}

func rootName(b *box.Box) string {
	if b.Label != "" {
		return b.Label
	}
	return "root"
}
