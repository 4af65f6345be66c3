package manager

import (
	"github.com/matzehuels/boxlayout/pkg/box"
	"github.com/matzehuels/boxlayout/pkg/errors"
	"github.com/matzehuels/boxlayout/pkg/geom"
)

// Padding is the per-child outer padding shared by every manager.
// Each axis takes 1 value (both sides) or 2 values (before, after);
// a nil axis keeps the child's current outpad.
type Padding struct {
	PadX []int
	PadY []int
}

// PackOptions configures a child of a Pack manager.
// Zero values select the defaults (side top, anchor center, fill none).
type PackOptions struct {
	Side   geom.Side
	Anchor geom.Anchor
	Fill   geom.Fill
	Padding
}

// Kind implements box.Options.
func (PackOptions) Kind() box.Kind { return box.Pack }

// GridOptions configures a child of a Grid manager.
// Zero spans mean 1.
type GridOptions struct {
	Column     int
	Row        int
	ColumnSpan int
	RowSpan    int
	Anchor     geom.Anchor
	Fill       geom.Fill
	Padding
}

// Kind implements box.Options.
func (GridOptions) Kind() box.Kind { return box.Grid }

// PlaceOptions configures a child of a Place manager.
//
// Exactly one of X/RelX and one of Y/RelY is required; absolute values win
// when both are given. Width/Height take precedence over RelWidth/RelHeight,
// and zero sizes mean "keep the child's own size".
type PlaceOptions struct {
	X, Y      *int
	RelX      *float64
	RelY      *float64
	Anchor    geom.Anchor
	Width     int
	Height    int
	RelWidth  float64
	RelHeight float64
	Padding
}

// Kind implements box.Options.
func (PlaceOptions) Kind() box.Kind { return box.Place }

// Int returns a pointer to v, for the optional PlaceOptions fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for the optional PlaceOptions fields.
func Float(v float64) *float64 { return &v }

// DefaultPackOptions returns a fresh copy of the Pack defaults.
func DefaultPackOptions() PackOptions {
	return PackOptions{Side: geom.SideTop, Anchor: geom.Center, Fill: geom.FillNone}
}

// DefaultGridOptions returns a fresh copy of the Grid defaults.
func DefaultGridOptions() GridOptions {
	return GridOptions{ColumnSpan: 1, RowSpan: 1, Anchor: geom.Center, Fill: geom.FillNone}
}

// DefaultPlaceOptions returns a fresh copy of the Place defaults.
func DefaultPlaceOptions() PlaceOptions {
	return PlaceOptions{Anchor: geom.Center}
}

// Defaults returns the default options of kind.
func Defaults(kind box.Kind) (box.Options, error) {
	switch kind {
	case box.Pack:
		return DefaultPackOptions(), nil
	case box.Grid:
		return DefaultGridOptions(), nil
	case box.Place:
		return DefaultPlaceOptions(), nil
	}
	return nil, errors.Configuration("no defaults for geometry manager %q", kind)
}

// Resolve merges opts over the defaults of kind and validates the result.
// A nil opts, or a nil options pointer, yields the defaults.
func Resolve(kind box.Kind, opts box.Options) (box.Options, error) {
	if box.IsNilOptions(opts) {
		return Defaults(kind)
	}
	if opts.Kind() != kind {
		return nil, errors.Configuration("%s options given to a %s manager", opts.Kind(), kind)
	}
	switch o := opts.(type) {
	case PackOptions:
		return resolvePack(o)
	case *PackOptions:
		return resolvePack(*o)
	case GridOptions:
		return resolveGrid(o)
	case *GridOptions:
		return resolveGrid(*o)
	case PlaceOptions:
		return resolvePlace(o)
	case *PlaceOptions:
		return resolvePlace(*o)
	}
	return nil, errors.Configuration("unsupported options type %T", opts)
}

func resolvePack(o PackOptions) (PackOptions, error) {
	out := DefaultPackOptions()
	var err error
	if o.Side != "" {
		if out.Side, err = geom.ParseSide(string(o.Side)); err != nil {
			return out, err
		}
	}
	if out.Anchor, err = resolveAnchor(o.Anchor, out.Anchor); err != nil {
		return out, err
	}
	if out.Fill, err = geom.ParseFill(string(o.Fill)); err != nil {
		return out, err
	}
	out.Padding = o.Padding
	return out, nil
}

func resolveGrid(o GridOptions) (GridOptions, error) {
	out := DefaultGridOptions()
	if o.Column < 0 || o.Row < 0 {
		return out, errors.Configuration("grid column and row must be non-negative, got (%d, %d)", o.Column, o.Row)
	}
	if o.ColumnSpan < 0 || o.RowSpan < 0 {
		return out, errors.Configuration("grid spans must be positive, got (%d, %d)", o.ColumnSpan, o.RowSpan)
	}
	out.Column, out.Row = o.Column, o.Row
	if o.ColumnSpan > 0 {
		out.ColumnSpan = o.ColumnSpan
	}
	if o.RowSpan > 0 {
		out.RowSpan = o.RowSpan
	}
	var err error
	if out.Anchor, err = resolveAnchor(o.Anchor, out.Anchor); err != nil {
		return out, err
	}
	if out.Fill, err = geom.ParseFill(string(o.Fill)); err != nil {
		return out, err
	}
	out.Padding = o.Padding
	return out, nil
}

func resolvePlace(o PlaceOptions) (PlaceOptions, error) {
	out := o
	var err error
	if out.Anchor, err = resolveAnchor(o.Anchor, geom.Center); err != nil {
		return out, err
	}
	if o.X == nil && o.RelX == nil || o.Y == nil && o.RelY == nil {
		return out, errors.Configuration("place requires x or relx and y or rely")
	}
	for _, f := range []*float64{o.RelX, o.RelY} {
		if f != nil && *f < 0 {
			return out, errors.Configuration("relative position must be non-negative, got %v", *f)
		}
	}
	if o.Width < 0 || o.Height < 0 || o.RelWidth < 0 || o.RelHeight < 0 {
		return out, errors.Configuration("place sizes must be non-negative")
	}
	return out, nil
}

func resolveAnchor(a, def geom.Anchor) (geom.Anchor, error) {
	if a == "" {
		return def, nil
	}
	return geom.ParseAnchor(string(a))
}

func paddingOf(opts box.Options) Padding {
	switch o := opts.(type) {
	case PackOptions:
		return o.Padding
	case GridOptions:
		return o.Padding
	case PlaceOptions:
		return o.Padding
	}
	return Padding{}
}

// applyPadding writes the padx/pady options into the child's outpad.
// An axis without a value keeps the child's current padding.
func applyPadding(child box.Layoutable, p Padding) error {
	if len(p.PadX) == 0 && len(p.PadY) == 0 {
		return nil
	}
	cur := child.Outpad()
	left, right := cur.Left, cur.Right
	top, bottom := cur.Top, cur.Bottom
	var err error
	if len(p.PadX) > 0 {
		if left, right, err = geom.PadPair(p.PadX); err != nil {
			return err
		}
	}
	if len(p.PadY) > 0 {
		if top, bottom, err = geom.PadPair(p.PadY); err != nil {
			return err
		}
	}
	return child.SetOutpad(left, right, top, bottom)
}
