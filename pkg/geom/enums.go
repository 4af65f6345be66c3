package geom

import (
	"strings"

	"github.com/matzehuels/boxlayout/pkg/errors"
)

// Fill selects the axes on which a box stretches to its occupied region.
type Fill string

const (
	FillNone Fill = "none"
	FillX    Fill = "x"
	FillY    Fill = "y"
	FillBoth Fill = "both"
)

// ParseFill resolves a fill name. The empty string means FillNone.
func ParseFill(s string) (Fill, error) {
	switch f := Fill(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FillNone:
		return FillNone, nil
	case FillX, FillY, FillBoth:
		return f, nil
	}
	return "", errors.Configuration("unknown fill %q (want none, x, y or both)", s)
}

// X reports whether the fill stretches horizontally.
func (f Fill) X() bool { return f == FillX || f == FillBoth }

// Y reports whether the fill stretches vertically.
func (f Fill) Y() bool { return f == FillY || f == FillBoth }

// Side is the edge of the remaining interior a packed box is allocated from.
type Side string

const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// ParseSide resolves a side name.
func ParseSide(s string) (Side, error) {
	switch side := Side(strings.ToLower(strings.TrimSpace(s))); side {
	case SideLeft, SideRight, SideTop, SideBottom:
		return side, nil
	}
	return "", errors.Configuration("unknown side %q (want left, right, top or bottom)", s)
}

// Axis returns 0 for horizontal sides (left/right) and 1 for vertical ones.
func (s Side) Axis() int {
	if s == SideLeft || s == SideRight {
		return 0
	}
	return 1
}
