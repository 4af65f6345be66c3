package geom

import (
	"fmt"

	"github.com/matzehuels/boxlayout/pkg/errors"
)

// Pad holds padding for the four sides of a box.
type Pad struct {
	Left, Right, Top, Bottom int
}

// Uniform returns a Pad with every side set to v.
func Uniform(v int) Pad { return Pad{Left: v, Right: v, Top: v, Bottom: v} }

// Horizontal returns Left+Right.
func (p Pad) Horizontal() int { return p.Left + p.Right }

// Vertical returns Top+Bottom.
func (p Pad) Vertical() int { return p.Top + p.Bottom }

// Slice returns the padding as (left, right, top, bottom).
func (p Pad) Slice() []int { return []int{p.Left, p.Right, p.Top, p.Bottom} }

func (p Pad) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", p.Left, p.Right, p.Top, p.Bottom)
}

// NormalizePad expands a padding value into a Pad:
//
//	1 value  -> all four sides
//	2 values -> (horizontal, vertical)
//	4 values -> (left, right, top, bottom)
//
// Any other length, or a negative value, is a configuration error.
func NormalizePad(values ...int) (Pad, error) {
	for _, v := range values {
		if v < 0 {
			return Pad{}, errors.Configuration("invalid pad %v: negative value", values)
		}
	}
	switch len(values) {
	case 1:
		return Uniform(values[0]), nil
	case 2:
		return Pad{Left: values[0], Right: values[0], Top: values[1], Bottom: values[1]}, nil
	case 4:
		return Pad{Left: values[0], Right: values[1], Top: values[2], Bottom: values[3]}, nil
	default:
		return Pad{}, errors.Configuration("invalid pad %v: want 1, 2 or 4 values, got %d", values, len(values))
	}
}

// PadPair expands a per-axis padding (1 value -> both sides, 2 values -> before, after).
// Used by the padx/pady manager options.
func PadPair(values []int) (before, after int, err error) {
	for _, v := range values {
		if v < 0 {
			return 0, 0, errors.Configuration("invalid pad %v: negative value", values)
		}
	}
	switch len(values) {
	case 1:
		return values[0], values[0], nil
	case 2:
		return values[0], values[1], nil
	default:
		return 0, 0, errors.Configuration("invalid pad %v: want 1 or 2 values, got %d", values, len(values))
	}
}

// RoundHalfUp rounds a non-negative value to the nearest integer with halves
// rounding away from zero (2.5 -> 3), unlike math.RoundToEven.
func RoundHalfUp(x float64) int {
	i := int(x)
	if x-float64(i) < 0.5 {
		return i
	}
	return i + 1
}
