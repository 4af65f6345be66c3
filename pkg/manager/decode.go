package manager

import (
	"math"
	"sort"
	"strings"

	"github.com/matzehuels/boxlayout/pkg/box"
	"github.com/matzehuels/boxlayout/pkg/errors"
	"github.com/matzehuels/boxlayout/pkg/geom"
)

var optionKeys = map[box.Kind][]string{
	box.Pack:  {"side", "anchor", "fill", "padx", "pady"},
	box.Grid:  {"column", "row", "columnspan", "rowspan", "anchor", "fill", "padx", "pady"},
	box.Place: {"x", "y", "relx", "rely", "anchor", "width", "height", "relwidth", "relheight", "padx", "pady"},
}

// Keys returns the option names accepted by kind, in declaration order.
func Keys(kind box.Kind) []string {
	keys := optionKeys[kind]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// DecodeOptions builds typed options for kind from a loosely typed map,
// as produced by the TOML, YAML and JSON decoders. Keys are case-insensitive.
// Unknown keys and values of the wrong type are configuration errors.
func DecodeOptions(kind box.Kind, raw map[string]any) (box.Options, error) {
	allowed, ok := optionKeys[kind]
	if !ok {
		return nil, errors.Configuration("geometry manager %q takes no options", kind)
	}
	vals := make(map[string]any, len(raw))
	var unknown []string
	for k, v := range raw {
		key := strings.ToLower(k)
		if !contains(allowed, key) {
			unknown = append(unknown, k)
			continue
		}
		vals[key] = v
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.Configuration("unexpected %s option(s): %s", kind, strings.Join(unknown, ", "))
	}

	d := decoder{vals: vals}
	var opts box.Options
	switch kind {
	case box.Pack:
		opts = PackOptions{
			Side:    geom.Side(d.str("side")),
			Anchor:  geom.Anchor(d.str("anchor")),
			Fill:    geom.Fill(d.str("fill")),
			Padding: d.padding(),
		}
	case box.Grid:
		opts = GridOptions{
			Column:     d.int("column"),
			Row:        d.int("row"),
			ColumnSpan: d.int("columnspan"),
			RowSpan:    d.int("rowspan"),
			Anchor:     geom.Anchor(d.str("anchor")),
			Fill:       geom.Fill(d.str("fill")),
			Padding:    d.padding(),
		}
	case box.Place:
		opts = PlaceOptions{
			X:         d.optInt("x"),
			Y:         d.optInt("y"),
			RelX:      d.optFloat("relx"),
			RelY:      d.optFloat("rely"),
			Anchor:    geom.Anchor(d.str("anchor")),
			Width:     d.int("width"),
			Height:    d.int("height"),
			RelWidth:  d.float("relwidth"),
			RelHeight: d.float("relheight"),
			Padding:   d.padding(),
		}
	}
	if d.err != nil {
		return nil, d.err
	}
	return opts, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// decoder extracts typed values and keeps the first error.
type decoder struct {
	vals map[string]any
	err  error
}

func (d *decoder) fail(key string, v any, want string) {
	if d.err == nil {
		d.err = errors.Configuration("option %s: want %s, got %v (%T)", key, want, v, v)
	}
}

func (d *decoder) str(key string) string {
	v, ok := d.vals[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.fail(key, v, "string")
	}
	return s
}

func (d *decoder) optInt(key string) *int {
	v, ok := d.vals[key]
	if !ok {
		return nil
	}
	n, ok := toInt(v)
	if !ok {
		d.fail(key, v, "integer")
		return nil
	}
	return &n
}

func (d *decoder) int(key string) int {
	if p := d.optInt(key); p != nil {
		return *p
	}
	return 0
}

func (d *decoder) optFloat(key string) *float64 {
	v, ok := d.vals[key]
	if !ok {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		d.fail(key, v, "number")
		return nil
	}
	return &f
}

func (d *decoder) float(key string) float64 {
	if p := d.optFloat(key); p != nil {
		return *p
	}
	return 0
}

func (d *decoder) padding() Padding {
	return Padding{PadX: d.pad("padx"), PadY: d.pad("pady")}
}

// pad accepts a single integer or a list of one or two integers.
func (d *decoder) pad(key string) []int {
	v, ok := d.vals[key]
	if !ok {
		return nil
	}
	if n, ok := toInt(v); ok {
		return []int{n}
	}
	var items []any
	switch list := v.(type) {
	case []any:
		items = list
	case []int:
		out := make([]int, len(list))
		copy(out, list)
		return out
	default:
		d.fail(key, v, "integer or list of integers")
		return nil
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		n, ok := toInt(item)
		if !ok {
			d.fail(key, v, "integer or list of integers")
			return nil
		}
		out = append(out, n)
	}
	return out
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
